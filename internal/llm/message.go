package llm

import "github.com/recrsn/localagent/internal/schema"

// Role tags the variant of a Message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry of a conversation transcript.
//
// Which fields are meaningful depends on Role: ToolRequests and Thinking only
// on assistant messages, ToolName and ToolCallID only on tool messages. Use the
// constructors below rather than building messages by hand.
type Message struct {
	Role         Role          `json:"role"`
	Content      string        `json:"content"`
	Thinking     string        `json:"thinking,omitempty"`
	ToolRequests []ToolRequest `json:"tool_requests,omitempty"`
	ToolName     string        `json:"tool_name,omitempty"`
	ToolCallID   string        `json:"tool_call_id,omitempty"`
}

// ToolRequest is a model's request to invoke a named tool
type ToolRequest struct {
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolDefinition describes a tool in the catalog sent to the model
type ToolDefinition struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Parameters  schema.Schema `json:"parameters"`
}

// UserMessage creates a message carrying user input
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage creates a message carrying a model reply
func AssistantMessage(content, thinking string, requests []ToolRequest) Message {
	return Message{
		Role:         RoleAssistant,
		Content:      content,
		Thinking:     thinking,
		ToolRequests: requests,
	}
}

// ToolResultMessage creates the message answering a single tool request
func ToolResultMessage(request ToolRequest, content string) Message {
	return Message{
		Role:       RoleTool,
		Content:    content,
		ToolName:   request.Name,
		ToolCallID: request.ID,
	}
}
