package llm

import (
	"context"
	"fmt"
)

// OllamaClient talks to the native Ollama chat API
type OllamaClient struct {
	backend httpBackend
}

// NewOllamaClient creates a client for the Ollama server at opts.BaseURL
func NewOllamaClient(opts ClientOptions) *OllamaClient {
	return &OllamaClient{backend: newHTTPBackend(opts, "ollama")}
}

type ollamaMessage struct {
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	Thinking  string           `json:"thinking,omitempty"`
	ToolCalls []ollamaToolCall `json:"tool_calls,omitempty"`
	ToolName  string           `json:"tool_name,omitempty"`
}

type ollamaToolCall struct {
	Function struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	} `json:"function"`
}

type ollamaTool struct {
	Type     string         `json:"type"`
	Function ToolDefinition `json:"function"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Tools    []ollamaTool    `json:"tools,omitempty"`
	Stream   bool            `json:"stream"`
	Options  map[string]any  `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Model      string        `json:"model"`
	Message    ollamaMessage `json:"message"`
	Done       bool          `json:"done"`
	DoneReason string        `json:"done_reason,omitempty"`
}

// Complete sends the transcript to /api/chat with streaming disabled
func (c *OllamaClient) Complete(ctx context.Context, req Request) (Response, error) {
	payload := ollamaChatRequest{
		Model:    req.Model,
		Messages: toOllamaMessages(req),
		Stream:   false,
	}
	if req.Temperature > 0 {
		payload.Options = map[string]any{"temperature": req.Temperature}
	}
	for _, def := range req.Tools {
		payload.Tools = append(payload.Tools, ollamaTool{Type: "function", Function: def})
	}

	var resp ollamaChatResponse
	if err := c.backend.postJSON(ctx, "/api/chat", payload, &resp); err != nil {
		return Response{}, fmt.Errorf("ollama chat with %s: %w", req.Model, err)
	}

	out := Response{
		Content:  resp.Message.Content,
		Thinking: resp.Message.Thinking,
	}
	for i, call := range resp.Message.ToolCalls {
		out.ToolRequests = append(out.ToolRequests, ToolRequest{
			ID:        fmt.Sprintf("call_%d", i),
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return out, nil
}

func toOllamaMessages(req Request) []ollamaMessage {
	messages := make([]ollamaMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, ollamaMessage{Role: string(RoleSystem), Content: req.System})
	}

	for _, msg := range req.Messages {
		m := ollamaMessage{
			Role:     string(msg.Role),
			Content:  msg.Content,
			Thinking: msg.Thinking,
			ToolName: msg.ToolName,
		}
		for _, tr := range msg.ToolRequests {
			var call ollamaToolCall
			call.Function.Name = tr.Name
			call.Function.Arguments = tr.Arguments
			m.ToolCalls = append(m.ToolCalls, call)
		}
		messages = append(messages, m)
	}
	return messages
}
