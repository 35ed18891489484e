package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint
type OpenAIClient struct {
	backend httpBackend
}

// NewOpenAIClient creates a client for the chat completions API under opts.BaseURL
func NewOpenAIClient(opts ClientOptions) *OpenAIClient {
	return &OpenAIClient{backend: newHTTPBackend(opts, "openai")}
}

type openAIMessage struct {
	Role             string           `json:"role"`
	Content          string           `json:"content"`
	ReasoningContent string           `json:"reasoning_content,omitempty"`
	ToolCalls        []openAIToolCall `json:"tool_calls,omitempty"`
	ToolCallID       string           `json:"tool_call_id,omitempty"`
	Name             string           `json:"name,omitempty"`
}

// openAIFunctionCall carries arguments as a JSON encoded string
type openAIFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type openAIToolCall struct {
	ID       string             `json:"id"`
	Type     string             `json:"type"`
	Function openAIFunctionCall `json:"function"`
}

type openAITool struct {
	Type     string         `json:"type"`
	Function ToolDefinition `json:"function"`
}

type chatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Tools       []openAITool    `json:"tools,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type chatCompletionChoice struct {
	Index        int           `json:"index"`
	Message      openAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type chatCompletionResponse struct {
	ID      string                 `json:"id"`
	Choices []chatCompletionChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete sends the transcript to /chat/completions
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (Response, error) {
	payload := chatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
	}
	messages, err := toOpenAIMessages(req)
	if err != nil {
		return Response{}, err
	}
	payload.Messages = messages
	for _, def := range req.Tools {
		payload.Tools = append(payload.Tools, openAITool{Type: "function", Function: def})
	}

	var resp chatCompletionResponse
	if err := c.backend.postJSON(ctx, "/chat/completions", payload, &resp); err != nil {
		return Response{}, fmt.Errorf("chat completion with %s: %w", req.Model, err)
	}

	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("chat completion with %s: %w", req.Model, unavailable("no response choices"))
	}

	msg := resp.Choices[0].Message
	out := Response{
		Content:  msg.Content,
		Thinking: msg.ReasoningContent,
	}
	for _, call := range msg.ToolCalls {
		args := map[string]any{}
		if strings.TrimSpace(call.Function.Arguments) != "" {
			if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
				// Keep the raw text so the tool reports the problem to the model
				args = map[string]any{"_raw_arguments": call.Function.Arguments}
			}
		}
		out.ToolRequests = append(out.ToolRequests, ToolRequest{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: args,
		})
	}
	return out, nil
}

func toOpenAIMessages(req Request) ([]openAIMessage, error) {
	messages := make([]openAIMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openAIMessage{Role: string(RoleSystem), Content: req.System})
	}

	for _, msg := range req.Messages {
		m := openAIMessage{
			Role:       string(msg.Role),
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}
		if msg.Role == RoleTool {
			m.Name = msg.ToolName
		}
		for _, tr := range msg.ToolRequests {
			args, err := json.Marshal(tr.Arguments)
			if err != nil {
				return nil, fmt.Errorf("marshaling arguments for %s: %w", tr.Name, err)
			}
			m.ToolCalls = append(m.ToolCalls, openAIToolCall{
				ID:       tr.ID,
				Type:     "function",
				Function: openAIFunctionCall{Name: tr.Name, Arguments: string(args)},
			})
		}
		messages = append(messages, m)
	}
	return messages, nil
}
