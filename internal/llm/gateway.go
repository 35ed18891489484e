package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrGatewayUnavailable marks failures to reach or understand the model backend
var ErrGatewayUnavailable = errors.New("model gateway unavailable")

// APIError is returned when the backend answers with a non-success status
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// ModelConfig selects a model and its sampling settings
type ModelConfig struct {
	Model       string
	Temperature float64
}

// Request is one completion request.
//
// System is prepended on the wire only; it is never part of Messages. A nil
// Tools slice asks for a plain completion.
type Request struct {
	Model       string
	System      string
	Messages    []Message
	Tools       []ToolDefinition
	Temperature float64
}

// Response is the model's reply. An empty ToolRequests means the reply is
// meant as a final answer.
type Response struct {
	Content      string
	Thinking     string
	ToolRequests []ToolRequest
}

// Gateway sends transcripts to a model backend
type Gateway interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// Delegate submits a single prompt to a model without tools or transcript and
// returns the content of its reply.
func Delegate(ctx context.Context, gateway Gateway, model ModelConfig, prompt string) (string, error) {
	resp, err := gateway.Complete(ctx, Request{
		Model:       model.Model,
		Messages:    []Message{UserMessage(prompt)},
		Temperature: model.Temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// unavailable wraps err so that errors.Is(err, ErrGatewayUnavailable) holds
func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %w", ErrGatewayUnavailable, fmt.Errorf(format, args...))
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
