package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/recrsn/localagent/internal/llm"
)

const (
	summaryWindow      = 20
	summaryTimeout     = 60 * time.Second
	summaryTemperature = 0.3
)

const summaryInstructions = "Create a concise summary of the conversation below. " +
	"Focus only on the key points, technical details and decisions made. " +
	"Keep the summary under 300 words and ignore pleasantries.\n"

// Summarize asks the model for a short summary of the most recent messages.
// Tool output is left out. The conversation itself is not modified.
func Summarize(ctx context.Context, gateway llm.Gateway, model llm.ModelConfig, history []llm.Message) (string, error) {
	var recent []llm.Message
	for _, msg := range history {
		if msg.Role == llm.RoleTool || strings.TrimSpace(msg.Content) == "" {
			continue
		}
		recent = append(recent, msg)
	}
	recent = recent[max(0, len(recent)-summaryWindow):]

	var transcript strings.Builder
	for _, msg := range recent {
		fmt.Fprintf(&transcript, "\n%s: %s\n", msg.Role, strings.TrimSpace(msg.Content))
	}
	if transcript.Len() == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	model.Temperature = summaryTemperature
	summary, err := llm.Delegate(ctx, gateway, model, summaryInstructions+transcript.String())
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	return strings.TrimSpace(summary), nil
}
