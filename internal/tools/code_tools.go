package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/recrsn/localagent/internal/llm"
	"github.com/recrsn/localagent/internal/schema"
)

type codeAssistantArgs struct {
	Task     string `json:"task"`
	Language string `json:"language"`
	Context  string `json:"context"`
}

// Specialist sends self-contained coding tasks to the coder model. It never
// sees the orchestrator's transcript or the tool catalog.
type Specialist struct {
	Gateway llm.Gateway
	Model   llm.ModelConfig
}

// Ask delegates prompt to the coder model and returns its reply verbatim
func (s Specialist) Ask(ctx context.Context, prompt string) (string, error) {
	if s.Gateway == nil {
		return "", fmt.Errorf("no coder model configured")
	}
	out, err := llm.Delegate(ctx, s.Gateway, s.Model, prompt)
	if err != nil {
		return "", fmt.Errorf("code assistant: %w", err)
	}
	return out, nil
}

func codeTools(deps Dependencies) []Tool {
	return []Tool{
		NewCodeAssistantTool(deps.Specialist),
		NewDelegateToCoderTool(deps.Specialist),
	}
}

// NewCodeAssistantTool creates the code_assistant tool
func NewCodeAssistantTool(specialist Specialist) Tool {
	return &Func{
		Def: Definition{
			Name: "code_assistant",
			Description: "Delegate coding tasks to a specialized coding model. " +
				"Use this for writing, debugging, refactoring, or explaining code.",
			Parameters: schema.Object(map[string]schema.Property{
				"task": {
					Type:        "string",
					Description: "Clear description of the coding task",
				},
				"language": {
					Type:        "string",
					Description: "Programming language (e.g., python, javascript, java)",
					Default:     "python",
				},
				"context": {
					Type:        "string",
					Description: "Additional context or requirements for the code",
					Default:     "",
				},
			}, "task"),
		},
		Preview: func(input map[string]any) Explanation {
			task, _ := input["task"].(string)
			return Explanation{
				Title:   fmt.Sprintf("CodeAssistant(%s)", specialist.Model.Model),
				Context: task,
			}
		},
		Handler: func(ctx context.Context, input map[string]any) (string, error) {
			var args codeAssistantArgs
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}
			if args.Language == "" {
				args.Language = "python"
			}
			return specialist.Ask(ctx, coderPrompt(args.Task, args.Language, args.Context))
		},
	}
}

// NewDelegateToCoderTool creates the delegate_to_coder tool, a language
// agnostic variant of code_assistant.
func NewDelegateToCoderTool(specialist Specialist) Tool {
	return &Func{
		Def: Definition{
			Name:        "delegate_to_coder",
			Description: "Hand a self-contained programming task to the coding model and return its answer.",
			Parameters: schema.Object(map[string]schema.Property{
				"task": {
					Type:        "string",
					Description: "Clear description of the coding task",
				},
				"context": {
					Type:        "string",
					Description: "Relevant code or requirements",
					Default:     "",
				},
			}, "task"),
		},
		Preview: func(input map[string]any) Explanation {
			task, _ := input["task"].(string)
			return Explanation{
				Title:   fmt.Sprintf("DelegateToCoder(%s)", specialist.Model.Model),
				Context: task,
			}
		},
		Handler: func(ctx context.Context, input map[string]any) (string, error) {
			var args codeAssistantArgs
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}
			return specialist.Ask(ctx, coderPrompt(args.Task, "", args.Context))
		},
	}
}

func coderPrompt(task, language, context string) string {
	var b strings.Builder
	if language != "" {
		fmt.Fprintf(&b, "Language: %s\n", language)
	}
	if context != "" {
		fmt.Fprintf(&b, "Context: %s\n", context)
	}
	fmt.Fprintf(&b, "\nTask: %s\n\nProvide clear, well-commented code:", task)
	return b.String()
}
