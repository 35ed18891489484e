// Package chat implements the interactive session on top of the agent loop.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/recrsn/localagent/internal/agent"
	"github.com/recrsn/localagent/internal/llm"
	"github.com/recrsn/localagent/internal/platform"
	"github.com/recrsn/localagent/internal/prompts"
	"github.com/recrsn/localagent/internal/tools"
	"github.com/recrsn/localagent/internal/ui"
)

const thinking = "Thinking"

// Session connects a user interface to one agent
type Session struct {
	ui       ui.UserInterface
	agent    *agent.Agent
	registry *tools.Registry
	gateway  llm.Gateway
	model    llm.ModelConfig
	logger   *slog.Logger
}

// NewSession creates a session. The agent is built here so that its hooks
// report to userInterface; any hooks in opts are replaced.
func NewSession(userInterface ui.UserInterface, gateway llm.Gateway, registry *tools.Registry, opts agent.Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		ui:       userInterface,
		registry: registry,
		gateway:  gateway,
		model:    opts.Orchestrator,
	}
	opts.Hooks = s.hooks()
	s.agent = agent.New(gateway, registry, opts)
	s.logger = logger.With("component", "chat", "session", s.agent.ID())
	return s
}

// Agent returns the agent behind the session
func (s *Session) Agent() *agent.Agent {
	return s.agent
}

// Start runs the read-eval-print loop until the user exits or ctx is done
func (s *Session) Start(ctx context.Context) error {
	info := s.agent.Info()
	s.ui.ShowHeader("localagent",
		fmt.Sprintf("Orchestrator: %s", info.OrchestratorModel),
		fmt.Sprintf("Coder: %s", info.CoderModel),
	)
	s.ui.PrintSuccess("Type a message, or /help for commands.")
	s.ui.OnInterrupt(func() { s.agent.Interrupt() })

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		input := strings.TrimSpace(s.ui.AskInput("> "))
		switch {
		case input == "":
			continue
		case input == ui.InputExit:
			s.ui.PrintSuccess("Goodbye!")
			return nil
		case input == ui.InputInterrupt:
			s.ui.PrintInfo("Use /exit or Ctrl+D to quit")
			continue
		case strings.HasPrefix(input, "/"):
			if s.handleCommand(ctx, input) {
				s.ui.PrintSuccess("Goodbye!")
				return nil
			}
			continue
		}

		s.ui.PrintUserMessage(input)
		s.turn(ctx, func(ctx context.Context) agent.Outcome {
			return s.agent.Run(ctx, input)
		})
	}
}

// handleCommand runs a slash command and reports whether the session should end
func (s *Session) handleCommand(ctx context.Context, input string) bool {
	command, _, _ := strings.Cut(input, " ")
	s.logger.Debug("command", "command", command)

	switch command {
	case "/help":
		s.ui.PrintHelp()
	case "/exit", "/quit":
		return true
	case "/reset":
		s.agent.Reset()
		s.ui.PrintSuccess("Conversation history cleared")
	case "/history":
		s.ui.PrintHistory(s.agent.History())
	case "/info":
		s.ui.PrintSessionInfo(s.agent.Info())
	case "/tools":
		s.ui.PrintTools(s.registry.List())
	case "/retry":
		s.turn(ctx, s.agent.Resume)
	case "/summary":
		s.summarize(ctx)
	case "/clear":
		s.ui.ClearScreen()
	default:
		s.ui.PrintError(fmt.Sprintf("Unknown command: %s (type /help for the list)", command))
	}
	return false
}

// turn runs one agent turn with Ctrl+C bound to cancellation
func (s *Session) turn(ctx context.Context, run func(context.Context) agent.Outcome) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	start := time.Now()
	s.ui.StartSpinner(thinking)
	outcome := run(ctx)
	s.logger.Info("turn finished",
		"outcome", outcome.Kind.String(),
		"steps", outcome.Steps,
		"duration", time.Since(start),
	)
	s.render(outcome)
}

func (s *Session) render(outcome agent.Outcome) {
	switch outcome.Kind {
	case agent.OutcomeAnswer:
		s.ui.StopSpinner("Done")
		if outcome.Degraded {
			s.ui.PrintWarning("The model gave no answer text; showing its reasoning instead")
		}
		s.ui.PrintAssistantMessage(outcome.Text)
	case agent.OutcomeExhausted:
		s.ui.StopSpinnerFail("Stopped")
		s.ui.PrintWarning(outcome.Message())
		s.ui.PrintInfo("Use /retry to let the model continue")
	case agent.OutcomeEmpty:
		s.ui.StopSpinnerFail("No answer")
		s.ui.PrintWarning(outcome.Message())
	case agent.OutcomeFailed:
		switch {
		case errors.Is(outcome.Err, agent.ErrNothingToResume):
			s.ui.StopSpinner("")
			s.ui.PrintWarning("Nothing to retry")
		case errors.Is(outcome.Err, context.Canceled):
			s.ui.StopSpinnerFail("Interrupted")
			s.ui.PrintInfo("Use /retry to resume")
		default:
			s.ui.StopSpinnerFail("Request failed")
			s.ui.PrintError(outcome.Err.Error())
			s.ui.PrintInfo("Use /retry to try again")
		}
	}
}

func (s *Session) summarize(ctx context.Context) {
	s.ui.StartSpinner("Generating conversation summary")
	summary, err := Summarize(ctx, s.gateway, s.model, s.agent.History())
	if err != nil {
		s.ui.StopSpinnerFail("Failed to generate summary")
		s.ui.PrintError(err.Error())
		return
	}
	if summary == "" {
		s.ui.StopSpinner("")
		s.ui.PrintInfo("Nothing to summarize yet")
		return
	}
	s.ui.StopSpinner("Summary generated")
	s.ui.PrintAssistantMessage(summary)
}

func (s *Session) hooks() agent.Hooks {
	return agent.Hooks{
		OnAssistantMessage: func(msg llm.Message) {
			// final answers are rendered from the outcome
			if len(msg.ToolRequests) > 0 && strings.TrimSpace(msg.Content) != "" {
				s.ui.PrintAssistantMessage(msg.Content)
			}
		},
		OnToolCall: func(req llm.ToolRequest, explanation tools.Explanation) {
			s.ui.PrintToolCall(req.Name, req.Arguments, explanation)
			s.ui.StartSpinner("Running " + req.Name)
		},
		OnToolResult: func(req llm.ToolRequest, result string) {
			s.ui.StopSpinner("")
			s.ui.PrintToolResult(req.Name, result)
			s.ui.StartSpinner(thinking)
		},
	}
}

// SystemPrompt renders the built-in system prompt for registry in the
// current working directory
func SystemPrompt(registry *tools.Registry) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	return prompts.RenderSystemPrompt(prompts.PromptData{
		Tools:            registry.List(),
		WorkingDirectory: dir,
		Platform:         platform.GetPlatformInfo().String(),
		Date:             time.Now().Format("2006-01-02"),
		Instructions:     prompts.AgentInstructions(dir),
	})
}
