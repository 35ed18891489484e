// Package agent runs the tool-augmented conversation loop for one session.
package agent

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/recrsn/localagent/internal/llm"
	"github.com/recrsn/localagent/internal/tools"
	"github.com/recrsn/localagent/internal/util"
)

// DefaultMaxIterations is the tool-round ceiling used when none is configured
const DefaultMaxIterations = 10

// ErrNothingToResume is returned by Resume when the transcript does not end
// in a state the model can continue from
var ErrNothingToResume = errors.New("nothing to resume")

// Hooks receive loop events for display. All are optional and are called on
// the goroutine running the turn.
type Hooks struct {
	OnAssistantMessage func(msg llm.Message)
	// OnToolCall fires before a tool runs. explanation is zero when the tool
	// cannot explain itself.
	OnToolCall   func(req llm.ToolRequest, explanation tools.Explanation)
	OnToolResult func(req llm.ToolRequest, result string)
}

// Options configures an Agent
type Options struct {
	Orchestrator llm.ModelConfig
	// Coder is reported by Info; delegation itself is wired into the tools
	Coder         llm.ModelConfig
	MaxIterations int
	SystemPrompt  string
	Logger        *slog.Logger
	Hooks         Hooks
}

// Info describes a session
type Info struct {
	SessionID         string
	OrchestratorModel string
	CoderModel        string
	Tools             []string
	HistoryLength     int
	MaxIterations     int
}

// Agent is one conversation session. Turns are strictly sequential; the
// registry may be shared with other sessions.
type Agent struct {
	id         string
	gateway    llm.Gateway
	registry   *tools.Registry
	dispatcher *tools.Dispatcher
	opts       Options
	logger     *slog.Logger

	mu   sync.Mutex
	conv Conversation

	cancelMu sync.Mutex
	cancel   context.CancelFunc
}

// New creates a session over gateway and registry
func New(gateway llm.Gateway, registry *tools.Registry, opts Options) *Agent {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.NewString()
	logger = logger.With("component", "agent", "session", id)

	return &Agent{
		id:         id,
		gateway:    gateway,
		registry:   registry,
		dispatcher: tools.NewDispatcher(registry, logger),
		opts:       opts,
		logger:     logger,
	}
}

// ID returns the session identifier
func (a *Agent) ID() string {
	return a.id
}

// Chat runs a turn and renders its outcome as text. Only a gateway failure
// is returned as an error.
func (a *Agent) Chat(ctx context.Context, message string) (string, error) {
	outcome := a.Run(ctx, message)
	if outcome.Kind == OutcomeFailed {
		return "", outcome.Err
	}
	return outcome.Message(), nil
}

// Run appends message to the conversation and drives the loop until the
// model answers, the ceiling is hit or the gateway fails.
func (a *Agent) Run(ctx context.Context, message string) Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.logger.Info("chat request", "message", util.Truncate(message, 50))
	a.conv.Append(llm.UserMessage(message))
	return a.loop(ctx)
}

// Resume continues from the current conversation without adding a user
// message. It is meant for retrying after a failed or exhausted turn.
func (a *Agent) Resume(ctx context.Context) Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	last, ok := a.conv.Last()
	if !ok || last.Role == llm.RoleAssistant {
		return Outcome{Kind: OutcomeFailed, Err: ErrNothingToResume}
	}

	a.logger.Info("resuming turn", "history", a.conv.Len())
	return a.loop(ctx)
}

// Interrupt cancels the turn in progress, if any
func (a *Agent) Interrupt() bool {
	a.cancelMu.Lock()
	defer a.cancelMu.Unlock()

	if a.cancel == nil {
		return false
	}
	a.cancel()
	return true
}

// Reset clears the conversation
func (a *Agent) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.conv.Reset()
	a.logger.Info("conversation history reset")
}

// History returns a copy of the conversation
func (a *Agent) History() []llm.Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.conv.Messages()
}

// Info reports the session settings and state
func (a *Agent) Info() Info {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Info{
		SessionID:         a.id,
		OrchestratorModel: a.opts.Orchestrator.Model,
		CoderModel:        a.opts.Coder.Model,
		Tools:             a.registry.Names(),
		HistoryLength:     a.conv.Len(),
		MaxIterations:     a.opts.MaxIterations,
	}
}

func (a *Agent) loop(ctx context.Context) Outcome {
	ctx, cancel := context.WithCancel(ctx)
	a.setCancel(cancel)
	defer func() {
		a.setCancel(nil)
		cancel()
	}()

	catalog := a.registry.Catalog()
	steps := 0

	for {
		if err := ctx.Err(); err != nil {
			a.logger.Info("turn interrupted", "steps", steps)
			return Outcome{Kind: OutcomeFailed, Err: err, Steps: steps}
		}

		start := time.Now()
		resp, err := a.gateway.Complete(ctx, llm.Request{
			Model:       a.opts.Orchestrator.Model,
			System:      a.opts.SystemPrompt,
			Messages:    a.conv.Messages(),
			Tools:       catalog,
			Temperature: a.opts.Orchestrator.Temperature,
		})
		if err != nil {
			a.logger.Error("orchestrator call failed", "error", err, "steps", steps)
			return Outcome{Kind: OutcomeFailed, Err: err, Steps: steps}
		}
		a.logger.Debug("orchestrator replied",
			"duration", time.Since(start),
			"tool_requests", len(resp.ToolRequests),
		)

		msg := llm.AssistantMessage(resp.Content, resp.Thinking, resp.ToolRequests)
		a.conv.Append(msg)
		if a.opts.Hooks.OnAssistantMessage != nil {
			a.opts.Hooks.OnAssistantMessage(msg)
		}

		if len(resp.ToolRequests) == 0 {
			return a.finish(resp, steps)
		}

		steps++
		if steps > a.opts.MaxIterations {
			a.logger.Warn("iteration ceiling reached", "max_iterations", a.opts.MaxIterations)
			for _, req := range resp.ToolRequests {
				a.conv.Append(llm.ToolResultMessage(req, notExecuted))
			}
			return Outcome{Kind: OutcomeExhausted, Steps: a.opts.MaxIterations}
		}

		a.logger.Info("orchestrator requested tools", "count", len(resp.ToolRequests), "step", steps)
		for _, req := range resp.ToolRequests {
			a.execute(ctx, req)
		}
	}
}

func (a *Agent) finish(resp llm.Response, steps int) Outcome {
	switch {
	case strings.TrimSpace(resp.Content) != "":
		return Outcome{Kind: OutcomeAnswer, Text: resp.Content, Steps: steps}
	case strings.TrimSpace(resp.Thinking) != "":
		a.logger.Warn("empty content, answering with model reasoning")
		return Outcome{Kind: OutcomeAnswer, Text: resp.Thinking, Degraded: true, Steps: steps}
	default:
		a.logger.Warn("model returned neither content nor tool requests")
		return Outcome{Kind: OutcomeEmpty, Steps: steps}
	}
}

func (a *Agent) execute(ctx context.Context, req llm.ToolRequest) {
	if a.opts.Hooks.OnToolCall != nil {
		explanation, _ := a.dispatcher.Explain(req.Name, req.Arguments)
		a.opts.Hooks.OnToolCall(req, explanation)
	}

	result := a.dispatcher.Invoke(ctx, req.Name, req.Arguments)
	a.conv.Append(llm.ToolResultMessage(req, result))

	if a.opts.Hooks.OnToolResult != nil {
		a.opts.Hooks.OnToolResult(req, result)
	}
}

func (a *Agent) setCancel(cancel context.CancelFunc) {
	a.cancelMu.Lock()
	a.cancel = cancel
	a.cancelMu.Unlock()
}
