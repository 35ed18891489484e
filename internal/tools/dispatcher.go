package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Dispatcher resolves tool requests against a registry and turns every
// outcome, including failures, into the text the model will see.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over registry
func NewDispatcher(registry *Registry, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		registry: registry,
		logger:   logger.With("component", "dispatcher"),
	}
}

// Invoke runs the named tool. It never fails: an unknown name yields
// "Unknown tool: <name>" and a failing tool yields "Error: <message>".
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]any) string {
	tool, err := d.registry.Lookup(name)
	if err != nil {
		d.logger.Warn("tool not found", "tool", name)
		return fmt.Sprintf("Unknown tool: %s", name)
	}

	start := time.Now()
	result, err := d.run(ctx, tool, args)
	if err != nil {
		d.logger.Error("tool failed", "tool", name, "error", err, "duration", time.Since(start))
		return "Error: " + err.Error()
	}

	d.logger.Info("tool executed", "tool", name, "duration", time.Since(start), "bytes", len(result))
	return result
}

// Explain previews an invocation for display. ok is false when the tool is
// unknown or cannot explain itself.
func (d *Dispatcher) Explain(name string, args map[string]any) (Explanation, bool) {
	tool, err := d.registry.Lookup(name)
	if err != nil {
		return Explanation{}, false
	}
	explainer, ok := tool.(Explainer)
	if !ok {
		return Explanation{}, false
	}
	return explainer.Explain(args), true
}

func (d *Dispatcher) run(ctx context.Context, tool Tool, args map[string]any) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	// requests left over from an interrupted turn are answered without running
	if ctx.Err() != nil {
		return "", fmt.Errorf("interrupted")
	}

	if args == nil {
		args = map[string]any{}
	}
	params := tool.Definition().Parameters
	if err := params.Validate(args); err != nil {
		return "", err
	}

	result, err = tool.Invoke(ctx, params.WithDefaults(args))
	if err != nil && errors.Is(err, context.Canceled) {
		return "", fmt.Errorf("interrupted")
	}
	return result, err
}
