package tools

import (
	"log/slog"
)

// Dependencies carries what the built-in tools need from the outside world
type Dependencies struct {
	Specialist Specialist
	WebSearch  WebSearchConfig
	Logger     *slog.Logger
}

// builtins lists the tool groups in registration order. The catalog the
// model sees follows this order.
var builtins = []func(Dependencies) []Tool{
	fileTools,
	codeTools,
	webTools,
	outlineTools,
}

// RegisterBuiltins registers every built-in tool into r
func RegisterBuiltins(r *Registry, deps Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for _, group := range builtins {
		for _, tool := range group(deps) {
			if err := r.Register(tool); err != nil {
				return err
			}
			logger.Debug("registered tool", "tool", tool.Definition().Name)
		}
	}
	return nil
}
