package config

import (
	"github.com/recrsn/localagent/internal/llm"
)

// Model usages
const (
	UsageOrchestrator = "orchestrator"
	UsageCoder        = "coder"
)

// ModelFor returns the model configuration for the given usage. Unknown
// usages get the orchestrator.
func (c Config) ModelFor(usage string) llm.ModelConfig {
	switch usage {
	case UsageCoder:
		return llm.ModelConfig{
			Model:       c.Models.Coder,
			Temperature: c.Models.CoderTemperature,
		}
	default:
		return llm.ModelConfig{
			Model:       c.Models.Orchestrator,
			Temperature: c.Models.OrchestratorTemperature,
		}
	}
}
