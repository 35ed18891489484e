package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Provider: ProviderConfig{
			Type:     ProviderOllama,
			Endpoint: "http://localhost:11434",
			Timeout:  120 * time.Second,
		},
		Models: ModelsConfig{
			Orchestrator:            "gpt-oss:120b-cloud",
			Coder:                   "qwen3-coder:480b-cloud",
			OrchestratorTemperature: 0.6,
			CoderTemperature:        0.2,
		},
		Agent: AgentConfig{
			MaxIterations: 10,
		},
		Tools: ToolsConfig{
			WebSearch: WebSearchConfig{
				Endpoint:   "https://html.duckduckgo.com/html/",
				Timeout:    15 * time.Second,
				MaxResults: 5,
			},
		},
		UI: UIConfig{
			ColorEnabled:   true,
			ShowSpinner:    true,
			RenderMarkdown: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("provider.type", d.Provider.Type)
	v.SetDefault("provider.endpoint", d.Provider.Endpoint)
	v.SetDefault("provider.api_key", d.Provider.APIKey)
	v.SetDefault("provider.timeout", d.Provider.Timeout)
	v.SetDefault("provider.max_retries", d.Provider.MaxRetries)

	v.SetDefault("models.orchestrator", d.Models.Orchestrator)
	v.SetDefault("models.coder", d.Models.Coder)
	v.SetDefault("models.orchestrator_temperature", d.Models.OrchestratorTemperature)
	v.SetDefault("models.coder_temperature", d.Models.CoderTemperature)

	v.SetDefault("agent.max_iterations", d.Agent.MaxIterations)
	v.SetDefault("agent.system_prompt", d.Agent.SystemPrompt)

	v.SetDefault("tools.web_search.endpoint", d.Tools.WebSearch.Endpoint)
	v.SetDefault("tools.web_search.timeout", d.Tools.WebSearch.Timeout)
	v.SetDefault("tools.web_search.max_results", d.Tools.WebSearch.MaxResults)

	v.SetDefault("ui.color_enabled", d.UI.ColorEnabled)
	v.SetDefault("ui.show_spinner", d.UI.ShowSpinner)
	v.SetDefault("ui.use_bubble_tea", d.UI.UseBubbleTea)
	v.SetDefault("ui.render_markdown", d.UI.RenderMarkdown)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}
