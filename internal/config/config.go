package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Provider types
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config holds the application configuration
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Models   ModelsConfig   `mapstructure:"models"`
	Agent    AgentConfig    `mapstructure:"agent"`
	Tools    ToolsConfig    `mapstructure:"tools"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// ProviderConfig selects and addresses the model backend
type ProviderConfig struct {
	Type       string        `mapstructure:"type"`
	Endpoint   string        `mapstructure:"endpoint"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// ModelsConfig names the orchestrator and the coding specialist
type ModelsConfig struct {
	Orchestrator            string  `mapstructure:"orchestrator"`
	Coder                   string  `mapstructure:"coder"`
	OrchestratorTemperature float64 `mapstructure:"orchestrator_temperature"`
	CoderTemperature        float64 `mapstructure:"coder_temperature"`
}

// AgentConfig holds loop settings
type AgentConfig struct {
	MaxIterations int `mapstructure:"max_iterations"`
	// SystemPrompt replaces the built-in prompt when set
	SystemPrompt string `mapstructure:"system_prompt"`
}

// ToolsConfig holds per-tool settings
type ToolsConfig struct {
	WebSearch WebSearchConfig `mapstructure:"web_search"`
}

// WebSearchConfig configures the web_search tool
type WebSearchConfig struct {
	Endpoint   string        `mapstructure:"endpoint"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxResults int           `mapstructure:"max_results"`
}

// UIConfig holds UI-specific configuration
type UIConfig struct {
	ColorEnabled   bool `mapstructure:"color_enabled"`
	ShowSpinner    bool `mapstructure:"show_spinner"`
	UseBubbleTea   bool `mapstructure:"use_bubble_tea"`
	RenderMarkdown bool `mapstructure:"render_markdown"`
}

// LogConfig controls the diagnostic log
type LogConfig struct {
	Level string `mapstructure:"level"`
	// File defaults to localagent.log in the data directory
	File string `mapstructure:"file"`
}

// flagKeys maps command-line flags to configuration keys
var flagKeys = map[string]string{
	"provider":       "provider.type",
	"endpoint":       "provider.endpoint",
	"api-key":        "provider.api_key",
	"model":          "models.orchestrator",
	"coder-model":    "models.coder",
	"max-iterations": "agent.max_iterations",
	"tui":            "ui.use_bubble_tea",
	"log-level":      "log.level",
}

// RegisterFlags defines the configuration flags on fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "config file (default is ./.localagent.yaml or ~/.localagent.yaml)")
	fs.String("provider", "", "model provider: ollama or openai")
	fs.String("endpoint", "", "provider base URL")
	fs.String("api-key", "", "API key for the provider")
	fs.StringP("model", "m", "", "orchestrator model")
	fs.String("coder-model", "", "coding specialist model")
	fs.Int("max-iterations", 0, "maximum tool rounds per message")
	fs.Bool("tui", false, "use the full-screen terminal UI")
	fs.Bool("no-color", false, "disable colored output")
	fs.String("log-level", "", "log level: debug, info, warn, error")
}

// Load reads configuration from defaults, the config file, the environment
// (LOCALAGENT_ prefix) and flags, in increasing order of precedence. flags
// may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("localagent")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, flags); err != nil {
		return Config{}, err
	}

	if path := configFlag(flags); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".localagent")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	if flags != nil {
		if noColor, err := flags.GetBool("no-color"); err == nil && noColor {
			cfg.UI.ColorEnabled = false
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

func configFlag(flags *pflag.FlagSet) string {
	if flags == nil {
		return ""
	}
	path, err := flags.GetString("config")
	if err != nil {
		return ""
	}
	return path
}

// Validate reports configuration values the application cannot run with
func (c Config) Validate() error {
	switch c.Provider.Type {
	case ProviderOllama, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider type %q (want %s or %s)", c.Provider.Type, ProviderOllama, ProviderOpenAI)
	}
	if c.Provider.Endpoint == "" {
		return fmt.Errorf("provider endpoint is empty")
	}
	if c.Models.Orchestrator == "" {
		return fmt.Errorf("orchestrator model is empty")
	}
	if c.Models.Coder == "" {
		return fmt.Errorf("coder model is empty")
	}
	if c.Agent.MaxIterations <= 0 {
		return fmt.Errorf("agent.max_iterations must be positive, got %d", c.Agent.MaxIterations)
	}
	if c.Provider.MaxRetries < 0 {
		return fmt.Errorf("provider.max_retries must not be negative")
	}
	return nil
}
