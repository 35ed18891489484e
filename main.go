package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"

	"github.com/recrsn/localagent/internal/agent"
	"github.com/recrsn/localagent/internal/chat"
	"github.com/recrsn/localagent/internal/config"
	"github.com/recrsn/localagent/internal/llm"
	"github.com/recrsn/localagent/internal/logging"
	"github.com/recrsn/localagent/internal/platform"
	"github.com/recrsn/localagent/internal/tools"
	"github.com/recrsn/localagent/internal/ui"
)

const appName = "localagent"

const usage = `Usage: localagent [flags] [command]

Commands:
  chat <message>   send one message and print the answer
  interactive      start an interactive session (default)
  info             show the resolved configuration
  tools            list the available tools

Flags:
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds everything built from the configuration
type app struct {
	cfg      config.Config
	dirs     *platform.Directories
	logger   *slog.Logger
	gateway  llm.Gateway
	registry *tools.Registry
}

func run(args []string) error {
	flags := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	config.RegisterFlags(flags)
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dirs, err := platform.GetDirectories(appName)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.Log.File, dirs.LogsDir(), cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	a, err := newApp(cfg, dirs, logger)
	if err != nil {
		return err
	}

	command, rest := "interactive", []string(nil)
	if flags.NArg() > 0 {
		command, rest = flags.Arg(0), flags.Args()[1:]
	}
	logger.Info("starting", "command", command, "provider", cfg.Provider.Type, "model", cfg.Models.Orchestrator)

	ctx := context.Background()
	switch command {
	case "chat":
		if len(rest) == 0 {
			return errors.New("chat needs a message")
		}
		return a.chat(ctx, strings.Join(rest, " "), os.Stdout)
	case "interactive":
		return a.interactive(ctx)
	case "info":
		a.printInfo(os.Stdout)
		return nil
	case "tools":
		for _, def := range a.registry.List() {
			fmt.Printf("%-18s %s\n", def.Name, def.Description)
		}
		return nil
	default:
		flags.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func newApp(cfg config.Config, dirs *platform.Directories, logger *slog.Logger) (*app, error) {
	apiLogger, err := llm.NewAPILogger(dirs.LogsDir())
	if err != nil {
		return nil, err
	}

	opts := llm.ClientOptions{
		BaseURL:   cfg.Provider.Endpoint,
		APIKey:    cfg.Provider.APIKey,
		Timeout:   cfg.Provider.Timeout,
		Retry:     llm.RetryPolicy{MaxRetries: cfg.Provider.MaxRetries},
		APILogger: apiLogger,
		Logger:    logger,
	}

	var gateway llm.Gateway
	switch cfg.Provider.Type {
	case config.ProviderOpenAI:
		gateway = llm.NewOpenAIClient(opts)
	default:
		gateway = llm.NewOllamaClient(opts)
	}

	registry := tools.NewRegistry()
	err = tools.RegisterBuiltins(registry, tools.Dependencies{
		Specialist: tools.Specialist{
			Gateway: gateway,
			Model:   cfg.ModelFor(config.UsageCoder),
		},
		WebSearch: tools.WebSearchConfig{
			Endpoint:   cfg.Tools.WebSearch.Endpoint,
			Timeout:    cfg.Tools.WebSearch.Timeout,
			MaxResults: cfg.Tools.WebSearch.MaxResults,
		},
		Logger: logging.Component(logger, "tools"),
	})
	if err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}

	return &app{
		cfg:      cfg,
		dirs:     dirs,
		logger:   logger,
		gateway:  gateway,
		registry: registry,
	}, nil
}

func (a *app) agentOptions() (agent.Options, error) {
	prompt := a.cfg.Agent.SystemPrompt
	if prompt == "" {
		var err error
		if prompt, err = chat.SystemPrompt(a.registry); err != nil {
			return agent.Options{}, fmt.Errorf("rendering system prompt: %w", err)
		}
	}

	return agent.Options{
		Orchestrator:  a.cfg.ModelFor(config.UsageOrchestrator),
		Coder:         a.cfg.ModelFor(config.UsageCoder),
		MaxIterations: a.cfg.Agent.MaxIterations,
		SystemPrompt:  prompt,
		Logger:        a.logger,
	}, nil
}

// chat runs a single message without the interactive UI
func (a *app) chat(ctx context.Context, message string, w io.Writer) error {
	opts, err := a.agentOptions()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	text, err := agent.New(a.gateway, a.registry, opts).Chat(ctx, message)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

func (a *app) interactive(ctx context.Context) error {
	opts, err := a.agentOptions()
	if err != nil {
		return err
	}

	userInterface, err := ui.NewUI(a.cfg.UI, ui.Options{HistoryFile: a.dirs.HistoryFile()})
	if err != nil {
		return fmt.Errorf("creating UI: %w", err)
	}
	defer userInterface.Close()

	return chat.NewSession(userInterface, a.gateway, a.registry, opts).Start(ctx)
}

func (a *app) printInfo(w io.Writer) {
	fmt.Fprintf(w, "Provider:        %s (%s)\n", a.cfg.Provider.Type, a.cfg.Provider.Endpoint)
	fmt.Fprintf(w, "Orchestrator:    %s\n", a.cfg.Models.Orchestrator)
	fmt.Fprintf(w, "Coder:           %s\n", a.cfg.Models.Coder)
	fmt.Fprintf(w, "Max iterations:  %d\n", a.cfg.Agent.MaxIterations)
	fmt.Fprintf(w, "Tools:           %s\n", strings.Join(a.registry.Names(), ", "))
	fmt.Fprintf(w, "Logs:            %s\n", a.dirs.LogsDir())
}
