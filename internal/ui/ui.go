package ui

import (
	"github.com/recrsn/localagent/internal/agent"
	"github.com/recrsn/localagent/internal/config"
	"github.com/recrsn/localagent/internal/llm"
	"github.com/recrsn/localagent/internal/tools"
)

// Input sentinels returned by AskInput
const (
	InputExit      = "/exit"
	InputInterrupt = "/interrupt"
)

// UserInterface is the interface for any UI implementation
type UserInterface interface {
	ShowHeader(title string, details ...string)
	StartSpinner(text string)
	StopSpinner(text string)
	StopSpinnerFail(text string)
	PrintUserMessage(message string)
	PrintAssistantMessage(message string)
	PrintToolCall(name string, args map[string]any, explanation tools.Explanation)
	PrintToolResult(name string, result string)
	PrintHelp()
	PrintHistory(messages []llm.Message)
	PrintSessionInfo(info agent.Info)
	PrintTools(defs []tools.Definition)
	PrintError(message string)
	PrintWarning(message string)
	PrintSuccess(message string)
	PrintInfo(message string)
	// AskInput blocks for one line of input. It returns InputExit on end of
	// input and InputInterrupt on Ctrl+C.
	AskInput(prompt string) string
	ClearScreen()
	// OnInterrupt registers fn to be called when the user presses Ctrl+C
	// while no input is being read
	OnInterrupt(fn func())
	Close() error
}

// Options carries what the UIs need besides the config section
type Options struct {
	HistoryFile string
}

// NewUI creates a new UI instance based on config
func NewUI(cfg config.UIConfig, opts Options) (UserInterface, error) {
	if cfg.UseBubbleTea {
		return NewBubbleTeaUI(cfg)
	}
	return NewTraditionalUI(cfg, opts)
}
