package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	md "github.com/MichaelMure/go-term-markdown"
	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/recrsn/localagent/internal/agent"
	"github.com/recrsn/localagent/internal/config"
	"github.com/recrsn/localagent/internal/llm"
	"github.com/recrsn/localagent/internal/tools"
	"github.com/recrsn/localagent/internal/util"
)

const (
	markdownWidth   = 80
	maxArgLength    = 120
	maxResultLength = 800
)

// TraditionalUI handles the terminal user interface using pterm and readline
type TraditionalUI struct {
	config   config.UIConfig
	readline *readline.Instance
	spinner  *pterm.SpinnerPrinter
}

// NewTraditionalUI creates a new TraditionalUI instance
func NewTraditionalUI(cfg config.UIConfig, opts Options) (*TraditionalUI, error) {
	if !cfg.ColorEnabled {
		pterm.DisableColor()
	}

	instance, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     opts.HistoryFile,
		HistoryLimit:    1000,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    GetPathCompleter(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}

	return &TraditionalUI{
		config:   cfg,
		readline: instance,
	}, nil
}

// ShowHeader displays the application header
func (u *TraditionalUI) ShowHeader(title string, details ...string) {
	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgBlue)).WithMargin(10)
	header.Println(title)
	for _, line := range details {
		pterm.Info.Println(line)
	}
}

// StartSpinner starts a spinner with the given text
func (u *TraditionalUI) StartSpinner(text string) {
	if !u.config.ShowSpinner {
		fmt.Println(text + "...")
		return
	}
	u.spinner, _ = pterm.DefaultSpinner.Start(text)
}

// StopSpinner stops the spinner with success
func (u *TraditionalUI) StopSpinner(text string) {
	if u.spinner == nil {
		if text != "" {
			fmt.Println(text)
		}
		return
	}
	if text == "" {
		u.pauseSpinner()
		return
	}
	u.spinner.Success(text)
	u.spinner = nil
}

// StopSpinnerFail stops the spinner with failure
func (u *TraditionalUI) StopSpinnerFail(text string) {
	if u.spinner == nil {
		pterm.Error.Println(text)
		return
	}
	u.spinner.Fail(text)
	u.spinner = nil
}

// pauseSpinner stops an active spinner so other output does not tear it
func (u *TraditionalUI) pauseSpinner() {
	if u.spinner != nil {
		_ = u.spinner.Stop()
		u.spinner = nil
	}
}

// PrintUserMessage prints a user message
func (u *TraditionalUI) PrintUserMessage(message string) {
	pterm.FgLightGreen.Println("You: " + message)
}

func (u *TraditionalUI) renderMarkdown(text string) string {
	if !u.config.RenderMarkdown {
		return text
	}
	return string(md.Render(text, markdownWidth, 0))
}

// PrintAssistantMessage prints an assistant message with markdown formatting
func (u *TraditionalUI) PrintAssistantMessage(message string) {
	u.pauseSpinner()
	fmt.Print("$ ")
	fmt.Println(u.renderMarkdown(message))
}

// PrintToolCall prints information about a tool call before it runs
func (u *TraditionalUI) PrintToolCall(name string, args map[string]any, explanation tools.Explanation) {
	u.pauseSpinner()

	title := explanation.Title
	if title == "" {
		title = name
	}

	var content strings.Builder
	if explanation.Context != "" {
		content.WriteString(explanation.Context + "\n\n")
	}
	content.WriteString("Arguments:\n")
	content.WriteString(util.FormatArgs(args, maxArgLength))

	pterm.DefaultBox.WithTitle("Tool: " + title).Println(content.String())
}

// PrintToolResult prints the text a tool returned
func (u *TraditionalUI) PrintToolResult(name string, result string) {
	u.pauseSpinner()

	style := pterm.FgGray
	if strings.HasPrefix(result, "Error: ") || strings.HasPrefix(result, "Unknown tool: ") {
		style = pterm.FgRed
	}
	style.Println(fmt.Sprintf("%s → %s", name, util.Truncate(result, maxResultLength)))
}

// PrintHelp prints the help message
func (u *TraditionalUI) PrintHelp() {
	table := pterm.TableData{{"Command", "Description"}}
	for _, cmd := range Commands {
		table = append(table, []string{cmd.Name, cmd.Description})
	}
	table = append(table,
		[]string{"Ctrl+C", "Interrupt current operation"},
		[]string{"Ctrl+D", "Exit the application"},
	)

	_ = pterm.DefaultTable.WithHasHeader().WithData(table).Render()
}

// PrintHistory prints the conversation transcript
func (u *TraditionalUI) PrintHistory(messages []llm.Message) {
	if len(messages) == 0 {
		pterm.Info.Println("No conversation history")
		return
	}

	table := pterm.TableData{{"#", "Role", "Content"}}
	for i, msg := range messages {
		content := msg.Content
		switch {
		case len(msg.ToolRequests) > 0:
			names := make([]string, 0, len(msg.ToolRequests))
			for _, req := range msg.ToolRequests {
				names = append(names, req.Name)
			}
			content = "[calls " + strings.Join(names, ", ") + "] " + content
		case msg.Role == llm.RoleTool:
			content = "[" + msg.ToolName + "] " + content
		}
		content = util.Truncate(strings.ReplaceAll(content, "\n", " "), markdownWidth)
		table = append(table, []string{fmt.Sprint(i + 1), string(msg.Role), content})
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(table).Render()
}

// PrintSessionInfo prints the session settings
func (u *TraditionalUI) PrintSessionInfo(info agent.Info) {
	table := pterm.TableData{
		{"Setting", "Value"},
		{"Session", info.SessionID},
		{"Orchestrator", info.OrchestratorModel},
		{"Coder", info.CoderModel},
		{"Tools", strings.Join(info.Tools, ", ")},
		{"Messages", fmt.Sprint(info.HistoryLength)},
		{"Max iterations", fmt.Sprint(info.MaxIterations)},
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(table).Render()
}

// PrintTools lists the registered tools
func (u *TraditionalUI) PrintTools(defs []tools.Definition) {
	table := pterm.TableData{{"Tool", "Description"}}
	for _, def := range defs {
		table = append(table, []string{def.Name, def.Description})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(table).Render()
}

// PrintError prints an error message
func (u *TraditionalUI) PrintError(message string) {
	u.pauseSpinner()
	pterm.Error.Println(message)
}

// PrintWarning prints a warning message
func (u *TraditionalUI) PrintWarning(message string) {
	u.pauseSpinner()
	pterm.Warning.Println(message)
}

// PrintSuccess prints a success message
func (u *TraditionalUI) PrintSuccess(message string) {
	pterm.Success.Println(message)
}

// PrintInfo prints an informational message
func (u *TraditionalUI) PrintInfo(message string) {
	pterm.Info.Println(message)
}

// AskInput asks for user input with a prompt
func (u *TraditionalUI) AskInput(prompt string) string {
	u.readline.SetPrompt(prompt)
	defer u.readline.SetPrompt("> ")

	text, err := u.readline.Readline()
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Println("exit")
			return InputExit
		}
		if errors.Is(err, readline.ErrInterrupt) {
			return InputInterrupt
		}
		pterm.Error.Println("Error reading input:", err)
		return ""
	}

	return text
}

// ClearScreen clears the terminal screen
func (u *TraditionalUI) ClearScreen() {
	fmt.Print("\033[H\033[2J")
}

// OnInterrupt is a no-op: outside of AskInput the terminal is in cooked mode
// and Ctrl+C arrives as SIGINT, which the caller handles.
func (u *TraditionalUI) OnInterrupt(func()) {}

// Close releases the terminal
func (u *TraditionalUI) Close() error {
	u.pauseSpinner()
	return u.readline.Close()
}
