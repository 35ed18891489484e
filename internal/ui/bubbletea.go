package ui

import (
	"fmt"
	"log/slog"
	"strings"

	md "github.com/MichaelMure/go-term-markdown"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recrsn/localagent/internal/agent"
	"github.com/recrsn/localagent/internal/config"
	"github.com/recrsn/localagent/internal/llm"
	"github.com/recrsn/localagent/internal/tools"
	"github.com/recrsn/localagent/internal/util"
)

var (
	appStyle = lipgloss.NewStyle().
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	userMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#32CD32")).
			Bold(true)

	assistantMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#5D5DFF"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5D5DFF"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#32CD32")).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

type entryKind int

const (
	entryUser entryKind = iota
	entryAssistant
	entryTool
	entryResult
	entryInfo
	entrySuccess
	entryWarning
	entryError
)

type entry struct {
	kind  entryKind
	title string
	text  string
}

// Messages sent into the program from the session goroutine
type (
	entryMsg     entry
	headerMsg    string
	spinnerMsg   struct{ text string }
	stopSpinMsg  struct{}
	clearMsg     struct{}
	promptMsg    string
	interruptMsg struct{ fn func() }
)

// BubbleTeaUI is a full-screen UI. All state lives in the tea model; the
// methods below only send messages to the running program, so they are safe
// to call from the session goroutine.
type BubbleTeaUI struct {
	config  config.UIConfig
	program *tea.Program
	input   chan string
	done    chan struct{}
	logger  *slog.Logger
}

// NewBubbleTeaUI starts the program and returns once it is running
func NewBubbleTeaUI(cfg config.UIConfig) (*BubbleTeaUI, error) {
	input := make(chan string)
	m := newModel(cfg, input)

	u := &BubbleTeaUI{
		config:  cfg,
		program: tea.NewProgram(m, tea.WithAltScreen()),
		input:   input,
		done:    make(chan struct{}),
		logger:  slog.Default().With("component", "ui"),
	}

	go u.run()

	return u, nil
}

// run drives the program until it quits and closes done
func (u *BubbleTeaUI) run() {
	defer close(u.done)
	if _, err := u.program.Run(); err != nil {
		u.logger.Error("terminal UI stopped", "error", err)
	}
}

func (u *BubbleTeaUI) add(kind entryKind, title, text string) {
	u.program.Send(entryMsg{kind: kind, title: title, text: text})
}

// ShowHeader sets the title bar and prints details as info lines
func (u *BubbleTeaUI) ShowHeader(title string, details ...string) {
	u.program.Send(headerMsg(title))
	for _, line := range details {
		u.add(entryInfo, "", line)
	}
}

// StartSpinner shows a spinner below the transcript
func (u *BubbleTeaUI) StartSpinner(text string) {
	if !u.config.ShowSpinner {
		return
	}
	u.program.Send(spinnerMsg{text: text})
}

// StopSpinner hides the spinner
func (u *BubbleTeaUI) StopSpinner(text string) {
	u.program.Send(stopSpinMsg{})
}

// StopSpinnerFail hides the spinner and reports text as an error
func (u *BubbleTeaUI) StopSpinnerFail(text string) {
	u.program.Send(stopSpinMsg{})
	u.add(entryError, "", text)
}

func (u *BubbleTeaUI) PrintUserMessage(message string) {
	u.add(entryUser, "", message)
}

func (u *BubbleTeaUI) PrintAssistantMessage(message string) {
	u.add(entryAssistant, "", message)
}

func (u *BubbleTeaUI) PrintToolCall(name string, args map[string]any, explanation tools.Explanation) {
	title := explanation.Title
	if title == "" {
		title = name
	}
	text := "Arguments:\n" + util.FormatArgs(args, maxArgLength)
	if explanation.Context != "" {
		text = explanation.Context + "\n\n" + text
	}
	u.add(entryTool, title, text)
}

func (u *BubbleTeaUI) PrintToolResult(name string, result string) {
	u.add(entryResult, name, util.Truncate(result, maxResultLength))
}

func (u *BubbleTeaUI) PrintHelp() {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, cmd := range Commands {
		fmt.Fprintf(&b, "  %-10s %s\n", cmd.Name, cmd.Description)
	}
	b.WriteString("  Ctrl+C     Interrupt current operation\n")
	b.WriteString("  Ctrl+D     Exit the application")
	u.add(entryInfo, "", b.String())
}

func (u *BubbleTeaUI) PrintHistory(messages []llm.Message) {
	if len(messages) == 0 {
		u.add(entryInfo, "", "No conversation history")
		return
	}
	var b strings.Builder
	for i, msg := range messages {
		content := msg.Content
		if msg.Role == llm.RoleTool {
			content = "[" + msg.ToolName + "] " + content
		}
		for _, req := range msg.ToolRequests {
			content += " [calls " + req.Name + "]"
		}
		fmt.Fprintf(&b, "%3d %-9s %s\n", i+1, msg.Role,
			util.Truncate(strings.ReplaceAll(content, "\n", " "), markdownWidth))
	}
	u.add(entryInfo, "", strings.TrimRight(b.String(), "\n"))
}

func (u *BubbleTeaUI) PrintSessionInfo(info agent.Info) {
	u.add(entryInfo, "", fmt.Sprintf(
		"Session:        %s\nOrchestrator:   %s\nCoder:          %s\nTools:          %s\nMessages:       %d\nMax iterations: %d",
		info.SessionID, info.OrchestratorModel, info.CoderModel,
		strings.Join(info.Tools, ", "), info.HistoryLength, info.MaxIterations,
	))
}

func (u *BubbleTeaUI) PrintTools(defs []tools.Definition) {
	var b strings.Builder
	for _, def := range defs {
		fmt.Fprintf(&b, "- %s: %s\n", def.Name, def.Description)
	}
	u.add(entryInfo, "", strings.TrimRight(b.String(), "\n"))
}

func (u *BubbleTeaUI) PrintError(message string)   { u.add(entryError, "", message) }
func (u *BubbleTeaUI) PrintWarning(message string) { u.add(entryWarning, "", message) }
func (u *BubbleTeaUI) PrintSuccess(message string) { u.add(entrySuccess, "", message) }
func (u *BubbleTeaUI) PrintInfo(message string)    { u.add(entryInfo, "", message) }

// AskInput waits for the user to submit the text area
func (u *BubbleTeaUI) AskInput(prompt string) string {
	u.program.Send(promptMsg(prompt))
	select {
	case text := <-u.input:
		return text
	case <-u.done:
		return InputExit
	}
}

func (u *BubbleTeaUI) ClearScreen() {
	u.program.Send(clearMsg{})
}

func (u *BubbleTeaUI) OnInterrupt(fn func()) {
	u.program.Send(interruptMsg{fn: fn})
}

// Close stops the program and restores the terminal
func (u *BubbleTeaUI) Close() error {
	u.program.Quit()
	<-u.done
	return nil
}

// model is the tea.Model behind BubbleTeaUI
type model struct {
	cfg         config.UIConfig
	title       string
	entries     []entry
	viewport    viewport.Model
	textarea    textarea.Model
	spinner     spinner.Model
	spinnerText string
	spinning    bool
	waiting     bool
	ready       bool
	input       chan<- string
	interrupt   func()
}

func newModel(cfg config.UIConfig, input chan<- string) *model {
	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.Focus()
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	s := spinner.New()
	s.Style = spinnerStyle
	s.Spinner = spinner.Dot

	vp := viewport.New(0, 0)

	return &model{
		cfg:      cfg,
		title:    "localagent",
		textarea: ta,
		viewport: vp,
		spinner:  s,
		input:    input,
	}
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

// submit hands text to the goroutine blocked in AskInput
func (m *model) submit(text string) tea.Cmd {
	m.waiting = false
	input := m.input
	return func() tea.Msg {
		input <- text
		return nil
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			if m.waiting {
				m.textarea.Reset()
				return m, m.submit(InputInterrupt)
			}
			if m.interrupt != nil {
				m.interrupt()
			}
			return m, nil
		case tea.KeyCtrlD:
			if m.waiting {
				return m, m.submit(InputExit)
			}
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.textarea.Value())
			if !m.waiting || text == "" {
				return m, nil
			}
			m.textarea.Reset()
			return m, m.submit(text)
		}

	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := m.textarea.Height() + 4
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		m.textarea.SetWidth(msg.Width - 4)
		m.ready = true
		m.refresh()

	case headerMsg:
		m.title = string(msg)

	case entryMsg:
		m.entries = append(m.entries, entry(msg))
		m.refresh()

	case spinnerMsg:
		m.spinnerText = msg.text
		if !m.spinning {
			m.spinning = true
			cmds = append(cmds, m.spinner.Tick)
		}
		m.refresh()

	case stopSpinMsg:
		m.spinning = false
		m.refresh()

	case spinner.TickMsg:
		if !m.spinning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case clearMsg:
		m.entries = nil
		m.refresh()

	case promptMsg:
		m.waiting = true
		m.textarea.Placeholder = string(msg)

	case interruptMsg:
		m.interrupt = msg.fn
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *model) render(e entry) string {
	switch e.kind {
	case entryUser:
		return userMsgStyle.Render("You: " + e.text)
	case entryAssistant:
		if m.cfg.RenderMarkdown {
			return assistantMsgStyle.Render("$ ") + string(md.Render(e.text, markdownWidth, 0))
		}
		return assistantMsgStyle.Render("$ " + e.text)
	case entryTool:
		return boxStyle.Render("Tool: " + e.title + "\n" + e.text)
	case entryResult:
		return resultStyle.Render(e.title + " → " + e.text)
	case entrySuccess:
		return successStyle.Render(e.text)
	case entryWarning:
		return warningStyle.Render("Warning: " + e.text)
	case entryError:
		return errorStyle.Render("Error: " + e.text)
	default:
		return infoStyle.Render(e.text)
	}
}

// refresh rebuilds the transcript and scrolls to the bottom
func (m *model) refresh() {
	if !m.ready {
		return
	}
	var content strings.Builder
	for _, e := range m.entries {
		content.WriteString(m.render(e))
		content.WriteString("\n\n")
	}
	if m.spinning {
		content.WriteString(m.spinner.View() + " " + m.spinnerText + "\n")
	}
	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

func (m *model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return appStyle.Render(
		titleStyle.Render(m.title) + "\n\n" +
			m.viewport.View() + "\n\n" +
			m.textarea.View(),
	)
}
