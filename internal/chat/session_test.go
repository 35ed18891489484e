package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/recrsn/localagent/internal/agent"
	"github.com/recrsn/localagent/internal/llm"
	"github.com/recrsn/localagent/internal/llm/llmtest"
	"github.com/recrsn/localagent/internal/tools"
	"github.com/recrsn/localagent/internal/ui"
)

// fakeUI replays scripted input and records everything printed as
// "kind: text" lines
type fakeUI struct {
	inputs    []string
	events    []string
	interrupt func()
}

func (f *fakeUI) record(kind, text string) {
	f.events = append(f.events, kind+": "+text)
}

func (f *fakeUI) ShowHeader(title string, details ...string) { f.record("header", title) }
func (f *fakeUI) StartSpinner(text string)                   {}
func (f *fakeUI) StopSpinner(text string)                    {}
func (f *fakeUI) StopSpinnerFail(text string)                { f.record("fail", text) }
func (f *fakeUI) PrintUserMessage(message string)            { f.record("user", message) }
func (f *fakeUI) PrintAssistantMessage(message string)       { f.record("assistant", message) }
func (f *fakeUI) PrintToolCall(name string, args map[string]any, explanation tools.Explanation) {
	f.record("call", name)
}
func (f *fakeUI) PrintToolResult(name string, result string) { f.record("result", result) }
func (f *fakeUI) PrintHelp()                                 { f.record("help", "") }
func (f *fakeUI) PrintHistory(messages []llm.Message) {
	f.record("history", fmt.Sprint(len(messages)))
}
func (f *fakeUI) PrintSessionInfo(info agent.Info) { f.record("info", info.OrchestratorModel) }
func (f *fakeUI) PrintTools(defs []tools.Definition) {
	f.record("tools", fmt.Sprint(len(defs)))
}
func (f *fakeUI) PrintError(message string)   { f.record("error", message) }
func (f *fakeUI) PrintWarning(message string) { f.record("warning", message) }
func (f *fakeUI) PrintSuccess(message string) { f.record("success", message) }
func (f *fakeUI) PrintInfo(message string)    { f.record("note", message) }
func (f *fakeUI) ClearScreen()                { f.record("clear", "") }
func (f *fakeUI) OnInterrupt(fn func())       { f.interrupt = fn }
func (f *fakeUI) Close() error                { return nil }

func (f *fakeUI) AskInput(prompt string) string {
	if len(f.inputs) == 0 {
		return ui.InputExit
	}
	next := f.inputs[0]
	f.inputs = f.inputs[1:]
	return next
}

func (f *fakeUI) has(event string) bool {
	for _, e := range f.events {
		if e == event {
			return true
		}
	}
	return false
}

func newTestSession(t *testing.T, gw llm.Gateway, inputs ...string) (*Session, *fakeUI) {
	t.Helper()
	registry := tools.NewRegistry()
	if err := tools.RegisterBuiltins(registry, tools.Dependencies{}); err != nil {
		t.Fatalf("RegisterBuiltins: %v", err)
	}
	fake := &fakeUI{inputs: inputs}
	s := NewSession(fake, gw, registry, agent.Options{
		Orchestrator:  llm.ModelConfig{Model: "orch"},
		MaxIterations: 2,
	})
	return s, fake
}

func run(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
}

func TestSession_Answer(t *testing.T) {
	s, fake := newTestSession(t, llmtest.New(llmtest.Answer("Hi!")), "hello", "   ")
	run(t, s)

	for _, want := range []string{"user: hello", "assistant: Hi!", "success: Goodbye!"} {
		if !fake.has(want) {
			t.Errorf("missing event %q in %q", want, fake.events)
		}
	}
	if got := len(s.Agent().History()); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}
	if fake.interrupt == nil {
		t.Error("Expected an interrupt handler to be registered")
	}
}

func TestSession_ToolTurn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(path, []byte("remember"), 0644); err != nil {
		t.Fatal(err)
	}

	gw := llmtest.New(
		llmtest.Step{Response: llm.Response{
			Content:      "Let me read that.",
			ToolRequests: []llm.ToolRequest{llmtest.Request("file_read", map[string]any{"path": path})},
		}},
		llmtest.Answer("It says remember."),
	)
	s, fake := newTestSession(t, gw, "what is in the note?")
	run(t, s)

	want := []string{
		"user: what is in the note?",
		"assistant: Let me read that.",
		"call: file_read",
		"result: remember",
		"assistant: It says remember.",
	}
	var got []string
	for _, e := range fake.events {
		for _, prefix := range []string{"user:", "assistant:", "call:", "result:"} {
			if strings.HasPrefix(e, prefix) {
				got = append(got, e)
			}
		}
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("events = %q, want %q", got, want)
	}
}

func TestSession_Commands(t *testing.T) {
	s, fake := newTestSession(t, llmtest.New(llmtest.Answer("ok")),
		"hi", "/history", "/reset", "/history", "/info", "/tools", "/help", "/clear", "/bogus", "/exit", "never read")
	run(t, s)

	for _, want := range []string{
		"history: 2",
		"success: Conversation history cleared",
		"history: 0",
		"info: orch",
		"tools: 7",
		"help: ",
		"clear: ",
		"error: Unknown command: /bogus (type /help for the list)",
	} {
		if !fake.has(want) {
			t.Errorf("missing event %q in %q", want, fake.events)
		}
	}
	if len(fake.inputs) != 1 {
		t.Error("Expected /exit to end the session")
	}
}

func TestSession_FailureAndRetry(t *testing.T) {
	failure := fmt.Errorf("%w: connection refused", llm.ErrGatewayUnavailable)
	gw := llmtest.New(llmtest.Fail(failure), llmtest.Answer("back online"))
	s, fake := newTestSession(t, gw, "/retry", "hi", "/retry")
	run(t, s)

	for _, want := range []string{
		"warning: Nothing to retry",
		"fail: Request failed",
		"error: " + failure.Error(),
		"assistant: back online",
	} {
		if !fake.has(want) {
			t.Errorf("missing event %q in %q", want, fake.events)
		}
	}
}

func TestSession_Exhausted(t *testing.T) {
	gw := llmtest.New(llmtest.Call(llmtest.Request("list_directory", map[string]any{"path": t.TempDir()})))
	s, fake := newTestSession(t, gw, "loop")
	run(t, s)

	if !fake.has("warning: Maximum iterations reached without a final answer.") {
		t.Errorf("Expected exhaustion warning, got %q", fake.events)
	}
}

func TestSession_Empty(t *testing.T) {
	s, fake := newTestSession(t, llmtest.New(llmtest.Answer("")), "hi")
	run(t, s)

	if !fake.has("warning: The model returned an empty response.") {
		t.Errorf("Expected empty response warning, got %q", fake.events)
	}
}

func TestSession_Summary(t *testing.T) {
	gw := llmtest.New(llmtest.Answer("Paris."), llmtest.Answer("Asked about the capital of France."))
	s, fake := newTestSession(t, gw, "/summary", "capital of France?", "/summary")
	run(t, s)

	if !fake.has("note: Nothing to summarize yet") {
		t.Errorf("Expected empty summary note, got %q", fake.events)
	}
	if !fake.has("assistant: Asked about the capital of France.") {
		t.Errorf("Expected summary, got %q", fake.events)
	}

	reqs := gw.Requests()
	if len(reqs) != 2 {
		t.Fatalf("requests = %d, want 2", len(reqs))
	}
	summary := reqs[1]
	if summary.Tools != nil || len(summary.Messages) != 1 {
		t.Errorf("summary request should be a single plain message, got %+v", summary)
	}
	if !strings.Contains(summary.Messages[0].Content, "user: capital of France?") {
		t.Errorf("summary prompt missing transcript: %q", summary.Messages[0].Content)
	}
	if got := len(s.Agent().History()); got != 2 {
		t.Errorf("summary must not change the conversation, history length = %d", got)
	}
}

func TestSummarize_WindowCountsOnlyConversation(t *testing.T) {
	var history []llm.Message
	for i := 0; i < 15; i++ {
		req := llm.ToolRequest{ID: fmt.Sprint(i), Name: "file_read"}
		history = append(history,
			llm.UserMessage(fmt.Sprintf("question %d", i)),
			llm.AssistantMessage("", "", []llm.ToolRequest{req}),
			llm.ToolResultMessage(req, "file contents"),
			llm.AssistantMessage(fmt.Sprintf("answer %d", i), "", nil),
		)
	}

	gw := llmtest.New(llmtest.Answer("summary"))
	got, err := Summarize(context.Background(), gw, llm.ModelConfig{Model: "orch"}, history)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if got != "summary" {
		t.Errorf("Summarize = %q", got)
	}

	prompt := gw.Requests()[0].Messages[0].Content
	if n := strings.Count(prompt, "\nuser: ") + strings.Count(prompt, "\nassistant: "); n != summaryWindow {
		t.Errorf("prompt carries %d messages, want %d", n, summaryWindow)
	}
	if strings.Contains(prompt, "question 4\n") || !strings.Contains(prompt, "question 5\n") {
		t.Errorf("Expected the window to start at question 5:\n%s", prompt)
	}
	if strings.Contains(prompt, "file contents") {
		t.Error("tool output must not be summarized")
	}
}

func TestSystemPrompt(t *testing.T) {
	registry := tools.NewRegistry()
	if err := tools.RegisterBuiltins(registry, tools.Dependencies{}); err != nil {
		t.Fatal(err)
	}

	prompt, err := SystemPrompt(registry)
	if err != nil {
		t.Fatalf("SystemPrompt: %v", err)
	}

	dir, _ := os.Getwd()
	for _, want := range []string{"file_read", "web_search", dir} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
