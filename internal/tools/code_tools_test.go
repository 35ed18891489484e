package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/recrsn/localagent/internal/llm"
	"github.com/recrsn/localagent/internal/llm/llmtest"
)

func TestCodeAssistant_DelegatesVerbatim(t *testing.T) {
	reply := "def reverse(s):\n    return s[::-1]"
	gw := llmtest.New(llmtest.Answer(reply))
	specialist := Specialist{Gateway: gw, Model: llm.ModelConfig{Model: "coder", Temperature: 0.2}}
	d := newTestDispatcher(t, NewCodeAssistantTool(specialist))

	got := d.Invoke(context.Background(), "code_assistant", map[string]any{"task": "reverse a string"})
	if got != reply {
		t.Errorf("code_assistant = %q, want %q", got, reply)
	}

	reqs := gw.Requests()
	if len(reqs) != 1 {
		t.Fatalf("Expected exactly 1 coder call, got %d", len(reqs))
	}
	req := reqs[0]
	if req.Model != "coder" {
		t.Errorf("Model = %q, want coder", req.Model)
	}
	if len(req.Tools) != 0 {
		t.Errorf("Expected no tools in coder request, got %d", len(req.Tools))
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != llm.RoleUser {
		t.Fatalf("Expected a single user message, got %+v", req.Messages)
	}
	prompt := req.Messages[0].Content
	if !strings.Contains(prompt, "Language: python") || !strings.Contains(prompt, "Task: reverse a string") {
		t.Errorf("unexpected prompt: %q", prompt)
	}
	if strings.Contains(prompt, "Context:") {
		t.Errorf("empty context should be omitted: %q", prompt)
	}
}

func TestDelegateToCoder_Failure(t *testing.T) {
	gw := llmtest.New(llmtest.Fail(errors.New("model offline")))
	d := newTestDispatcher(t, NewDelegateToCoderTool(Specialist{Gateway: gw}))

	got := d.Invoke(context.Background(), "delegate_to_coder", map[string]any{"task": "x", "context": "y"})
	if got != "Error: code assistant: model offline" {
		t.Errorf("delegate_to_coder = %q", got)
	}
	if prompt := gw.Requests()[0].Messages[0].Content; !strings.Contains(prompt, "Context: y") {
		t.Errorf("prompt missing context: %q", prompt)
	}
}

func TestCoderPrompt(t *testing.T) {
	got := coderPrompt("sort a list", "go", "use generics")
	want := "Language: go\nContext: use generics\n\nTask: sort a list\n\nProvide clear, well-commented code:"
	if got != want {
		t.Errorf("coderPrompt = %q, want %q", got, want)
	}
}
