package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/recrsn/localagent/internal/tools"
)

func TestRenderSystemPrompt(t *testing.T) {
	out, err := RenderSystemPrompt(PromptData{
		Tools: []tools.Definition{
			{Name: "file_read", Description: "Read contents of a file"},
			{Name: "web_search", Description: "Search the web for information"},
		},
		WorkingDirectory: "/home/user/project",
		Platform:         "linux (amd64)",
		Date:             "2025-01-02",
		Instructions:     "Always use tabs.",
	})
	if err != nil {
		t.Fatalf("RenderSystemPrompt failed: %v", err)
	}

	for _, want := range []string{
		"Working directory: /home/user/project",
		"Platform: linux (amd64)",
		"- file_read: Read contents of a file",
		"- web_search: Search the web for information",
		"Always use tabs.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestRenderSystemPrompt_NoTools(t *testing.T) {
	out, err := RenderSystemPrompt(PromptData{})
	if err != nil {
		t.Fatalf("RenderSystemPrompt failed: %v", err)
	}
	if strings.Contains(out, "# Tools") || strings.Contains(out, "# Project instructions") {
		t.Errorf("optional sections should be omitted:\n%s", out)
	}
}

func TestAgentInstructions(t *testing.T) {
	dir := t.TempDir()
	if got := AgentInstructions(dir); got != "" {
		t.Errorf("Expected no instructions, got %q", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "AGENTS.md"), []byte("agents"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := AgentInstructions(dir); got != "agents" {
		t.Errorf("AgentInstructions = %q, want agents", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "AGENT.md"), []byte("agent"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := AgentInstructions(dir); got != "agent" {
		t.Errorf("AGENT.md should take precedence, got %q", got)
	}
}
