// Package prompts renders the orchestrator's system prompt.
package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/recrsn/localagent/internal/tools"
)

//go:embed system.md
var DefaultPromptTemplate string

// PromptData contains data to be injected into the prompt template
type PromptData struct {
	Tools            []tools.Definition
	WorkingDirectory string
	Platform         string
	Date             string
	// Instructions holds project-specific guidance, see AgentInstructions
	Instructions string
}

// RenderSystemPrompt renders the default template with the given data
func RenderSystemPrompt(data PromptData) (string, error) {
	tmpl, err := template.New("prompt").Parse(DefaultPromptTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// AgentInstructions reads AGENT.md or AGENTS.md from workingDir. It returns
// an empty string when neither exists.
func AgentInstructions(workingDir string) string {
	for _, name := range []string{"AGENT.md", "AGENTS.md"} {
		if content, err := os.ReadFile(filepath.Join(workingDir, name)); err == nil {
			return string(content)
		}
	}
	return ""
}
