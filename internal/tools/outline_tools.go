package tools

import (
	"context"
	"fmt"
	"os"

	"github.com/recrsn/localagent/internal/schema"
	"github.com/recrsn/localagent/internal/tools/outline"
)

type outlineArgs struct {
	Path string `json:"path"`
}

func outlineTools(Dependencies) []Tool {
	return []Tool{NewCodeOutlineTool()}
}

// NewCodeOutlineTool creates the code_outline tool
func NewCodeOutlineTool() Tool {
	return &Func{
		Def: Definition{
			Name:        "code_outline",
			Description: "List the functions, types and classes declared in a Go, Python, JavaScript or TypeScript file",
			Parameters: schema.Object(map[string]schema.Property{
				"path": {Type: "string", Description: "Path to the source file"},
			}, "path"),
		},
		Preview: func(input map[string]any) Explanation {
			path, _ := input["path"].(string)
			return Explanation{
				Title:   fmt.Sprintf("Outline(%s)", path),
				Context: fmt.Sprintf("Will list the symbols declared in '%s'", path),
			}
		},
		Handler: func(_ context.Context, input map[string]any) (string, error) {
			var args outlineArgs
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}

			lang, err := outline.Detect(args.Path)
			if err != nil {
				return "", err
			}

			info, err := os.Stat(args.Path)
			if err != nil {
				return "", fmt.Errorf("file not found: %w", err)
			}
			if info.IsDir() {
				return "", fmt.Errorf("expected a file, got directory")
			}

			content, err := os.ReadFile(args.Path)
			if err != nil {
				return "", fmt.Errorf("error reading file: %w", err)
			}

			symbols, err := outline.Extract(lang, content)
			if err != nil {
				return "", fmt.Errorf("error extracting outline: %w", err)
			}
			return fmt.Sprintf("Language: %s\n\n%s", lang, outline.Format(symbols)), nil
		},
	}
}
