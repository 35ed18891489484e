package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/recrsn/localagent/internal/schema"
)

type pathArgs struct {
	Path string `json:"path"`
}

type writeArgs struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func fileTools(Dependencies) []Tool {
	return []Tool{
		NewFileReadTool(),
		NewFileWriteTool(),
		NewListDirectoryTool(),
	}
}

// NewFileReadTool creates the file_read tool
func NewFileReadTool() Tool {
	return &Func{
		Def: Definition{
			Name:        "file_read",
			Description: "Read contents of a file",
			Parameters: schema.Object(map[string]schema.Property{
				"path": {Type: "string", Description: "Path to the file to read"},
			}, "path"),
		},
		Preview: func(input map[string]any) Explanation {
			path, _ := input["path"].(string)
			return Explanation{
				Title:   fmt.Sprintf("Read(%s)", path),
				Context: fmt.Sprintf("Will read the entire contents of '%s'", path),
			}
		},
		Handler: func(_ context.Context, input map[string]any) (string, error) {
			var args pathArgs
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}

			info, err := os.Stat(args.Path)
			if err != nil {
				return "", fmt.Errorf("failed to access file: %w", err)
			}
			if info.IsDir() {
				return "", fmt.Errorf("path is a directory, not a file: %s", args.Path)
			}

			content, err := os.ReadFile(args.Path)
			if err != nil {
				return "", fmt.Errorf("failed to read file: %w", err)
			}
			return string(content), nil
		},
	}
}

// NewFileWriteTool creates the file_write tool. Missing parent directories
// are created.
func NewFileWriteTool() Tool {
	return &Func{
		Def: Definition{
			Name:        "file_write",
			Description: "Write content to a file",
			Parameters: schema.Object(map[string]schema.Property{
				"path":    {Type: "string", Description: "Path to the file to write"},
				"content": {Type: "string", Description: "Content to write to the file"},
			}, "path", "content"),
		},
		Preview: explainWrite,
		Handler: func(_ context.Context, input map[string]any) (string, error) {
			var args writeArgs
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}

			if err := os.MkdirAll(filepath.Dir(args.Path), 0755); err != nil {
				return "", fmt.Errorf("failed to create directory: %w", err)
			}
			if err := os.WriteFile(args.Path, []byte(args.Content), 0644); err != nil {
				return "", fmt.Errorf("failed to write file: %w", err)
			}

			return fmt.Sprintf("Successfully wrote to %s", args.Path), nil
		},
	}
}

// NewListDirectoryTool creates the list_directory tool. Entry names are
// returned one per line, sorted by name.
func NewListDirectoryTool() Tool {
	return &Func{
		Def: Definition{
			Name:        "list_directory",
			Description: "List contents of a directory",
			Parameters: schema.Object(map[string]schema.Property{
				"path": {Type: "string", Description: "Path to the directory"},
			}, "path"),
		},
		Preview: func(input map[string]any) Explanation {
			path, _ := input["path"].(string)
			return Explanation{
				Title:   fmt.Sprintf("List(%s)", path),
				Context: fmt.Sprintf("Will list the entries of '%s'", path),
			}
		},
		Handler: func(_ context.Context, input map[string]any) (string, error) {
			var args pathArgs
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}

			entries, err := os.ReadDir(args.Path)
			if err != nil {
				return "", err
			}

			names := make([]string, 0, len(entries))
			for _, entry := range entries {
				names = append(names, entry.Name())
			}
			return strings.Join(names, "\n"), nil
		},
	}
}

func explainWrite(input map[string]any) Explanation {
	path, _ := input["path"].(string)
	content, _ := input["content"].(string)

	size := fmt.Sprintf("%d bytes", len(content))
	switch len(content) {
	case 0:
		size = "an empty file"
	case 1:
		size = "1 byte"
	}

	existing, err := os.ReadFile(path)
	if err != nil {
		return Explanation{
			Title:   fmt.Sprintf("Write(%s)", path),
			Context: fmt.Sprintf("Will write %s to new file '%s'", size, path),
		}
	}

	return Explanation{
		Title:   fmt.Sprintf("Write(%s)", path),
		Context: fmt.Sprintf("Will write %s to '%s'\n\n%s", size, path, prettyDiff(string(existing), content)),
	}
}

// prettyDiff renders a line-level diff with ANSI colors
func prettyDiff(oldText, newText string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	return dmp.DiffPrettyText(dmp.DiffCleanupSemantic(diffs))
}
