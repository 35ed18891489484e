package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCodeOutline(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"main.go": `package main

type Server struct{}

func (s *Server) Start(addr string) error { return nil }

func main() {}
`,
		"app.py": `class Greeter:
    def greet(self, name):
        return name

def helper(x) -> int:
    return x
`,
		"app.ts": `export interface Options { debug: boolean }

export function run(opts: Options): void {}
`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	d := newTestDispatcher(t, NewCodeOutlineTool())
	ctx := context.Background()

	tests := []struct {
		file string
		want []string
	}{
		{file: "main.go", want: []string{"Language: go", "type Server struct (line 3)", "func (s *Server) Start(addr string) error (line 5)", "func main() (line 7)"}},
		{file: "app.py", want: []string{"Language: python", "class Greeter (line 1)", "  def greet(self, name) (line 2)", "def helper(x) -> int (line 5)"}},
		{file: "app.ts", want: []string{"Language: typescript", "interface Options (line 1)", "function run(opts: Options): void (line 3)"}},
	}

	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			got := d.Invoke(ctx, "code_outline", map[string]any{"path": filepath.Join(dir, tc.file)})
			for _, want := range tc.want {
				if !strings.Contains(got, want) {
					t.Errorf("outline missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestCodeOutline_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	d := newTestDispatcher(t, NewCodeOutlineTool())

	got := d.Invoke(context.Background(), "code_outline", map[string]any{"path": path})
	if got != "Error: unsupported file extension: .txt" {
		t.Errorf("code_outline = %q", got)
	}
}
