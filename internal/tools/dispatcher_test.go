package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/recrsn/localagent/internal/schema"
)

func newTestDispatcher(t *testing.T, tools ...Tool) *Dispatcher {
	t.Helper()
	r := NewRegistry()
	for _, tool := range tools {
		if err := r.Register(tool); err != nil {
			t.Fatal(err)
		}
	}
	return NewDispatcher(r, nil)
}

func TestDispatcher_Invoke(t *testing.T) {
	failing := &Func{
		Def: Definition{Name: "fail", Parameters: schema.Object(nil)},
		Handler: func(context.Context, map[string]any) (string, error) {
			return "", errors.New("disk on fire")
		},
	}
	panicking := &Func{
		Def: Definition{Name: "panic", Parameters: schema.Object(nil)},
		Handler: func(context.Context, map[string]any) (string, error) {
			panic("boom")
		},
	}
	defaulted := &Func{
		Def: Definition{
			Name: "defaults",
			Parameters: schema.Object(map[string]schema.Property{
				"language": {Type: "string", Default: "python"},
			}),
		},
		Handler: func(_ context.Context, args map[string]any) (string, error) {
			return args["language"].(string), nil
		},
	}
	cancelled := &Func{
		Def: Definition{Name: "cancelled", Parameters: schema.Object(nil)},
		Handler: func(ctx context.Context, _ map[string]any) (string, error) {
			return "", ctx.Err()
		},
	}

	d := newTestDispatcher(t, echoTool("echo"), failing, panicking, defaulted, cancelled)

	cancelledCtx, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		tool string
		args map[string]any
		want string
	}{
		{name: "success", tool: "echo", args: map[string]any{"text": "hi"}, want: "hi"},
		{name: "unknown tool", tool: "nonexistent_tool", args: map[string]any{}, want: "Unknown tool: nonexistent_tool"},
		{name: "tool error", tool: "fail", want: "Error: disk on fire"},
		{name: "panic", tool: "panic", want: "Error: panic: boom"},
		{name: "missing argument", tool: "echo", args: map[string]any{}, want: "Error: missing required field: text"},
		{name: "default applied", tool: "defaults", args: map[string]any{}, want: "python"},
		{name: "default overridden", tool: "defaults", args: map[string]any{"language": "go"}, want: "go"},
		{name: "interrupted", ctx: cancelledCtx, tool: "cancelled", want: "Error: interrupted"},
		{name: "skipped after interrupt", ctx: cancelledCtx, tool: "echo", args: map[string]any{"text": "hi"}, want: "Error: interrupted"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := tc.ctx
			if ctx == nil {
				ctx = context.Background()
			}
			if got := d.Invoke(ctx, tc.tool, tc.args); got != tc.want {
				t.Errorf("Invoke(%s) = %q, want %q", tc.tool, got, tc.want)
			}
		})
	}
}

func TestDispatcher_Explain(t *testing.T) {
	d := newTestDispatcher(t, NewFileReadTool(), echoTool("echo"))

	exp, ok := d.Explain("file_read", map[string]any{"path": "/etc/hosts"})
	if !ok {
		t.Fatal("Expected file_read to explain itself")
	}
	if exp.Title != "Read(/etc/hosts)" {
		t.Errorf("Title = %q", exp.Title)
	}
	if !strings.Contains(exp.Context, "/etc/hosts") {
		t.Errorf("Context = %q", exp.Context)
	}

	exp, ok = d.Explain("echo", nil)
	if !ok || exp.Title != "echo" {
		t.Errorf("Explain(echo) = %+v, %v", exp, ok)
	}

	if _, ok := d.Explain("missing", nil); ok {
		t.Error("Expected unknown tool to not explain")
	}
}
