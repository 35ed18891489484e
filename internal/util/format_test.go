package util

import (
	"testing"
)

func TestFormatArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		maxValue int
		want     string
	}{
		{name: "empty", args: nil, want: "  (none)"},
		{
			name: "sorted scalars",
			args: map[string]any{"path": "/tmp/a.txt", "max_results": float64(5), "recursive": true},
			want: "  max_results: 5\n  path: /tmp/a.txt\n  recursive: true",
		},
		{
			name:     "truncated multiline string",
			args:     map[string]any{"content": "line one\nline two"},
			maxValue: 12,
			want:     "  content: line one\\...",
		},
		{
			name: "nested",
			args: map[string]any{"opts": map[string]any{"b": 2, "a": []any{"x"}}},
			want: "  opts: \n    a: \n      0: x\n    b: 2",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatArgs(tc.args, tc.maxValue); got != tc.want {
				t.Errorf("FormatArgs() =\n%q\nwant\n%q", got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{in: "hello", n: 10, want: "hello"},
		{in: "hello world", n: 8, want: "hello..."},
		{in: "héllo wörld", n: 7, want: "héll..."},
		{in: "hello", n: 0, want: "hello"},
		{in: "hello", n: 2, want: "he"},
	}
	for _, tc := range tests {
		if got := Truncate(tc.in, tc.n); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}
