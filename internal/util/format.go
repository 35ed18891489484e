package util

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// FormatArgs renders tool arguments one per line in key order. Long values
// are shortened to maxValue runes; maxValue <= 0 disables shortening.
func FormatArgs(args map[string]any, maxValue int) string {
	if len(args) == 0 {
		return "  (none)"
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %s: ", k)
		formatValue(&b, args[k], 1, maxValue)
	}
	return b.String()
}

// formatValue formats a value based on its type
func formatValue(b *strings.Builder, value any, indent, maxValue int) {
	switch v := value.(type) {
	case nil:
		b.WriteString("null")
	case string:
		b.WriteString(Truncate(strings.ReplaceAll(v, "\n", "\\n"), maxValue))
	case []any:
		if len(v) == 0 {
			b.WriteString("[]")
			return
		}
		for i, item := range v {
			fmt.Fprintf(b, "\n%s%d: ", strings.Repeat("  ", indent+1), i)
			formatValue(b, item, indent+1, maxValue)
		}
	case map[string]any:
		if len(v) == 0 {
			b.WriteString("{}")
			return
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(b, "\n%s%s: ", strings.Repeat("  ", indent+1), k)
			formatValue(b, v[k], indent+1, maxValue)
		}
	default:
		fmt.Fprint(b, v)
	}
}

// Truncate shortens s to at most n runes, marking the cut with "..."
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
