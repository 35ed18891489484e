package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
)

// PathCompleter implements readline.AutoCompleter for slash commands at the
// start of the line and file paths everywhere else.
type PathCompleter struct {
	// Home overrides the directory "~" expands to
	Home string
}

// Do returns the suffixes that complete the word before pos, and the length
// of that word.
func (p *PathCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	typed := string(line[:pos])

	if strings.HasPrefix(typed, "/") && !strings.ContainsAny(typed, " \t") {
		var candidates [][]rune
		for _, cmd := range Commands {
			if strings.HasPrefix(cmd.Name, typed) {
				candidates = append(candidates, []rune(cmd.Name[len(typed):]+" "))
			}
		}
		if len(candidates) > 0 {
			return candidates, len([]rune(typed))
		}
	}

	word := typed
	if i := strings.LastIndexAny(typed, " \t"); i >= 0 {
		word = typed[i+1:]
	}
	return p.completePath(word)
}

func (p *PathCompleter) completePath(word string) ([][]rune, int) {
	dirPath, prefix := ".", word
	expanded := word
	if word == "~" || strings.HasPrefix(word, "~/") {
		home := p.Home
		if home == "" {
			var err error
			if home, err = os.UserHomeDir(); err != nil {
				return nil, 0
			}
		}
		expanded = home + strings.TrimPrefix(word, "~")
		if word == "~" {
			expanded += "/"
		}
	}

	if i := strings.LastIndex(expanded, "/"); i >= 0 {
		dirPath, prefix = expanded[:i+1], expanded[i+1:]
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, 0
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		// Skip hidden files unless prefix starts with a dot
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if entry.IsDir() {
			name += "/"
		} else if info, err := os.Stat(filepath.Join(dirPath, name)); err == nil && info.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)

	suggestions := make([][]rune, 0, len(names))
	for _, name := range names {
		suggestions = append(suggestions, []rune(name[len(prefix):]))
	}
	if word == "~" {
		// "~" itself stays; only the separator and name are appended
		for i, s := range suggestions {
			suggestions[i] = append([]rune("/"), s...)
		}
		return suggestions, 0
	}
	return suggestions, len([]rune(prefix))
}

// GetPathCompleter returns a new PathCompleter instance
func GetPathCompleter() readline.AutoCompleter {
	return &PathCompleter{}
}
