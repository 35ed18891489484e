// Package outline extracts top-level symbols from source files using
// tree-sitter grammars.
package outline

import (
	"fmt"
	"path/filepath"
	"strings"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Language identifies a supported grammar
type Language string

const (
	Go         Language = "go"
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

// Symbol is a declaration found in a file
type Symbol struct {
	Kind      string
	Name      string
	Signature string
	// Line is 1-based
	Line     int
	Children []Symbol
}

// Detect maps a file extension to a language
func Detect(path string) (Language, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".go":
		return Go, nil
	case ".py":
		return Python, nil
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript, nil
	case ".ts", ".mts", ".cts":
		return TypeScript, nil
	case ".tsx":
		return TSX, nil
	default:
		return "", fmt.Errorf("unsupported file extension: %s", ext)
	}
}

func grammar(lang Language) (unsafe.Pointer, error) {
	switch lang {
	case Go:
		return tree_sitter_go.Language(), nil
	case Python:
		return tree_sitter_python.Language(), nil
	case JavaScript:
		return tree_sitter_javascript.Language(), nil
	case TypeScript:
		return tree_sitter_typescript.LanguageTypescript(), nil
	case TSX:
		return tree_sitter_typescript.LanguageTSX(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// Extract parses content and returns its symbols in source order
func Extract(lang Language, content []byte) ([]Symbol, error) {
	ptr, err := grammar(lang)
	if err != nil {
		return nil, err
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(tree_sitter.NewLanguage(ptr)); err != nil {
		return nil, fmt.Errorf("error setting language parser: %w", err)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s source", lang)
	}
	defer tree.Close()

	x := extractor{src: content}
	switch lang {
	case Go:
		return x.goSymbols(tree.RootNode()), nil
	case Python:
		return x.pythonSymbols(tree.RootNode()), nil
	default:
		return x.scriptSymbols(tree.RootNode()), nil
	}
}

// Format renders symbols as an indented listing with line numbers
func Format(symbols []Symbol) string {
	if len(symbols) == 0 {
		return "No symbols found"
	}
	var b strings.Builder
	var write func(syms []Symbol, depth int)
	write = func(syms []Symbol, depth int) {
		for _, s := range syms {
			fmt.Fprintf(&b, "%s%s (line %d)\n", strings.Repeat("  ", depth), s.Signature, s.Line)
			write(s.Children, depth+1)
		}
	}
	write(symbols, 0)
	return strings.TrimRight(b.String(), "\n")
}
