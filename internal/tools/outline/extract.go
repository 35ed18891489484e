package outline

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

type extractor struct {
	src []byte
}

func (x extractor) text(node *tree_sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(x.src)
}

func (x extractor) symbol(node *tree_sitter.Node, kind, name, signature string) Symbol {
	return Symbol{
		Kind:      kind,
		Name:      name,
		Signature: strings.Join(strings.Fields(signature), " "),
		Line:      int(node.StartPosition().Row) + 1,
	}
}

func namedChildren(node *tree_sitter.Node) []*tree_sitter.Node {
	if node == nil {
		return nil
	}
	children := make([]*tree_sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		children = append(children, node.NamedChild(i))
	}
	return children
}

func (x extractor) goSymbols(root *tree_sitter.Node) []Symbol {
	var out []Symbol
	for _, node := range namedChildren(root) {
		switch node.Kind() {
		case "function_declaration":
			name := x.text(node.ChildByFieldName("name"))
			sig := "func " + name + x.text(node.ChildByFieldName("parameters"))
			if result := x.text(node.ChildByFieldName("result")); result != "" {
				sig += " " + result
			}
			out = append(out, x.symbol(node, "function", name, sig))

		case "method_declaration":
			name := x.text(node.ChildByFieldName("name"))
			sig := "func " + x.text(node.ChildByFieldName("receiver")) + " " + name +
				x.text(node.ChildByFieldName("parameters"))
			if result := x.text(node.ChildByFieldName("result")); result != "" {
				sig += " " + result
			}
			out = append(out, x.symbol(node, "method", name, sig))

		case "type_declaration":
			for _, spec := range namedChildren(node) {
				if spec.Kind() != "type_spec" && spec.Kind() != "type_alias" {
					continue
				}
				name := x.text(spec.ChildByFieldName("name"))
				kind, sig := "type", "type "+name
				if t := spec.ChildByFieldName("type"); t != nil {
					switch t.Kind() {
					case "struct_type":
						kind, sig = "struct", sig+" struct"
					case "interface_type":
						kind, sig = "interface", sig+" interface"
					default:
						sig += " " + x.text(t)
					}
				}
				out = append(out, x.symbol(spec, kind, name, sig))
			}
		}
	}
	return out
}

func (x extractor) pythonSymbols(root *tree_sitter.Node) []Symbol {
	var out []Symbol
	for _, node := range namedChildren(root) {
		if sym, ok := x.pythonSymbol(node); ok {
			out = append(out, sym)
		}
	}
	return out
}

func (x extractor) pythonSymbol(node *tree_sitter.Node) (Symbol, bool) {
	switch node.Kind() {
	case "decorated_definition":
		return x.pythonSymbol(node.ChildByFieldName("definition"))

	case "function_definition":
		name := x.text(node.ChildByFieldName("name"))
		sig := "def " + name + x.text(node.ChildByFieldName("parameters"))
		if ret := x.text(node.ChildByFieldName("return_type")); ret != "" {
			sig += " -> " + ret
		}
		return x.symbol(node, "function", name, sig), true

	case "class_definition":
		name := x.text(node.ChildByFieldName("name"))
		sig := "class " + name + x.text(node.ChildByFieldName("superclasses"))
		sym := x.symbol(node, "class", name, sig)
		for _, child := range namedChildren(node.ChildByFieldName("body")) {
			if method, ok := x.pythonSymbol(child); ok {
				sym.Children = append(sym.Children, method)
			}
		}
		return sym, true
	}
	return Symbol{}, false
}

// scriptSymbols handles JavaScript and TypeScript, which share most node kinds
func (x extractor) scriptSymbols(root *tree_sitter.Node) []Symbol {
	var out []Symbol
	for _, node := range namedChildren(root) {
		out = append(out, x.scriptSymbol(node)...)
	}
	return out
}

func (x extractor) scriptSymbol(node *tree_sitter.Node) []Symbol {
	switch node.Kind() {
	case "export_statement":
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			return x.scriptSymbol(decl)
		}

	case "function_declaration", "generator_function_declaration":
		name := x.text(node.ChildByFieldName("name"))
		sig := "function " + name + x.text(node.ChildByFieldName("parameters")) +
			x.text(node.ChildByFieldName("return_type"))
		return []Symbol{x.symbol(node, "function", name, sig)}

	case "class_declaration", "abstract_class_declaration":
		name := x.text(node.ChildByFieldName("name"))
		sym := x.symbol(node, "class", name, "class "+name)
		for _, member := range namedChildren(node.ChildByFieldName("body")) {
			if member.Kind() != "method_definition" {
				continue
			}
			mname := x.text(member.ChildByFieldName("name"))
			if strings.HasPrefix(mname, "#") {
				continue
			}
			msig := mname + x.text(member.ChildByFieldName("parameters")) +
				x.text(member.ChildByFieldName("return_type"))
			sym.Children = append(sym.Children, x.symbol(member, "method", mname, msig))
		}
		return []Symbol{sym}

	case "interface_declaration":
		name := x.text(node.ChildByFieldName("name"))
		return []Symbol{x.symbol(node, "interface", name, "interface "+name)}

	case "type_alias_declaration":
		name := x.text(node.ChildByFieldName("name"))
		return []Symbol{x.symbol(node, "type", name, "type "+name)}

	case "enum_declaration":
		name := x.text(node.ChildByFieldName("name"))
		return []Symbol{x.symbol(node, "enum", name, "enum "+name)}

	case "lexical_declaration", "variable_declaration":
		var out []Symbol
		for _, decl := range namedChildren(node) {
			if decl.Kind() != "variable_declarator" {
				continue
			}
			value := decl.ChildByFieldName("value")
			if value == nil || (value.Kind() != "arrow_function" && value.Kind() != "function_expression") {
				continue
			}
			name := x.text(decl.ChildByFieldName("name"))
			params := x.text(value.ChildByFieldName("parameters"))
			if params == "" {
				params = "(" + x.text(value.ChildByFieldName("parameter")) + ")"
			}
			out = append(out, x.symbol(decl, "function", name, "const "+name+" = "+params+" =>"))
		}
		return out
	}
	return nil
}
