package tools

import (
	"context"

	"github.com/mitchellh/mapstructure"

	"github.com/recrsn/localagent/internal/llm"
	"github.com/recrsn/localagent/internal/schema"
)

// Definition is the metadata a tool advertises to the model
type Definition struct {
	Name        string
	Description string
	Parameters  schema.Schema
}

// Wire converts the definition into the gateway catalog format
func (d Definition) Wire() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        d.Name,
		Description: d.Description,
		Parameters:  d.Parameters,
	}
}

// Tool is a named capability the model can invoke
type Tool interface {
	Definition() Definition
	Invoke(ctx context.Context, args map[string]any) (string, error)
}

// Explanation is a human-readable preview of a tool invocation
type Explanation struct {
	// Title is a short description of what the tool will do
	Title string
	// Context provides a more detailed explanation of the tool operation
	Context string
}

// Explainer is implemented by tools that can describe an invocation before it runs
type Explainer interface {
	Explain(args map[string]any) Explanation
}

// Func adapts a handler function into a Tool
type Func struct {
	Def     Definition
	Handler func(ctx context.Context, args map[string]any) (string, error)
	// Preview is optional
	Preview func(args map[string]any) Explanation
}

func (f *Func) Definition() Definition { return f.Def }

func (f *Func) Invoke(ctx context.Context, args map[string]any) (string, error) {
	return f.Handler(ctx, args)
}

func (f *Func) Explain(args map[string]any) Explanation {
	if f.Preview == nil {
		return Explanation{Title: f.Def.Name}
	}
	return f.Preview(args)
}

// decodeArgs fills out from the argument map. Numbers and booleans sent as
// strings are accepted since models are loose about JSON types.
func decodeArgs(args map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}
