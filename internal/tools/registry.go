package tools

import (
	"errors"
	"fmt"
	"sync"

	"github.com/recrsn/localagent/internal/llm"
)

var (
	// ErrDuplicateName is returned when a tool name is registered twice
	ErrDuplicateName = errors.New("tool already registered")
	// ErrUnknownTool is returned when looking up a name nobody registered
	ErrUnknownTool = errors.New("unknown tool")
)

// Registry holds all available tools in registration order.
//
// It is filled once at startup and only read afterwards, so one registry can
// be shared by any number of sessions.
type Registry struct {
	mu    sync.RWMutex
	order []string
	tools map[string]Tool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool under the name in its definition
func (r *Registry) Register(tool Tool) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	name := tool.Definition().Name
	if name == "" {
		return fmt.Errorf("tool name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Lookup retrieves a tool by name
func (r *Registry) Lookup(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return tool, nil
}

// List returns all definitions in registration order
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// Names returns the registered tool names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Catalog returns the definitions in the form sent to the model
func (r *Registry) Catalog() []llm.ToolDefinition {
	defs := r.List()
	catalog := make([]llm.ToolDefinition, 0, len(defs))
	for _, def := range defs {
		catalog = append(catalog, def.Wire())
	}
	return catalog
}
