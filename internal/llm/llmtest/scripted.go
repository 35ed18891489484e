// Package llmtest provides a scripted llm.Gateway for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/recrsn/localagent/internal/llm"
)

// Step is one scripted reply. When Err is set it is returned instead of the
// response.
type Step struct {
	Response llm.Response
	Err      error
}

// Gateway replays Steps in order and records every request it receives.
// Once the script is exhausted it repeats the last step, or, when Repeat is
// set, calls Repeat with the request.
type Gateway struct {
	mu       sync.Mutex
	steps    []Step
	Repeat   func(req llm.Request) (llm.Response, error)
	requests []llm.Request
}

// New creates a Gateway with the given script
func New(steps ...Step) *Gateway {
	return &Gateway{steps: steps}
}

// Answer is a step replying with final text
func Answer(text string) Step {
	return Step{Response: llm.Response{Content: text}}
}

// Call is a step requesting the given tools
func Call(requests ...llm.ToolRequest) Step {
	return Step{Response: llm.Response{ToolRequests: requests}}
}

// Request builds a tool request with the given name and arguments
func Request(name string, args map[string]any) llm.ToolRequest {
	return llm.ToolRequest{Name: name, Arguments: args}
}

// Fail is a step returning err
func Fail(err error) Step {
	return Step{Err: err}
}

// Complete implements llm.Gateway
func (g *Gateway) Complete(_ context.Context, req llm.Request) (llm.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	snapshot := req
	snapshot.Messages = append([]llm.Message(nil), req.Messages...)
	g.requests = append(g.requests, snapshot)

	n := len(g.requests)
	if n <= len(g.steps) {
		step := g.steps[n-1]
		return step.Response, step.Err
	}
	if g.Repeat != nil {
		return g.Repeat(req)
	}
	if len(g.steps) == 0 {
		return llm.Response{}, fmt.Errorf("llmtest: no scripted response for call %d", n)
	}
	last := g.steps[len(g.steps)-1]
	return last.Response, last.Err
}

// Requests returns the requests received so far
func (g *Gateway) Requests() []llm.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]llm.Request(nil), g.requests...)
}

// Calls returns how many requests were received
func (g *Gateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}
