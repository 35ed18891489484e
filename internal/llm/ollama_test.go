package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/recrsn/localagent/internal/schema"
)

func TestOllamaClient_CompleteWithTools(t *testing.T) {
	var got ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "orchestrator",
			"message": {
				"role": "assistant",
				"content": "",
				"tool_calls": [
					{"function": {"name": "list_directory", "arguments": {"path": "/tmp"}}},
					{"function": {"name": "file_read", "arguments": {"path": "/tmp/a.txt"}}}
				]
			},
			"done": true
		}`))
	}))
	defer server.Close()

	client := NewOllamaClient(ClientOptions{BaseURL: server.URL})
	resp, err := client.Complete(context.Background(), Request{
		Model:    "orchestrator",
		System:   "be brief",
		Messages: []Message{UserMessage("list files in /tmp")},
		Tools: []ToolDefinition{{
			Name:       "list_directory",
			Parameters: schema.Object(map[string]schema.Property{"path": {Type: "string"}}, "path"),
		}},
	})
	require.NoError(t, err)

	require.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	require.Equal(t, "system", got.Messages[0].Role)
	require.Equal(t, "user", got.Messages[1].Role)
	require.Len(t, got.Tools, 1)
	require.Equal(t, "function", got.Tools[0].Type)
	require.Equal(t, "list_directory", got.Tools[0].Function.Name)

	require.Len(t, resp.ToolRequests, 2)
	require.Equal(t, "list_directory", resp.ToolRequests[0].Name)
	require.Equal(t, "/tmp", resp.ToolRequests[0].Arguments["path"])
	require.Equal(t, "file_read", resp.ToolRequests[1].Name)
}

func TestOllamaClient_Thinking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": {"role": "assistant", "content": "", "thinking": "pondering"}, "done": true}`))
	}))
	defer server.Close()

	resp, err := NewOllamaClient(ClientOptions{BaseURL: server.URL}).Complete(context.Background(), Request{Model: "m"})
	require.NoError(t, err)
	require.Empty(t, resp.Content)
	require.Equal(t, "pondering", resp.Thinking)
	require.Empty(t, resp.ToolRequests)
}

func TestOllamaClient_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "model 'missing' not found"}`))
	}))
	defer server.Close()

	_, err := NewOllamaClient(ClientOptions{BaseURL: server.URL}).Complete(context.Background(), Request{Model: "missing"})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrGatewayUnavailable)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Contains(t, apiErr.Message, "not found")
}

func TestOllamaClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewOllamaClient(ClientOptions{BaseURL: url}).Complete(context.Background(), Request{Model: "m"})
	require.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestOllamaClient_RetriesServerErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"message": {"role": "assistant", "content": "ok"}, "done": true}`))
	}))
	defer server.Close()

	client := NewOllamaClient(ClientOptions{
		BaseURL: server.URL,
		Retry:   RetryPolicy{MaxRetries: 2, BaseDelay: 1},
	})
	resp, err := client.Complete(context.Background(), Request{Model: "m"})
	require.NoError(t, err)
	require.Equal(t, "ok", resp.Content)
	require.Equal(t, 2, calls)
}

func TestFileLogger_LogInteraction(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewAPILogger(filepath.Join(dir, "logs"))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": {"role": "assistant", "content": "hi"}, "done": true}`))
	}))
	defer server.Close()

	client := NewOllamaClient(ClientOptions{BaseURL: server.URL, APILogger: logger})
	_, err = client.Complete(context.Background(), Request{Model: "m", Messages: []Message{UserMessage("hello")}})
	require.NoError(t, err)

	data, err := os.ReadFile(logger.Path())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.NotEmpty(t, entry.Timestamp)
	require.Empty(t, entry.Error)
	require.NotNil(t, entry.Response)
}

func TestDelegate_SendsSinglePromptWithoutTools(t *testing.T) {
	var got ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message": {"role": "assistant", "content": "def fib(n): ..."}, "done": true}`))
	}))
	defer server.Close()

	out, err := Delegate(context.Background(), NewOllamaClient(ClientOptions{BaseURL: server.URL}),
		ModelConfig{Model: "coder", Temperature: 0.2}, "write fib")
	require.NoError(t, err)
	require.Equal(t, "def fib(n): ...", out)
	require.Equal(t, "coder", got.Model)
	require.Empty(t, got.Tools)
	require.Len(t, got.Messages, 1)
	require.Equal(t, "write fib", got.Messages[0].Content)
	require.Equal(t, 0.2, got.Options["temperature"])
}
