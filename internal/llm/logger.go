package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// APILogger records gateway requests and responses
type APILogger interface {
	LogInteraction(req any, resp any, err error)
}

// FileLogger appends one JSON document per interaction to a file
type FileLogger struct {
	mu          sync.Mutex
	logFilePath string
}

// LogEntry represents a single log line
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Request   any    `json:"request,omitempty"`
	Response  any    `json:"response,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewAPILogger creates a FileLogger writing api_logs.jsonl inside logDir
func NewAPILogger(logDir string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	return &FileLogger{
		logFilePath: filepath.Join(logDir, "api_logs.jsonl"),
	}, nil
}

// Path returns the file the logger appends to
func (l *FileLogger) Path() string {
	return l.logFilePath
}

// LogInteraction appends a request/response pair. Failures to log are
// reported through slog and otherwise ignored.
func (l *FileLogger) LogInteraction(req any, resp any, err error) {
	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Request:   req,
	}

	if err != nil {
		entry.Error = err.Error()
	} else if resp != nil {
		entry.Response = resp
	}

	line, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		slog.Warn("couldn't marshal API log entry", "error", jsonErr)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file, fileErr := os.OpenFile(l.logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if fileErr != nil {
		slog.Warn("couldn't open API log file", "path", l.logFilePath, "error", fileErr)
		return
	}
	defer file.Close()

	if _, writeErr := file.Write(append(line, '\n')); writeErr != nil {
		slog.Warn("couldn't write API log file", "path", l.logFilePath, "error", writeErr)
	}
}
