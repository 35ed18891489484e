// Package logging sets up the diagnostic log. Records go to a file so they
// never interleave with the terminal UI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the log file created in the logs directory
const FileName = "localagent.log"

// ParseLevel maps a level name to a slog level. Unknown names yield info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
	}
}

// New creates a JSON logger writing to w
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}))
}

// Open creates a JSON logger appending to path, or to FileName inside dir
// when path is empty. The returned closer releases the file.
func Open(path, dir, level string) (*slog.Logger, io.Closer, error) {
	lvl, levelErr := ParseLevel(level)

	if path == "" {
		path = filepath.Join(dir, FileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := New(f, lvl)
	if levelErr != nil {
		logger.Warn("invalid log level specified, defaulting to INFO", "specified_level", level)
	}
	return logger, f, nil
}

// Component returns a logger tagging every record with the component name
func Component(base *slog.Logger, component string) *slog.Logger {
	return base.With(slog.String("component", component))
}
