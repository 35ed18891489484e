package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Directories holds the per-user directories the application writes to
type Directories struct {
	Home   string
	Config string
	// Data holds logs and the input history
	Data  string
	Cache string
}

// GetDirectories resolves and creates the directories for appName
func GetDirectories(appName string) (*Directories, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return directoriesFor(runtime.GOOS, homeDir, appName, os.Getenv)
}

func directoriesFor(goos, homeDir, appName string, getenv func(string) string) (*Directories, error) {
	dirs := Directories{Home: homeDir}

	envOr := func(key string, fallback ...string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return filepath.Join(fallback...)
	}

	switch goos {
	case "darwin":
		dirs.Config = filepath.Join(homeDir, "Library", "Application Support", appName)
		dirs.Data = dirs.Config
		dirs.Cache = filepath.Join(homeDir, "Library", "Caches", appName)

	case "windows":
		appData := envOr("APPDATA", homeDir, "AppData", "Roaming")
		localAppData := envOr("LOCALAPPDATA", homeDir, "AppData", "Local")
		dirs.Config = filepath.Join(appData, appName)
		dirs.Data = dirs.Config
		dirs.Cache = filepath.Join(localAppData, appName, "Cache")

	default:
		// XDG base directories
		dirs.Config = filepath.Join(envOr("XDG_CONFIG_HOME", homeDir, ".config"), appName)
		dirs.Data = filepath.Join(envOr("XDG_DATA_HOME", homeDir, ".local", "share"), appName)
		dirs.Cache = filepath.Join(envOr("XDG_CACHE_HOME", homeDir, ".cache"), appName)
	}

	for _, dir := range []string{dirs.Config, dirs.Data, dirs.Cache, dirs.LogsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return &dirs, nil
}

// LogsDir holds the diagnostic log and the API interaction log
func (d *Directories) LogsDir() string {
	return filepath.Join(d.Data, "logs")
}

// HistoryFile is where interactive input history is kept
func (d *Directories) HistoryFile() string {
	return filepath.Join(d.Data, "history")
}
