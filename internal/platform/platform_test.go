package platform

import (
	"path/filepath"
	"testing"
)

func TestDirectoriesFor_XDG(t *testing.T) {
	home := t.TempDir()
	xdgData := filepath.Join(home, "data")
	env := map[string]string{"XDG_DATA_HOME": xdgData}

	dirs, err := directoriesFor("linux", home, "localagent", func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("directoriesFor failed: %v", err)
	}

	if want := filepath.Join(home, ".config", "localagent"); dirs.Config != want {
		t.Errorf("Config = %q, want %q", dirs.Config, want)
	}
	if want := filepath.Join(xdgData, "localagent"); dirs.Data != want {
		t.Errorf("Data = %q, want %q", dirs.Data, want)
	}
	if want := filepath.Join(xdgData, "localagent", "logs"); dirs.LogsDir() != want {
		t.Errorf("LogsDir = %q, want %q", dirs.LogsDir(), want)
	}
	if want := filepath.Join(xdgData, "localagent", "history"); dirs.HistoryFile() != want {
		t.Errorf("HistoryFile = %q, want %q", dirs.HistoryFile(), want)
	}
}

func TestDirectoriesFor_Darwin(t *testing.T) {
	home := t.TempDir()
	dirs, err := directoriesFor("darwin", home, "localagent", func(string) string { return "" })
	if err != nil {
		t.Fatalf("directoriesFor failed: %v", err)
	}
	if dirs.Data != dirs.Config {
		t.Errorf("Expected data and config to share a directory on macOS")
	}
}

func TestParseOSRelease(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "pretty name", content: "NAME=\"Ubuntu\"\nVERSION_ID=\"22.04\"\nPRETTY_NAME=\"Ubuntu 22.04.3 LTS\"\n", want: "Ubuntu 22.04.3 LTS"},
		{name: "name and version", content: "NAME=Alpine\nVERSION_ID=3.19\n", want: "Alpine 3.19"},
		{name: "empty", content: "", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseOSRelease(tc.content); got != tc.want {
				t.Errorf("parseOSRelease = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPlatformInfo_String(t *testing.T) {
	if got := (PlatformInfo{Name: "linux", Arch: "amd64"}).String(); got != "linux (amd64)" {
		t.Errorf("String() = %q", got)
	}
	if got := (PlatformInfo{Name: "darwin", Version: "14.2", Arch: "arm64"}).String(); got != "darwin 14.2 (arm64)" {
		t.Errorf("String() = %q", got)
	}
}
