package platform

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

type PlatformInfo struct {
	Name    string
	Version string
	Arch    string
}

func (p PlatformInfo) String() string {
	if p.Version == "" {
		return fmt.Sprintf("%s (%s)", p.Name, p.Arch)
	}
	return fmt.Sprintf("%s %s (%s)", p.Name, p.Version, p.Arch)
}

func GetPlatformInfo() PlatformInfo {
	return PlatformInfo{
		Name:    runtime.GOOS,
		Version: getOSVersion(runtime.GOOS),
		Arch:    runtime.GOARCH,
	}
}

func getOSVersion(osName string) string {
	switch osName {
	case "darwin":
		out, err := exec.Command("sw_vers", "-productVersion").Output()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(out))

	case "windows":
		out, err := exec.Command("cmd", "/c", "ver").Output()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(out))

	case "linux":
		content, err := os.ReadFile("/etc/os-release")
		if err != nil {
			return ""
		}
		return parseOSRelease(string(content))

	default:
		return ""
	}
}

// parseOSRelease prefers PRETTY_NAME and falls back to NAME VERSION_ID
func parseOSRelease(content string) string {
	fields := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		fields[key] = strings.Trim(value, `"'`)
	}

	if pretty := fields["PRETTY_NAME"]; pretty != "" {
		return pretty
	}
	return strings.TrimSpace(fields["NAME"] + " " + fields["VERSION_ID"])
}
