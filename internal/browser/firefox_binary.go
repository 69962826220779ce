package browser

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// findFirefoxBinary searches PATH, then a short list of per-platform
// default install locations, the same two-step order chrome.go used to
// use for locating Chrome's executable.
func findFirefoxBinary() (string, error) {
	if path, err := exec.LookPath(firefoxExecutableName()); err == nil {
		return path, nil
	}

	for _, candidate := range defaultFirefoxLocations() {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", NewError(ErrFirefoxNotFound, "firefox executable not found on PATH or in default install locations")
}

func firefoxExecutableName() string {
	if runtime.GOOS == "windows" {
		return "firefox.exe"
	}
	return "firefox"
}

func defaultFirefoxLocations() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/Applications/Firefox.app/Contents/MacOS/firefox",
			filepath.Join(os.Getenv("HOME"), "Applications/Firefox.app/Contents/MacOS/firefox"),
		}
	case "windows":
		return []string{
			`C:\Program Files\Mozilla Firefox\firefox.exe`,
			`C:\Program Files (x86)\Mozilla Firefox\firefox.exe`,
		}
	default:
		return []string{
			"/usr/bin/firefox",
			"/usr/local/bin/firefox",
			"/snap/bin/firefox",
			"/opt/firefox/firefox",
		}
	}
}
