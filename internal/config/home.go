package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the screening home directory
const HomeEnv = "SCREENING_HOME"

// GetHome returns the screening home directory, creating it if needed.
// SCREENING_HOME wins; otherwise .screening under the working directory.
func GetHome() (string, error) {
	home := os.Getenv(HomeEnv)
	if home == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		home = filepath.Join(cwd, ".screening")
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create screening home directory: %w", err)
	}
	return home, nil
}

// ConfigPath returns $SCREENING_HOME/config.yaml
func ConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}

// ResolvePath anchors a relative path from the config inside the home directory
func ResolvePath(home, path string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(home, path)
}
