package config

import (
	"os"
	"path/filepath"
)

// GetGlobalConfigDir returns the path to the global configuration directory (~/.chronicler).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".chronicler"), nil
}
