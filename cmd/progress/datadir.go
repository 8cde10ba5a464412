// ABOUTME: Data directory resolution for the progress CLI: flag, PROGRESS_DATA_DIR, then XDG.
// ABOUTME: Checks XDG_DATA_HOME / XDG_CONFIG_HOME, falling back to ~/.local/share and ~/.config.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// dataDirEnv overrides the XDG default when set.
const dataDirEnv = "PROGRESS_DATA_DIR"

// defaultDataDir returns the default board library directory.
// It checks XDG_DATA_HOME first, then falls back to ~/.local/share/progress.
func defaultDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "progress"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", "progress"), nil
}

// resolveDataDir returns the data directory to use, preferring an explicit
// override, then PROGRESS_DATA_DIR, then the XDG-based default.
func resolveDataDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv(dataDirEnv); env != "" {
		return env, nil
	}
	return defaultDataDir()
}

// defaultConfigDir returns the directory holding config.env.
// It checks XDG_CONFIG_HOME first, then falls back to ~/.config/progress.
func defaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "progress"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".config", "progress"), nil
}
