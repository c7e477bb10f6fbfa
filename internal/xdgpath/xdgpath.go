package xdgpath

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDir is the directory name used below the XDG base directories.
const AppDir = "update-notifier-tray"

func getConfigHome() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return configHome, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(home, ".config"), nil
}

// ConfigPath returns the path for a config file. The directory is not created.
func ConfigPath(elem ...string) (string, error) {
	base, err := getConfigHome()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, AppDir)
	return filepath.Join(append([]string{dir}, elem...)...), nil
}
