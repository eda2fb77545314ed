package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfigPath overrides the configuration file location.
const EnvConfigPath = "CHARTVIEW_CONFIG"

// AppDir is the per-user directory name shared by the configuration file and
// the fs storage backend.
const AppDir = "chart-view"

// GetConfigPath returns $CHARTVIEW_CONFIG when set, else
// $UserConfigDir/chart-view/config, next to the default fs store.
func GetConfigPath() (string, error) {
	if configPath := os.Getenv(EnvConfigPath); configPath != "" {
		return configPath, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(base, AppDir, "config"), nil
}

// EnsureConfigDir creates the directory holding the configuration file.
func EnsureConfigDir() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Dir(configPath), 0o755)
}
