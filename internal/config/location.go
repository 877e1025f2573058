package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath returns the configuration file path. It first checks the
// NAMEGRID_CONFIG environment variable, then falls back to the XDG
// location ($XDG_CONFIG_HOME/namegrid/config, defaulting XDG_CONFIG_HOME
// to ~/.config).
func GetConfigPath() (string, error) {
	if configPath := os.Getenv("NAMEGRID_CONFIG"); configPath != "" {
		return configPath, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configHome, "namegrid", "config"), nil
}

// EnsureConfigDir ensures that the configuration directory exists.
func EnsureConfigDir() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	return os.MkdirAll(configDir, 0755)
}
