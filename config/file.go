package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DirName is the directory under the user's home holding the config
	// file.
	DirName = ".newsnow"
	// FileName is the config file inside DirName.
	FileName = "config.yaml"
)

// ConfigPath returns ~/.newsnow/config.yaml.
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DirName, FileName), nil
}

// LoadConfigFile overlays ~/.newsnow/config.yaml onto cfg. A missing file
// leaves cfg untouched and is not an error. Returns true when a file was
// read.
func LoadConfigFile(cfg *Config) (bool, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return false, err
	}

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return false, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config file: %w", err)
	}

	return true, nil
}
