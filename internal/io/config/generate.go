package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bookdim/bookdim/pkg/config"
	"gopkg.in/yaml.v3"
)

// GetConfigDir returns the platform-specific configuration directory.
// - Linux/macOS: ~/.config/bookdim/
// - Windows: %APPDATA%\bookdim\
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	var configDir string
	if filepath.Separator == '/' {
		configDir = filepath.Join(homeDir, ".config", config.AppName)
	} else {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(homeDir, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, config.AppName)
	}

	return configDir, nil
}

// GetDefaultConfigPath returns the full path to the default config file.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, config.AppName+".yaml"), nil
}

// GenerateDefaultConfig creates a documented default config file at the
// platform-specific location. Returns the path where the config was
// created. Does NOT overwrite existing config files.
func GenerateDefaultConfig() (string, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	header := `# bookdim configuration file
# This file was auto-generated. Edit as needed.
#
# Configuration precedence (highest to lowest):
#   1. CLI flags (--host, --port, etc.)
#   2. Environment variables (BOOKDIM_*)
#   3. This config file
#   4. Built-in defaults

`

	body, err := yaml.Marshal(config.Defaults())
	if err != nil {
		return "", fmt.Errorf("failed to marshal defaults: %w", err)
	}

	content := append([]byte(header), body...)
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

// ConfigFileExists checks if a config file exists at the default location.
func ConfigFileExists() (bool, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ValidateGeneratedConfig reads and validates a generated config file.
func ValidateGeneratedConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
