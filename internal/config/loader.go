package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"casebook/pkg/logging"
)

const (
	userConfigDir  = ".config/casebook"
	configFileName = "config.yaml"
	envPrefix      = "CASEBOOK"
)

// GetDefaultConfigPath returns ~/.config/casebook.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}

	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads configuration from configPath, applies environment
// overrides and validates the result.
func LoadConfig(configPath string) (CasebookConfig, error) {
	config, err := loadFile(configPath)
	if err != nil {
		return CasebookConfig{}, err
	}

	if err := applyEnv(&config); err != nil {
		return CasebookConfig{}, err
	}

	if err := config.Validate(); err != nil {
		return CasebookConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// loadFile reads config.yaml from configPath on top of the defaults.
func loadFile(configPath string) (CasebookConfig, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Config", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return CasebookConfig{}, &ConfigurationError{FilePath: configFilePath, Message: "cannot read file", Err: err}
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		// config malformed
		return CasebookConfig{}, &ConfigurationError{FilePath: configFilePath, Message: "malformed YAML", Err: err}
	}
	logging.Info("Config", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// applyEnv overlays the CASEBOOK_* variables that are set.
func applyEnv(config *CasebookConfig) error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("processing environment: %w", err)
	}

	if env.Output != "" {
		config.Output = env.Output
	}
	if env.LogLevel != "" {
		config.LogLevel = env.LogLevel
	}
	if env.NameWidth != 0 {
		config.NameWidth = env.NameWidth
	}
	if env.Parallelism != 0 {
		config.Parallelism = env.Parallelism
	}
	if env.WatchDebounce != 0 {
		config.Watch.Debounce = env.WatchDebounce
	}
	return nil
}
