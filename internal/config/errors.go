package config

import "fmt"

// ConfigurationError reports a config.yaml that exists but cannot be used.
type ConfigurationError struct {
	FilePath string // Full path to the file that caused the error
	Message  string // Human-readable error message
	Err      error
}

// Error implements the error interface
func (ce *ConfigurationError) Error() string {
	if ce.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ce.FilePath, ce.Message, ce.Err)
	}
	return fmt.Sprintf("%s: %s", ce.FilePath, ce.Message)
}

func (ce *ConfigurationError) Unwrap() error {
	return ce.Err
}
