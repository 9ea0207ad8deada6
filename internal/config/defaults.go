package config

import "time"

const (
	// DefaultOutput is the output format used when nothing else is configured.
	DefaultOutput = "table"

	// DefaultNameWidth is the table cell width before values are truncated.
	DefaultNameWidth = 60

	// DefaultWatchDebounce is how long a case directory has to be quiet
	// before watch re-collects it.
	DefaultWatchDebounce = 300 * time.Millisecond
)

// GetDefaultConfig returns default configuration
func GetDefaultConfig() CasebookConfig {
	return CasebookConfig{
		Output:    DefaultOutput,
		LogLevel:  "warn",
		NameWidth: DefaultNameWidth,
		Watch: WatchConfig{
			Debounce: DefaultWatchDebounce,
		},
	}
}
