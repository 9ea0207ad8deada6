package config

import "time"

// CasebookConfig is the top-level configuration structure for casebook.
type CasebookConfig struct {
	Output      string      `yaml:"output,omitempty"`      // Default output format (default: table)
	LogLevel    string      `yaml:"logLevel,omitempty"`    // Log level (default: info)
	NameWidth   int         `yaml:"nameWidth,omitempty"`   // Table cell width (default: 60)
	Parallelism int         `yaml:"parallelism,omitempty"` // Directories collected at once, 0 means unbounded
	Watch       WatchConfig `yaml:"watch,omitempty"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce,omitempty"` // Quiet period before re-collecting (default: 300ms)
}

// envOverrides mirrors the settings that can come from the environment.
// Zero values mean "not set".
type envOverrides struct {
	Output        string        `envconfig:"OUTPUT"`
	LogLevel      string        `envconfig:"LOG_LEVEL"`
	NameWidth     int           `envconfig:"NAME_WIDTH"`
	Parallelism   int           `envconfig:"PARALLELISM"`
	WatchDebounce time.Duration `envconfig:"WATCH_DEBOUNCE"`
}
