package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Eventbrite EventbriteConfig `mapstructure:"eventbrite"`
	Defaults   DefaultsConfig   `mapstructure:"defaults"`
	Output     OutputConfig     `mapstructure:"output"`
	Filter     FilterConfig     `mapstructure:"filter"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Update     UpdateConfig     `mapstructure:"update"`
}

// EventbriteConfig holds API connection details
type EventbriteConfig struct {
	Host  string `mapstructure:"host"`
	Token string `mapstructure:"token"`
	// Auth is "query" (token parameter) or "bearer" (Authorization header)
	Auth    string        `mapstructure:"auth"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UseBearer reports whether the token goes in an Authorization header
func (c EventbriteConfig) UseBearer() bool {
	return c.Auth == AuthBearer
}

// Auth modes
const (
	AuthQuery  = "query"
	AuthBearer = "bearer"
)

// DefaultsConfig holds ids used when a command is not given one
type DefaultsConfig struct {
	UserID      string `mapstructure:"user_id"`
	OrganizerID string `mapstructure:"organizer_id"`
}

// OutputConfig controls how commands print results
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig contains self-update settings
type UpdateConfig struct {
	// Repository is the GitHub "owner/name" releases are fetched from
	Repository string `mapstructure:"repository"`
}
