package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/s0up4200/evbrite/filter"
)

// EnvPrefix prefixes environment overrides, e.g. EVBRITE_EVENTBRITE_TOKEN
const EnvPrefix = "EVBRITE"

// Load loads the configuration from file and environment. Without an
// explicit path a missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Current directory first, then home, then /etc
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".evbrite"))
		}
		v.AddConfigPath("/etc/evbrite/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Eventbrite defaults; the empty token default lets the env var bind
	v.SetDefault("eventbrite.host", "https://www.eventbriteapi.com/")
	v.SetDefault("eventbrite.token", "")
	v.SetDefault("eventbrite.auth", AuthQuery)
	v.SetDefault("eventbrite.timeout", "30s")

	v.SetDefault("defaults.user_id", "me")
	v.SetDefault("defaults.organizer_id", "")

	v.SetDefault("output.format", FormatTable)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("update.repository", "s0up4200/evbrite")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Eventbrite.Token) == "" || cfg.Eventbrite.Token == "your-token-here" {
		return fmt.Errorf("eventbrite.token must be set to a valid OAuth token")
	}

	if cfg.Eventbrite.Host == "" {
		return fmt.Errorf("eventbrite.host is required")
	}

	if cfg.Eventbrite.Auth != AuthQuery && cfg.Eventbrite.Auth != AuthBearer {
		return fmt.Errorf("invalid eventbrite.auth: %s (must be '%s' or '%s')", cfg.Eventbrite.Auth, AuthQuery, AuthBearer)
	}

	if cfg.Eventbrite.Timeout <= 0 {
		return fmt.Errorf("eventbrite.timeout must be positive")
	}

	if err := ValidateOutputFormat(cfg.Output.Format); err != nil {
		return err
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	// Presets must compile
	for name, expression := range cfg.Filter.Presets {
		if _, err := filter.CompileFilter(expression); err != nil {
			return fmt.Errorf("invalid filter.presets.%s: %w", name, err)
		}
	}

	return nil
}

// ValidateOutputFormat checks a table/json/yaml output format name
func ValidateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be '%s', '%s' or '%s')", format, FormatTable, FormatJSON, FormatYAML)
}
