package config

import "fmt"

// Validate checks the loaded configuration for values the engine or the
// codecs would reject later, so errors surface before any input is read.
func (c *Config) Validate() error {
	if c.RepeatThreshold < 1 {
		return fmt.Errorf("repeat_threshold must be >= 1, got %d", c.RepeatThreshold)
	}
	switch c.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("format must be json or yaml, got %q", c.Format)
	}
	switch c.LogLevel {
	case "error", "warn", "warning", "info", "debug",
		"ERROR", "WARN", "WARNING", "INFO", "DEBUG":
	default:
		return fmt.Errorf("log_level must be error, warn, info or debug, got %q", c.LogLevel)
	}
	return nil
}
