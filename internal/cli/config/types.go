// Package config provides configuration management for the json-distiller
// CLI. Values are layered from defaults, an optional YAML config file,
// JSON_DISTILLER_* environment variables, and command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	// StrictTyping distinguishes int-valued from float-valued fields when
	// comparing structures.
	StrictTyping bool `koanf:"strict_typing"`

	// PositionDependent tracks shown examples per nesting depth instead of
	// globally.
	PositionDependent bool `koanf:"position_dependent"`

	// RepeatThreshold is the minimum run length before a run is summarized.
	RepeatThreshold int `koanf:"repeat_threshold"`

	// Format selects the input codec: json or yaml.
	Format string `koanf:"format"`

	// Output is the destination path. "-" writes to stdout; empty derives
	// <stem>_distilled.json from the input file name.
	Output string `koanf:"output"`

	// LogLevel sets the stderr log verbosity (error|warn|info|debug).
	LogLevel string `koanf:"log_level"`

	// Verbose enables debug logging and a size-reduction report.
	Verbose bool `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultFormat          = "json"
	DefaultLogLevel        = "warn"
	DefaultRepeatThreshold = 2
	DefaultOutputSuffix    = "_distilled.json"
)
