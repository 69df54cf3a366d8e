package logging

// Config defines the structure for logging configuration in sweep.yml.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info", "warn", "error").
	// Can be overridden by the SWEEP_LOG_LEVEL environment variable.
	Level string `yaml:"level" mapstructure:"level"`

	// ReportCaller, if true, includes the file, line, and function name in the log output.
	// Can be enabled with the SWEEP_LOG_CALLER=true environment variable.
	ReportCaller bool `yaml:"report_caller" mapstructure:"report_caller"`

	// Format configures the appearance of the log output.
	Format FormatConfig `yaml:"format" mapstructure:"format"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset string `yaml:"preset" mapstructure:"preset"`
	// DisableTimestamp disables the timestamp from the "default" and "simple" formats.
	DisableTimestamp bool `yaml:"disable_timestamp" mapstructure:"disable_timestamp"`
	// DisableComponent disables the component name from the "default" and "simple" formats.
	DisableComponent bool `yaml:"disable_component" mapstructure:"disable_component"`
}

// DefaultLevel is the level used when neither flags, config, nor the
// environment specify one. Warnings must stay visible so skipped
// directories and unreadable repositories are not silently dropped.
const DefaultLevel = "warn"
