package logger

import (
	"fmt"
	"slices"
)

// Config controls how authkit loggers write entries.
type Config struct {
	// Level is the minimum severity that gets written: trace, debug, info,
	// warn, error, or fatal.
	Level string `yaml:"level" mapstructure:"level"`

	// Format selects the encoder. FormatJSON emits one JSON object per
	// line; FormatConsole and FormatPretty switch to the colorized writer.
	Format string `yaml:"format" mapstructure:"format"`

	// Output routes entries to "stdout" or "stderr".
	Output string `yaml:"output" mapstructure:"output"`

	// NoColor strips ANSI colors from console output.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`

	// Timestamp stamps each entry; ApplyDefaults always re-enables it.
	Timestamp bool `yaml:"timestamp" mapstructure:"timestamp"`

	// Caller appends the file:line of the logging call site.
	Caller bool `yaml:"caller" mapstructure:"caller"`

	// ServiceName tags console output and names the global logger.
	// config.LoadService fills it from the service config when empty.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
}

// ApplyDefaults fills unset fields with the stock console setup.
func (c *Config) ApplyDefaults() {
	setIfEmpty(&c.Level, "info")
	setIfEmpty(&c.Format, FormatConsole)
	setIfEmpty(&c.Output, "stdout")
	setIfEmpty(&c.ServiceName, "authkit")
	c.Timestamp = true
}

var (
	levelNames  = []string{"trace", "debug", "info", "warn", "error", "fatal"}
	formatNames = []string{FormatJSON, FormatConsole, FormatPretty}
)

// Validate rejects level and format values the writer cannot honor.
func (c *Config) Validate() error {
	if !slices.Contains(levelNames, c.Level) {
		return fmt.Errorf("logging.level must be one of %v (got: %s)", levelNames, c.Level)
	}
	if !slices.Contains(formatNames, c.Format) {
		return fmt.Errorf("logging.format must be one of %v (got: %s)", formatNames, c.Format)
	}
	return nil
}

func setIfEmpty(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}
