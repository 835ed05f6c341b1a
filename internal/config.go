package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/upfront/internal/diff"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Output OutputConfig      `yaml:"output"`
	Write  WriteConfig       `yaml:"write"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	return c.Output.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level"`
	LogFormat string     `yaml:"log_format"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.LogFormat == "" {
		c.LogFormat = LogFormatText
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.In(LogFormatText, LogFormatJSON)),
	)
}

// OutputConfig controls what is printed before the confirmation prompt.
//
// Color is one of:
//   - "auto" (default): colour when stdout is a terminal.
//   - "always": force ANSI colour.
//   - "never": plain text with +/- line prefixes.
type OutputConfig struct {
	Color        string `yaml:"color"`
	ShowOriginal bool   `yaml:"show_original"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	if c.Color == "" {
		c.Color = string(diff.ColorAuto)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Color, validation.In(
			string(diff.ColorAuto), string(diff.ColorAlways), string(diff.ColorNever))),
	)
}

// ColorMode returns the configured colour mode.
func (c *OutputConfig) ColorMode() diff.ColorMode {
	return diff.ColorMode(c.Color)
}

// WriteConfig holds file writing options.
type WriteConfig struct {
	// CheckConflict re-hashes the note before writing and refuses to
	// overwrite it if it changed while the prompt was open.
	CheckConflict bool `yaml:"check_conflict"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelWarn,
			LogFormat: LogFormatText,
		},
		Output: OutputConfig{
			Color:        string(diff.ColorAuto),
			ShowOriginal: true,
		},
	}
}
