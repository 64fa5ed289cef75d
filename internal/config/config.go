/*
Package config holds the qtest driver configuration.
*/
package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cloudeng.io/errors"
	"gopkg.in/yaml.v3"
)

// Config configures the qtest console.
type Config struct {
	// Echo prints every command before running it.
	Echo bool `yaml:"echo"`
	// LogLevel is one of debug, info, warn and error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`
	// FailPercent is the percentage of allocations that fail.
	FailPercent int `yaml:"fail_percent"`
	// Seed seeds the allocation failure source.
	Seed int64 `yaml:"seed"`
	// StringLimit is the size of the buffer removed values are copied into,
	// including the terminating NUL.
	StringLimit int `yaml:"string_limit"`
	// Check validates the current queue after every command.
	Check bool `yaml:"check"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		LogLevel:    "info",
		LogFormat:   "text",
		Seed:        1,
		StringLimit: 1024,
		Check:       true,
	}
}

// Parse parses yaml data on top of the default configuration.
// Unknown fields are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads and parses a yaml config file.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filename, err)
	}

	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	errs := &errors.M{}

	if _, err := c.Level(); err != nil {
		errs.Append(err)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errs.Append(fmt.Errorf("invalid log_format %q", c.LogFormat))
	}

	if c.FailPercent < 0 || c.FailPercent > 100 {
		errs.Append(fmt.Errorf("fail_percent %d out of range [0, 100]", c.FailPercent))
	}

	if c.StringLimit < 1 {
		errs.Append(fmt.Errorf("string_limit must be positive, got %d", c.StringLimit))
	}

	return errs.Err()
}

// Level returns the configured log level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
