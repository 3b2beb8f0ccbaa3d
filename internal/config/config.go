// Package config loads settings for the parsemath command from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/parsemath"
)

// Config holds command settings. Fields absent from a file keep their
// defaults.
type Config struct {
	// Strict rejects whitespace in expressions.
	Strict bool `yaml:"strict"`
	// MaxDepth limits expression nesting. Zero means no limit.
	MaxDepth int `yaml:"max_depth"`
	// IgnoreTrailing accepts input after a complete expression.
	IgnoreTrailing bool `yaml:"ignore_trailing"`
	// Format is the fmt verb used to print results.
	Format string `yaml:"format"`
	// Lines evaluates each input line as its own expression.
	Lines bool `yaml:"lines"`
	// Echo prints each parse tree before its result.
	Echo bool `yaml:"echo"`
}

// Default returns the settings used when there is no config file.
func Default() Config {
	return Config{
		MaxDepth: parsemath.DefaultMaxDepth,
		Format:   "%g",
	}
}

// Load reads and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	var errs []error
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth))
	}
	if c.Format == "" {
		errs = append(errs, errors.New("format must not be empty"))
	}
	return errors.Join(errs...)
}

// ParseOptions converts the settings to library options.
func (c Config) ParseOptions() []parsemath.ParseOption {
	opts := []parsemath.ParseOption{parsemath.MaxDepth(c.MaxDepth)}
	if c.Strict {
		opts = append(opts, parsemath.Strict())
	}
	if c.IgnoreTrailing {
		opts = append(opts, parsemath.IgnoreTrailing())
	}
	return opts
}
