// Package logging provides logging configuration types.
package logging

import "errors"

// Config holds logging-specific configuration settings.
type Config struct {
	// Level is the logging level (debug, info, warn, error)
	Level string `yaml:"level"`
	// Encoding is the log encoding format (json, console)
	Encoding string `yaml:"encoding"`
	// Debug enables debug mode for additional logging
	Debug bool `yaml:"debug"`
}

// validLevels are the accepted logging levels.
var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Level == "" {
		return errors.New("logging level is required")
	}
	if !validLevels[c.Level] {
		return errors.New("invalid logging level: " + c.Level)
	}
	if c.Encoding != "" && c.Encoding != "json" && c.Encoding != "console" {
		return errors.New("invalid logging encoding: " + c.Encoding)
	}
	return nil
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Level:    "info",
		Encoding: "console",
	}
}
