package config

import (
	"fmt"
	"net/http"
)

// Config holds scope-wide settings.
type Config struct {
	// DefaultStatus is the status of the response returned when no setup
	// matches a call.
	DefaultStatus int `yaml:"defaultStatus,omitempty" json:"defaultStatus,omitempty"`

	// DefaultBody is the body of that response.
	DefaultBody string `yaml:"defaultBody,omitempty" json:"defaultBody,omitempty"`

	// DefaultContentType, if set, is sent as Content-Type on that response.
	DefaultContentType string `yaml:"defaultContentType,omitempty" json:"defaultContentType,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`

	// LogFormat is text or json.
	LogFormat string `yaml:"logFormat,omitempty" json:"logFormat,omitempty"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		DefaultStatus: http.StatusOK,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Validate checks the configuration for values the transport cannot use.
func (c *Config) Validate() error {
	if c.DefaultStatus < 100 || c.DefaultStatus > 599 {
		return &ValidationError{Field: "defaultStatus", Message: fmt.Sprintf("status %d is outside 100-599", c.DefaultStatus)}
	}
	return nil
}

// ValidationError represents a validation failure with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}
