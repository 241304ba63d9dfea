package config

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvDefaultStatus = "FAKEHTTP_DEFAULT_STATUS"
	EnvLogLevel      = "FAKEHTTP_LOG_LEVEL"
	EnvLogFormat     = "FAKEHTTP_LOG_FORMAT"
)

// LoadEnvConfig overrides cfg from environment variables.
// It only sets values that are present (and parse) in the environment.
func LoadEnvConfig(cfg *Config) {
	if v := os.Getenv(EnvDefaultStatus); v != "" {
		if status, err := strconv.Atoi(v); err == nil {
			cfg.DefaultStatus = status
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
}
