package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied before any file or environment override.
const (
	DefaultHost                   = "127.0.0.1"
	DefaultPort                   = 8080
	DefaultLogLevel               = "info"
	DefaultRequestTimeoutSeconds  = 10
	DefaultShutdownTimeoutSeconds = 10
)

// Load reads configuration from an optional YAML file and environment
// variables, with environment variables taking precedence. When path is
// empty, a file named `todoapi.yaml` is searched in the working directory
// and `./configs`; a missing file is not an error. Environment variables
// use the prefix TODO and `.` replaced with `_`, e.g. TODO_SERVER_PORT.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Seed defaults so env-only configurations work without a file.
	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.request_timeout_seconds", DefaultRequestTimeoutSeconds)
	v.SetDefault("server.shutdown_timeout_seconds", DefaultShutdownTimeoutSeconds)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("todoapi")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	// Read config file if present; if not found, continue with defaults/env.
	// An explicitly requested file that cannot be read is still an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
