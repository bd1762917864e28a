// Package config provides configuration management for the contract test runner.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL      = "https://reqres.in/api"
	DefaultAPIKey       = "reqres-free-v1"
	DefaultAPIKeyHeader = "x-api-key"
	DefaultTimeout      = 30 * time.Second

	envPrefix = "REQRES"
)

// Config holds the runner configuration
type Config struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	APIKeyHeader string        `mapstructure:"api_key_header"`
	Timeout      time.Duration `mapstructure:"timeout"`

	// ReplayFile, if set, is a recording to serve responses from instead of the network.
	ReplayFile string `mapstructure:"replay_file"`
}

// Load reads configuration from defaults, an optional .env file in the working directory, and
// REQRES_* environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("api_key", DefaultAPIKey)
	v.SetDefault("api_key_header", DefaultAPIKeyHeader)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("replay_file", "")

	// Load .env file into the environment (optional, won't fail if not found). Variables that
	// are already set are not overridden.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env file: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	cfg := &Config{
		BaseURL:      v.GetString("base_url"),
		APIKey:       v.GetString("api_key"),
		APIKeyHeader: v.GetString("api_key_header"),
		Timeout:      v.GetDuration("timeout"),
		ReplayFile:   v.GetString("replay_file"),
	}
	return cfg, nil
}

// Validate checks that the configuration can be used to run tests.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL must not be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("base URL %q must be an absolute URL", c.BaseURL)
	}
	if c.APIKeyHeader == "" {
		return errors.New("API key header name must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
