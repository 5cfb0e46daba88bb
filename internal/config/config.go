// Package config loads ptedit configuration from a TOML file with
// environment-variable overrides. Missing files are not an error;
// every field has a default and validation happens once at load time.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.perfecttense.com"
	DefaultTimeout = 30 * time.Second
)

// Environment variables honored as overrides.
const (
	EnvAPIKey  = "PT_API_KEY"
	EnvAppKey  = "PT_APP_KEY"
	EnvBaseURL = "PT_BASE_URL"
)

// Errors returned by configuration validation.
var (
	ErrInvalidBaseURL = errors.New("base URL must be absolute http or https")
)

// Duration wraps time.Duration so TOML values like "30s" decode
// directly.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// APIConfig configures access to the proofreading service.
type APIConfig struct {
	Key     string   `toml:"key"`
	AppKey  string   `toml:"app_key"`
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

// InteractiveConfig configures interactive review behavior.
type InteractiveConfig struct {
	// Persist forwards accept/reject/undo decisions back to the
	// service.
	Persist bool `toml:"persist"`
	// SkipSuggestions leaves stylistic suggestions untouched in batch
	// mode.
	SkipSuggestions bool `toml:"skip_suggestions"`
}

// LoggingConfig configures diagnostic output.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Config is the full ptedit configuration.
type Config struct {
	API         APIConfig         `toml:"api"`
	Interactive InteractiveConfig `toml:"interactive"`
	Logging     LoggingConfig     `toml:"logging"`
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: Duration(DefaultTimeout),
		},
		Interactive: InteractiveConfig{
			Persist: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, applies environment overrides,
// and validates the result. A missing file is not an error; defaults
// and environment values still apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Fall through to env and defaults.
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.API.Key = v
	}
	if v := os.Getenv(EnvAppKey); v != "" {
		c.API.AppKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.API.BaseURL = v
	}
}

// Validate checks structural fields. The API key itself is only
// required by operations that talk to the service, so its presence is
// checked there, not here.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL)
	}
	if time.Duration(c.API.Timeout) <= 0 {
		c.API.Timeout = Duration(DefaultTimeout)
	}
	return nil
}
