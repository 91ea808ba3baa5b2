package cliconfig

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/charview/internal/domain"
)

// DefaultAPIURL is the default character API endpoint.
const DefaultAPIURL = "https://dragonball-api.com/api"

// Config holds CLI configuration for charview.
type Config struct {
	APIURL string

	HTTPTimeout     time.Duration
	ShutdownTimeout time.Duration

	LogLevel string
	LogFile  string

	Watch bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		APIURL:          DefaultAPIURL,
		HTTPTimeout:     15 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		LogLevel:        "info",
	}
}

// Validate checks the configuration for errors and normalizes the API URL.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}

	// Ensure no trailing slash
	c.APIURL = strings.TrimRight(c.APIURL, "/")

	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("%w: api-url: %v", domain.ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api-url must be an absolute http(s) URL, got %q", domain.ErrInvalidConfig, c.APIURL)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", domain.ErrInvalidConfig)
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log-level: %v", domain.ErrInvalidConfig, err)
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setDurationValue sets an already parsed duration if positive and flag not changed.
func (s *configSetter) setDurationValue(flag string, value time.Duration, dst *time.Duration) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
