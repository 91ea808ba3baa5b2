package cliconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read by charview.
const EnvPrefix = "CHARVIEW_"

// EnvConfig holds the CHARVIEW_* environment variables.
type EnvConfig struct {
	APIURL          string        `env:"API_URL"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
	LogLevel        string        `env:"LOG_LEVEL"`
	LogFile         string        `env:"LOG_FILE"`
	Watch           *bool         `env:"WATCH"`
}

// LoadEnvConfig parses CHARVIEW_* variables from the process environment.
func LoadEnvConfig() (EnvConfig, error) {
	var ec EnvConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: EnvPrefix}); err != nil {
		return EnvConfig{}, fmt.Errorf("parse environment: %w", err)
	}
	return ec, nil
}

// ApplyEnvConfig applies CHARVIEW_* variables to the Config struct.
// Environment values override the config file but not explicitly set flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	ec, err := LoadEnvConfig()
	if err != nil {
		return err
	}

	s := newConfigSetter(changed)

	s.setString("api-url", ec.APIURL, &cfg.APIURL)
	s.setString("log-level", ec.LogLevel, &cfg.LogLevel)
	s.setString("log-file", ec.LogFile, &cfg.LogFile)

	s.setDurationValue("timeout", ec.HTTPTimeout, &cfg.HTTPTimeout)
	s.setDurationValue("shutdown-timeout", ec.ShutdownTimeout, &cfg.ShutdownTimeout)

	s.setBool("watch", ec.Watch, &cfg.Watch)

	return nil
}
