package cliconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/bft-labs/charview/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %v, want %v", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, want 15s", cfg.HTTPTimeout)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func(mutate func(*Config)) Config {
		c := DefaultConfig()
		mutate(&c)
		return c
	}

	tests := []struct {
		name       string
		config     Config
		wantErr    bool
		wantAPIURL string
	}{
		{
			name:       "defaults",
			config:     DefaultConfig(),
			wantAPIURL: DefaultAPIURL,
		},
		{
			name:       "trailing slashes trimmed",
			config:     valid(func(c *Config) { c.APIURL = "http://localhost:8080/api//" }),
			wantAPIURL: "http://localhost:8080/api",
		},
		{
			name:       "api url defaults when omitted",
			config:     valid(func(c *Config) { c.APIURL = "" }),
			wantAPIURL: DefaultAPIURL,
		},
		{
			name:    "relative api url",
			config:  valid(func(c *Config) { c.APIURL = "/api" }),
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			config:  valid(func(c *Config) { c.APIURL = "ftp://example.com/api" }),
			wantErr: true,
		},
		{
			name:    "invalid http timeout",
			config:  valid(func(c *Config) { c.HTTPTimeout = 0 }),
			wantErr: true,
		},
		{
			name:    "invalid shutdown timeout",
			config:  valid(func(c *Config) { c.ShutdownTimeout = -time.Second }),
			wantErr: true,
		},
		{
			name:    "invalid log level",
			config:  valid(func(c *Config) { c.LogLevel = "loud" }),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidConfig) {
					t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if tt.config.APIURL != tt.wantAPIURL {
				t.Errorf("APIURL = %v, want %v", tt.config.APIURL, tt.wantAPIURL)
			}
		})
	}
}
