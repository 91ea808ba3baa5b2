package charview

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bft-labs/charview/internal/domain"
)

// DefaultAPIURL is the public Dragon Ball character API.
const DefaultAPIURL = "https://dragonball-api.com/api"

// Default values applied by Config.SetDefaults.
const (
	DefaultHTTPTimeout     = 15 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	DefaultUserAgent       = "charview/" + Version
)

// Config configures a Viewer.
type Config struct {
	// APIURL is the API base; characters are fetched from APIURL + "/characters".
	APIURL string

	// HTTPTimeout bounds each request of the default HTTP client.
	HTTPTimeout time.Duration

	// ShutdownTimeout bounds how long Close waits for in-flight loads.
	ShutdownTimeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string
}

// SetDefaults fills zero fields with default values.
func (c *Config) SetDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
}

// Validate checks the configuration. It returns an error wrapping
// domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: APIURL must be an absolute http(s) URL, got %q", domain.ErrInvalidConfig, c.APIURL)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: HTTPTimeout must not be negative", domain.ErrInvalidConfig)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: ShutdownTimeout must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}
