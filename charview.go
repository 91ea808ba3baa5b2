// Package charview browses characters from the Dragon Ball API.
//
// This root package is a convenience entry point. The embeddable API lives in
// github.com/bft-labs/charview/pkg/charview and the CLI in cmd/charview.
//
// Example usage:
//
//	v, err := charview.New(charview.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer v.Close()
//	v.LoadAll(context.Background())
//	v.Wait()
package charview

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	pkg "github.com/bft-labs/charview/pkg/charview"
	"github.com/bft-labs/charview/pkg/log"
)

// Config holds the configuration of a Viewer.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = pkg.Config

// Viewer publishes character view state.
type Viewer = pkg.Viewer

// Option configures optional behavior of a Viewer.
type Option = pkg.Option

// DefaultAPIURL is the public character API.
const DefaultAPIURL = pkg.DefaultAPIURL

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	var cfg Config
	cfg.SetDefaults()
	return cfg
}

// New creates a Viewer. See pkg/charview.New.
func New(cfg Config, opts ...Option) (*Viewer, error) {
	return pkg.New(cfg, opts...)
}

// ConsoleLogger returns a logger writing human-readable output to stderr at
// the given level, for use with WithLogger.
func ConsoleLogger(level zerolog.Level) log.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()
	return log.NewZerologAdapterWithLogger(logger)
}

// WithLogger sets a custom logger. See pkg/charview.WithLogger.
func WithLogger(logger log.Logger) Option {
	return pkg.WithLogger(logger)
}
