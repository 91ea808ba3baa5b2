package charview

import (
	"testing"

	"github.com/rs/zerolog"

	pkg "github.com/bft-labs/charview/pkg/charview"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %v, want %v", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.HTTPTimeout != pkg.DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want %v", cfg.HTTPTimeout, pkg.DefaultHTTPTimeout)
	}
}

func TestNew(t *testing.T) {
	v, err := New(DefaultConfig(), WithLogger(ConsoleLogger(zerolog.Disabled)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := v.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
