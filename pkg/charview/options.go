package charview

import (
	"github.com/bft-labs/charview/internal/app"
	"github.com/bft-labs/charview/internal/ports"
	"github.com/bft-labs/charview/pkg/log"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Re-export event types so embedders need not import internal packages.
type (
	// EventHandler receives fetch results and lifecycle transitions.
	EventHandler = app.EventHandler

	// NopEventHandler ignores every event. Embed it to implement only some methods.
	NopEventHandler = app.NopEventHandler

	FetchSuccessEvent = app.FetchSuccessEvent
	FetchErrorEvent   = app.FetchErrorEvent
	StateChangeEvent  = app.StateChangeEvent
)

// Option configures optional behavior of a Viewer.
type Option func(*options)

// options holds the optional configuration for a Viewer instance.
type options struct {
	httpClient   ports.HTTPClient
	logger       log.Logger
	eventHandler EventHandler
}

// WithHTTPClient sets a custom HTTP client for API communication.
// If not provided, a default client with the configured timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for fetch and lifecycle events.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}
