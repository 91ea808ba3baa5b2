package charview

import (
	"net/http"

	httpAdapter "github.com/bft-labs/charview/internal/adapters/http"
	"github.com/bft-labs/charview/internal/app"
	"github.com/bft-labs/charview/pkg/log"
)

// State is the lifecycle state of a Viewer.
type State = app.State

// Lifecycle states.
const (
	StateOpen    = app.StateOpen
	StateClosing = app.StateClosing
	StateClosed  = app.StateClosed
)

// Viewer publishes character view state fetched from the API.
// The load, fetch and cell accessors are those of the embedded coordinator.
type Viewer struct {
	*app.Coordinator

	config Config
	client *httpAdapter.Client
	logger log.Logger
}

// New creates a Viewer with the given configuration.
// Returns an error if the configuration is invalid.
func New(cfg Config, opts ...Option) (*Viewer, error) {
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := options{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	client := httpAdapter.NewClient(cfg.APIURL, o.httpClient, o.logger)
	client.SetUserAgent(cfg.UserAgent)

	coordOpts := []app.Option{
		app.WithLogger(o.logger),
		app.WithShutdownTimeout(cfg.ShutdownTimeout),
	}
	if o.eventHandler != nil {
		coordOpts = append(coordOpts, app.WithEventHandler(o.eventHandler))
	}

	o.logger.Debug("viewer created",
		log.String("api_url", cfg.APIURL),
		log.Duration("http_timeout", cfg.HTTPTimeout),
	)

	return &Viewer{
		Coordinator: app.NewCoordinator(client, coordOpts...),
		config:      cfg,
		client:      client,
		logger:      o.logger,
	}, nil
}

// Config returns the configuration the viewer was created with.
func (v *Viewer) Config() Config {
	return v.config
}

// APIURL returns the base URL requests are currently sent to.
func (v *Viewer) APIURL() string {
	return v.client.BaseURL()
}

// SetAPIURL repoints subsequent requests at a new API base URL.
// Loads already in flight keep their original endpoint.
func (v *Viewer) SetAPIURL(apiURL string) error {
	cfg := v.config
	cfg.APIURL = apiURL
	if err := cfg.Validate(); err != nil {
		return err
	}
	v.client.SetBaseURL(cfg.APIURL)
	v.logger.Info("api url changed", log.String("api_url", cfg.APIURL))
	return nil
}
