package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/charview/internal/domain"
	"github.com/bft-labs/charview/internal/ports"
	"github.com/bft-labs/charview/pkg/log"
	"github.com/bft-labs/charview/pkg/observable"
	"github.com/bft-labs/charview/pkg/viewstate"
)

// Coordinator turns character fetches into published view state.
//
// The legacy surface (LoadAll, LoadOne, Characters, Error) keeps independent
// cells: a list cell, a shared error cell and a fresh cell per detail load.
// ListState and LoadOneState publish explicit tri-state values instead.
// Concurrent loads are not deduplicated; the last completion wins.
type Coordinator struct {
	api    ports.CharacterAPI
	logger log.Logger
	events EventHandler
	scope  *Scope

	shutdownTimeout time.Duration
	newRequestID    func() string

	characters *observable.Cell[domain.Page]
	errs       *observable.Cell[string]
	list       *observable.Cell[viewstate.State[domain.Page]]
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithEventHandler sets the handler notified of fetch results and scope transitions.
func WithEventHandler(handler EventHandler) Option {
	return func(c *Coordinator) {
		c.events = handler
	}
}

// WithShutdownTimeout sets how long Close waits for in-flight loads.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.shutdownTimeout = d
	}
}

// WithRequestIDs replaces the request ID generator.
func WithRequestIDs(fn func() string) Option {
	return func(c *Coordinator) {
		c.newRequestID = fn
	}
}

// NewCoordinator creates a coordinator with empty cells and an open scope.
func NewCoordinator(api ports.CharacterAPI, opts ...Option) *Coordinator {
	c := &Coordinator{
		api:             api,
		logger:          log.NewNoopLogger(),
		events:          NopEventHandler{},
		shutdownTimeout: DefaultShutdownTimeout,
		newRequestID:    uuid.NewString,
		characters:      observable.NewCell[domain.Page](),
		errs:            observable.NewCell[string](),
		list:            observable.NewCell[viewstate.State[domain.Page]](),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.scope = NewScope(c.logger, eventEmitterWrapper{handler: c.events})
	return c
}

// Characters returns the list cell. It holds the page of the last successful LoadAll.
func (c *Coordinator) Characters() observable.Readable[domain.Page] {
	return c.characters
}

// Error returns the shared error cell written by every failed load.
func (c *Coordinator) Error() observable.Readable[string] {
	return c.errs
}

// ListState returns the tri-state projection of LoadAll.
func (c *Coordinator) ListState() observable.Readable[viewstate.State[domain.Page]] {
	return c.list
}

// State returns the lifecycle state of the coordinator scope.
func (c *Coordinator) State() State {
	return c.scope.State()
}

// LoadAll fetches the character list in the background. On success the list
// cell is replaced; on failure the error text goes to the error cell and the
// list cell is left as it was.
func (c *Coordinator) LoadAll(ctx context.Context) {
	runCtx, done, ok := c.reserve(ctx, OpList, "")
	if !ok {
		return
	}
	c.list.Set(viewstate.Loading[domain.Page]())

	go func() {
		defer done()
		page, ferr := c.fetchAll(runCtx)
		if !c.publishable(runCtx, OpList, "") {
			return
		}
		if ferr != nil {
			c.errs.Set(ferr.Error())
			c.list.Set(viewstate.Failure[domain.Page](ferr))
			return
		}
		c.characters.Set(page)
		c.list.Set(viewstate.Success(page))
	}()
}

// LoadOne fetches a single character in the background and returns a cell
// that receives it. A failure is written to the shared error cell only, so
// the returned cell stays empty.
func (c *Coordinator) LoadOne(ctx context.Context, id string) observable.Readable[domain.Character] {
	cell := observable.NewCell[domain.Character]()

	runCtx, done, ok := c.reserve(ctx, OpCharacter, id)
	if !ok {
		return cell
	}

	go func() {
		defer done()
		character, ferr := c.fetchOne(runCtx, id)
		if !c.publishable(runCtx, OpCharacter, id) {
			return
		}
		if ferr != nil {
			c.errs.Set(ferr.Error())
			return
		}
		cell.Set(character)
	}()

	return cell
}

// LoadOneState is LoadOne with the error scoped to the call. The returned
// cell starts at Loading. Failures are also written to the shared error cell.
func (c *Coordinator) LoadOneState(ctx context.Context, id string) observable.Readable[viewstate.State[domain.Character]] {
	cell := observable.NewCellWith(viewstate.Loading[domain.Character]())

	runCtx, done, ok := c.reserve(ctx, OpCharacter, id)
	if !ok {
		cell.Set(viewstate.Failure[domain.Character](domain.TransportError(domain.ErrScopeClosed)))
		return cell
	}

	go func() {
		defer done()
		character, ferr := c.fetchOne(runCtx, id)
		if !c.publishable(runCtx, OpCharacter, id) {
			return
		}
		if ferr != nil {
			c.errs.Set(ferr.Error())
			cell.Set(viewstate.Failure[domain.Character](ferr))
			return
		}
		cell.Set(viewstate.Success(character))
	}()

	return cell
}

// FetchAll fetches the character list and returns it to the caller without
// touching any cell. Errors are *domain.FetchError.
func (c *Coordinator) FetchAll(ctx context.Context) (domain.Page, error) {
	runCtx, done, ok := c.reserve(ctx, OpList, "")
	if !ok {
		return domain.Page{}, domain.ErrScopeClosed
	}
	defer done()

	page, ferr := c.fetchAll(runCtx)
	if ferr != nil {
		return domain.Page{}, ferr
	}
	return page, nil
}

// FetchOne fetches a single character without touching any cell.
// An empty id fails with an error matching domain.ErrEmptyID.
func (c *Coordinator) FetchOne(ctx context.Context, id string) (domain.Character, error) {
	runCtx, done, ok := c.reserve(ctx, OpCharacter, id)
	if !ok {
		return domain.Character{}, domain.ErrScopeClosed
	}
	defer done()

	character, ferr := c.fetchOne(runCtx, id)
	if ferr != nil {
		return domain.Character{}, ferr
	}
	return character, nil
}

// Wait blocks until every in-flight load has finished.
func (c *Coordinator) Wait() {
	c.scope.Wait()
}

// Close cancels in-flight loads and waits for them up to the shutdown
// timeout. Results of canceled loads are not published. Loads issued after
// Close are dropped. Closing twice returns domain.ErrScopeClosed.
func (c *Coordinator) Close() error {
	if err := c.scope.TransitionTo(StateClosing, "Close() called"); err != nil {
		return err
	}

	c.logger.Info("closing coordinator", log.Int("inflight", c.scope.InFlight()))
	c.scope.Cancel()

	err := c.scope.WaitWithTimeout(c.shutdownTimeout)
	if terr := c.scope.TransitionTo(StateClosed, "shutdown complete"); terr != nil {
		c.logger.Warn("failed to transition to closed", log.Err(terr))
	}
	return err
}

// reserve registers a load with the scope and derives its context. The
// returned func must be called when the load finishes.
func (c *Coordinator) reserve(ctx context.Context, op, id string) (context.Context, func(), bool) {
	if !c.scope.AddWorker() {
		c.logger.Warn("load dropped, coordinator closed",
			log.String("operation", op),
			log.String("id", id),
		)
		return nil, nil, false
	}

	runCtx, cancel := c.scope.Bind(ctx)
	runCtx = ports.WithRequestID(runCtx, c.newRequestID())
	return runCtx, func() {
		cancel()
		c.scope.WorkerDone()
	}, true
}

// publishable reports whether a finished load may still publish its result.
func (c *Coordinator) publishable(ctx context.Context, op, id string) bool {
	if ctx.Err() == nil {
		return true
	}
	c.logger.Debug("result discarded",
		log.String("operation", op),
		log.String("id", id),
		log.String("request_id", ports.RequestID(ctx)),
		log.Err(ctx.Err()),
	)
	return false
}

func (c *Coordinator) fetchAll(ctx context.Context) (domain.Page, *domain.FetchError) {
	start := time.Now()

	env, err := c.api.ListCharacters(ctx)
	if err != nil {
		return domain.Page{}, c.failed(ctx, OpList, "", start, domain.TransportError(err))
	}
	if ferr := domain.FromEnvelope(env); ferr != nil {
		return domain.Page{}, c.failed(ctx, OpList, "", start, ferr)
	}

	var page domain.Page
	if env.Body != nil {
		page = *env.Body
	}
	c.succeeded(ctx, OpList, "", start, page.Len())
	return page, nil
}

func (c *Coordinator) fetchOne(ctx context.Context, id string) (domain.Character, *domain.FetchError) {
	start := time.Now()

	if id == "" {
		return domain.Character{}, c.failed(ctx, OpCharacter, id, start, domain.TransportError(domain.ErrEmptyID))
	}

	env, err := c.api.GetCharacter(ctx, id)
	if err != nil {
		return domain.Character{}, c.failed(ctx, OpCharacter, id, start, domain.TransportError(err))
	}
	if ferr := domain.FromEnvelope(env); ferr != nil {
		return domain.Character{}, c.failed(ctx, OpCharacter, id, start, ferr)
	}

	var character domain.Character
	if env.Body != nil {
		character = *env.Body
	}
	c.succeeded(ctx, OpCharacter, id, start, 1)
	return character, nil
}

func (c *Coordinator) succeeded(ctx context.Context, op, id string, start time.Time, items int) {
	event := FetchSuccessEvent{
		RequestID:   ports.RequestID(ctx),
		Operation:   op,
		CharacterID: id,
		Items:       items,
		Duration:    time.Since(start),
	}
	c.logger.Debug("fetch succeeded",
		log.String("operation", op),
		log.String("id", id),
		log.String("request_id", event.RequestID),
		log.Int("items", items),
		log.Duration("duration", event.Duration),
	)
	c.events.OnFetchSuccess(event)
}

func (c *Coordinator) failed(ctx context.Context, op, id string, start time.Time, ferr *domain.FetchError) *domain.FetchError {
	event := FetchErrorEvent{
		RequestID:   ports.RequestID(ctx),
		Operation:   op,
		CharacterID: id,
		Err:         ferr,
		Duration:    time.Since(start),
	}
	c.logger.Warn("fetch failed",
		log.String("operation", op),
		log.String("id", id),
		log.String("request_id", event.RequestID),
		log.String("kind", ferr.Kind.String()),
		log.Err(ferr),
		log.Duration("duration", event.Duration),
	)
	c.events.OnFetchError(event)
	return ferr
}
