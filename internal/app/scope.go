package app

import (
	"context"
	"sync"
	"time"

	"github.com/bft-labs/charview/internal/domain"
	"github.com/bft-labs/charview/pkg/log"
)

// DefaultShutdownTimeout is the maximum time Close waits for in-flight loads.
const DefaultShutdownTimeout = 5 * time.Second

// State represents the lifecycle state of a coordinator scope.
type State int

const (
	StateOpen State = iota
	StateClosing
	StateClosed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "Open"
	case StateClosing:
		return "Closing"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// EventEmitter is called when the scope state changes.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// Scope owns the lifetime of a coordinator: a context canceled on close and
// a count of in-flight loads that Close can wait for.
type Scope struct {
	mu       sync.Mutex
	idle     *sync.Cond
	state    State
	inflight int

	ctx    context.Context
	cancel context.CancelFunc

	logger       log.Logger
	eventEmitter EventEmitter
}

// NewScope creates an open scope.
func NewScope(logger log.Logger, emitter EventEmitter) *Scope {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scope{
		state:        StateOpen,
		ctx:          ctx,
		cancel:       cancel,
		logger:       logger,
		eventEmitter: emitter,
	}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// State returns the current lifecycle state.
func (s *Scope) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TransitionTo attempts to transition to a new state.
// Valid transitions are Open -> Closing -> Closed.
func (s *Scope) TransitionTo(newState State, reason string) error {
	s.mu.Lock()
	oldState := s.state

	switch {
	case oldState == StateOpen && newState == StateClosing:
	case oldState == StateClosing && newState == StateClosed:
	default:
		s.mu.Unlock()
		return domain.ErrScopeClosed
	}

	s.state = newState
	s.mu.Unlock()

	// Emit event outside of lock
	if s.eventEmitter != nil {
		s.eventEmitter.OnStateChange(oldState, newState, reason)
	}

	s.logger.Debug("scope transition",
		log.String("from", oldState.String()),
		log.String("to", newState.String()),
		log.String("reason", reason),
	)

	return nil
}

// Context returns the scope context, canceled by Cancel.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Cancel cancels the scope context.
func (s *Scope) Cancel() {
	s.cancel()
}

// Bind derives a context from parent that is also canceled when the scope is.
func (s *Scope) Bind(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// AddWorker registers an in-flight load. It returns false once the scope
// has started closing, in which case WorkerDone must not be called.
func (s *Scope) AddWorker() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return false
	}
	s.inflight++
	return true
}

// WorkerDone marks an in-flight load as finished.
func (s *Scope) WorkerDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.inflight == 0 {
		s.idle.Broadcast()
	}
}

// InFlight returns the number of loads currently running.
func (s *Scope) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight
}

// Wait blocks until no loads are in flight.
func (s *Scope) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.inflight > 0 {
		s.idle.Wait()
	}
}

// WaitWithTimeout waits for all in-flight loads with a timeout.
// Returns ErrShutdownTimeout if the timeout expires.
func (s *Scope) WaitWithTimeout(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		s.logger.Warn("shutdown timeout, abandoning in-flight loads",
			log.Duration("timeout", timeout),
			log.Int("inflight", s.InFlight()),
		)
		return domain.ErrShutdownTimeout
	}
}
