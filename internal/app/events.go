package app

import (
	"time"

	"github.com/bft-labs/charview/internal/domain"
)

// Operation names reported in events and logs.
const (
	OpList      = "list"
	OpCharacter = "character"
)

// FetchSuccessEvent describes a completed fetch.
type FetchSuccessEvent struct {
	RequestID   string
	Operation   string
	CharacterID string
	Items       int
	Duration    time.Duration
}

// FetchErrorEvent describes a failed fetch.
type FetchErrorEvent struct {
	RequestID   string
	Operation   string
	CharacterID string
	Err         *domain.FetchError
	Duration    time.Duration
}

// StateChangeEvent describes a scope lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// EventHandler receives coordinator events. Methods are called synchronously
// from the fetch goroutine (or the closing goroutine for state changes) and
// should return quickly.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnFetchSuccess(event FetchSuccessEvent)
	OnFetchError(event FetchErrorEvent)
}

// NopEventHandler ignores every event. Embed it to implement only some methods.
type NopEventHandler struct{}

func (NopEventHandler) OnStateChange(StateChangeEvent)   {}
func (NopEventHandler) OnFetchSuccess(FetchSuccessEvent) {}
func (NopEventHandler) OnFetchError(FetchErrorEvent)     {}

// eventEmitterWrapper adapts EventHandler to the scope's EventEmitter.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e eventEmitterWrapper) OnStateChange(previous, current State, reason string) {
	e.handler.OnStateChange(StateChangeEvent{
		Previous: previous,
		Current:  current,
		Reason:   reason,
	})
}
