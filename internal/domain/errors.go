package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the charview domain.
// They can be checked with errors.Is.
var (
	// ErrScopeClosed is returned when a load is issued after the coordinator closed.
	ErrScopeClosed = errors.New("charview: scope closed")

	// ErrShutdownTimeout is returned when in-flight loads outlive the shutdown timeout.
	ErrShutdownTimeout = errors.New("charview: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("charview: invalid configuration")

	// ErrEmptyID is returned when a character is requested without an id.
	ErrEmptyID = errors.New("character id is required")
)

// ErrorKind classifies a failed fetch.
type ErrorKind int

const (
	// ErrorKindTransport covers faults of the call itself: network errors,
	// decoding errors and invalid input.
	ErrorKindTransport ErrorKind = iota

	// ErrorKindProtocol means the API answered with a non-success status.
	ErrorKindProtocol
)

// String returns a human-readable representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTransport:
		return "transport"
	case ErrorKindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// FetchError is a failed fetch. Its Error text is what the UI shows.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	Reason     string
	Err        error
}

// ProtocolError builds a FetchError for a non-success response.
func ProtocolError(statusCode int, reason string) *FetchError {
	return &FetchError{Kind: ErrorKindProtocol, StatusCode: statusCode, Reason: reason}
}

// TransportError builds a FetchError for a call that faulted.
func TransportError(err error) *FetchError {
	return &FetchError{Kind: ErrorKindTransport, Err: err}
}

// Error formats "Error: <code> <reason>" for protocol failures and
// "Error: <message>" for everything else.
func (e *FetchError) Error() string {
	if e.Kind == ErrorKindProtocol {
		if e.Reason == "" {
			return fmt.Sprintf("Error: %d", e.StatusCode)
		}
		return fmt.Sprintf("Error: %d %s", e.StatusCode, e.Reason)
	}
	if e.Err == nil {
		return "Error: "
	}
	return "Error: " + e.Err.Error()
}

// Unwrap returns the underlying cause, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// FromEnvelope converts a non-success envelope into a FetchError.
// It returns nil for successful envelopes.
func FromEnvelope[T any](env Envelope[T]) *FetchError {
	if env.IsSuccessful {
		return nil
	}
	return ProtocolError(env.StatusCode, env.StatusMessage)
}
