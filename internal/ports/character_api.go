package ports

import (
	"context"

	"github.com/bft-labs/charview/internal/domain"
)

// CharacterAPI is the read-only character service consumed by the coordinator.
//
// Any HTTP response, successful or not, is reported through the envelope.
// A non-nil error means the call itself faulted (network, decoding, bad
// input) and the envelope must be ignored.
type CharacterAPI interface {
	// ListCharacters fetches the first page of characters.
	ListCharacters(ctx context.Context) (domain.Envelope[domain.Page], error)

	// GetCharacter fetches a single character by id.
	GetCharacter(ctx context.Context, id string) (domain.Envelope[domain.Character], error)
}

// requestIDKey is the context key carrying the per-fetch request id.
type requestIDKey struct{}

// WithRequestID returns a context carrying id for adapters to propagate.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
