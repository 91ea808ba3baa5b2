package viewstate

// Status identifies which variant a State holds.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusFailure
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "Loading"
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// State is one of Loading, Success(data) or Failure(err).
// The zero value is Loading.
type State[T any] struct {
	status Status
	data   T
	err    error
}

// Loading returns a State that is waiting for a result.
func Loading[T any]() State[T] {
	return State[T]{status: StatusLoading}
}

// Success returns a State holding data.
func Success[T any](data T) State[T] {
	return State[T]{status: StatusSuccess, data: data}
}

// Failure returns a State holding err. A nil err is kept as a failure
// with an empty message.
func Failure[T any](err error) State[T] {
	return State[T]{status: StatusFailure, err: err}
}

// Status returns the active variant.
func (s State[T]) Status() Status {
	return s.status
}

// Data returns the payload of a Success state.
func (s State[T]) Data() (T, bool) {
	if s.status != StatusSuccess {
		var zero T
		return zero, false
	}
	return s.data, true
}

// Err returns the error of a Failure state, nil otherwise.
func (s State[T]) Err() error {
	if s.status != StatusFailure {
		return nil
	}
	return s.err
}

// Message returns the failure text, or "" unless the state is a Failure.
func (s State[T]) Message() string {
	if s.status != StatusFailure || s.err == nil {
		return ""
	}
	return s.err.Error()
}

// IsDone reports whether the query has settled (Success or Failure).
func (s State[T]) IsDone() bool {
	return s.status == StatusSuccess || s.status == StatusFailure
}
