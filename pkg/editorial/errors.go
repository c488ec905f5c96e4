package editorial

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrNotFound indicates no row matched the requested slug/version.
	ErrNotFound = errors.New("content not found")

	// ErrConflict indicates a concurrent modification was detected: a
	// (slug, version) pair already exists, or a slug change collides
	// with another lineage. Callers should retry with fresh data.
	ErrConflict = errors.New("content version conflict")

	// ErrInvalidContentType indicates an unsupported content type.
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrInvalidContentStatus indicates an unknown lifecycle status.
	ErrInvalidContentStatus = errors.New("invalid content status")

	// ErrInvalidSlug indicates a malformed slug.
	ErrInvalidSlug = errors.New("invalid slug")
)

// ValidationError reports a create or update payload that can never be
// persisted regardless of store state. The write is not attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Reason)
}

// TransitionError represents a failure inside a state-machine transition.
type TransitionError struct {
	Slug string
	Op   string
	Err  error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("content transition %s failed for slug %q: %v", e.Op, e.Slug, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}
