package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ligaops/competition-engine/internal/domain/lineup"
)

// Sentinel errors. Typed errors below unwrap to these so transport layers
// can map kinds with errors.Is while keeping full context for logging.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidTransition     = errors.New("invalid state transition")
	ErrValidationFailed      = errors.New("lineup validation failed")
	ErrPreconditionNotMet    = errors.New("precondition not met")
	ErrConflict              = errors.New("concurrency conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// InvalidTransitionError reports a state change attempted from an
// incompatible source state. No partial mutation happens on this error.
type InvalidTransitionError struct {
	Entity string
	ID     string
	From   string
	Event  string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s %s: event %q is not valid from state %q", e.Entity, e.ID, e.Event, e.From)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// ValidationError carries every lineup composition violation found, so a
// caller can report all problems at once.
type ValidationError struct {
	Violations []lineup.Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "lineup validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// PreconditionError reports a lifecycle guard failure with every unmet
// condition, so callers can surface exactly what is missing.
type PreconditionError struct {
	Target  string
	Missing []string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot enter %s: %s", e.Target, strings.Join(e.Missing, ", "))
}

func (e *PreconditionError) Unwrap() error { return ErrPreconditionNotMet }

// ConflictError reports an optimistic-lock mismatch; the caller must
// re-read and retry.
type ConflictError struct {
	Entity string
	ID     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s was modified concurrently", e.Entity, e.ID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
