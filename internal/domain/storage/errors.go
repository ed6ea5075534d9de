// Package storage declares the error contract repositories share, so use
// cases can map persistence outcomes without knowing the backing store.
package storage

import "errors"

var (
	// ErrVersionMismatch signals an optimistic-concurrency failure: the row
	// changed between read and write. Callers must re-read and retry.
	ErrVersionMismatch = errors.New("storage: version mismatch")
	// ErrDuplicateID signals an insert with an already-used identity.
	ErrDuplicateID = errors.New("storage: duplicate id")
)
