package store

import "errors"

// Errors returned by store implementations. Driver errors are wrapped with
// fmt.Errorf("...: %w", err); handlers map these to AppErrors.
var (
	// ErrNotFound indicates that a requested record or task does not exist,
	// or is not visible to the caller.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict indicates that a record with the same identity already exists.
	ErrConflict = errors.New("conflict")
)
