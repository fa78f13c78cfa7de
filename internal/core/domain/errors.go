package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage indicates a persistence or cache failure. Storage
	// errors are surfaced, never silently swallowed, but must not abort
	// an otherwise-successful fetch.
	ErrStorage = errors.New("storage failure")
)
