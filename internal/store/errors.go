package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrSessionNotFound is returned when a requested session record does
	// not exist in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidSession is returned when a session fails terminal-state
	// validation before being stored. Check the wrapped error for details.
	ErrInvalidSession = errors.New("invalid session")
)
