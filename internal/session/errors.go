package session

import "errors"

// Errors returned by the state machine.
var (
	// ErrInvalidTransition is returned when an action is not legal in the
	// machine's current state. The wrapped message names both.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrBusy is returned when a remote-invoking action is triggered while
	// another one is still in flight for the same session.
	ErrBusy = errors.New("another operation is in flight for this session")

	// ErrStale is returned when a remote result arrives after the session
	// was reset or saved; the result is discarded, never applied.
	ErrStale = errors.New("result discarded: session changed while the call was in flight")

	// ErrNoThought is returned when question generation is requested before
	// a thought has been analyzed.
	ErrNoThought = errors.New("no analyzed thought in this session")
)
