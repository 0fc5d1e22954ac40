// Package session implements the thought-challenge state machine: a strict
// forward progression from thought input through questioning, balancing, and
// review to a saved record, with an explicit reset as the only way back.
//
// One Machine owns exactly one in-progress session and holds no package-level
// state, so concurrent sessions (tests, multi-tab use) cannot interfere.
// Remote calls release the machine's lock while in flight; a busy flag
// rejects re-entrant triggers, and every remote result carries a generation
// token that must still match when it lands — results that arrive after a
// reset are discarded instead of being applied to a session they no longer
// belong to.
package session
