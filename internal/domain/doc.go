// Package domain defines the core business entities of the thought-challenge
// engine: the cognitive-distortion taxonomy, detected distortions, challenge
// questions, thought sessions, and the derived session statistics.
//
// Entities here are plain data with validation; they perform no I/O and hold
// no references to other layers.
package domain
