package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyThought is returned when a thought is empty after trimming.
	ErrEmptyThought = errors.New("thought cannot be empty")

	// ErrInvalidIntensity is returned when an intensity rating is outside [0, 10].
	ErrInvalidIntensity = errors.New("intensity must be between 0 and 10")

	// ErrEmptyBalancedThought is returned when a session is missing its
	// balanced thought at a point where one is required.
	ErrEmptyBalancedThought = errors.New("balanced thought cannot be empty")

	// ErrIncompleteAnswers is returned when a session's answers do not cover
	// every generated question with a non-blank entry.
	ErrIncompleteAnswers = errors.New("every question must have a non-blank answer")

	// ErrInvalidQuality is returned when an evaluation quality tier is not valid.
	ErrInvalidQuality = errors.New("invalid evaluation quality")

	// ErrUnknownDistortion is returned when a distortion type does not exist
	// in the taxonomy.
	ErrUnknownDistortion = errors.New("unknown distortion type")
)
