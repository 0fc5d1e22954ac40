package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyThought is returned when thought text is empty.
	ErrEmptyThought = errors.New("thought text cannot be empty")

	// ErrEmptyResponse is returned when the model reply contains no usable text.
	ErrEmptyResponse = errors.New("model returned no text")
)
