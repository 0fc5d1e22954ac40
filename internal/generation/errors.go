package generation

import "errors"

// Common errors returned by remote generation adapters.
var (
	// ErrInvalidResponse is returned when the model response cannot be parsed
	// or does not match the expected shape.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to
	// safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve
	// on retry.
	ErrTransientFailure = errors.New("transient error during generation")

	// ErrInvalidConfig is returned when an adapter's configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrInvalidQuestionCount is returned when a question count other than
	// the simple or extended flow size is requested.
	ErrInvalidQuestionCount = errors.New("unsupported question count")
)
