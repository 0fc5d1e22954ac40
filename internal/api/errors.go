package api

import (
	"errors"
	"net/http"

	"github.com/curiouscoder-cmd/mindmend-api/internal/api/shared"
	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
	"github.com/curiouscoder-cmd/mindmend-api/internal/service"
	"github.com/curiouscoder-cmd/mindmend-api/internal/session"
	"github.com/curiouscoder-cmd/mindmend-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Unknown
// errors fall through to 500 so internal failure modes never leak as
// client-attributable statuses.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad input
	case errors.Is(err, domain.ErrEmptyThought),
		errors.Is(err, domain.ErrInvalidIntensity),
		errors.Is(err, domain.ErrEmptyBalancedThought),
		errors.Is(err, domain.ErrIncompleteAnswers),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Workflow conflicts: the request is well formed but not legal for the
	// session right now.
	case errors.Is(err, session.ErrInvalidTransition),
		errors.Is(err, session.ErrBusy),
		errors.Is(err, session.ErrStale),
		errors.Is(err, session.ErrNoThought):
		return http.StatusConflict

	// Not found
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, store.ErrSessionNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for the error. Raw error
// strings never reach the client; they can embed thought text, which is the
// most sensitive data this service holds.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrEmptyThought):
		return "Thought cannot be empty"

	case errors.Is(err, domain.ErrInvalidIntensity):
		return "Intensity must be between 0 and 10"

	case errors.Is(err, domain.ErrEmptyBalancedThought):
		return "Balanced thought cannot be empty"

	case errors.Is(err, domain.ErrIncompleteAnswers):
		return "Every question needs a non-blank answer"

	case errors.Is(err, domain.ErrValidation):
		return "Invalid request data"

	case errors.Is(err, session.ErrInvalidTransition):
		return "This action is not available at the current step"

	case errors.Is(err, session.ErrBusy):
		return "Another operation is still in progress for this session"

	case errors.Is(err, session.ErrStale):
		return "The session changed while the operation was running"

	case errors.Is(err, session.ErrNoThought):
		return "Analyze a thought before generating questions"

	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, store.ErrSessionNotFound):
		return "Session not found"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError writes the standard sanitized response for an error
// coming out of the session layer.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
