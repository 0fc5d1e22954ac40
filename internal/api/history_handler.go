package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curiouscoder-cmd/mindmend-api/internal/api/shared"
	"github.com/curiouscoder-cmd/mindmend-api/internal/store"
)

// HistoryHandler serves the saved-session collection and its derived stats.
type HistoryHandler struct {
	store store.SessionStore
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(sessionStore store.SessionStore) *HistoryHandler {
	return &HistoryHandler{store: sessionStore}
}

// ListSessions handles GET /api/history, returning saved sessions most
// recent first.
func (h *HistoryHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	out := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionToResponse(s))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HistoryResponse{Sessions: out})
}

// DeleteSession handles DELETE /api/history/{id}.
func (h *HistoryHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Session ID is required")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetStats handles GET /api/stats.
func (h *HistoryHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
