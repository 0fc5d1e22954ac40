// Package api implements the HTTP surface: request models, handlers, and the
// mapping from internal errors to status codes and sanitized messages.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/curiouscoder-cmd/mindmend-api/internal/api/shared"
	"github.com/curiouscoder-cmd/mindmend-api/internal/service"
	"github.com/curiouscoder-cmd/mindmend-api/internal/session"
)

// SessionHandler handles the session workflow endpoints.
type SessionHandler struct {
	manager   *service.SessionManager
	validator *validator.Validate
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(manager *service.SessionManager) *SessionHandler {
	return &SessionHandler{
		manager:   manager,
		validator: validator.New(),
	}
}

// machineFromPath resolves the {id} path parameter to a live machine,
// writing the error response itself on failure.
func (h *SessionHandler) machineFromPath(w http.ResponseWriter, r *http.Request) (*session.Machine, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return nil, false
	}

	machine, err := h.manager.Get(id)
	if err != nil {
		HandleServiceError(w, r, err)
		return nil, false
	}
	return machine, true
}

// decodeAndValidate parses the request body into req and validates it,
// writing the error response itself on failure.
func (h *SessionHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return false
	}
	return true
}

// CreateSession handles POST /api/sessions. An empty body starts a simple
// five-question session.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.ContentLength > 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	id, err := h.manager.Create(req.ExtendedFlow)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateSessionResponse{
		SessionID:    id.String(),
		State:        session.StateInput,
		ExtendedFlow: req.ExtendedFlow,
	})
}

// AnalyzeThought handles POST /api/sessions/{id}/thought.
func (h *SessionHandler) AnalyzeThought(w http.ResponseWriter, r *http.Request) {
	machine, ok := h.machineFromPath(w, r)
	if !ok {
		return
	}

	var req AnalyzeThoughtRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := machine.AnalyzeThought(r.Context(), req.Thought, req.Intensity)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnalyzeThoughtResponse{
		State:          machine.State(),
		Classification: result,
	})
}

// GenerateQuestions handles POST /api/sessions/{id}/questions.
func (h *SessionHandler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	machine, ok := h.machineFromPath(w, r)
	if !ok {
		return
	}

	set, err := machine.GenerateQuestions(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuestionsResponse{
		State:          machine.State(),
		Questions:      set.Questions,
		KeyInsight:     set.KeyInsight,
		Source:         set.Source,
		FallbackReason: set.FallbackReason,
	})
}

// SubmitAnswers handles POST /api/sessions/{id}/answers.
func (h *SessionHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	machine, ok := h.machineFromPath(w, r)
	if !ok {
		return
	}

	var req SubmitAnswersRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := machine.SubmitAnswers(req.Answers); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StateResponse{State: machine.State()})
}

// Synthesize handles POST /api/sessions/{id}/balance.
func (h *SessionHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	machine, ok := h.machineFromPath(w, r)
	if !ok {
		return
	}

	syn, err := machine.Synthesize(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SynthesisResponse{
		State:     machine.State(),
		Synthesis: syn,
	})
}

// SetBalance handles PUT /api/sessions/{id}/balance.
func (h *SessionHandler) SetBalance(w http.ResponseWriter, r *http.Request) {
	machine, ok := h.machineFromPath(w, r)
	if !ok {
		return
	}

	var req SetBalanceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := machine.SetBalancedThought(req.BalancedThought, req.Intensity); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StateResponse{State: machine.State()})
}

// Evaluate handles POST /api/sessions/{id}/evaluate.
func (h *SessionHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	machine, ok := h.machineFromPath(w, r)
	if !ok {
		return
	}

	result, err := machine.EvaluateWork(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, EvaluationResponse{
		State:          machine.State(),
		Evaluation:     result.Evaluation,
		Source:         result.Source,
		FallbackReason: result.FallbackReason,
	})
}

// SaveSession handles POST /api/sessions/{id}/save.
func (h *SessionHandler) SaveSession(w http.ResponseWriter, r *http.Request) {
	machine, ok := h.machineFromPath(w, r)
	if !ok {
		return
	}

	saved, err := machine.SaveSession(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, SaveSessionResponse{
		State:   machine.State(),
		Session: sessionToResponse(saved),
	})
}

// ResetSession handles DELETE /api/sessions/{id}: discard in-memory progress
// and drop the machine. Saved records are untouched.
func (h *SessionHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return
	}

	if err := h.manager.Remove(id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
