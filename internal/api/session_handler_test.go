package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curiouscoder-cmd/mindmend-api/internal/api"
	"github.com/curiouscoder-cmd/mindmend-api/internal/classify"
	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
	"github.com/curiouscoder-cmd/mindmend-api/internal/generation"
	"github.com/curiouscoder-cmd/mindmend-api/internal/service"
	"github.com/curiouscoder-cmd/mindmend-api/internal/session"
	"github.com/curiouscoder-cmd/mindmend-api/internal/store"
)

// newTestRouter wires the full route tree against the deterministic local
// fallbacks and an in-memory store.
func newTestRouter(t *testing.T) (chi.Router, store.SessionStore) {
	t.Helper()

	st := store.NewMemoryStore(store.DefaultMaxSessions)
	manager, err := service.NewSessionManager(service.ManagerConfig{
		Classifier:  classify.NewCompositeClassifier(nil, nil, nil),
		Questions:   generation.NewFallbackQuestionGenerator(nil, nil),
		Synthesizer: generation.NewFallbackSynthesizer(nil, nil),
		Evaluator:   generation.NewFallbackEvaluator(nil, nil),
		Store:       st,
	})
	require.NoError(t, err)

	return api.NewRouter(api.NewSessionHandler(manager), api.NewHistoryHandler(st)), st
}

// do executes one JSON request against the router and decodes the response
// body into out when it is non-nil.
func do(t *testing.T, router chi.Router, method, path string, body, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func createSession(t *testing.T, router chi.Router) string {
	t.Helper()
	var resp api.CreateSessionResponse
	rec := do(t, router, http.MethodPost, "/api/sessions", api.CreateSessionRequest{}, &resp)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestFullWorkflowOverHTTP(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	id := createSession(t, router)
	base := "/api/sessions/" + id

	var analyzed api.AnalyzeThoughtResponse
	rec := do(t, router, http.MethodPost, base+"/thought", api.AnalyzeThoughtRequest{
		Thought:   "I failed one test, so I'm a complete failure",
		Intensity: 9,
	}, &analyzed)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, session.StateInput, analyzed.State)
	require.NotNil(t, analyzed.Classification)
	assert.Equal(t, domain.SourceLocal, analyzed.Classification.Source)
	assert.NotEmpty(t, analyzed.Classification.Distortions)

	var questions api.QuestionsResponse
	rec = do(t, router, http.MethodPost, base+"/questions", nil, &questions)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, session.StateQuestioning, questions.State)
	require.Len(t, questions.Questions, generation.SimpleQuestionCount)
	assert.Equal(t, domain.SourceLocal, questions.Source)

	answers := make(map[string]string, len(questions.Questions))
	for _, q := range questions.Questions {
		answers[q.AnswerKey()] = "a considered answer"
	}
	var state api.StateResponse
	rec = do(t, router, http.MethodPost, base+"/answers", api.SubmitAnswersRequest{Answers: answers}, &state)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, session.StateBalancing, state.State)

	var synthesized api.SynthesisResponse
	rec = do(t, router, http.MethodPost, base+"/balance", nil, &synthesized)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, synthesized.Synthesis)
	assert.NotEmpty(t, synthesized.Synthesis.BalancedThought)

	rec = do(t, router, http.MethodPut, base+"/balance", api.SetBalanceRequest{
		BalancedThought: "One test is one test.",
		Intensity:       4,
	}, &state)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, session.StateBalancing, state.State)

	var evaluated api.EvaluationResponse
	rec = do(t, router, http.MethodPost, base+"/evaluate", nil, &evaluated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, session.StateReviewing, evaluated.State)
	assert.Equal(t, domain.QualityGood, evaluated.Evaluation.Quality)

	var saved api.SaveSessionResponse
	rec = do(t, router, http.MethodPost, base+"/save", nil, &saved)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, session.StateInput, saved.State)
	assert.NotEmpty(t, saved.Session.ID)
	assert.Equal(t, 5, saved.Session.IntensityReduction)

	var history api.HistoryResponse
	rec = do(t, router, http.MethodGet, "/api/history", nil, &history)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, history.Sessions, 1)
	assert.Equal(t, saved.Session.ID, history.Sessions[0].ID)

	var stats domain.SessionStats
	rec = do(t, router, http.MethodGet, "/api/stats", nil, &stats)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 1, stats.SessionsThisWeek)
	assert.InDelta(t, 5.0, stats.AverageIntensityReduction, 0.001)
}

func TestAnalyzeThoughtValidation(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	id := createSession(t, router)
	path := "/api/sessions/" + id + "/thought"

	tests := []struct {
		name string
		body api.AnalyzeThoughtRequest
	}{
		{name: "empty thought", body: api.AnalyzeThoughtRequest{Thought: "", Intensity: 5}},
		{name: "intensity too high", body: api.AnalyzeThoughtRequest{Thought: "a thought", Intensity: 11}},
		{name: "negative intensity", body: api.AnalyzeThoughtRequest{Thought: "a thought", Intensity: -1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, path, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestIncompleteAnswersRejected(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	id := createSession(t, router)
	base := "/api/sessions/" + id

	rec := do(t, router, http.MethodPost, base+"/thought", api.AnalyzeThoughtRequest{
		Thought: "nothing ever works out", Intensity: 7,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodPost, base+"/questions", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, base+"/answers", api.SubmitAnswersRequest{
		Answers: map[string]string{"q1": "", "q2": "x", "q3": "x", "q4": "x", "q5": "x"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOutOfOrderOperationsConflict(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	id := createSession(t, router)
	base := "/api/sessions/" + id

	// Questions before any thought is analyzed.
	rec := do(t, router, http.MethodPost, base+"/questions", nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Evaluate straight from the input state.
	rec = do(t, router, http.MethodPost, base+"/evaluate", nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Save straight from the input state.
	rec = do(t, router, http.MethodPost, base+"/save", nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUnknownSessionReturns404(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	path := "/api/sessions/11111111-2222-3333-4444-555555555555/thought"

	rec := do(t, router, http.MethodPost, path, api.AnalyzeThoughtRequest{
		Thought: "a thought", Intensity: 5,
	}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMalformedSessionIDReturns400(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec := do(t, router, http.MethodPost, "/api/sessions/not-a-uuid/questions", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetSession(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	id := createSession(t, router)
	base := "/api/sessions/" + id

	rec := do(t, router, http.MethodPost, base+"/thought", api.AnalyzeThoughtRequest{
		Thought: "a thought", Intensity: 5,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodDelete, base, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The machine is gone once reset.
	rec = do(t, router, http.MethodDelete, base, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExtendedFlowSession(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	var created api.CreateSessionResponse
	rec := do(t, router, http.MethodPost, "/api/sessions", api.CreateSessionRequest{ExtendedFlow: true}, &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, created.ExtendedFlow)

	base := "/api/sessions/" + created.SessionID
	rec = do(t, router, http.MethodPost, base+"/thought", api.AnalyzeThoughtRequest{
		Thought: "I'll never get better at this", Intensity: 6,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var questions api.QuestionsResponse
	rec = do(t, router, http.MethodPost, base+"/questions", nil, &questions)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, questions.Questions, generation.ExtendedQuestionCount)
}

func TestDeleteHistoryRecord(t *testing.T) {
	t.Parallel()

	router, st := newTestRouter(t)
	id := createSession(t, router)
	base := "/api/sessions/" + id

	do(t, router, http.MethodPost, base+"/thought", api.AnalyzeThoughtRequest{Thought: "a thought", Intensity: 6}, nil)
	var questions api.QuestionsResponse
	do(t, router, http.MethodPost, base+"/questions", nil, &questions)
	answers := make(map[string]string, len(questions.Questions))
	for _, q := range questions.Questions {
		answers[q.AnswerKey()] = "an answer"
	}
	do(t, router, http.MethodPost, base+"/answers", api.SubmitAnswersRequest{Answers: answers}, nil)
	do(t, router, http.MethodPut, base+"/balance", api.SetBalanceRequest{BalancedThought: "a kinder view", Intensity: 3}, nil)
	do(t, router, http.MethodPost, base+"/evaluate", nil, nil)
	var saved api.SaveSessionResponse
	rec := do(t, router, http.MethodPost, base+"/save", nil, &saved)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/history/"+saved.Session.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	list, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/api/history/%s", saved.Session.ID), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
