package api

import (
	"time"

	"github.com/curiouscoder-cmd/mindmend-api/internal/classify"
	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
	"github.com/curiouscoder-cmd/mindmend-api/internal/generation"
	"github.com/curiouscoder-cmd/mindmend-api/internal/session"
)

// Request payloads.

// CreateSessionRequest defines the payload for starting a new session.
type CreateSessionRequest struct {
	// ExtendedFlow selects the seven-question triple-column flow.
	ExtendedFlow bool `json:"extended_flow"`
}

// AnalyzeThoughtRequest defines the payload for submitting an automatic
// thought for classification.
type AnalyzeThoughtRequest struct {
	Thought   string `json:"thought"   validate:"required,min=1"`
	Intensity int    `json:"intensity" validate:"gte=0,lte=10"`
}

// SubmitAnswersRequest defines the payload for answering the challenge
// questions. Keys follow the questions' answer keys ("q1", "q2", ...).
type SubmitAnswersRequest struct {
	Answers map[string]string `json:"answers" validate:"required"`
}

// SetBalanceRequest defines the payload for a user-edited balanced thought
// with its re-rated intensity.
type SetBalanceRequest struct {
	BalancedThought string `json:"balanced_thought" validate:"required,min=1"`
	Intensity       int    `json:"intensity"        validate:"gte=0,lte=10"`
}

// Response payloads. Each mutating endpoint echoes the machine's state so
// clients can render the workflow without tracking transitions themselves.

// CreateSessionResponse carries the new session's ID.
type CreateSessionResponse struct {
	SessionID    string        `json:"session_id"`
	State        session.State `json:"state"`
	ExtendedFlow bool          `json:"extended_flow"`
}

// AnalyzeThoughtResponse carries the classification outcome.
type AnalyzeThoughtResponse struct {
	State          session.State    `json:"state"`
	Classification *classify.Result `json:"classification"`
}

// QuestionsResponse carries the generated challenge questions.
type QuestionsResponse struct {
	State          session.State              `json:"state"`
	Questions      []domain.ChallengeQuestion `json:"questions"`
	KeyInsight     string                     `json:"key_insight"`
	Source         domain.Source              `json:"source"`
	FallbackReason string                     `json:"fallback_reason,omitempty"`
}

// StateResponse reports the machine's state after a content-free transition.
type StateResponse struct {
	State session.State `json:"state"`
}

// SynthesisResponse carries the AI-suggested balanced thought.
type SynthesisResponse struct {
	State     session.State         `json:"state"`
	Synthesis *generation.Synthesis `json:"synthesis"`
}

// EvaluationResponse carries the evaluator's judgment of the session.
type EvaluationResponse struct {
	State          session.State     `json:"state"`
	Evaluation     domain.Evaluation `json:"evaluation"`
	Source         domain.Source     `json:"source"`
	FallbackReason string            `json:"fallback_reason,omitempty"`
}

// SessionResponse is the wire form of a saved session record.
type SessionResponse struct {
	ID                 string                      `json:"id"`
	AutomaticThought   string                      `json:"automatic_thought"`
	OriginalIntensity  int                         `json:"original_intensity"`
	Distortions        []domain.DetectedDistortion `json:"distortions"`
	Suggestion         string                      `json:"suggestion,omitempty"`
	Questions          []domain.ChallengeQuestion  `json:"questions"`
	KeyInsight         string                      `json:"key_insight,omitempty"`
	Answers            map[string]string           `json:"answers"`
	BalancedThought    string                      `json:"balanced_thought"`
	BalancedIntensity  int                         `json:"balanced_intensity"`
	Explanation        string                      `json:"explanation,omitempty"`
	Affirmation        string                      `json:"affirmation,omitempty"`
	Evaluation         *domain.Evaluation          `json:"evaluation,omitempty"`
	Provenance         domain.Provenance           `json:"provenance"`
	IntensityReduction int                         `json:"intensity_reduction"`
	CreatedAt          time.Time                   `json:"created_at"`
}

// SaveSessionResponse carries the stored record after a successful save.
type SaveSessionResponse struct {
	State   session.State   `json:"state"`
	Session SessionResponse `json:"session"`
}

// HistoryResponse lists the saved sessions, most recent first.
type HistoryResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// sessionToResponse converts a stored record to its wire form.
func sessionToResponse(s *domain.ThoughtSession) SessionResponse {
	return SessionResponse{
		ID:                 s.ID,
		AutomaticThought:   s.AutomaticThought,
		OriginalIntensity:  s.OriginalIntensity,
		Distortions:        s.Distortions,
		Suggestion:         s.Suggestion,
		Questions:          s.Questions,
		KeyInsight:         s.KeyInsight,
		Answers:            s.Answers,
		BalancedThought:    s.BalancedThought,
		BalancedIntensity:  s.BalancedIntensity,
		Explanation:        s.Explanation,
		Affirmation:        s.Affirmation,
		Evaluation:         s.Evaluation,
		Provenance:         s.Provenance,
		IntensityReduction: s.IntensityReduction(),
		CreatedAt:          s.CreatedAt,
	}
}
