package domain

import (
	"fmt"
	"strings"
	"time"
)

// Source records whether a result came from the remote model or from the
// deterministic local fallback. Degraded results must stay distinguishable
// all the way to the caller.
type Source string

// Possible result sources.
const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Quality is the work-quality tier assigned by the evaluator.
type Quality string

// Possible quality tiers. The evaluator is an encouraging signal, never a
// gate: a session can be saved regardless of its tier.
const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityNeedsWork Quality = "needs-work"
)

// IsValidQuality reports whether q is one of the three known tiers.
func IsValidQuality(q Quality) bool {
	switch q {
	case QualityExcellent, QualityGood, QualityNeedsWork:
		return true
	default:
		return false
	}
}

// Evaluation is the evaluator's judgment of a completed thought challenge.
type Evaluation struct {
	Quality     Quality  `json:"quality"`
	Feedback    string   `json:"feedback"`
	Strengths   []string `json:"strengths"`
	Suggestions []string `json:"suggestions"`
}

// Validate checks the evaluation's fields.
func (e Evaluation) Validate() error {
	if !IsValidQuality(e.Quality) {
		return ErrInvalidQuality
	}
	if e.Feedback == "" {
		return fmt.Errorf("%w: evaluation feedback cannot be empty", ErrValidation)
	}
	return nil
}

// Provenance tracks, per pipeline stage, whether the result was produced by
// the remote model or substituted locally.
type Provenance struct {
	Classification Source `json:"classification"`
	Questions      Source `json:"questions"`
	Synthesis      Source `json:"synthesis"`
	Evaluation     Source `json:"evaluation"`
}

// ThoughtSession is the aggregate root of one guided thought challenge.
// The state machine owns an in-progress session exclusively until it is
// saved; once persisted a session is immutable except for deletion.
type ThoughtSession struct {
	// ID is assigned by the store at save time.
	ID string `json:"id"`

	AutomaticThought  string               `json:"automatic_thought"`
	OriginalIntensity int                  `json:"original_intensity"`
	Distortions       []DetectedDistortion `json:"distortions"`
	Suggestion        string               `json:"suggestion,omitempty"`

	Questions  []ChallengeQuestion `json:"questions"`
	KeyInsight string              `json:"key_insight,omitempty"`

	// Answers is keyed by ChallengeQuestion.AnswerKey ("q1", "q2", ...).
	Answers map[string]string `json:"answers"`

	BalancedThought   string `json:"balanced_thought"`
	BalancedIntensity int    `json:"balanced_intensity"`
	Explanation       string `json:"explanation,omitempty"`
	Affirmation       string `json:"affirmation,omitempty"`

	Evaluation *Evaluation `json:"evaluation,omitempty"`
	Provenance Provenance  `json:"provenance"`

	// CreatedAt is assigned by the store at save time.
	CreatedAt time.Time `json:"created_at"`
}

// IntensityReduction returns how far the thought's believability dropped over
// the session. Negative values mean the balanced thought rated higher.
func (s *ThoughtSession) IntensityReduction() int {
	return s.OriginalIntensity - s.BalancedIntensity
}

// Validate checks that the session has reached a persistable terminal state:
// an evaluated session with a non-empty balanced thought and a non-blank
// answer for every generated question.
func (s *ThoughtSession) Validate() error {
	if strings.TrimSpace(s.AutomaticThought) == "" {
		return ErrEmptyThought
	}
	if err := validIntensity(s.OriginalIntensity); err != nil {
		return fmt.Errorf("original intensity: %w", err)
	}
	if err := validIntensity(s.BalancedIntensity); err != nil {
		return fmt.Errorf("balanced intensity: %w", err)
	}
	if strings.TrimSpace(s.BalancedThought) == "" {
		return ErrEmptyBalancedThought
	}
	for _, q := range s.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", q.ID, err)
		}
		if strings.TrimSpace(s.Answers[q.AnswerKey()]) == "" {
			return fmt.Errorf("%w: missing answer for question %d", ErrIncompleteAnswers, q.ID)
		}
	}
	if s.Evaluation == nil {
		return fmt.Errorf("%w: session has not been evaluated", ErrValidation)
	}
	if err := s.Evaluation.Validate(); err != nil {
		return err
	}
	return nil
}

// validIntensity checks an intensity rating is within [0, 10].
func validIntensity(v int) error {
	if v < 0 || v > 10 {
		return ErrInvalidIntensity
	}
	return nil
}

// Clone returns a deep copy of the session. Stores hand out clones so callers
// can never mutate persisted records.
func (s *ThoughtSession) Clone() *ThoughtSession {
	out := *s
	out.Distortions = append([]DetectedDistortion(nil), s.Distortions...)
	out.Questions = append([]ChallengeQuestion(nil), s.Questions...)
	if s.Answers != nil {
		out.Answers = make(map[string]string, len(s.Answers))
		for k, v := range s.Answers {
			out.Answers[k] = v
		}
	}
	if s.Evaluation != nil {
		ev := *s.Evaluation
		ev.Strengths = append([]string(nil), s.Evaluation.Strengths...)
		ev.Suggestions = append([]string(nil), s.Evaluation.Suggestions...)
		out.Evaluation = &ev
	}
	return &out
}
