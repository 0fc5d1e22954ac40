package generation

import (
	"context"

	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
)

// Question counts for the two session flows.
const (
	// SimpleQuestionCount is the number of questions in the simple flow.
	SimpleQuestionCount = 5

	// ExtendedQuestionCount is the number of questions in the extended
	// (triple-column) flow.
	ExtendedQuestionCount = 7
)

// QuestionSet is the outcome of generating challenge questions for a thought.
type QuestionSet struct {
	// Questions carry unique contiguous IDs starting at 1.
	Questions []domain.ChallengeQuestion `json:"questions"`

	// KeyInsight is one aggregate takeaway for the whole set.
	KeyInsight string `json:"key_insight"`

	Source domain.Source `json:"source"`

	// FallbackReason describes why the default set was substituted.
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// Synthesis is a candidate balanced thought with supporting text.
type Synthesis struct {
	BalancedThought string `json:"balanced_thought"`
	Explanation     string `json:"explanation"`
	Affirmation     string `json:"affirmation"`

	Source         domain.Source `json:"source"`
	FallbackReason string        `json:"fallback_reason,omitempty"`
}

// EvaluationResult pairs the evaluator's judgment with provenance.
type EvaluationResult struct {
	Evaluation domain.Evaluation `json:"evaluation"`

	Source         domain.Source `json:"source"`
	FallbackReason string        `json:"fallback_reason,omitempty"`
}

// QuestionGenerator produces an ordered set of open-ended challenge
// questions for a thought and its detected distortions (which may be empty).
type QuestionGenerator interface {
	// GenerateQuestions requests exactly count questions. count must be
	// SimpleQuestionCount or ExtendedQuestionCount.
	GenerateQuestions(ctx context.Context, thought string, distortions []domain.DetectedDistortion, count int) (*QuestionSet, error)
}

// Synthesizer produces a candidate balanced thought from the original
// thought and the user's answers. Callers guarantee that answers contains a
// non-blank entry per generated question; the synthesizer does not
// re-validate completeness.
type Synthesizer interface {
	Synthesize(ctx context.Context, thought string, answers map[string]string, distortions []domain.DetectedDistortion) (*Synthesis, error)
}

// Evaluator judges the quality of a completed thought challenge. It is a
// terminal review step, never a gate.
type Evaluator interface {
	Evaluate(ctx context.Context, thought, balancedThought string, answers map[string]string) (*EvaluationResult, error)
}
