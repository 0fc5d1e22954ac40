package generation

import (
	"fmt"

	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
)

// defaultQuestions is the fixed Socratic question set used whenever remote
// generation is unavailable. The first SimpleQuestionCount entries form the
// simple flow; the full slice forms the extended flow. Intentionally generic:
// the user can proceed with these regardless of the actual thought.
var defaultQuestions = []domain.ChallengeQuestion{
	{
		ID:       1,
		Question: "What evidence do you have that this thought is true?",
		Category: domain.QuestionEvidence,
		Purpose:  "Examine the facts supporting the thought",
	},
	{
		ID:       2,
		Question: "What evidence suggests this thought might not be completely true?",
		Category: domain.QuestionEvidence,
		Purpose:  "Surface facts the thought leaves out",
	},
	{
		ID:       3,
		Question: "Is there another way to look at this situation?",
		Category: domain.QuestionAlternatives,
		Purpose:  "Consider alternative interpretations",
	},
	{
		ID:       4,
		Question: "What would you say to a good friend who had this thought?",
		Category: domain.QuestionSelfCompassion,
		Purpose:  "Apply the kindness you extend to others to yourself",
	},
	{
		ID:       5,
		Question: "Will this matter in five years? In one year? In one month?",
		Category: domain.QuestionPerspective,
		Purpose:  "Put the situation in a longer time frame",
	},
	{
		ID:       6,
		Question: "How does believing this thought make you feel and act?",
		Category: domain.QuestionConsequences,
		Purpose:  "Notice the cost of holding on to the thought",
	},
	{
		ID:       7,
		Question: "If someone you trust saw this situation, what would they notice that you might be missing?",
		Category: domain.QuestionPerspective,
		Purpose:  "Borrow an outside point of view",
	},
}

// defaultKeyInsight is the aggregate tip attached to the default set.
const defaultKeyInsight = "Thoughts are not facts. Questioning a thought is the first step to loosening its grip."

// DefaultQuestionSet returns the fixed fallback question set for the given
// count. count must be SimpleQuestionCount or ExtendedQuestionCount.
func DefaultQuestionSet(count int) (*QuestionSet, error) {
	if count != SimpleQuestionCount && count != ExtendedQuestionCount {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuestionCount, count)
	}

	questions := make([]domain.ChallengeQuestion, count)
	copy(questions, defaultQuestions[:count])

	return &QuestionSet{
		Questions:  questions,
		KeyInsight: defaultKeyInsight,
		Source:     domain.SourceLocal,
	}, nil
}

// DefaultSynthesis returns the deterministic placeholder used when remote
// synthesis fails. The balanced thought is a writing prompt rather than a
// finished reframe; the user edits it before review.
func DefaultSynthesis() *Synthesis {
	return &Synthesis{
		BalancedThought: "Looking at my answers, I can create a more balanced perspective: the situation is real, but my first thought overstates it.",
		Explanation:     "This starting point was built from your answers locally. Edit it until it sounds both honest and fair to you.",
		Affirmation:     "You took the time to question a painful thought instead of accepting it. That is the hard part.",
		Source:          domain.SourceLocal,
	}
}

// DefaultEvaluation returns the encouraging fallback judgment used when
// remote evaluation fails.
func DefaultEvaluation() *EvaluationResult {
	return &EvaluationResult{
		Evaluation: domain.Evaluation{
			Quality:  domain.QualityGood,
			Feedback: "You worked through every step of challenging this thought. Reviewing the evidence on both sides is exactly how balanced thinking is built.",
			Strengths: []string{
				"Completed the full thought-challenge process",
				"Answered every challenge question",
			},
			Suggestions: []string{
				"Revisit the balanced thought tomorrow and check whether it still rings true",
			},
		},
		Source: domain.SourceLocal,
	}
}
