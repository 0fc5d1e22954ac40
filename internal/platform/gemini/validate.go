package gemini

import (
	"fmt"
	"strings"

	"github.com/curiouscoder-cmd/mindmend-api/internal/classify"
	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
	"github.com/curiouscoder-cmd/mindmend-api/internal/generation"
)

// The validate* functions turn a decoded reply into domain values, treating
// every shape deviation as generation.ErrInvalidResponse so callers funnel
// into the standard fallback path.

// validateClassification filters and converts a classification reply.
// Unknown taxonomy slugs and out-of-range confidences are malformed; entries
// at or below the remote threshold are dropped rather than rejected, since
// the prompt asks the model not to send them but some models do anyway.
func validateClassification(schema classificationSchema) ([]domain.DetectedDistortion, error) {
	detected := make([]domain.DetectedDistortion, 0, classify.MaxDetected)
	for i, d := range schema.Distortions {
		if d.Type == "" {
			return nil, fmt.Errorf("%w: distortion %d missing type", generation.ErrInvalidResponse, i)
		}
		cat, ok := domain.DistortionByID(d.Type)
		if !ok {
			return nil, fmt.Errorf("%w: distortion %d has unknown type %q", generation.ErrInvalidResponse, i, d.Type)
		}
		if d.Confidence < 0 || d.Confidence > 1 {
			return nil, fmt.Errorf("%w: distortion %d confidence %g out of range", generation.ErrInvalidResponse, i, d.Confidence)
		}
		if d.Confidence <= classify.RemoteConfidenceMin {
			continue
		}

		name := d.Name
		if name == "" {
			name = cat.Name
		}
		detected = append(detected, domain.DetectedDistortion{
			Type:        d.Type,
			Name:        name,
			Confidence:  d.Confidence,
			Explanation: d.Explanation,
		})
		if len(detected) == classify.MaxDetected {
			break
		}
	}
	return detected, nil
}

// validateQuestions converts a generation reply, enforcing the count and the
// 1..count contiguous-ID invariant. Model-assigned IDs are rewritten to the
// position order rather than trusted.
func validateQuestions(schema questionsSchema, count int) ([]domain.ChallengeQuestion, error) {
	if len(schema.Questions) != count {
		return nil, fmt.Errorf("%w: expected %d questions, got %d",
			generation.ErrInvalidResponse, count, len(schema.Questions))
	}

	questions := make([]domain.ChallengeQuestion, 0, count)
	for i, q := range schema.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("%w: question %d has empty text", generation.ErrInvalidResponse, i+1)
		}
		question := domain.ChallengeQuestion{
			ID:       i + 1,
			Question: strings.TrimSpace(q.Question),
			Category: domain.QuestionCategory(strings.ToLower(strings.TrimSpace(q.Category))),
			Purpose:  strings.TrimSpace(q.Purpose),
		}
		if err := question.Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", generation.ErrInvalidResponse, i+1, err)
		}
		questions = append(questions, question)
	}
	return questions, nil
}

// validateSynthesis checks the three required fields are non-empty.
func validateSynthesis(schema synthesisSchema) (*generation.Synthesis, error) {
	if strings.TrimSpace(schema.BalancedThought) == "" {
		return nil, fmt.Errorf("%w: missing balancedThought", generation.ErrInvalidResponse)
	}
	if strings.TrimSpace(schema.Explanation) == "" {
		return nil, fmt.Errorf("%w: missing explanation", generation.ErrInvalidResponse)
	}
	if strings.TrimSpace(schema.Affirmation) == "" {
		return nil, fmt.Errorf("%w: missing affirmation", generation.ErrInvalidResponse)
	}
	return &generation.Synthesis{
		BalancedThought: strings.TrimSpace(schema.BalancedThought),
		Explanation:     strings.TrimSpace(schema.Explanation),
		Affirmation:     strings.TrimSpace(schema.Affirmation),
		Source:          domain.SourceRemote,
	}, nil
}

// validateEvaluation checks the quality tier and feedback.
func validateEvaluation(schema evaluationSchema) (*generation.EvaluationResult, error) {
	quality := domain.Quality(strings.ToLower(strings.TrimSpace(schema.Quality)))
	if !domain.IsValidQuality(quality) {
		return nil, fmt.Errorf("%w: unknown quality tier %q", generation.ErrInvalidResponse, schema.Quality)
	}
	if strings.TrimSpace(schema.Feedback) == "" {
		return nil, fmt.Errorf("%w: missing feedback", generation.ErrInvalidResponse)
	}
	return &generation.EvaluationResult{
		Evaluation: domain.Evaluation{
			Quality:     quality,
			Feedback:    strings.TrimSpace(schema.Feedback),
			Strengths:   schema.Strengths,
			Suggestions: schema.Suggestions,
		},
		Source: domain.SourceRemote,
	}, nil
}
