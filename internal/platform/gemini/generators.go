package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
	"github.com/curiouscoder-cmd/mindmend-api/internal/generation"
)

// QuestionGenerator implements generation.QuestionGenerator against the
// Gemini API.
type QuestionGenerator struct {
	client *Client
}

// NewQuestionGenerator creates the remote question generator over a shared
// Client.
func NewQuestionGenerator(client *Client) *QuestionGenerator {
	return &QuestionGenerator{client: client}
}

// GenerateQuestions requests exactly count questions spanning the category
// enum plus one key insight. A reply with the wrong count, an unknown
// category, or empty question text is a malformed response.
func (g *QuestionGenerator) GenerateQuestions(
	ctx context.Context,
	thought string,
	distortions []domain.DetectedDistortion,
	count int,
) (*generation.QuestionSet, error) {
	if strings.TrimSpace(thought) == "" {
		return nil, ErrEmptyThought
	}
	if count != generation.SimpleQuestionCount && count != generation.ExtendedQuestionCount {
		return nil, fmt.Errorf("%w: %d", generation.ErrInvalidQuestionCount, count)
	}

	var schema questionsSchema
	err := g.client.generateJSON(ctx, request{
		SystemInstruction: questionsSystemInstruction,
		Prompt:            questionsPrompt(thought, distortions, count),
		Temperature:       questionsTemperature,
		MaxTokens:         questionsMaxTokens,
	}, &schema)
	if err != nil {
		return nil, err
	}

	questions, err := validateQuestions(schema, count)
	if err != nil {
		return nil, err
	}

	return &generation.QuestionSet{
		Questions:  questions,
		KeyInsight: strings.TrimSpace(schema.KeyInsight),
		Source:     domain.SourceRemote,
	}, nil
}

// Synthesizer implements generation.Synthesizer against the Gemini API.
type Synthesizer struct {
	client *Client
}

// NewSynthesizer creates the remote synthesizer over a shared Client.
func NewSynthesizer(client *Client) *Synthesizer {
	return &Synthesizer{client: client}
}

// Synthesize turns the user's answers into a candidate balanced thought.
// Completeness of answers is the caller's precondition; this adapter only
// requires a non-empty thought.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	thought string,
	answers map[string]string,
	distortions []domain.DetectedDistortion,
) (*generation.Synthesis, error) {
	if strings.TrimSpace(thought) == "" {
		return nil, ErrEmptyThought
	}

	var schema synthesisSchema
	err := s.client.generateJSON(ctx, request{
		SystemInstruction: synthesisSystemInstruction,
		Prompt:            synthesisPrompt(thought, answers, distortions),
		Temperature:       synthesisTemperature,
		MaxTokens:         synthesisMaxTokens,
	}, &schema)
	if err != nil {
		return nil, err
	}

	return validateSynthesis(schema)
}

// Evaluator implements generation.Evaluator against the Gemini API.
type Evaluator struct {
	client *Client
}

// NewEvaluator creates the remote evaluator over a shared Client.
func NewEvaluator(client *Client) *Evaluator {
	return &Evaluator{client: client}
}

// Evaluate asks for one of the three quality tiers plus feedback.
func (e *Evaluator) Evaluate(
	ctx context.Context,
	thought, balancedThought string,
	answers map[string]string,
) (*generation.EvaluationResult, error) {
	if strings.TrimSpace(thought) == "" || strings.TrimSpace(balancedThought) == "" {
		return nil, ErrEmptyThought
	}

	var schema evaluationSchema
	err := e.client.generateJSON(ctx, request{
		SystemInstruction: evaluationSystemInstruction,
		Prompt:            evaluationPrompt(thought, balancedThought, answers),
		Temperature:       evaluationTemperature,
		MaxTokens:         evaluationMaxTokens,
	}, &schema)
	if err != nil {
		return nil, err
	}

	return validateEvaluation(schema)
}
