package generation

import (
	"context"
	"log/slog"

	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
)

// FallbackQuestionGenerator wraps a remote QuestionGenerator and substitutes
// the fixed default set on any failure. remote may be nil to run fully local.
type FallbackQuestionGenerator struct {
	remote QuestionGenerator
	logger *slog.Logger
}

// NewFallbackQuestionGenerator builds the wrapper. A nil logger falls back
// to slog.Default().
func NewFallbackQuestionGenerator(remote QuestionGenerator, logger *slog.Logger) *FallbackQuestionGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackQuestionGenerator{remote: remote, logger: logger}
}

// GenerateQuestions returns an error only for an unsupported count; remote
// failures degrade to the default set.
func (g *FallbackQuestionGenerator) GenerateQuestions(
	ctx context.Context,
	thought string,
	distortions []domain.DetectedDistortion,
	count int,
) (*QuestionSet, error) {
	if count != SimpleQuestionCount && count != ExtendedQuestionCount {
		return nil, ErrInvalidQuestionCount
	}

	if g.remote == nil {
		set, err := DefaultQuestionSet(count)
		if err != nil {
			return nil, err
		}
		set.FallbackReason = "remote generator not configured"
		return set, nil
	}

	set, err := g.remote.GenerateQuestions(ctx, thought, distortions, count)
	if err == nil {
		set.Source = domain.SourceRemote
		return set, nil
	}

	g.logger.WarnContext(ctx, "remote question generation failed, using default set",
		"error", err,
		"count", count)

	set, derr := DefaultQuestionSet(count)
	if derr != nil {
		return nil, derr
	}
	set.FallbackReason = err.Error()
	return set, nil
}

// FallbackSynthesizer wraps a remote Synthesizer with the deterministic
// placeholder synthesis.
type FallbackSynthesizer struct {
	remote Synthesizer
	logger *slog.Logger
}

// NewFallbackSynthesizer builds the wrapper. A nil logger falls back to
// slog.Default().
func NewFallbackSynthesizer(remote Synthesizer, logger *slog.Logger) *FallbackSynthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackSynthesizer{remote: remote, logger: logger}
}

// Synthesize never returns an error.
func (s *FallbackSynthesizer) Synthesize(
	ctx context.Context,
	thought string,
	answers map[string]string,
	distortions []domain.DetectedDistortion,
) (*Synthesis, error) {
	if s.remote == nil {
		syn := DefaultSynthesis()
		syn.FallbackReason = "remote synthesizer not configured"
		return syn, nil
	}

	syn, err := s.remote.Synthesize(ctx, thought, answers, distortions)
	if err == nil {
		syn.Source = domain.SourceRemote
		return syn, nil
	}

	s.logger.WarnContext(ctx, "remote synthesis failed, using placeholder",
		"error", err)

	syn = DefaultSynthesis()
	syn.FallbackReason = err.Error()
	return syn, nil
}

// FallbackEvaluator wraps a remote Evaluator with the encouraging default
// judgment.
type FallbackEvaluator struct {
	remote Evaluator
	logger *slog.Logger
}

// NewFallbackEvaluator builds the wrapper. A nil logger falls back to
// slog.Default().
func NewFallbackEvaluator(remote Evaluator, logger *slog.Logger) *FallbackEvaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackEvaluator{remote: remote, logger: logger}
}

// Evaluate never returns an error.
func (e *FallbackEvaluator) Evaluate(
	ctx context.Context,
	thought, balancedThought string,
	answers map[string]string,
) (*EvaluationResult, error) {
	if e.remote == nil {
		result := DefaultEvaluation()
		result.FallbackReason = "remote evaluator not configured"
		return result, nil
	}

	result, err := e.remote.Evaluate(ctx, thought, balancedThought, answers)
	if err == nil {
		result.Source = domain.SourceRemote
		return result, nil
	}

	e.logger.WarnContext(ctx, "remote evaluation failed, using default judgment",
		"error", err)

	result = DefaultEvaluation()
	result.FallbackReason = err.Error()
	return result, nil
}
