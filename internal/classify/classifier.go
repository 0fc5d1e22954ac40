package classify

import (
	"context"

	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
)

// Tuning constants for the two classifier implementations. The values carry
// over from the original product unchanged; they were never calibrated
// against each other, so treat them as knobs rather than derived quantities.
const (
	// KeywordWeight is the confidence contributed by each keyword hit in the
	// local heuristic classifier.
	KeywordWeight = 0.3

	// LocalConfidenceCap is the ceiling on locally computed confidence.
	LocalConfidenceCap = 0.9

	// RemoteConfidenceMin is the inclusion threshold applied to
	// model-reported confidence on the remote path.
	RemoteConfidenceMin = 0.6

	// MaxDetected caps how many distortions a classification returns.
	MaxDetected = 3
)

// Result is the outcome of classifying one thought.
type Result struct {
	// Distortions is ordered by descending confidence, at most MaxDetected
	// entries.
	Distortions []domain.DetectedDistortion `json:"distortions"`

	// Suggestion is a short free-text nudge toward reframing the thought.
	Suggestion string `json:"suggestion"`

	// Source reports whether the result came from the remote model or the
	// local heuristic.
	Source domain.Source `json:"source"`

	// FallbackReason describes why the local heuristic was substituted.
	// Empty on the remote path.
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// IsLocal reports whether the result was produced by the local heuristic.
func (r *Result) IsLocal() bool {
	return r.Source == domain.SourceLocal
}

// Classifier detects cognitive distortions in a thought. Implementations:
// the deterministic local heuristic, the remote model adapter, and the
// composite that selects between them.
//
// Empty input is a caller error; implementations may return an empty result
// for it but are not required to detect it.
type Classifier interface {
	Classify(ctx context.Context, thought string) (*Result, error)
}
