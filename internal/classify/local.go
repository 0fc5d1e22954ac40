package classify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
)

// LocalHeuristicClassifier scores thought text against the taxonomy's
// keyword sets. It is deterministic, pure, and performs no I/O: the same
// input always produces the same output, which the session flow relies on
// whenever the remote model is unreachable.
type LocalHeuristicClassifier struct {
	categories []domain.DistortionCategory
}

// NewLocalHeuristicClassifier creates a classifier over the full taxonomy.
func NewLocalHeuristicClassifier() *LocalHeuristicClassifier {
	return &LocalHeuristicClassifier{categories: domain.AllDistortions()}
}

// Classify counts, per category, how many keywords appear as substrings of
// the lowercased thought. A category with at least one hit becomes a
// candidate with confidence min(hits*KeywordWeight, LocalConfidenceCap).
// Candidates are sorted by descending confidence with ties broken by
// taxonomy declaration order, then truncated to MaxDetected.
//
// A thought with no keyword hits yields an empty result, not an error.
func (c *LocalHeuristicClassifier) Classify(ctx context.Context, thought string) (*Result, error) {
	text := strings.ToLower(thought)

	detected := make([]domain.DetectedDistortion, 0, len(c.categories))
	for _, cat := range c.categories {
		hits := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}

		confidence := float64(hits) * KeywordWeight
		if confidence > LocalConfidenceCap {
			confidence = LocalConfidenceCap
		}

		detected = append(detected, domain.DetectedDistortion{
			Type:        cat.ID,
			Name:        cat.Name,
			Confidence:  confidence,
			Explanation: fmt.Sprintf("The thought matches %d phrase(s) typical of %s: %s", hits, cat.Name, cat.Description),
		})
	}

	// Stable sort preserves declaration order between equal confidences,
	// which keeps results reproducible across runs.
	sort.SliceStable(detected, func(i, j int) bool {
		return detected[i].Confidence > detected[j].Confidence
	})
	if len(detected) > MaxDetected {
		detected = detected[:MaxDetected]
	}

	return &Result{
		Distortions: detected,
		Suggestion:  localSuggestion(detected),
		Source:      domain.SourceLocal,
	}, nil
}

// localSuggestion builds a deterministic reframing nudge from the top
// detected distortion.
func localSuggestion(detected []domain.DetectedDistortion) string {
	if len(detected) == 0 {
		return "No specific distortion pattern stood out. Try examining the evidence for and against this thought."
	}
	return fmt.Sprintf(
		"Your thought shows signs of %s. Ask yourself what a fair observer would say about this situation.",
		detected[0].Name,
	)
}
