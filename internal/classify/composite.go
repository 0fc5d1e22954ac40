package classify

import (
	"context"
	"log/slog"

	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
)

// CompositeClassifier tries the remote classifier first and substitutes the
// local heuristic on any failure: network error, timeout, or a malformed
// response. The substitution is tagged on the result, never raised as an
// error, so the session flow always keeps moving.
type CompositeClassifier struct {
	remote Classifier
	local  *LocalHeuristicClassifier
	logger *slog.Logger
}

// NewCompositeClassifier builds the composite. remote may be nil, in which
// case every classification runs locally (e.g. when no API key is
// configured). A nil logger falls back to slog.Default().
func NewCompositeClassifier(remote Classifier, local *LocalHeuristicClassifier, logger *slog.Logger) *CompositeClassifier {
	if local == nil {
		local = NewLocalHeuristicClassifier()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CompositeClassifier{
		remote: remote,
		local:  local,
		logger: logger,
	}
}

// Classify never returns an error: the local heuristic cannot fail, and
// remote failures are folded into a tagged local result.
func (c *CompositeClassifier) Classify(ctx context.Context, thought string) (*Result, error) {
	if c.remote == nil {
		result, err := c.local.Classify(ctx, thought)
		if err != nil {
			return nil, err
		}
		result.FallbackReason = "remote classifier not configured"
		return result, nil
	}

	result, err := c.remote.Classify(ctx, thought)
	if err == nil {
		result.Source = domain.SourceRemote
		return result, nil
	}

	c.logger.WarnContext(ctx, "remote classification failed, using local heuristic",
		"error", err)

	result, lerr := c.local.Classify(ctx, thought)
	if lerr != nil {
		return nil, lerr
	}
	result.FallbackReason = err.Error()
	return result, nil
}
