package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
)

// stubClassifier is a hand-written test double for the remote classifier.
type stubClassifier struct {
	result *Result
	err    error
	calls  int
}

func (s *stubClassifier) Classify(ctx context.Context, thought string) (*Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestCompositeUsesRemoteWhenAvailable(t *testing.T) {
	t.Parallel()

	remote := &stubClassifier{
		result: &Result{
			Distortions: []domain.DetectedDistortion{
				{Type: "catastrophizing", Name: "Catastrophizing", Confidence: 0.85, Explanation: "model says so"},
			},
			Suggestion: "consider the realistic outcome",
		},
	}
	c := NewCompositeClassifier(remote, nil, nil)

	result, err := c.Classify(context.Background(), "this is a disaster")
	require.NoError(t, err)

	assert.Equal(t, domain.SourceRemote, result.Source)
	assert.False(t, result.IsLocal())
	assert.Empty(t, result.FallbackReason)
	assert.Equal(t, 1, remote.calls)
	require.Len(t, result.Distortions, 1)
	assert.Equal(t, "catastrophizing", result.Distortions[0].Type)
}

func TestCompositeFallsBackOnRemoteError(t *testing.T) {
	t.Parallel()

	remote := &stubClassifier{err: errors.New("connection refused")}
	c := NewCompositeClassifier(remote, nil, nil)

	result, err := c.Classify(context.Background(), "I'm a complete failure")
	require.NoError(t, err, "remote failures must never surface as errors")

	assert.True(t, result.IsLocal())
	assert.Equal(t, "connection refused", result.FallbackReason)
	assert.NotEmpty(t, result.Distortions, "local heuristic should still detect distortions")
}

func TestCompositeWithoutRemote(t *testing.T) {
	t.Parallel()

	c := NewCompositeClassifier(nil, nil, nil)

	result, err := c.Classify(context.Background(), "I never do anything right")
	require.NoError(t, err)

	assert.True(t, result.IsLocal())
	assert.NotEmpty(t, result.FallbackReason)
}
