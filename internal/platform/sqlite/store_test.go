package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
	"github.com/curiouscoder-cmd/mindmend-api/internal/store"
)

func openTestStore(t *testing.T, max int) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sessions.db"), max)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func testSession(thought string) *domain.ThoughtSession {
	return &domain.ThoughtSession{
		AutomaticThought:  thought,
		OriginalIntensity: 7,
		Distortions: []domain.DetectedDistortion{
			{Type: "catastrophizing", Name: "Catastrophizing", Confidence: 0.6, Explanation: "test"},
		},
		Questions: []domain.ChallengeQuestion{
			{ID: 1, Question: "What evidence?", Category: domain.QuestionEvidence, Purpose: "evidence"},
		},
		Answers:           map[string]string{"q1": "an answer"},
		BalancedThought:   "a fairer view",
		BalancedIntensity: 3,
		Evaluation: &domain.Evaluation{
			Quality:  domain.QualityGood,
			Feedback: "nice work",
		},
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := openTestStore(t, 10)
	ctx := context.Background()

	saved, err := s.Save(ctx, testSession("a persistent thought"))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "a persistent thought", got.AutomaticThought)
	assert.Equal(t, map[string]string{"q1": "an answer"}, got.Answers)
	require.NotNil(t, got.Evaluation)
	assert.Equal(t, domain.QualityGood, got.Evaluation.Quality)
}

func TestSQLiteStoreOrderingAndOverflow(t *testing.T) {
	const cap = 3
	s := openTestStore(t, cap)
	ctx := context.Background()

	var ids []string
	for i := 0; i < cap+1; i++ {
		saved, err := s.Save(ctx, testSession(fmt.Sprintf("thought %d", i)))
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, cap)
	assert.Equal(t, ids[3], list[0].ID, "most recent first")
	for _, rec := range list {
		assert.NotEqual(t, ids[0], rec.ID, "oldest record must be evicted")
	}
}

func TestSQLiteStoreDelete(t *testing.T) {
	s := openTestStore(t, 10)
	ctx := context.Background()

	saved, err := s.Save(ctx, testSession("to be deleted"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, saved.ID))
	assert.ErrorIs(t, s.Delete(ctx, saved.ID), store.ErrSessionNotFound)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLiteStoreRejectsIncompleteSession(t *testing.T) {
	s := openTestStore(t, 10)

	incomplete := testSession("thought")
	incomplete.Evaluation = nil

	_, err := s.Save(context.Background(), incomplete)
	assert.ErrorIs(t, err, store.ErrInvalidSession)
}

func TestSQLiteStoreStats(t *testing.T) {
	s := openTestStore(t, 10)
	ctx := context.Background()

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSessions)

	_, err = s.Save(ctx, testSession("one"))
	require.NoError(t, err)
	_, err = s.Save(ctx, testSession("two"))
	require.NoError(t, err)

	stats, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.InDelta(t, 4.0, stats.AverageIntensityReduction, 1e-9)
	assert.Equal(t, "Catastrophizing", stats.MostCommonDistortion)
	assert.Equal(t, 2, stats.SessionsThisWeek)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")

	s, err := Open(path, 10)
	require.NoError(t, err)
	saved, err := s.Save(context.Background(), testSession("durable thought"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path, 10)
	require.NoError(t, err)
	defer func() { require.NoError(t, reopened.Close()) }()

	list, err := reopened.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)
}
