package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curiouscoder-cmd/mindmend-api/internal/classify"
	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
	"github.com/curiouscoder-cmd/mindmend-api/internal/generation"
	"github.com/curiouscoder-cmd/mindmend-api/internal/store"
)

// offlineMachine builds a machine whose every remote dependency is absent,
// exercising the full deterministic fallback path.
func offlineMachine(t *testing.T, st store.SessionStore) *Machine {
	t.Helper()
	if st == nil {
		st = store.NewMemoryStore(10)
	}
	m, err := NewMachine(Config{
		Classifier:  classify.NewCompositeClassifier(nil, nil, nil),
		Questions:   generation.NewFallbackQuestionGenerator(nil, nil),
		Synthesizer: generation.NewFallbackSynthesizer(nil, nil),
		Evaluator:   generation.NewFallbackEvaluator(nil, nil),
		Store:       st,
	})
	require.NoError(t, err)
	return m
}

// answerAll produces a non-blank answer for every question in the set.
func answerAll(set *generation.QuestionSet) map[string]string {
	answers := make(map[string]string, len(set.Questions))
	for _, q := range set.Questions {
		answers[q.AnswerKey()] = "a considered answer"
	}
	return answers
}

func TestNewMachineValidatesDependencies(t *testing.T) {
	t.Parallel()

	valid := Config{
		Classifier:  classify.NewCompositeClassifier(nil, nil, nil),
		Questions:   generation.NewFallbackQuestionGenerator(nil, nil),
		Synthesizer: generation.NewFallbackSynthesizer(nil, nil),
		Evaluator:   generation.NewFallbackEvaluator(nil, nil),
		Store:       store.NewMemoryStore(10),
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "nil classifier", mutate: func(c *Config) { c.Classifier = nil }},
		{name: "nil question generator", mutate: func(c *Config) { c.Questions = nil }},
		{name: "nil synthesizer", mutate: func(c *Config) { c.Synthesizer = nil }},
		{name: "nil evaluator", mutate: func(c *Config) { c.Evaluator = nil }},
		{name: "nil store", mutate: func(c *Config) { c.Store = nil }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tt.mutate(&cfg)
			_, err := NewMachine(cfg)
			assert.Error(t, err)
		})
	}

	m, err := NewMachine(valid)
	require.NoError(t, err)
	assert.Equal(t, StateInput, m.State())
}

// TestFullSessionOffline walks an entire session with the remote service
// unavailable: fallback classification, default questions, placeholder
// synthesis, default evaluation, save. Nothing may error, and the stored
// record must carry local provenance throughout.
func TestFullSessionOffline(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore(10)
	m := offlineMachine(t, st)
	ctx := context.Background()

	result, err := m.AnalyzeThought(ctx, "I failed one test, so I'm a complete failure", 9)
	require.NoError(t, err)
	assert.True(t, result.IsLocal())

	types := make([]string, 0, len(result.Distortions))
	for _, d := range result.Distortions {
		types = append(types, d.Type)
		assert.Greater(t, d.Confidence, 0.0)
	}
	assert.Contains(t, types, "all-or-nothing")
	assert.Contains(t, types, "labeling")

	set, err := m.GenerateQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocal, set.Source)
	require.Len(t, set.Questions, generation.SimpleQuestionCount)
	assert.Equal(t, StateQuestioning, m.State())

	require.NoError(t, m.SubmitAnswers(answerAll(set)))
	assert.Equal(t, StateBalancing, m.State())

	syn, err := m.Synthesize(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, syn.BalancedThought)
	assert.Equal(t, domain.SourceLocal, syn.Source)
	assert.Equal(t, StateBalancing, m.State(), "synthesis does not advance the state")

	require.NoError(t, m.SetBalancedThought("One test is one test. My record says more than one grade.", 4))

	eval, err := m.EvaluateWork(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.QualityGood, eval.Evaluation.Quality)
	assert.Equal(t, StateReviewing, m.State())

	saved, err := m.SaveSession(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, StateInput, m.State(), "save returns the machine to a fresh input state")
	assert.Nil(t, m.Snapshot())

	assert.Equal(t, domain.SourceLocal, saved.Provenance.Classification)
	assert.Equal(t, domain.SourceLocal, saved.Provenance.Questions)
	assert.Equal(t, domain.SourceLocal, saved.Provenance.Synthesis)
	assert.Equal(t, domain.SourceLocal, saved.Provenance.Evaluation)
	assert.Equal(t, 5, saved.IntensityReduction())

	list, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)
}

func TestAnalyzeThoughtRejectsBadInput(t *testing.T) {
	t.Parallel()

	m := offlineMachine(t, nil)
	ctx := context.Background()

	_, err := m.AnalyzeThought(ctx, "   ", 5)
	assert.ErrorIs(t, err, domain.ErrEmptyThought)
	assert.Equal(t, StateInput, m.State())

	_, err = m.AnalyzeThought(ctx, "a thought", 11)
	assert.ErrorIs(t, err, domain.ErrInvalidIntensity)

	_, err = m.AnalyzeThought(ctx, "a thought", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidIntensity)
}

func TestGenerateQuestionsRequiresAnalyzedThought(t *testing.T) {
	t.Parallel()

	m := offlineMachine(t, nil)
	_, err := m.GenerateQuestions(context.Background())
	assert.ErrorIs(t, err, ErrNoThought)
}

func TestSubmitAnswersGuard(t *testing.T) {
	t.Parallel()

	m := offlineMachine(t, nil)
	ctx := context.Background()

	_, err := m.AnalyzeThought(ctx, "nobody ever listens to me", 6)
	require.NoError(t, err)
	set, err := m.GenerateQuestions(ctx)
	require.NoError(t, err)

	tests := []struct {
		name    string
		answers map[string]string
	}{
		{
			name:    "empty first answer",
			answers: map[string]string{"q1": "", "q2": "x", "q3": "x", "q4": "x", "q5": "x"},
		},
		{
			name:    "whitespace-only answer counts as blank",
			answers: map[string]string{"q1": "x", "q2": "x", "q3": "   \t", "q4": "x", "q5": "x"},
		},
		{
			name:    "missing key",
			answers: map[string]string{"q1": "x", "q2": "x", "q3": "x", "q4": "x"},
		},
		{
			name:    "nil map",
			answers: nil,
		},
	}

	for _, tt := range tests {
		err := m.SubmitAnswers(tt.answers)
		assert.ErrorIs(t, err, domain.ErrIncompleteAnswers, tt.name)
		assert.Equal(t, StateQuestioning, m.State(), "%s: guard failure must not change state", tt.name)
	}

	require.NoError(t, m.SubmitAnswers(answerAll(set)))
	assert.Equal(t, StateBalancing, m.State())
}

func TestSubmitAnswersTrimsStoredAnswers(t *testing.T) {
	t.Parallel()

	m := offlineMachine(t, nil)
	ctx := context.Background()

	_, err := m.AnalyzeThought(ctx, "I always ruin everything", 7)
	require.NoError(t, err)
	set, err := m.GenerateQuestions(ctx)
	require.NoError(t, err)

	answers := answerAll(set)
	answers["q1"] = "  padded answer  "
	require.NoError(t, m.SubmitAnswers(answers))

	snap := m.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "padded answer", snap.Answers["q1"])
}

func TestEvaluateRequiresBalancedThought(t *testing.T) {
	t.Parallel()

	m := offlineMachine(t, nil)
	ctx := context.Background()

	_, err := m.AnalyzeThought(ctx, "I should be better at this", 5)
	require.NoError(t, err)
	set, err := m.GenerateQuestions(ctx)
	require.NoError(t, err)
	require.NoError(t, m.SubmitAnswers(answerAll(set)))

	// No synthesis and no user edit yet: nothing to review.
	_, err = m.EvaluateWork(ctx)
	assert.ErrorIs(t, err, domain.ErrEmptyBalancedThought)
	assert.Equal(t, StateBalancing, m.State())

	// A fully user-authored balanced thought is enough.
	require.NoError(t, m.SetBalancedThought("Wanting to improve is not the same as failing.", 3))
	_, err = m.EvaluateWork(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateReviewing, m.State())
}

func TestInvalidTransitions(t *testing.T) {
	t.Parallel()

	m := offlineMachine(t, nil)
	ctx := context.Background()

	// Everything except analyze/reset is illegal from a fresh machine.
	require.Error(t, m.SubmitAnswers(map[string]string{"q1": "x"}))
	_, err := m.Synthesize(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = m.EvaluateWork(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = m.SaveSession(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// A second analyze while questioning is illegal too.
	_, err = m.AnalyzeThought(ctx, "a thought", 5)
	require.NoError(t, err)
	_, err = m.GenerateQuestions(ctx)
	require.NoError(t, err)
	_, err = m.AnalyzeThought(ctx, "another thought", 5)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestResetFromAnyState(t *testing.T) {
	t.Parallel()

	m := offlineMachine(t, nil)
	ctx := context.Background()

	_, err := m.AnalyzeThought(ctx, "everyone must think I'm an idiot", 8)
	require.NoError(t, err)
	set, err := m.GenerateQuestions(ctx)
	require.NoError(t, err)
	require.NoError(t, m.SubmitAnswers(answerAll(set)))

	m.Reset()
	assert.Equal(t, StateInput, m.State())
	assert.Nil(t, m.Snapshot())

	// The machine is reusable after a reset.
	_, err = m.AnalyzeThought(ctx, "a new thought", 4)
	require.NoError(t, err)
}

// blockingClassifier parks until released, letting tests observe the machine
// mid-flight.
type blockingClassifier struct {
	release chan struct{}
	result  *classify.Result
}

func (b *blockingClassifier) Classify(ctx context.Context, thought string) (*classify.Result, error) {
	<-b.release
	return b.result, nil
}

func TestBusyRejectsReentrantCalls(t *testing.T) {
	t.Parallel()

	blocker := &blockingClassifier{
		release: make(chan struct{}),
		result:  &classify.Result{Source: domain.SourceRemote},
	}
	m, err := NewMachine(Config{
		Classifier:  blocker,
		Questions:   generation.NewFallbackQuestionGenerator(nil, nil),
		Synthesizer: generation.NewFallbackSynthesizer(nil, nil),
		Evaluator:   generation.NewFallbackEvaluator(nil, nil),
		Store:       store.NewMemoryStore(10),
	})
	require.NoError(t, err)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() {
		_, err := m.AnalyzeThought(ctx, "a slow thought", 5)
		done <- err
	}()

	require.Eventually(t, m.Busy, time.Second, time.Millisecond, "machine should report busy while the call is in flight")

	_, err = m.AnalyzeThought(ctx, "an impatient second thought", 5)
	assert.ErrorIs(t, err, ErrBusy)

	close(blocker.release)
	require.NoError(t, <-done)
	assert.False(t, m.Busy())
}

func TestStaleResultDiscardedAfterReset(t *testing.T) {
	t.Parallel()

	blocker := &blockingClassifier{
		release: make(chan struct{}),
		result: &classify.Result{
			Distortions: []domain.DetectedDistortion{{Type: "labeling", Name: "Labeling", Confidence: 0.8}},
			Source:      domain.SourceRemote,
		},
	}
	m, err := NewMachine(Config{
		Classifier:  blocker,
		Questions:   generation.NewFallbackQuestionGenerator(nil, nil),
		Synthesizer: generation.NewFallbackSynthesizer(nil, nil),
		Evaluator:   generation.NewFallbackEvaluator(nil, nil),
		Store:       store.NewMemoryStore(10),
	})
	require.NoError(t, err)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() {
		_, err := m.AnalyzeThought(ctx, "a thought from a past life", 5)
		done <- err
	}()

	require.Eventually(t, m.Busy, time.Second, time.Millisecond)

	// The user walks away while the call is in flight.
	m.Reset()

	close(blocker.release)
	assert.ErrorIs(t, <-done, ErrStale)
	assert.Nil(t, m.Snapshot(), "the stale result must not be applied")
	assert.Equal(t, StateInput, m.State())
}

// failingStore simulates a persistence-layer failure (e.g. storage quota).
type failingStore struct {
	store.SessionStore
	err error
}

func (f *failingStore) Save(ctx context.Context, s *domain.ThoughtSession) (*domain.ThoughtSession, error) {
	return nil, f.err
}

func TestSaveFailureKeepsSessionForRetry(t *testing.T) {
	t.Parallel()

	quota := errors.New("storage quota exceeded")
	m := offlineMachine(t, &failingStore{SessionStore: store.NewMemoryStore(10), err: quota})
	ctx := context.Background()

	_, err := m.AnalyzeThought(ctx, "it's all my fault", 8)
	require.NoError(t, err)
	set, err := m.GenerateQuestions(ctx)
	require.NoError(t, err)
	require.NoError(t, m.SubmitAnswers(answerAll(set)))
	require.NoError(t, m.SetBalancedThought("Some of it was outside my control.", 4))
	_, err = m.EvaluateWork(ctx)
	require.NoError(t, err)

	_, err = m.SaveSession(ctx)
	assert.ErrorIs(t, err, quota)
	assert.Equal(t, StateReviewing, m.State(), "save failure must preserve state for retry")
	assert.NotNil(t, m.Snapshot(), "in-memory session must survive a failed save")
}

func TestExtendedFlowGeneratesSevenQuestions(t *testing.T) {
	t.Parallel()

	m, err := NewMachine(Config{
		Classifier:   classify.NewCompositeClassifier(nil, nil, nil),
		Questions:    generation.NewFallbackQuestionGenerator(nil, nil),
		Synthesizer:  generation.NewFallbackSynthesizer(nil, nil),
		Evaluator:    generation.NewFallbackEvaluator(nil, nil),
		Store:        store.NewMemoryStore(10),
		ExtendedFlow: true,
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = m.AnalyzeThought(ctx, "this will be a disaster", 7)
	require.NoError(t, err)

	set, err := m.GenerateQuestions(ctx)
	require.NoError(t, err)
	assert.Len(t, set.Questions, generation.ExtendedQuestionCount)
}
