package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/curiouscoder-cmd/mindmend-api/internal/classify"
	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
	"github.com/curiouscoder-cmd/mindmend-api/internal/generation"
	"github.com/curiouscoder-cmd/mindmend-api/internal/store"
)

// State identifies where a session is in the forward progression.
type State string

// Session states. Saving returns the machine to a fresh StateInput, so there
// is no terminal state; reset is legal from anywhere.
const (
	StateInput       State = "input"
	StateQuestioning State = "questioning"
	StateBalancing   State = "balancing"
	StateReviewing   State = "reviewing"
)

// Config carries the machine's collaborators.
type Config struct {
	Classifier  classify.Classifier
	Questions   generation.QuestionGenerator
	Synthesizer generation.Synthesizer
	Evaluator   generation.Evaluator
	Store       store.SessionStore

	// Logger may be nil; slog.Default() is used then.
	Logger *slog.Logger

	// ExtendedFlow selects the seven-question triple-column flow instead of
	// the simple five-question one.
	ExtendedFlow bool
}

// Machine drives one thought-challenge session. All exported methods are
// safe for concurrent use; the lock is released during remote calls.
type Machine struct {
	classifier  classify.Classifier
	questions   generation.QuestionGenerator
	synthesizer generation.Synthesizer
	evaluator   generation.Evaluator
	store       store.SessionStore
	logger      *slog.Logger
	extended    bool

	mu      sync.Mutex
	state   State
	busy    bool
	gen     uint64
	current *domain.ThoughtSession
}

// NewMachine creates a machine in StateInput.
// Returns an error if any required collaborator is missing.
func NewMachine(cfg Config) (*Machine, error) {
	if cfg.Classifier == nil {
		return nil, errors.New("classifier cannot be nil")
	}
	if cfg.Questions == nil {
		return nil, errors.New("question generator cannot be nil")
	}
	if cfg.Synthesizer == nil {
		return nil, errors.New("synthesizer cannot be nil")
	}
	if cfg.Evaluator == nil {
		return nil, errors.New("evaluator cannot be nil")
	}
	if cfg.Store == nil {
		return nil, errors.New("store cannot be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Machine{
		classifier:  cfg.Classifier,
		questions:   cfg.Questions,
		synthesizer: cfg.Synthesizer,
		evaluator:   cfg.Evaluator,
		store:       cfg.Store,
		logger:      logger,
		extended:    cfg.ExtendedFlow,
		state:       StateInput,
	}, nil
}

// State returns the machine's current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Busy reports whether a remote call is in flight.
func (m *Machine) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// Snapshot returns a copy of the in-progress session, or nil before a
// thought has been analyzed.
func (m *Machine) Snapshot() *domain.ThoughtSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	return m.current.Clone()
}

// invalidTransition wraps ErrInvalidTransition with the rejected action and
// the state it was attempted in.
func invalidTransition(action string, state State) error {
	return fmt.Errorf("%w: cannot %s in state %q", ErrInvalidTransition, action, state)
}

// begin marks a remote call in flight and returns the generation token it
// must present to apply its result. Caller holds the lock.
func (m *Machine) begin() (uint64, error) {
	if m.busy {
		return 0, ErrBusy
	}
	m.busy = true
	return m.gen, nil
}

// land clears the busy flag and reports whether the token still matches the
// current generation. A reset or save while the call was in flight bumps the
// generation; the late result must then be discarded, and the busy flag is
// left alone because it no longer belongs to this call. Caller holds the lock.
func (m *Machine) land(token uint64) bool {
	if token != m.gen {
		return false
	}
	m.busy = false
	return true
}

// AnalyzeThought classifies a non-empty thought and starts the in-progress
// session. Legal only in StateInput; the state does not advance until
// questions are generated.
func (m *Machine) AnalyzeThought(ctx context.Context, thought string, intensity int) (*classify.Result, error) {
	trimmed := strings.TrimSpace(thought)
	if trimmed == "" {
		return nil, domain.ErrEmptyThought
	}
	if intensity < 0 || intensity > 10 {
		return nil, domain.ErrInvalidIntensity
	}

	m.mu.Lock()
	if m.state != StateInput {
		m.mu.Unlock()
		return nil, invalidTransition("analyze a thought", m.state)
	}
	token, err := m.begin()
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.mu.Unlock()

	result, cerr := m.classifier.Classify(ctx, trimmed)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.land(token) {
		return nil, ErrStale
	}
	if cerr != nil {
		return nil, cerr
	}

	m.current = &domain.ThoughtSession{
		AutomaticThought:  trimmed,
		OriginalIntensity: intensity,
		// Until the user re-rates the balanced thought, reduction reads as zero.
		BalancedIntensity: intensity,
		Distortions:       result.Distortions,
		Suggestion:        result.Suggestion,
	}
	m.current.Provenance.Classification = result.Source

	m.logger.InfoContext(ctx, "thought analyzed",
		"distortions", len(result.Distortions),
		"source", result.Source)
	return result, nil
}

// GenerateQuestions produces the challenge questions for the analyzed
// thought, pre-populates an empty answer slot per question, and advances the
// machine to StateQuestioning.
func (m *Machine) GenerateQuestions(ctx context.Context) (*generation.QuestionSet, error) {
	m.mu.Lock()
	if m.state != StateInput {
		m.mu.Unlock()
		return nil, invalidTransition("generate questions", m.state)
	}
	if m.current == nil {
		m.mu.Unlock()
		return nil, ErrNoThought
	}
	token, err := m.begin()
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	thought := m.current.AutomaticThought
	distortions := append([]domain.DetectedDistortion(nil), m.current.Distortions...)
	count := generation.SimpleQuestionCount
	if m.extended {
		count = generation.ExtendedQuestionCount
	}
	m.mu.Unlock()

	set, gerr := m.questions.GenerateQuestions(ctx, thought, distortions, count)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.land(token) {
		return nil, ErrStale
	}
	if gerr != nil {
		return nil, gerr
	}

	m.current.Questions = set.Questions
	m.current.KeyInsight = set.KeyInsight
	m.current.Answers = make(map[string]string, len(set.Questions))
	for _, q := range set.Questions {
		m.current.Answers[q.AnswerKey()] = ""
	}
	m.current.Provenance.Questions = set.Source
	m.state = StateQuestioning

	m.logger.InfoContext(ctx, "questions generated",
		"count", len(set.Questions),
		"source", set.Source)
	return set, nil
}

// SubmitAnswers records the user's answers and advances to StateBalancing.
// The transition is refused, with no state change and no component calls, if
// any generated question lacks a non-blank answer; whitespace-only answers
// count as blank.
func (m *Machine) SubmitAnswers(answers map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateQuestioning {
		return invalidTransition("submit answers", m.state)
	}
	if m.busy {
		return ErrBusy
	}

	trimmed := make(map[string]string, len(m.current.Questions))
	for _, q := range m.current.Questions {
		answer := strings.TrimSpace(answers[q.AnswerKey()])
		if answer == "" {
			return fmt.Errorf("%w: question %d", domain.ErrIncompleteAnswers, q.ID)
		}
		trimmed[q.AnswerKey()] = answer
	}

	m.current.Answers = trimmed
	m.state = StateBalancing
	return nil
}

// Synthesize produces a candidate balanced thought from the recorded
// answers. Legal in StateBalancing; the machine stays there so the user can
// edit or re-synthesize before requesting review.
func (m *Machine) Synthesize(ctx context.Context) (*generation.Synthesis, error) {
	m.mu.Lock()
	if m.state != StateBalancing {
		m.mu.Unlock()
		return nil, invalidTransition("synthesize a balanced thought", m.state)
	}
	token, err := m.begin()
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	thought := m.current.AutomaticThought
	distortions := append([]domain.DetectedDistortion(nil), m.current.Distortions...)
	answers := make(map[string]string, len(m.current.Answers))
	for k, v := range m.current.Answers {
		answers[k] = v
	}
	m.mu.Unlock()

	syn, serr := m.synthesizer.Synthesize(ctx, thought, answers, distortions)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.land(token) {
		return nil, ErrStale
	}
	if serr != nil {
		return nil, serr
	}

	m.current.BalancedThought = syn.BalancedThought
	m.current.Explanation = syn.Explanation
	m.current.Affirmation = syn.Affirmation
	m.current.Provenance.Synthesis = syn.Source

	m.logger.InfoContext(ctx, "balanced thought synthesized", "source", syn.Source)
	return syn, nil
}

// SetBalancedThought replaces the balanced thought with the user's edit and
// re-rates its intensity. Legal in StateBalancing.
func (m *Machine) SetBalancedThought(text string, intensity int) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.ErrEmptyBalancedThought
	}
	if intensity < 0 || intensity > 10 {
		return domain.ErrInvalidIntensity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateBalancing {
		return invalidTransition("edit the balanced thought", m.state)
	}
	if m.busy {
		return ErrBusy
	}

	m.current.BalancedThought = trimmed
	m.current.BalancedIntensity = intensity
	return nil
}

// EvaluateWork reviews the completed challenge and advances to
// StateReviewing. Requires a non-empty balanced thought — AI-suggested,
// edited, or fully user-authored. The quality tier is a review signal, not a
// gate: saving is possible whatever it says.
func (m *Machine) EvaluateWork(ctx context.Context) (*generation.EvaluationResult, error) {
	m.mu.Lock()
	if m.state != StateBalancing {
		m.mu.Unlock()
		return nil, invalidTransition("evaluate the session", m.state)
	}
	if strings.TrimSpace(m.current.BalancedThought) == "" {
		m.mu.Unlock()
		return nil, domain.ErrEmptyBalancedThought
	}
	token, err := m.begin()
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	thought := m.current.AutomaticThought
	balanced := m.current.BalancedThought
	answers := make(map[string]string, len(m.current.Answers))
	for k, v := range m.current.Answers {
		answers[k] = v
	}
	m.mu.Unlock()

	result, eerr := m.evaluator.Evaluate(ctx, thought, balanced, answers)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.land(token) {
		return nil, ErrStale
	}
	if eerr != nil {
		return nil, eerr
	}

	evaluation := result.Evaluation
	m.current.Evaluation = &evaluation
	m.current.Provenance.Evaluation = result.Source
	m.state = StateReviewing

	m.logger.InfoContext(ctx, "session evaluated",
		"quality", evaluation.Quality,
		"source", result.Source)
	return result, nil
}

// SaveSession persists the evaluated session and returns the machine to a
// fresh StateInput. On a persistence failure the in-memory session is kept
// untouched so the user can retry without re-entering anything.
func (m *Machine) SaveSession(ctx context.Context) (*domain.ThoughtSession, error) {
	m.mu.Lock()
	if m.state != StateReviewing {
		m.mu.Unlock()
		return nil, invalidTransition("save the session", m.state)
	}
	token, err := m.begin()
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	record := m.current.Clone()
	m.mu.Unlock()

	saved, serr := m.store.Save(ctx, record)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.land(token) {
		return nil, ErrStale
	}
	if serr != nil {
		m.logger.ErrorContext(ctx, "failed to save session", "error", serr)
		return nil, serr
	}

	// Fresh machine; bump the generation so any straggling remote result
	// from the saved session cannot land on the next one.
	m.current = nil
	m.state = StateInput
	m.gen++

	m.logger.InfoContext(ctx, "session saved", "session_id", saved.ID)
	return saved, nil
}

// Reset discards all in-memory state and returns to StateInput. Legal from
// any state; persisted sessions are untouched. Any in-flight remote result
// is orphaned and will be discarded when it lands.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	m.state = StateInput
	m.busy = false
	m.gen++
}
