// Package service sits between the HTTP surface and the session state
// machines: it owns the live machines, keyed by session ID, and the shared
// collaborators every machine is built from.
package service

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/curiouscoder-cmd/mindmend-api/internal/classify"
	"github.com/curiouscoder-cmd/mindmend-api/internal/generation"
	"github.com/curiouscoder-cmd/mindmend-api/internal/session"
	"github.com/curiouscoder-cmd/mindmend-api/internal/store"
)

// ErrSessionNotFound indicates that no live machine exists for the given ID.
// It covers both never-created and already-removed sessions.
var ErrSessionNotFound = errors.New("session not found")

// ManagerConfig carries the collaborators shared by every machine the
// manager creates.
type ManagerConfig struct {
	Classifier  classify.Classifier
	Questions   generation.QuestionGenerator
	Synthesizer generation.Synthesizer
	Evaluator   generation.Evaluator
	Store       store.SessionStore

	// Logger may be nil; slog.Default() is used then.
	Logger *slog.Logger
}

// SessionManager creates, looks up, and removes live session machines. Safe
// for concurrent use; the per-session serialization lives in the machines
// themselves.
type SessionManager struct {
	cfg    ManagerConfig
	logger *slog.Logger

	mu       sync.RWMutex
	machines map[uuid.UUID]*session.Machine
}

// NewSessionManager validates the shared collaborators by constructing a
// throwaway machine from them, so a misconfigured manager fails at startup
// rather than on the first request.
func NewSessionManager(cfg ManagerConfig) (*SessionManager, error) {
	if _, err := session.NewMachine(session.Config{
		Classifier:  cfg.Classifier,
		Questions:   cfg.Questions,
		Synthesizer: cfg.Synthesizer,
		Evaluator:   cfg.Evaluator,
		Store:       cfg.Store,
		Logger:      cfg.Logger,
	}); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionManager{
		cfg:      cfg,
		logger:   logger,
		machines: make(map[uuid.UUID]*session.Machine),
	}, nil
}

// Create builds a fresh machine and returns its ID. extended selects the
// seven-question flow for this session.
func (m *SessionManager) Create(extended bool) (uuid.UUID, error) {
	machine, err := session.NewMachine(session.Config{
		Classifier:   m.cfg.Classifier,
		Questions:    m.cfg.Questions,
		Synthesizer:  m.cfg.Synthesizer,
		Evaluator:    m.cfg.Evaluator,
		Store:        m.cfg.Store,
		Logger:       m.cfg.Logger,
		ExtendedFlow: extended,
	})
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()

	m.mu.Lock()
	m.machines[id] = machine
	m.mu.Unlock()

	m.logger.Info("session created", "session_id", id, "extended_flow", extended)
	return id, nil
}

// Get returns the live machine for id, or ErrSessionNotFound.
func (m *SessionManager) Get(id uuid.UUID) (*session.Machine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	machine, ok := m.machines[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return machine, nil
}

// Remove resets the machine for id and drops it from the manager. In-memory
// progress is discarded; saved records are untouched. Returns
// ErrSessionNotFound if no machine exists for id.
func (m *SessionManager) Remove(id uuid.UUID) error {
	m.mu.Lock()
	machine, ok := m.machines[id]
	if ok {
		delete(m.machines, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	machine.Reset()
	m.logger.Info("session removed", "session_id", id)
	return nil
}

// Count reports the number of live machines.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.machines)
}
