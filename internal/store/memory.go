package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
)

// MemoryStore is an in-memory SessionStore. It backs tests and zero-config
// runs; nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions []*domain.ThoughtSession
	max      int
}

// NewMemoryStore creates an empty store retaining at most max sessions.
// max < 1 selects DefaultMaxSessions.
func NewMemoryStore(max int) *MemoryStore {
	if max < 1 {
		max = DefaultMaxSessions
	}
	return &MemoryStore{max: max}
}

// Save implements SessionStore.
func (s *MemoryStore) Save(ctx context.Context, session *domain.ThoughtSession) (*domain.ThoughtSession, error) {
	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	record := session.Clone()
	record.ID = uuid.New().String()
	record.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = append([]*domain.ThoughtSession{record}, s.sessions...)
	if len(s.sessions) > s.max {
		s.sessions = s.sessions[:s.max]
	}

	return record.Clone(), nil
}

// List implements SessionStore.
func (s *MemoryStore) List(ctx context.Context) ([]*domain.ThoughtSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.ThoughtSession, len(s.sessions))
	for i, rec := range s.sessions {
		out[i] = rec.Clone()
	}
	return out, nil
}

// Delete implements SessionStore.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.sessions {
		if rec.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return nil
		}
	}
	return ErrSessionNotFound
}

// Stats implements SessionStore.
func (s *MemoryStore) Stats(ctx context.Context) (*domain.SessionStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ComputeStats(s.sessions, time.Now().UTC()), nil
}
