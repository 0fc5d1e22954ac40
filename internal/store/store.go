package store

import (
	"context"

	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
)

// DefaultMaxSessions is the retention cap applied when a store is built
// without an explicit one.
const DefaultMaxSessions = 50

// SessionStore defines the interface for completed-session persistence.
//
// Saved sessions are immutable except for deletion. The collection is
// ordered most-recent-first; when the retention cap is exceeded the oldest
// record is evicted silently.
type SessionStore interface {
	// Save validates the session, assigns its ID and CreatedAt, and prepends
	// it to the collection, evicting the oldest record past the cap.
	// Returns the stored record. Persistence failures propagate to the
	// caller; they never partially write.
	Save(ctx context.Context, session *domain.ThoughtSession) (*domain.ThoughtSession, error)

	// List returns all stored sessions, most recent first. The returned
	// records are copies; mutating them does not affect the store.
	List(ctx context.Context) ([]*domain.ThoughtSession, error)

	// Delete removes a session by ID.
	// Returns ErrSessionNotFound if no such record exists.
	Delete(ctx context.Context, id string) error

	// Stats recomputes aggregate statistics from the current contents.
	Stats(ctx context.Context) (*domain.SessionStats, error)
}
