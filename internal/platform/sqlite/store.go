// Package sqlite provides the SQLite-backed SessionStore.
//
// Persistence follows the engine's key-value contract: the whole ordered
// session list lives as one JSON document under a single namespace row.
// Every write reads the document, mutates it in memory (prepend, trim past
// the cap), and writes it back inside one transaction, so a reader can never
// observe a partially written record.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver.

	"github.com/curiouscoder-cmd/mindmend-api/internal/domain"
	"github.com/curiouscoder-cmd/mindmend-api/internal/store"
)

// sessionsNamespace is the key under which the session list is stored.
const sessionsNamespace = "thought_sessions"

// Store implements store.SessionStore on a SQLite database.
type Store struct {
	db  *sql.DB
	max int

	// Serializes read-modify-write cycles; SQLite would otherwise surface
	// SQLITE_BUSY under concurrent writers.
	mu sync.Mutex
}

// Open opens or creates the database at path and applies the schema.
// max < 1 selects store.DefaultMaxSessions.
func Open(path string, max int) (*Store, error) {
	if max < 1 {
		max = store.DefaultMaxSessions
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, max: max}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS namespaces (
		name TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// readList loads and decodes the session list. Runnable against the DB or an
// open transaction.
func readList(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}) ([]*domain.ThoughtSession, error) {
	var payload string
	err := q.QueryRowContext(ctx,
		`SELECT payload FROM namespaces WHERE name = ?`, sessionsNamespace).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session list: %w", err)
	}

	var sessions []*domain.ThoughtSession
	if err := json.Unmarshal([]byte(payload), &sessions); err != nil {
		return nil, fmt.Errorf("decode session list: %w", err)
	}
	return sessions, nil
}

// writeList encodes and upserts the session list within tx.
func writeList(ctx context.Context, tx *sql.Tx, sessions []*domain.ThoughtSession) error {
	payload, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode session list: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO namespaces (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		sessionsNamespace, string(payload), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write session list: %w", err)
	}
	return nil
}

// mutate runs fn against the decoded list inside a transaction and writes
// back whatever fn returns.
func (s *Store) mutate(ctx context.Context, fn func([]*domain.ThoughtSession) ([]*domain.ThoughtSession, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	sessions, err := readList(ctx, tx)
	if err != nil {
		return err
	}
	updated, err := fn(sessions)
	if err != nil {
		return err
	}
	if err := writeList(ctx, tx, updated); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Save implements store.SessionStore.
func (s *Store) Save(ctx context.Context, session *domain.ThoughtSession) (*domain.ThoughtSession, error) {
	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidSession, err)
	}

	record := session.Clone()
	record.ID = uuid.New().String()
	record.CreatedAt = time.Now().UTC()

	err := s.mutate(ctx, func(sessions []*domain.ThoughtSession) ([]*domain.ThoughtSession, error) {
		sessions = append([]*domain.ThoughtSession{record}, sessions...)
		if len(sessions) > s.max {
			sessions = sessions[:s.max]
		}
		return sessions, nil
	})
	if err != nil {
		return nil, err
	}
	return record.Clone(), nil
}

// List implements store.SessionStore.
func (s *Store) List(ctx context.Context) ([]*domain.ThoughtSession, error) {
	sessions, err := readList(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []*domain.ThoughtSession{}
	}
	return sessions, nil
}

// Delete implements store.SessionStore.
func (s *Store) Delete(ctx context.Context, id string) error {
	found := false
	err := s.mutate(ctx, func(sessions []*domain.ThoughtSession) ([]*domain.ThoughtSession, error) {
		for i, rec := range sessions {
			if rec.ID == id {
				found = true
				return append(sessions[:i], sessions[i+1:]...), nil
			}
		}
		return sessions, nil
	})
	if err != nil {
		return err
	}
	if !found {
		return store.ErrSessionNotFound
	}
	return nil
}

// Stats implements store.SessionStore.
func (s *Store) Stats(ctx context.Context) (*domain.SessionStats, error) {
	sessions, err := readList(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return store.ComputeStats(sessions, time.Now().UTC()), nil
}
