// Package store defines the persistence contract for completed thought
// sessions: an ordered, most-recent-first collection capped at a fixed
// retention count, plus statistics recomputed on demand from its contents.
//
// The package also provides the in-memory implementation; the SQLite-backed
// one lives in platform/sqlite.
package store
