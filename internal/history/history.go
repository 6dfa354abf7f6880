// Package history persists build run metadata in a local SQLite database.
// Only run metadata is stored, never post content; every build re-reads the
// posts directory from scratch.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Record describes one completed build run.
type Record struct {
	BuildID    string
	StartedAt  time.Time
	DurationMS int64
	Posts      int
	Output     string
	Outcome    string
}

// Store is a SQLite-backed build history. A nil *Store is valid and ignores
// all calls, which is how disabled history is wired through the build.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens the history database at dbPath.
// Use ":memory:" for an in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		posts INTEGER NOT NULL,
		output TEXT NOT NULL,
		outcome TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds a build record to the store.
func (s *Store) Append(ctx context.Context, rec Record) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (build_id, started_at, duration_ms, posts, output, outcome) VALUES (?, ?, ?, ?, ?, ?)",
		rec.BuildID, rec.StartedAt.Unix(), rec.DurationMS, rec.Posts, rec.Output, rec.Outcome,
	)
	if err != nil {
		return fmt.Errorf("insert build record: %w", err)
	}

	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT build_id, started_at, duration_ms, posts, output, outcome FROM builds ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query build records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var startedUnix int64
		if err := rows.Scan(&rec.BuildID, &startedUnix, &rec.DurationMS, &rec.Posts, &rec.Output, &rec.Outcome); err != nil {
			return nil, fmt.Errorf("scan build record: %w", err)
		}
		rec.StartedAt = time.Unix(startedUnix, 0)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
