// Package history persists a record per build invocation so operators can
// inspect what past builds produced.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Record summarizes one finished build.
type Record struct {
	BuildID      string
	Started      time.Time
	Finished     time.Time
	Pages        int
	ContentItems int
	Status       string
}

// Build status values.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Store is a SQLite-backed build history.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (and initializes) the history database at dbPath. Use
// ":memory:" for an in-memory database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// A single connection keeps in-memory databases coherent across calls.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL,
		started INTEGER NOT NULL,
		finished INTEGER NOT NULL,
		pages INTEGER NOT NULL,
		content_items INTEGER NOT NULL,
		status TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_build_id ON builds(build_id);
	CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one build.
func (s *Store) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (build_id, started, finished, pages, content_items, status) VALUES (?, ?, ?, ?, ?, ?)",
		rec.BuildID, rec.Started.Unix(), rec.Finished.Unix(), rec.Pages, rec.ContentItems, rec.Status,
	)
	if err != nil {
		return fmt.Errorf("insert build record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT build_id, started, finished, pages, content_items, status FROM builds ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query build records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var started, finished int64
		if err := rows.Scan(&rec.BuildID, &started, &finished, &rec.Pages, &rec.ContentItems, &rec.Status); err != nil {
			return nil, fmt.Errorf("scan build record: %w", err)
		}
		rec.Started = time.Unix(started, 0)
		rec.Finished = time.Unix(finished, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the store and releases resources.
func (s *Store) Close() error {
	return s.db.Close()
}
