// Package sqlite persists sync batch history in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docfind/internal/core/domain"
	"github.com/custodia-labs/docfind/internal/core/ports/driven"
)

const schema = `
CREATE TABLE IF NOT EXISTS sync_batches (
	id          TEXT PRIMARY KEY,
	state       TEXT NOT NULL,
	attempted   INTEGER NOT NULL DEFAULT 0,
	succeeded   INTEGER NOT NULL DEFAULT 0,
	started_at  TEXT NOT NULL,
	finished_at TEXT
);
`

// Store is a SQLite-backed SyncHistoryStore.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.SyncHistoryStore = (*Store)(nil)

// NewStore opens (or creates) a history database at the given path.
// If path is empty, defaults to ~/.docfind/data/history.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".docfind", "data", "history.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save inserts or updates a batch record keyed by batch ID.
func (s *Store) Save(ctx context.Context, batch *domain.SyncBatch) error {
	var finishedAt sql.NullString
	if !batch.FinishedAt.IsZero() {
		finishedAt = sql.NullString{String: batch.FinishedAt.UTC().Format(time.RFC3339Nano), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_batches (id, state, attempted, succeeded, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state = excluded.state,
			attempted = excluded.attempted,
			succeeded = excluded.succeeded,
			finished_at = excluded.finished_at
	`, batch.ID, string(batch.State), batch.Attempted, batch.Succeeded,
		batch.StartedAt.UTC().Format(time.RFC3339Nano), finishedAt)
	if err != nil {
		return fmt.Errorf("saving batch %s: %w", batch.ID, err)
	}

	return nil
}

// Latest returns the most recently started batch, or ErrNotFound when the
// history is empty.
func (s *Store) Latest(ctx context.Context) (*domain.SyncBatch, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, state, attempted, succeeded, started_at, finished_at
		FROM sync_batches
		ORDER BY started_at DESC
		LIMIT 1
	`)

	var (
		batch      domain.SyncBatch
		state      string
		startedAt  string
		finishedAt sql.NullString
	)
	err := row.Scan(&batch.ID, &state, &batch.Attempted, &batch.Succeeded, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest batch: %w", err)
	}

	batch.State = domain.BatchState(state)
	if batch.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if finishedAt.Valid {
		if batch.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt.String); err != nil {
			return nil, fmt.Errorf("parsing finished_at: %w", err)
		}
	}

	return &batch, nil
}
