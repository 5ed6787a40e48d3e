// Package history persists run results to a local SQLite database, giving
// operators a record of past packaging runs and their per-package outcomes.
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

	"github.com/geniustechspace/wheelhouse/internal/build"
)

// RunRecord is one persisted run summary row.
type RunRecord struct {
	ID        string
	Started   time.Time
	Finished  time.Time
	Outcome   string
	Succeeded int
	Failed    int
	Skipped   int
	Artifacts int
}

// PackageRecord is one persisted per-package outcome row.
type PackageRecord struct {
	RunID      string
	Package    string
	Status     string
	Diagnostic string
	DurationMS int64
}

// Store implements run-history persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens the history database at dbPath, creating parent
// directories as needed. Use ":memory:" for an in-memory database.
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
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started INTEGER NOT NULL,
		finished INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		succeeded INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		artifacts INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS outcomes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		package TEXT NOT NULL,
		status TEXT NOT NULL,
		diagnostic TEXT,
		duration_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists a finished run and its per-package outcomes.
func (s *Store) Record(ctx context.Context, result *build.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, started, finished, outcome, succeeded, failed, skipped, artifacts) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		result.RunID,
		result.Start.Unix(),
		result.End.Unix(),
		string(result.Status()),
		len(result.Succeeded),
		len(result.Failed),
		len(result.Skipped),
		len(result.Artifacts),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, o := range result.Outcomes() {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO outcomes (run_id, package, status, diagnostic, duration_ms) VALUES (?, ?, ?, ?, ?)",
			result.RunID, o.Package, string(o.Status), o.Diagnostic, o.Duration.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("insert outcome for %s: %w", o.Package, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run record: %w", err)
	}
	return nil
}

// Recent returns up to n run records, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, started, finished, outcome, succeeded, failed, skipped, artifacts FROM runs ORDER BY started DESC, id DESC LIMIT ?",
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var started, finished int64
		if err := rows.Scan(&r.ID, &started, &finished, &r.Outcome, &r.Succeeded, &r.Failed, &r.Skipped, &r.Artifacts); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Started = time.Unix(started, 0)
		r.Finished = time.Unix(finished, 0)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Packages returns the per-package outcomes of one run, in insertion order.
func (s *Store) Packages(ctx context.Context, runID string) ([]PackageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT run_id, package, status, diagnostic, duration_ms FROM outcomes WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var records []PackageRecord
	for rows.Next() {
		var p PackageRecord
		var diagnostic sql.NullString
		if err := rows.Scan(&p.RunID, &p.Package, &p.Status, &diagnostic, &p.DurationMS); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		p.Diagnostic = diagnostic.String
		records = append(records, p)
	}
	return records, rows.Err()
}
