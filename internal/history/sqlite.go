package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/uibuilder/internal/frontend"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the journal at dbPath. Use ":memory:"
// for an in-memory database. For file-backed journals the parent directory
// is created as needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("ensure journal dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		package TEXT NOT NULL,
		manager TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		node_version TEXT,
		manager_version TEXT,
		warnings INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		output_verified INTEGER NOT NULL,
		report BLOB
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record journals one completed run. The report's end time must be set
// (Finish called); the full serialized report travels along as a blob so
// later tooling can reconstruct the run without schema churn.
func (s *SQLiteStore) Record(ctx context.Context, report *frontend.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.Marshal(report.SanitizedCopy())
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, package, manager, started_at, finished_at, outcome,
			node_version, manager_version, warnings, errors, output_verified, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, report.Package, report.Manager,
		report.Start.UnixMilli(), report.End.UnixMilli(), string(report.Outcome),
		report.NodeVersion, report.ManagerVersion,
		len(report.Warnings), len(report.Errors), report.OutputVerified, blob,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	return nil
}

// Recent returns the most recent runs, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, package, manager, started_at, finished_at, outcome,
			node_version, manager_version, warnings, errors, output_verified, report
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	var records []RunRecord
	for rows.Next() {
		var (
			r                  RunRecord
			startMS, finishMS  int64
			nodeVer, mgrVer    sql.NullString
			outputVerifiedFlag int
		)
		err := rows.Scan(&r.ID, &r.RunID, &r.Package, &r.Manager, &startMS, &finishMS,
			&r.Outcome, &nodeVer, &mgrVer, &r.Warnings, &r.Errors, &outputVerifiedFlag, &r.Report)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.UnixMilli(startMS)
		r.FinishedAt = time.UnixMilli(finishMS)
		r.NodeVersion = nodeVer.String
		r.ManagerVersion = mgrVer.String
		r.OutputVerified = outputVerifiedFlag != 0
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
