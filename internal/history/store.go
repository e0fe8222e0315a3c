// Package history journals completed build runs so `uibuilder history` can
// answer "when did this package last build cleanly, and with what toolchain".
package history

import (
	"context"
	"time"

	"git.home.luguber.info/inful/uibuilder/internal/frontend"
)

// RunRecord is one journaled build run.
type RunRecord struct {
	ID             int64
	RunID          string
	Package        string
	Manager        string
	StartedAt      time.Time
	FinishedAt     time.Time
	Outcome        string
	NodeVersion    string
	ManagerVersion string
	Warnings       int
	Errors         int
	OutputVerified bool

	// Report is the full build-report JSON as persisted alongside the run.
	Report []byte
}

// Duration is the journaled wall-clock time of the run.
func (r RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store defines the interface for journaling and querying build runs.
type Store interface {
	// Record journals one completed run.
	Record(ctx context.Context, report *frontend.Report) error

	// Recent returns the most recent runs, newest first.
	Recent(ctx context.Context, limit int) ([]RunRecord, error)

	// Close closes the store and releases resources.
	Close() error
}
