// Package store defines storage interfaces for persisting run setup records.
package store

import (
	"context"
	"time"
)

// RunRecord captures the outcome of one setup pass for later inspection.
type RunRecord struct {
	RunID           string
	Mode            string
	Algorithm       string
	PeriodStart     time.Time
	PeriodFinish    time.Time
	StartingCapital float64
	Success         bool
	Errors          []string
	CreatedAt       time.Time
}

// RunStore persists and retrieves run records.
type RunStore interface {
	// SaveRun inserts a new run record.
	SaveRun(ctx context.Context, record *RunRecord) error

	// GetRun retrieves a single run record by its run ID.
	GetRun(ctx context.Context, runID string) (*RunRecord, error)

	// ListRuns returns the most recent run records, up to limit.
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
}
