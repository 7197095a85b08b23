package store

import (
	"context"
	"time"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/termfreq"
)

// Store persists the published output of a run: one record per run and the
// filtered term table of every month. Per-document tables are never stored.
type Store interface {
	Close() error

	// Runs
	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	LatestRun(ctx context.Context) (Run, bool, error)

	// Months
	SaveMonth(ctx context.Context, runID string, m Month) error
	Months(ctx context.Context, runID string) ([]MonthSummary, error)
	MonthTable(ctx context.Context, runID, month string) (termfreq.Table, bool, error)
}

// Run describes one aggregation run. IDs are ULIDs, so they sort by start time.
type Run struct {
	ID        string
	StartedAt time.Time
	InputDir  string
	Documents int64
	Skipped   int64
}

// Month is a published month: its filtered table and rendered artifact.
type Month struct {
	Month string
	Image string
	Terms termfreq.Table
}

// MonthSummary is a stored month without its table.
type MonthSummary struct {
	Month string
	Image string
	Terms int // distinct terms
	Total int // sum of counts
}
