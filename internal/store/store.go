// Package store keeps cleaned visitor tables in a local SQLite database so
// repeated analyses can query them without re-reading the raw workbook.
package store

import (
	"context"
	"time"

	"github.com/sells-group/tourism-cli/internal/visitors"
)

// LoadRun records one replacement of a source's rows.
type LoadRun struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
}

// RegionYear is one metric total for a region and year.
type RegionYear struct {
	Year   int    `json:"year"`
	Region string `json:"region"`
	Value  int64  `json:"value"`
}

// Store defines the persistence interface for cleaned visitor tables.
type Store interface {
	// Visitors
	ReplaceVisitors(ctx context.Context, source string, records []visitors.Record) (*LoadRun, error)
	Visitors(ctx context.Context, source string) ([]visitors.Record, error)
	YearlyTotalsByRegion(ctx context.Context, source, metric string) ([]RegionYear, error)

	// Loads
	ListLoads(ctx context.Context, limit int) ([]LoadRun, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
