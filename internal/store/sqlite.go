package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/tourism-cli/internal/visitors"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS visitor_counts (
	source          TEXT NOT NULL,
	year            INTEGER NOT NULL,
	month           TEXT NOT NULL,
	country         TEXT NOT NULL,
	region          TEXT NOT NULL,
	total           INTEGER,
	tourist         INTEGER,
	business        INTEGER,
	others          INTEGER,
	short_excursion INTEGER,
	PRIMARY KEY (source, year, month, country)
);

CREATE INDEX IF NOT EXISTS idx_visitor_counts_region ON visitor_counts(source, region, year);

CREATE TABLE IF NOT EXISTS load_runs (
	id        TEXT PRIMARY KEY,
	source    TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	loaded_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_load_runs_loaded ON load_runs(loaded_at);
`

// Migrate creates the tables if they do not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ReplaceVisitors swaps every row stored under source for records in one
// transaction and logs the load. A failed insert leaves the previous rows.
func (s *SQLiteStore) ReplaceVisitors(ctx context.Context, source string, records []visitors.Record) (*LoadRun, error) {
	if source == "" {
		return nil, eris.New("sqlite: replace visitors: empty source")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin replace")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM visitor_counts WHERE source = ?`, source); err != nil {
		return nil, eris.Wrapf(err, "sqlite: clear source %s", source)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO visitor_counts (source, year, month, country, region, total, tourist, business, others, short_excursion)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close() //nolint:errcheck

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			source, r.Year, r.Month, r.Country, r.Region,
			r.Total, r.Tourist, r.Business, r.Others, r.ShortExcursion,
		); err != nil {
			return nil, eris.Wrapf(err, "sqlite: insert %d %s %s", r.Year, r.Month, r.Country)
		}
	}

	run := &LoadRun{
		ID:       uuid.New().String(),
		Source:   source,
		Rows:     len(records),
		LoadedAt: time.Now().UTC(),
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO load_runs (id, source, row_count, loaded_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Source, run.Rows, run.LoadedAt,
	); err != nil {
		return nil, eris.Wrap(err, "sqlite: insert load run")
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit replace")
	}
	return run, nil
}

// Visitors returns the rows stored under source in year, month, country order.
func (s *SQLiteStore) Visitors(ctx context.Context, source string) ([]visitors.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT year, month, country, region, total, tourist, business, others, short_excursion
		 FROM visitor_counts WHERE source = ?
		 ORDER BY year, month, country`,
		source,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list visitors")
	}
	defer rows.Close() //nolint:errcheck

	var out []visitors.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list visitors iterate")
}

// YearlyTotalsByRegion sums metric per region and year. Null counts add nothing.
func (s *SQLiteStore) YearlyTotalsByRegion(ctx context.Context, source, metric string) ([]RegionYear, error) {
	// metric is interpolated, so only the fixed count columns are accepted.
	if !visitors.IsCategory(metric) {
		return nil, eris.Errorf("sqlite: unknown metric %q", metric)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT year, region, COALESCE(SUM(`+metric+`), 0) FROM visitor_counts
		 WHERE source = ?
		 GROUP BY year, region
		 ORDER BY year, region`,
		source,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: yearly totals")
	}
	defer rows.Close() //nolint:errcheck

	var out []RegionYear
	for rows.Next() {
		var ry RegionYear
		if err := rows.Scan(&ry.Year, &ry.Region, &ry.Value); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan yearly total")
		}
		out = append(out, ry)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: yearly totals iterate")
}

// ListLoads returns the most recent loads first.
func (s *SQLiteStore) ListLoads(ctx context.Context, limit int) ([]LoadRun, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, row_count, loaded_at FROM load_runs ORDER BY loaded_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list loads")
	}
	defer rows.Close() //nolint:errcheck

	var out []LoadRun
	for rows.Next() {
		var lr LoadRun
		if err := rows.Scan(&lr.ID, &lr.Source, &lr.Rows, &lr.LoadedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan load")
		}
		out = append(out, lr)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list loads iterate")
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (*visitors.Record, error) {
	var r visitors.Record
	var counts [5]sql.NullInt64
	err := row.Scan(&r.Year, &r.Month, &r.Country, &r.Region,
		&counts[0], &counts[1], &counts[2], &counts[3], &counts[4])
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan visitor row")
	}
	r.Total = nullable(counts[0])
	r.Tourist = nullable(counts[1])
	r.Business = nullable(counts[2])
	r.Others = nullable(counts[3])
	r.ShortExcursion = nullable(counts[4])
	return &r, nil
}

func nullable(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
