package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/tourism-cli/internal/visitors"
)

// visitorKeys identify one row of the cleaned table.
var visitorKeys = []string{"year", "month", "country"}

// EnsureVisitorTable creates the schema and table if they are missing.
func EnsureVisitorTable(ctx context.Context, pool Pool, table string) error {
	if schema, _, ok := strings.Cut(table, "."); ok {
		if _, err := pool.Exec(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", sanitizeTable(schema))); err != nil {
			return eris.Wrapf(err, "db: create schema %s", schema)
		}
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	year            INTEGER NOT NULL,
	month           TEXT NOT NULL,
	country         TEXT NOT NULL,
	region          TEXT NOT NULL,
	total           BIGINT,
	tourist         BIGINT,
	business        BIGINT,
	others          BIGINT,
	short_excursion BIGINT,
	PRIMARY KEY (year, month, country)
)`, sanitizeTable(table))
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return eris.Wrapf(err, "db: create table %s", table)
	}
	return nil
}

func visitorRows(records []visitors.Record) [][]any {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{
			r.Year, r.Month, r.Country, r.Region,
			r.Total, r.Tourist, r.Business, r.Others, r.ShortExcursion,
		}
	}
	return rows
}

// AppendVisitors copies records straight into table without conflict
// handling. The table must not already hold any of the keys.
func AppendVisitors(ctx context.Context, pool Pool, table string, records []visitors.Record) (int64, error) {
	n, err := CopyRows(ctx, pool, table, visitors.Columns, visitorRows(records))
	if err != nil {
		return 0, eris.Wrap(err, "db: append visitors")
	}

	zap.L().Info("db: appended visitors", zap.String("table", table), zap.Int64("rows", n))
	return n, nil
}

// PublishVisitors upserts records into table keyed on year, month and country.
// With keepCounts a null incoming count leaves the stored count in place.
func PublishVisitors(ctx context.Context, pool Pool, table string, records []visitors.Record, keepCounts bool) (int64, error) {
	cfg := UpsertConfig{
		Table:        table,
		Columns:      visitors.Columns,
		ConflictKeys: visitorKeys,
	}
	if keepCounts {
		cfg.KeepOnNull = visitors.Categories
	}

	n, err := BulkUpsert(ctx, pool, cfg, visitorRows(records))
	if err != nil {
		return 0, eris.Wrap(err, "db: publish visitors")
	}

	zap.L().Info("db: published visitors",
		zap.String("table", table),
		zap.Int("records", len(records)),
		zap.Int64("rows_affected", n),
	)
	return n, nil
}
