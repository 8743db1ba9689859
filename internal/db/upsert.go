package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// upsertAlias names the target row inside the ON CONFLICT update.
const upsertAlias = "cur"

// UpsertConfig describes a bulk upsert.
type UpsertConfig struct {
	Table        string   // target table, optionally schema-qualified
	Columns      []string // columns in row order
	ConflictKeys []string // columns of the unique constraint
	// KeepOnNull columns keep their stored value when the incoming one is
	// null. Every other non-key column is overwritten.
	KeepOnNull []string
}

func (c UpsertConfig) validate() error {
	if len(c.Columns) == 0 {
		return eris.New("db: upsert: no columns specified")
	}
	if len(c.ConflictKeys) == 0 {
		return eris.New("db: upsert: no conflict keys specified")
	}
	return nil
}

// tempTable is the session-local staging table for c.Table.
func (c UpsertConfig) tempTable() string {
	return "_tmp_upsert_" + strings.ReplaceAll(c.Table, ".", "_")
}

// setClauses builds the DO UPDATE assignments for every non-key column.
func (c UpsertConfig) setClauses() []string {
	skip := make(map[string]bool, len(c.ConflictKeys))
	for _, k := range c.ConflictKeys {
		skip[k] = true
	}
	keep := make(map[string]bool, len(c.KeepOnNull))
	for _, k := range c.KeepOnNull {
		keep[k] = true
	}

	var out []string
	for _, col := range c.Columns {
		if skip[col] {
			continue
		}
		q := pgx.Identifier{col}.Sanitize()
		if keep[col] {
			out = append(out, fmt.Sprintf("%s = COALESCE(EXCLUDED.%s, %s.%s)", q, q, upsertAlias, q))
			continue
		}
		out = append(out, fmt.Sprintf("%s = EXCLUDED.%s", q, q))
	}
	return out
}

// insertSQL moves the staged rows into the target table.
func (c UpsertConfig) insertSQL() string {
	cols := quoteAndJoin(c.Columns)
	action := "DO NOTHING"
	if set := c.setClauses(); len(set) > 0 {
		action = "DO UPDATE SET " + strings.Join(set, ", ")
	}
	return fmt.Sprintf("INSERT INTO %s AS %s (%s) SELECT %s FROM %s ON CONFLICT (%s) %s",
		sanitizeTable(c.Table), upsertAlias, cols, cols,
		pgx.Identifier{c.tempTable()}.Sanitize(), quoteAndJoin(c.ConflictKeys), action)
}

// BulkUpsert stages rows in a temp table with COPY, then merges them into the
// target with INSERT ... ON CONFLICT, all in one transaction. The temp table
// is dropped on commit.
func BulkUpsert(ctx context.Context, pool Pool, cfg UpsertConfig, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if err := cfg.validate(); err != nil {
		return 0, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "db: upsert: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	temp := cfg.tempTable()
	stage := fmt.Sprintf("CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS) ON COMMIT DROP",
		pgx.Identifier{temp}.Sanitize(), sanitizeTable(cfg.Table))
	if _, err := tx.Exec(ctx, stage); err != nil {
		return 0, eris.Wrapf(err, "db: upsert: create temp table for %s", cfg.Table)
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{temp}, cfg.Columns, pgx.CopyFromRows(rows)); err != nil {
		return 0, eris.Wrapf(err, "db: upsert: COPY into temp table for %s", cfg.Table)
	}

	tag, err := tx.Exec(ctx, cfg.insertSQL())
	if err != nil {
		return 0, eris.Wrapf(err, "db: upsert: INSERT ON CONFLICT for %s", cfg.Table)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "db: upsert: commit tx")
	}
	return tag.RowsAffected(), nil
}

func quoteAndJoin(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}
