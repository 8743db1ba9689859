// Package db publishes cleaned visitor tables to PostgreSQL with COPY and
// temp-table upserts.
package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// tableIdent splits an optionally schema-qualified name such as
// "tourism.visitor_counts" into a pgx identifier.
func tableIdent(table string) pgx.Identifier {
	if schema, name, ok := strings.Cut(table, "."); ok {
		return pgx.Identifier{schema, name}
	}
	return pgx.Identifier{table}
}

// sanitizeTable quotes an optionally schema-qualified table name for SQL text.
func sanitizeTable(table string) string {
	return tableIdent(table).Sanitize()
}

// CopyRows streams rows into table over the COPY protocol. Nothing is sent
// when rows is empty.
func CopyRows(ctx context.Context, pool Pool, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := pool.CopyFrom(ctx, tableIdent(table), columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, eris.Wrapf(err, "db: COPY INTO %s", table)
	}
	return n, nil
}
