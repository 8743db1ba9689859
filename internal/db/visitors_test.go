package db

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/tourism-cli/internal/visitors"
)

func n(v int64) *int64 { return &v }

func TestEnsureVisitorTable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE SCHEMA IF NOT EXISTS "tourism"`)).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "tourism"."visitor_counts"`)).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, EnsureVisitorTable(context.Background(), mock, "tourism.visitor_counts"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureVisitorTable_NoSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "visitor_counts"`)).
		WillReturnError(fmt.Errorf("permission denied"))

	err = EnsureVisitorTable(context.Background(), mock, "visitor_counts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create table visitor_counts")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishVisitors(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	records := []visitors.Record{
		{Year: 2024, Month: "Jan", Country: "France", Region: "Europe", Total: n(1234), Tourist: n(1000)},
		{Year: 2024, Month: "Jan", Country: "Korea", Region: "Asia", Total: n(900)},
	}

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TEMP TABLE").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_tourism_visitor_counts"}, visitors.Columns).WillReturnResult(2)
	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT ("year", "month", "country") DO UPDATE SET "region" = EXCLUDED."region"`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	got, err := PublishVisitors(context.Background(), mock, "tourism.visitor_counts", records, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishVisitors_KeepCounts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TEMP TABLE").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_visitor_counts"}, visitors.Columns).WillReturnResult(1)
	mock.ExpectExec(regexp.QuoteMeta(`"region" = EXCLUDED."region", "total" = COALESCE(EXCLUDED."total", cur."total")`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	got, err := PublishVisitors(context.Background(), mock, "visitor_counts",
		[]visitors.Record{{Year: 2024, Month: "Mar", Country: "Korea", Region: "Asia", Tourist: n(40)}}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishVisitors_Empty(t *testing.T) {
	got, err := PublishVisitors(context.Background(), nil, "tourism.visitor_counts", nil, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}

func TestAppendVisitors(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	records := []visitors.Record{
		{Year: 2024, Month: "Feb", Country: "Korea", Region: "Asia", Total: n(700)},
	}
	mock.ExpectCopyFrom(pgx.Identifier{"tourism", "visitor_counts"}, visitors.Columns).WillReturnResult(1)

	got, err := AppendVisitors(context.Background(), mock, "tourism.visitor_counts", records)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendVisitors_UnqualifiedTable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"visitor_counts"}, visitors.Columns).
		WillReturnError(fmt.Errorf("duplicate key value"))

	_, err = AppendVisitors(context.Background(), mock,
		"visitor_counts", []visitors.Record{{Year: 2024, Month: "Jan", Country: "France", Region: "Europe"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db: append visitors")
	assert.NoError(t, mock.ExpectationsWereMet())
}
