package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *dbconn.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SetupSQLite opens a private in-memory database with foreign keys enforced.
// It is closed when the test ends.
func SetupSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// Each pooled connection to :memory: would be its own database.
	db.SetMaxOpenConns(1)
	require.NoError(t, db.Ping(), "ping sqlite")
	return db
}

// SQLitePath returns a database file path in a per-test directory. The file
// is not created.
func SQLitePath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

// AssertTableExists reports when table is missing from sqlite_master.
func AssertTableExists(t *testing.T, q Querier, table string) {
	t.Helper()
	assert.Contains(t, tableNames(t, q), table, "table %q should exist", table)
}

// AssertTableNotExists reports when table is present in sqlite_master.
func AssertTableNotExists(t *testing.T, q Querier, table string) {
	t.Helper()
	assert.NotContains(t, tableNames(t, q), table, "table %q should not exist", table)
}

// AssertColumnExists reports when table has no column named column.
func AssertColumnExists(t *testing.T, q Querier, table, column string) {
	t.Helper()
	cols := queryStrings(t, q, `SELECT name FROM pragma_table_info(?)`, table)
	assert.True(t, slices.Contains(cols, column), "column %q should exist in %s, have %v", column, table, cols)
}

// AssertRowCount reports when table does not hold exactly want rows.
func AssertRowCount(t *testing.T, q Querier, table string, want int) {
	t.Helper()
	rows, err := q.QueryContext(t.Context(), "SELECT COUNT(*) FROM "+table)
	require.NoError(t, err, "count rows in %s", table)
	defer rows.Close()

	var got int
	require.True(t, rows.Next(), "count rows in %s", table)
	require.NoError(t, rows.Scan(&got))
	assert.Equal(t, want, got, "rows in %s", table)
}

// ExecSQL runs query and fails the test on error.
func ExecSQL(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	_, err := db.ExecContext(t.Context(), query, args...)
	require.NoError(t, err, "exec:\n%s", query)
}

func tableNames(t *testing.T, q Querier) []string {
	t.Helper()
	return queryStrings(t, q, `SELECT name FROM sqlite_master WHERE type = 'table'`)
}

// queryStrings collects the first column of every row.
func queryStrings(t *testing.T, q Querier, query string, args ...any) []string {
	t.Helper()
	rows, err := q.QueryContext(t.Context(), query, args...)
	require.NoError(t, err, "query:\n%s", query)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		out = append(out, s)
	}
	require.NoError(t, rows.Err())
	return out
}
