package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlop3z/osql/internal/cli"
	"github.com/hlop3z/osql/internal/testutil"
	"github.com/hlop3z/osql/pkg/dbconn"
)

func init() {
	// Force plain mode in tests so style functions return raw text (no ANSI codes).
	cli.SetDefault(&cli.Config{Mode: cli.ModePlain})
}

var (
	usersSchema = filepath.Join("..", "..", "internal", "schema", "testdata", "users.yaml")
	postsSchema = filepath.Join("..", "..", "internal", "schema", "testdata", "posts.yaml")
)

type result struct {
	code   int
	stdout string
	stderr string
}

// runCLI runs the command line with an empty environment.
func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := newApp(&stdout, &stderr)
	a.getenv = func(string) string { return "" }
	code := a.run(args)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDemo(t *testing.T) {
	res := runCLI(t, "demo")
	require.Equal(t, 0, res.code, res.stderr)

	assert.Contains(t, res.stdout, "engine: SQLite 3.")
	assert.Contains(t, res.stdout, "opened memory database (memory): result 0, not an error")
	assert.Regexp(t, regexp.MustCompile(`attached\s+10\s+5`), res.stdout)
	assert.Contains(t, res.stdout, "WITH RECURSIVE test text")
	assert.Contains(t, res.stdout, "columnName7 VARCHAR(15) NOT NULL ON CONFLICT FAIL UNIQUE ON CONFLICT ABORT DEFAULT <unset>")
}

func TestDemoWithFile(t *testing.T) {
	path := testutil.SQLitePath(t, "demo.db")

	res := runCLI(t, "demo", "-d", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "opened "+path+" (rwc): result 0, not an error")
}

func TestCatalogue(t *testing.T) {
	const latin = "COLLATE Latin1_General_CS_AS_KS_WS"
	const refs = "REFERENCES foreign_table_1(col_A, col_B, col_C, col_E)"

	want := map[string]string{
		"with recursive":  "WITH RECURSIVE test text",
		"select distinct": "SELECT DISTINCT",
		"collate":         latin,
		"order by": "ORDER BY SQL-expression-1 " + latin + " ASC NULLS FIRST, " +
			"SQL-expression-2 DESC NULLS LAST, " +
			"SQL-expression-3 " + latin + " NULLS LAST, " +
			"SQL-expression-4 " + latin + " ASC NULLS LAST",
		"primary key":                   "PRIMARY KEY ON CONFLICT ROLLBACK",
		"primary key desc":              "PRIMARY KEY DESC",
		"primary key asc autoincrement": "PRIMARY KEY ASC ON CONFLICT ABORT AUTOINCREMENT",
		"foreign table":                 refs,
		"deferrable":                    "DEFERRABLE INITIALLY IMMEDIATE",
		"foreign key":                   "FOREIGN KEY " + refs,
		"foreign key deferrable":        "FOREIGN KEY " + refs + " DEFERRABLE INITIALLY IMMEDIATE",
		"foreign key actions": "FOREIGN KEY " + refs +
			" ON DELETE SET NULL MATCH match_string ON UPDATE CASCADE DEFERRABLE INITIALLY IMMEDIATE",
		"column":             "columnName1",
		"typed column":       "columnName2 INTEGER",
		"char column":        "columnName3 CHAR(10)",
		"decimal column":     "columnName4 DECIMAL(20,10)",
		"not null column":    "columnName5 CHAR(10) NOT NULL ON CONFLICT FAIL",
		"constrained column": "columnName6 NOT NULL ON CONFLICT FAIL UNIQUE ON CONFLICT ABORT DEFAULT <unset>",
		"varchar column":     "columnName7 VARCHAR(15) NOT NULL ON CONFLICT FAIL UNIQUE ON CONFLICT ABORT DEFAULT <unset>",
	}

	entries := catalogue()
	require.Len(t, entries, len(want))
	for _, e := range entries {
		t.Run(e.label, func(t *testing.T) {
			assert.Equal(t, want[e.label], e.r.Render())
		})
	}
}

func TestLimitsCmd(t *testing.T) {
	res := runCLI(t, "limits", "-m", "memory", "--set", "attached=2", "--set", "SQLITE_LIMIT_COLUMN=100")
	require.Equal(t, 0, res.code, res.stderr)

	assert.Contains(t, res.stdout, "LIMIT")
	assert.Regexp(t, regexp.MustCompile(`attached\s+2\s+10`), res.stdout)
	assert.Regexp(t, regexp.MustCompile(`column\s+100\s+2000`), res.stdout)
	assert.Regexp(t, regexp.MustCompile(`(?m)^trigger_depth\s+\d+$`), res.stdout)
}

func TestLimitsCmdBadSet(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"no equals", "attached", "expected name=value"},
		{"unknown", "atached=2", "unknown limit"},
		{"negative", "attached=-1", "non-negative integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "limits", "-m", "memory", "--set", tt.arg)
			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.stderr, tt.want)
		})
	}
}

func TestRenderCmd(t *testing.T) {
	res := runCLI(t, "render", "--checksum", usersSchema, postsSchema)
	require.Equal(t, 0, res.code, res.stderr)

	assert.Contains(t, res.stdout, "CREATE TABLE orgs (\n  id INTEGER PRIMARY KEY,\n  name TEXT NOT NULL\n);\n\n")
	assert.Contains(t, res.stdout, "CREATE TABLE posts (")
	assert.Regexp(t, regexp.MustCompile(`-- checksum: [0-9a-f]{64}`), res.stdout)
}

func TestRenderCmdSchemaError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	testutil.WriteFile(t, path, "tables:\n  - name: t\n    columns:\n      - name: id\n        not_null: { on_conflict: abrot }\n")

	res := runCLI(t, "render", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "error[E2002]")
	assert.Contains(t, res.stderr, "bad.yaml:5")
}

func TestRenderNeedsFiles(t *testing.T) {
	res := runCLI(t, "render")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "requires at least 1 arg")
}

func TestApplyVerifyCmd(t *testing.T) {
	path := testutil.SQLitePath(t, "app.db")

	res := runCLI(t, "apply", "-d", path, usersSchema, postsSchema)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "[1/3] orgs")
	assert.Contains(t, res.stdout, "[3/3] posts")
	assert.Contains(t, res.stdout, "Completed 3 tasks")

	res = runCLI(t, "verify", "-d", path, usersSchema, postsSchema)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Schema check passed")
	assert.Contains(t, res.stdout, "No drift detected. 3 tables in sync.")

	res = runCLI(t, "verify", "-q", "-d", path, usersSchema)
	assert.Equal(t, exitDrift, res.code)
	assert.Contains(t, res.stdout, "DRIFT")
	assert.Contains(t, res.stderr, "error[E6001]")

	res = runCLI(t, "verify", "-d", path, usersSchema)
	assert.Equal(t, exitDrift, res.code)
	assert.Contains(t, res.stdout, "+ posts")
	assert.Contains(t, res.stdout, "Drift detected: 1 extra")
}

func TestApplyCmdFailureRollsBack(t *testing.T) {
	path := testutil.SQLitePath(t, "app.db")
	ctx := context.Background()

	conn, err := dbconn.Open(ctx, path, dbconn.Create)
	require.NoError(t, err)
	_, err = conn.Exec(ctx, "CREATE TABLE orgs (id INTEGER)")
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	res := runCLI(t, "apply", "-d", path, usersSchema)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "[1/2] orgs")
	assert.Contains(t, res.stdout, "failed")
	assert.Contains(t, res.stderr, "creating table orgs failed")

	conn, err = dbconn.Open(ctx, path, dbconn.ReadOnly)
	require.NoError(t, err)
	defer conn.Close()
	testutil.AssertTableNotExists(t, conn, "users")
}

func TestApplyCmdDryRun(t *testing.T) {
	res := runCLI(t, "apply", "--dry-run", usersSchema)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "CREATE TABLE IF NOT EXISTS users (")
}

func TestMissingDatabase(t *testing.T) {
	res := runCLI(t, "verify", usersSchema)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "no database configured")
	assert.Contains(t, res.stderr, "OSQL_DATABASE")
}
