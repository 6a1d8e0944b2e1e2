package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlop3z/osql/internal/alerr"
)

// Run `go test ./... -update-golden` to rewrite testdata/*.golden.
var updateGolden = flag.Bool("update-golden", false, "update golden files")

// -----------------------------------------------------------------------------
// SQL Assertions
// -----------------------------------------------------------------------------

var (
	whitespace  = regexp.MustCompile(`\s+`)
	parenSpaces = regexp.MustCompile(`\(\s|\s\)`)
)

// NormalizeSQL folds a statement into a single upper-case line so rendered
// DDL can be compared regardless of indentation.
func NormalizeSQL(sql string) string {
	sql = strings.TrimSpace(whitespace.ReplaceAllString(sql, " "))
	sql = parenSpaces.ReplaceAllStringFunc(sql, strings.TrimSpace)
	return strings.ToUpper(sql)
}

// AssertSQL reports a mismatch between two statements after NormalizeSQL.
func AssertSQL(t *testing.T, got, want string) {
	t.Helper()
	assert.Equal(t, NormalizeSQL(want), NormalizeSQL(got), "rendered:\n%s", got)
}

// AssertSQLContains reports when the normalized statement lacks the
// normalized fragment.
func AssertSQLContains(t *testing.T, sql, fragment string) {
	t.Helper()
	assert.Contains(t, NormalizeSQL(sql), NormalizeSQL(fragment), "rendered:\n%s", sql)
}

// -----------------------------------------------------------------------------
// Error Assertions
// -----------------------------------------------------------------------------

// AssertError reports unless err carries code. The outermost coded error in
// the chain decides.
func AssertError(t *testing.T, err error, code alerr.Code) {
	t.Helper()
	if !assert.Error(t, err, "want error %s", code) {
		return
	}
	assert.Equal(t, code, alerr.GetErrorCode(err), "error: %v", err)
}

// AssertNoError reports a non-nil err.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	assert.NoError(t, err)
}

// AssertErrorContains reports unless err's message contains substr.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	assert.ErrorContains(t, err, substr)
}

// -----------------------------------------------------------------------------
// Golden Files
// -----------------------------------------------------------------------------

// Golden compares got with testdata/<name>.golden relative to the test's
// package directory, rewriting the file under -update-golden.
func Golden(t *testing.T, name string, got string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")
	if *updateGolden {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(got), 0o644))
		return
	}

	want, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Fatalf("missing golden file %s (run with -update-golden)\n\ngot:\n%s", path, got)
	}
	require.NoError(t, err)
	assert.Equal(t, string(want), got, "golden file %s differs (run with -update-golden)", path)
}

// -----------------------------------------------------------------------------
// Files
// -----------------------------------------------------------------------------

// TempDir returns a directory removed when the test ends.
func TempDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
