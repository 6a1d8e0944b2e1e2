package drift

import (
	"context"
	"database/sql"

	"github.com/hlop3z/osql/internal/alerr"
)

// Querier is the read side of *sql.DB, *sql.Conn and *dbconn.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const masterQuery = `SELECT name, sql FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`

// Inspect returns the CREATE TABLE statement of every user table in the
// database, keyed by table name.
func Inspect(ctx context.Context, q Querier) (map[string]string, error) {
	rows, err := q.QueryContext(ctx, masterQuery)
	if err != nil {
		return nil, alerr.WrapSQL(alerr.ErrInspect, err, masterQuery)
	}
	defer rows.Close()

	tables := make(map[string]string)
	for rows.Next() {
		var (
			name string
			stmt sql.NullString
		)
		if err := rows.Scan(&name, &stmt); err != nil {
			return nil, alerr.Wrap(alerr.ErrInspect, err, "failed to scan sqlite_master row")
		}
		tables[name] = stmt.String
	}
	if err := rows.Err(); err != nil {
		return nil, alerr.WrapSQL(alerr.ErrInspect, err, masterQuery)
	}
	return tables, nil
}

// Result is the outcome of a drift check.
type Result struct {
	HasDrift     bool
	Tables       int // Number of tables in the schema files
	ExpectedHash string
	ActualHash   string
	Comparison   *Comparison
}

// Detect compares expected, a map of table name to CREATE TABLE statement,
// against the tables of the database behind q.
func Detect(ctx context.Context, q Querier, expected map[string]string) (*Result, error) {
	actual, err := Inspect(ctx, q)
	if err != nil {
		return nil, err
	}

	expectedHash, err := Fingerprint(expected)
	if err != nil {
		return nil, err
	}
	actualHash, err := Fingerprint(actual)
	if err != nil {
		return nil, err
	}

	comparison := Compare(expectedHash, actualHash)
	return &Result{
		HasDrift:     !comparison.Match,
		Tables:       len(expected),
		ExpectedHash: expectedHash.Root,
		ActualHash:   actualHash.Root,
		Comparison:   comparison,
	}, nil
}

// Summary counts the tables of a Result by status.
type Summary struct {
	Tables   int
	Missing  int
	Extra    int
	Modified int
}

// Summarize counts the differences of result.
func Summarize(result *Result) Summary {
	if result == nil || result.Comparison == nil {
		return Summary{}
	}
	c := result.Comparison
	return Summary{
		Tables:   result.Tables,
		Missing:  len(c.Missing),
		Extra:    len(c.Extra),
		Modified: len(c.Changed),
	}
}
