package osql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/hlop3z/osql/internal/drift"
	"github.com/hlop3z/osql/internal/schema"
	"github.com/hlop3z/osql/internal/sqlgen"
	"github.com/hlop3z/osql/pkg/dbconn"
)

// Statement is the CREATE TABLE statement of one table.
type Statement struct {
	Table string
	SQL   string
}

// Render loads the schema files and returns one CREATE TABLE statement per
// table, in file order and then declaration order. It never touches the
// database and works in schema-only mode.
func (c *Client) Render(ctx context.Context, paths ...string) ([]Statement, error) {
	files, err := schema.LoadAll(ctx, paths...)
	if err != nil {
		return nil, err
	}
	tables, err := schema.Merge(files...)
	if err != nil {
		return nil, err
	}

	stmts := make([]Statement, 0, len(tables))
	for i := range tables {
		t := &tables[i]
		cols, err := t.Columns()
		if err != nil {
			return nil, err
		}
		constraints, err := t.Constraints()
		if err != nil {
			return nil, err
		}
		var opts []sqlgen.TableOption
		if t.WithoutRowID {
			opts = append(opts, sqlgen.WithoutRowID)
		}
		if t.Strict {
			opts = append(opts, sqlgen.Strict)
		}
		stmts = append(stmts, Statement{
			Table: t.Name,
			SQL:   sqlgen.CreateTableSQL(t.Name, t.IfNotExists, cols, constraints, opts...),
		})
	}
	return stmts, nil
}

// Apply renders the schema files and creates their tables in one
// transaction. On failure the transaction is rolled back and an *ApplyError
// is returned.
//
// Options:
//   - DryRunTo(w): write the SQL to w instead of executing it
//   - WithProgress(p): report each statement to p
func (c *Client) Apply(ctx context.Context, paths []string, opts ...ApplyOption) ([]Statement, error) {
	stmts, err := c.Render(ctx, paths...)
	if err != nil {
		return nil, err
	}
	if err := c.ApplyStatements(ctx, stmts, opts...); err != nil {
		return nil, err
	}
	return stmts, nil
}

// ApplyStatements executes already rendered statements the way Apply does.
func (c *Client) ApplyStatements(ctx context.Context, stmts []Statement, opts ...ApplyOption) error {
	cfg := applyApplyOptions(opts)

	if cfg.DryRun {
		return writeStatements(cfg, stmts)
	}
	if c.conn == nil {
		return ErrSchemaOnly
	}

	if err := applyStatements(ctx, c.conn, stmts, cfg, c.config.Logger); err != nil {
		return err
	}
	c.config.Logger.Info("schema applied", slog.Int("tables", len(stmts)), slog.String("database", c.conn.Path()))
	return nil
}

// Verify renders the schema files and compares them with the tables in
// the database.
func (c *Client) Verify(ctx context.Context, paths ...string) (*drift.Result, error) {
	if c.conn == nil {
		return nil, ErrSchemaOnly
	}
	stmts, err := c.Render(ctx, paths...)
	if err != nil {
		return nil, err
	}
	expected := make(map[string]string, len(stmts))
	for _, s := range stmts {
		expected[s.Table] = s.SQL
	}
	return drift.Detect(ctx, c.conn, expected)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func applyStatements(ctx context.Context, db execer, stmts []Statement, cfg *ApplyConfig, logger *slog.Logger) error {
	if _, err := db.ExecContext(ctx, "BEGIN"); err != nil {
		return &ApplyError{SQL: "BEGIN", Code: dbconn.Code(err), Cause: err}
	}

	for i, s := range stmts {
		if cfg.Progress != nil {
			cfg.Progress.Start(i)
		}
		if _, err := db.ExecContext(ctx, s.SQL); err != nil {
			if cfg.Progress != nil {
				cfg.Progress.Failed()
			}
			if _, rbErr := db.ExecContext(context.WithoutCancel(ctx), "ROLLBACK"); rbErr != nil {
				logger.Warn("rollback failed", slog.String("table", s.Table), slog.Any("error", rbErr))
			}
			return &ApplyError{Table: s.Table, SQL: s.SQL, Code: dbconn.Code(err), Cause: err}
		}
		if cfg.Progress != nil {
			cfg.Progress.Complete()
		}
		logger.Debug("table created", slog.String("table", s.Table))
	}

	if _, err := db.ExecContext(ctx, "COMMIT"); err != nil {
		_, _ = db.ExecContext(context.WithoutCancel(ctx), "ROLLBACK")
		return &ApplyError{SQL: "COMMIT", Code: dbconn.Code(err), Cause: err}
	}
	return nil
}

func writeStatements(cfg *ApplyConfig, stmts []Statement) error {
	for _, s := range stmts {
		if _, err := fmt.Fprintf(cfg.Output, "%s;\n\n", s.SQL); err != nil {
			return err
		}
	}
	return nil
}
