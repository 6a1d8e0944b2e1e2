package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hlop3z/osql/internal/cli"
	"github.com/hlop3z/osql/pkg/clause"
	"github.com/hlop3z/osql/pkg/column"
	"github.com/hlop3z/osql/pkg/dbconn"
)

// demoCmd renders the clause catalogue and exercises the connection wrapper.
func (a *app) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Render the clause catalogue and halve the engine limits",
		Long: `Open a database (the configured one, or a private in-memory one), print
every run-time limit before and after halving it, then render a catalogue
of clauses and columns.`,
		Example: `  # Use an in-memory database
  osql demo

  # Use a database file, creating it if needed
  osql demo -d demo.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.setup()
			if err != nil {
				return err
			}
			return runDemo(cmd.Context(), a.stdout, a.logger, cfg.Database)
		},
	}
}

func runDemo(ctx context.Context, w io.Writer, logger *slog.Logger, path string) error {
	mem, err := dbconn.OpenMemory(ctx, dbconn.WithLogger(logger))
	if err != nil {
		return err
	}
	defer mem.Close()

	version, err := engineVersion(ctx, mem)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, cli.FormatKeyValue("engine", "SQLite "+version))
	opened := cli.NewList()
	opened.AddSuccess(openStatus("memory database", mem))

	target := mem
	if path != "" {
		file, err := dbconn.Open(ctx, path, dbconn.Create, dbconn.WithLogger(logger))
		if err != nil {
			return err
		}
		defer file.Close()
		opened.AddSuccess(openStatus(path, file))
		target = file
	}
	fmt.Fprintln(w, opened.String())

	table, err := halveLimits(ctx, target)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, cli.Section("Limits", table.String()))

	cat := cli.NewTable("CLAUSE", "SQL")
	for _, e := range catalogue() {
		cat.AddRow(e.label, e.r.Render())
	}
	fmt.Fprint(w, cli.Section("Clauses", cat.String()))
	return nil
}

func engineVersion(ctx context.Context, c *dbconn.Conn) (string, error) {
	rows, err := c.QueryContext(ctx, "SELECT sqlite_version()")
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var v string
	if rows.Next() {
		if err := rows.Scan(&v); err != nil {
			return "", err
		}
	}
	return v, rows.Err()
}

func openStatus(name string, c *dbconn.Conn) string {
	return fmt.Sprintf("opened %s (%s): result %d, %s", name, c.Mode(), c.ErrCode(), c.ErrMsg())
}

// halveLimits sets every limit to half its current value and tabulates the
// values before and after.
func halveLimits(ctx context.Context, c *dbconn.Conn) (*cli.Table, error) {
	t := cli.NewTable("LIMIT", "BEFORE", "AFTER")
	for _, id := range dbconn.AllLimits {
		before, err := c.Limit(ctx, id)
		if err != nil {
			return nil, err
		}
		if _, err := c.SetLimit(ctx, id, before/2); err != nil {
			return nil, err
		}
		after, err := c.Limit(ctx, id)
		if err != nil {
			return nil, err
		}
		t.AddRow(id.String(), strconv.Itoa(before), strconv.Itoa(after))
	}
	return t, nil
}

type catalogueEntry struct {
	label string
	r     clause.Renderer
}

const latin1 = "Latin1_General_CS_AS_KS_WS"

// catalogue returns one sample of each clause family and a handful of columns.
func catalogue() []catalogueEntry {
	collate := clause.Collate(latin1)
	foreign := clause.ForeignTable("foreign_table_1", "col_A", "col_B", "col_C", "col_E")
	deferrable := clause.DeferrableImmediate()

	return []catalogueEntry{
		{"with recursive", clause.WithRecursive("test text")},
		{"select distinct", clause.SelectDistinct("")},
		{"collate", collate},
		{"order by", clause.OrderBy(
			clause.OrderingTerm("SQL-expression-1", collate, clause.Asc, clause.NullsFirst),
			clause.OrderingTerm("SQL-expression-2", clause.Clause{}, clause.Desc, clause.NullsLast),
			clause.OrderingTerm("SQL-expression-3", collate, clause.Unordered, clause.NullsLast),
			clause.OrderingTerm("SQL-expression-4", collate, clause.Asc, clause.NullsLast),
		)},
		{"primary key", column.PrimaryKey(clause.ConflictRollback)},
		{"primary key desc", column.PrimaryKeyDesc(clause.ConflictNone)},
		{"primary key asc autoincrement", column.PrimaryKeyAscAutoincrement(clause.ConflictAbort)},
		{"foreign table", foreign},
		{"deferrable", deferrable},
		{"foreign key", clause.ForeignKey(foreign)},
		{"foreign key deferrable", clause.ForeignKey(foreign, deferrable)},
		{"foreign key actions", clause.ForeignKey(foreign,
			clause.OnDelete(clause.SetNull),
			clause.Match("match_string"),
			clause.OnUpdate(clause.Cascade),
			deferrable,
		)},
		{"column", column.New("columnName1")},
		{"typed column", column.Typed("columnName2", clause.TypeInteger())},
		{"char column", column.Typed("columnName3", clause.TypeName("CHAR", 10))},
		{"decimal column", column.Typed("columnName4", clause.TypeDecimal(20, 10))},
		{"not null column", column.Typed("columnName5", clause.TypeChar(10), column.NotNull(clause.ConflictFail))},
		{"constrained column", column.New("columnName6",
			column.NotNull(clause.ConflictFail),
			column.Unique(clause.ConflictAbort),
			column.Default("<unset>"),
		)},
		{"varchar column", column.Typed("columnName7", clause.TypeVarchar(15),
			column.NotNull(clause.ConflictFail),
			column.Unique(clause.ConflictAbort),
			column.Default("<unset>"),
		)},
	}
}
