package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hlop3z/osql/internal/alerr"
	"github.com/hlop3z/osql/internal/cli"
	"github.com/hlop3z/osql/pkg/osql"
)

// applyCmd creates the tables of schema files in the configured database.
func (a *app) applyCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply FILE...",
		Short: "Create the tables of schema files in one transaction",
		Long: `Render the schema files and run every CREATE TABLE statement inside a
single transaction. If any statement fails the transaction is rolled back
and the database is left as it was.`,
		Example: `  # Create the tables in app.db
  osql apply -d app.db schema/*.yaml

  # Print the SQL without touching the database
  osql apply --dry-run schema/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if dryRun {
				client, err := a.newSchemaOnlyClient()
				if err != nil {
					return err
				}
				defer client.Close()
				_, err = client.Apply(ctx, args, osql.DryRunTo(a.stdout))
				return err
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			stmts, err := client.Render(ctx, args...)
			if err != nil {
				return err
			}
			if len(stmts) == 0 {
				fmt.Fprint(a.stdout, cli.FormatNote("no tables to create"))
				return nil
			}

			names := make([]string, len(stmts))
			for i, s := range stmts {
				names[i] = s.Table
			}
			progress := cli.NewTaskProgress(a.stdout, names)
			if err := client.ApplyStatements(ctx, stmts, osql.WithProgress(progress)); err != nil {
				var ae *osql.ApplyError
				if errors.As(err, &ae) && ae.Table != "" {
					return alerr.Wrapf(alerr.ErrExec, err, "creating table %s failed", ae.Table).
						WithTable(ae.Table).
						WithNote("the transaction was rolled back; no tables were created")
				}
				return err
			}
			progress.Summary()
			fmt.Fprint(a.stdout, cli.FormatSuccess(fmt.Sprintf("created %s in %s",
				cli.FormatCount(len(stmts), "table", "tables"), client.Conn().Path())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the SQL instead of executing it")
	return cmd
}
