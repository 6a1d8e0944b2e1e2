package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hlop3z/osql/internal/alerr"
	"github.com/hlop3z/osql/internal/cli"
	"github.com/hlop3z/osql/internal/drift"
)

// verifyCmd compares the configured database with schema files.
func (a *app) verifyCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "verify FILE...",
		Short: "Compare the database with schema files",
		Long: `Fingerprint the CREATE TABLE statements rendered from the schema files and
those stored in the database, then report missing, extra and modified
tables. Exits with status 2 when the two differ.`,
		Example: `  # Full report
  osql verify -d app.db schema/*.yaml

  # One-line status, useful in CI
  osql verify -q -d app.db schema/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			res, err := client.Verify(cmd.Context(), args...)
			if err != nil {
				return err
			}

			if quiet {
				fmt.Fprintln(a.stdout, drift.FormatQuickStatus(res.HasDrift, res.ExpectedHash, res.ActualHash))
			} else {
				fmt.Fprint(a.stdout, drift.FormatResult(res))
				summary := drift.FormatSummary(drift.Summarize(res))
				if res.HasDrift {
					fmt.Fprint(a.stdout, cli.FormatWarning(summary))
				} else {
					fmt.Fprint(a.stdout, cli.FormatSuccess(summary))
				}
			}

			if res.HasDrift {
				s := drift.Summarize(res)
				return alerr.Newf(alerr.ErrDrift, "database differs from %d schema table(s)", res.Tables).
					With("missing", s.Missing).
					With("extra", s.Extra).
					With("modified", s.Modified)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print a one-line status only")
	return cmd
}
