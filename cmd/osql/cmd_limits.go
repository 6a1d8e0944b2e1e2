package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hlop3z/osql/internal/alerr"
	"github.com/hlop3z/osql/internal/cli"
	"github.com/hlop3z/osql/pkg/dbconn"
)

// limitAssignments collects repeated --set name=value flags.
type limitAssignments struct {
	ids    []dbconn.LimitID
	values map[dbconn.LimitID]int
}

var _ pflag.Value = (*limitAssignments)(nil)

func (l *limitAssignments) String() string {
	parts := make([]string, 0, len(l.ids))
	for _, id := range l.ids {
		parts = append(parts, fmt.Sprintf("%s=%d", id, l.values[id]))
	}
	return strings.Join(parts, ",")
}

func (l *limitAssignments) Set(s string) error {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return alerr.Newf(alerr.ErrInvalidLimit, "expected name=value, got %q", s)
	}
	id, err := dbconn.ParseLimit(name)
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return alerr.Newf(alerr.ErrInvalidLimit, "limit %s needs a non-negative integer, got %q", id, raw)
	}
	if l.values == nil {
		l.values = make(map[dbconn.LimitID]int)
	}
	if _, seen := l.values[id]; !seen {
		l.ids = append(l.ids, id)
	}
	l.values[id] = v
	return nil
}

func (l *limitAssignments) Type() string {
	return "name=value"
}

// limitsCmd shows the run-time limits of the configured database.
func (a *app) limitsCmd() *cobra.Command {
	var sets limitAssignments

	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Show or change the run-time limits of a connection",
		Long: `Show every run-time limit of a fresh connection to the configured
database. Limits are per connection: values set here last only for this run
unless they are also listed under 'limits:' in the config file.`,
		Example: `  # Show the limits of an in-memory database
  osql limits -m memory

  # Lower two limits and show the result
  osql limits -d app.db --set attached=2 --set column=100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			ctx := cmd.Context()
			previous := make(map[dbconn.LimitID]int, len(sets.ids))
			for _, id := range sets.ids {
				prev, err := client.SetLimit(ctx, id, sets.values[id])
				if err != nil {
					return err
				}
				previous[id] = prev
			}

			limits, err := client.Limits(ctx)
			if err != nil {
				return err
			}

			t := cli.NewTable("LIMIT", "VALUE", "PREVIOUS")
			for _, id := range dbconn.AllLimits {
				prev := ""
				if p, ok := previous[id]; ok {
					prev = strconv.Itoa(p)
				}
				t.AddRow(id.String(), strconv.Itoa(limits[id]), prev)
			}
			fmt.Fprint(a.stdout, t.String())
			if len(sets.ids) > 0 {
				fmt.Fprintln(a.stdout)
				fmt.Fprint(a.stdout, cli.FormatHelp("limits last for this connection only; list them under 'limits:' in "+defaultConfigFile+" to apply them on every run"))
			}
			return nil
		},
	}

	cmd.Flags().Var(&sets, "set", "Set a limit for this connection (repeatable)")
	return cmd
}
