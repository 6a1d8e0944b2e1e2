// Package main provides the osql command line tool.
// osql renders YAML table definitions into SQLite CREATE TABLE statements,
// applies them to a database and checks a database for drift.
//
// Usage:
//
//	osql demo                      # Render the clause catalogue and exercise limits
//	osql limits [--set k=v]        # Show or change run-time limits
//	osql render FILE...            # Print CREATE TABLE statements
//	osql apply FILE...             # Create the tables in one transaction
//	osql verify FILE...            # Compare the database with the schema files
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hlop3z/osql/internal/alerr"
	"github.com/hlop3z/osql/internal/cli"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// exitDrift is the exit status of a verify run that found drift.
const exitDrift = 2

// app carries the global flags and output streams shared by every command.
type app struct {
	database   string
	configFile string
	mode       string
	logLevel   string

	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	logger *slog.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		getenv: os.Getenv,
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "osql",
		Short:         "Typed SQLite DDL from YAML table definitions",
		Long:          `osql renders YAML table definitions into SQLite CREATE TABLE statements, applies them to a database and reports drift between the two.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	// Global flags available to all commands
	pf := root.PersistentFlags()
	pf.StringVarP(&a.database, "database", "d", "", "Path to the SQLite database file")
	pf.StringVarP(&a.configFile, "config", "c", defaultConfigFile, "Path to config file")
	pf.StringVarP(&a.mode, "mode", "m", "", "Open mode: ro, rw, create or memory")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		a.demoCmd(),
		a.limitsCmd(),
		a.renderCmd(),
		a.applyCmd(),
		a.verifyCmd(),
	)
	return root
}

// run executes the command line and returns the process exit status.
func (a *app) run(args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprint(a.stderr, cli.FormatError(err))
	if alerr.Is(err, alerr.ErrDrift) {
		return exitDrift
	}
	return 1
}

func main() {
	os.Exit(newApp(os.Stdout, os.Stderr).run(os.Args[1:]))
}
