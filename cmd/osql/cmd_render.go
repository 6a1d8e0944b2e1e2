package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hlop3z/osql/internal/cli"
	"github.com/hlop3z/osql/internal/drift"
	"github.com/hlop3z/osql/pkg/osql"
)

// renderCmd prints the CREATE TABLE statements of schema files.
func (a *app) renderCmd() *cobra.Command {
	var (
		watch    bool
		checksum bool
	)

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Print the CREATE TABLE statements of schema files",
		Example: `  # Print the statements
  osql render schema/users.yaml schema/posts.yaml

  # Print a fingerprint of the rendered schema as well
  osql render --checksum schema/*.yaml

  # Re-render whenever a file changes
  osql render --watch schema/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newSchemaOnlyClient()
			if err != nil {
				return err
			}
			defer client.Close()

			ctx := cmd.Context()
			render := func() error {
				return renderTo(ctx, a.stdout, client, args, checksum)
			}
			if !watch {
				return render()
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
			return a.watch(ctx, args, render)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render when a schema file changes")
	cmd.Flags().BoolVar(&checksum, "checksum", false, "Print the merkle root of the rendered schema")
	return cmd
}

func renderTo(ctx context.Context, w io.Writer, client *osql.Client, paths []string, checksum bool) error {
	stmts, err := client.Render(ctx, paths...)
	if err != nil {
		return err
	}
	byTable := make(map[string]string, len(stmts))
	for _, s := range stmts {
		fmt.Fprintf(w, "%s;\n\n", s.SQL)
		byTable[s.Table] = s.SQL
	}
	if checksum {
		h, err := drift.Fingerprint(byTable)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "-- checksum: %s\n", cli.Highlight(h.Root))
	}
	return nil
}

// watch calls render once, then again after every write to one of paths,
// until ctx is done. Render errors are reported and watching continues.
func (a *app) watch(ctx context.Context, paths []string, render func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace files, so watch the directories.
	files := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	a.renderOrReport(render)
	a.logger.Info("watching schema files", "files", len(files))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !files[event.Name] || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fmt.Fprintf(a.stdout, "-- %s changed\n\n", cli.FilePath(filepath.Base(event.Name)))
			a.renderOrReport(render)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("file watcher error", "error", err)
		}
	}
}

func (a *app) renderOrReport(render func() error) {
	if err := render(); err != nil {
		fmt.Fprint(a.stderr, cli.FormatError(err))
	}
}
