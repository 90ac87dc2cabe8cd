package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timelane/internal/feed"
	"github.com/javiermolinar/timelane/internal/item"
)

func (a *App) importCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "import [file.yaml]",
		Short: "Import lanes and items from a YAML file",
		Long: `Import lanes and items from a YAML document.

Lanes keep their position when imported again; new lanes are appended.
Items are inserted or replaced by id. With --watch the file is imported
again every time it is saved.

Example document:
  groups:
    - id: team
      title: Team
  items:
    - id: standup
      group: team
      title: Standup
      start: 2025-03-03 09:00
      end: 2025-03-03 09:15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := a.importAndReport(ctx, out, path); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
			fmt.Fprintln(out, formatMuted("Watching "+path+" (ctrl+c to stop)"))
			return feed.WatchFile(ctx, path, func() error {
				if err := a.importAndReport(ctx, out, path); err != nil {
					fmt.Fprintln(out, formatFail("Import failed: ")+err.Error())
					return err
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Import again whenever the file changes")

	return cmd
}

func (a *App) importAndReport(ctx context.Context, out io.Writer, path string) error {
	groups, items, err := importFile(ctx, a.repo, path, a.location())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported %s lanes and %s items from %s\n",
		formatOK(fmt.Sprint(groups)), formatOK(fmt.Sprint(items)), path)
	return nil
}

// importFile stores the lanes and items of a YAML document.
func importFile(ctx context.Context, repo item.Repository, path string, loc *time.Location) (int, int, error) {
	doc, err := feed.LoadFile(path)
	if err != nil {
		return 0, 0, err
	}
	items, err := doc.ToItems(loc)
	if err != nil {
		return 0, 0, fmt.Errorf("reading %s: %w", path, err)
	}

	groups := doc.LaneGroups()
	if err := repo.UpsertGroups(ctx, groups); err != nil {
		return 0, 0, fmt.Errorf("storing lanes: %w", err)
	}
	if err := repo.UpsertItems(ctx, items); err != nil {
		return len(groups), 0, fmt.Errorf("storing items: %w", err)
	}
	return len(groups), len(items), nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
