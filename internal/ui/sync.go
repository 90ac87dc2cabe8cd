package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timelane/internal/config"
	"github.com/javiermolinar/timelane/internal/feed"
)

func (a *App) syncCmd() *cobra.Command {
	var (
		watch    bool
		schedule string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh lanes from the configured ICS feeds",
		Long: `Fetch every [[feeds]] entry of the config, expand recurring events over
the sync horizon and replace the items of the feed's lane.

With --watch the feeds are refreshed on the [sync] cron schedule until
interrupted.`,
		Example: `  timelane sync
  timelane sync --watch --schedule="*/5 * * * *"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(a.config.Feeds) == 0 {
				return fmt.Errorf("no feeds configured; add [[feeds]] entries to %s", config.DefaultConfigPath())
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sources := make([]feed.Source, 0, len(a.config.Feeds))
			for _, f := range a.config.Feeds {
				sources = append(sources, feed.Source{ID: f.ID, Name: f.Name, URL: f.URL})
			}
			syncer := feed.NewSyncer(a.repo, feed.NewFetcher(feed.DefaultFetchTimeout), sources, feed.SyncOptions{
				Horizon:  time.Duration(a.config.Sync.HorizonDays) * 24 * time.Hour,
				Location: a.location(),
				Logger:   a.log,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			results, err := syncer.SyncAll(ctx, time.Now())
			printSyncResults(out, results)
			if !watch {
				return err
			}

			if schedule == "" {
				schedule = a.config.Sync.Cron
			}
			fmt.Fprintln(out, formatMuted("Syncing on "+schedule+" (ctrl+c to stop)"))
			return syncer.Watch(ctx, schedule)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep syncing on a schedule")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron schedule for --watch (default from config)")

	return cmd
}

func printSyncResults(out io.Writer, results []feed.Result) {
	for _, r := range results {
		name := r.Source.Name
		if name == "" {
			name = r.Source.ID
		}
		if r.Err != nil {
			fmt.Fprintf(out, "%s %s: %v\n", formatFail("✗"), name, r.Err)
			continue
		}
		fmt.Fprintf(out, "%s %s: %d items\n", formatOK("✓"), name, r.Items)
	}
}
