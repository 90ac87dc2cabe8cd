package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timelane/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		group     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items in a date range",
		Long: `List every item touching a date range, lane by lane.

If no dates are specified, lists today's items.
If only --start is specified, lists items for that single day.
If both --start and --end are specified, lists items in that range (inclusive).`,
		Example: `  timelane list
  timelane list --start=2025-01-15
  timelane list --start=monday --end=friday --group=team`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			now := time.Now().In(a.location())
			dateRange, err := dateutil.NewDateRange(startDate, endDate, now)
			if err != nil {
				return err
			}
			from, to := dateRange.Bounds()

			ctx := context.Background()
			groups, err := a.repo.ListGroups(ctx)
			if err != nil {
				return fmt.Errorf("listing lanes: %w", err)
			}
			items, err := a.repo.ListItemsInRange(ctx, from, to)
			if err != nil {
				return fmt.Errorf("listing items: %w", err)
			}

			out := cmd.OutOrStdout()
			printed := 0
			for _, g := range groups {
				if group != "" && g.ID != group {
					continue
				}
				var lines []string
				for _, it := range items {
					if it.GroupID != g.ID {
						continue
					}
					line := fmt.Sprintf("  %s %s %s", formatSpan(it.Start.In(now.Location()), it.End.In(now.Location())), it.Label(), formatMuted(it.ID))
					if it.Overlay {
						line = formatOverlay(line + " (overlay)")
					}
					lines = append(lines, line)
				}
				if len(lines) == 0 {
					continue
				}
				if printed > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "=== %s ===\n", formatLane(g.Label()))
				for _, l := range lines {
					fmt.Fprintln(out, l)
				}
				printed++
			}

			if printed == 0 {
				fmt.Fprintln(out, "No items found in the specified date range.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD or week, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().StringVar(&group, "group", "", "Only this lane")

	return cmd
}
