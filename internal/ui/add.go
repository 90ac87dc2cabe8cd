package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timelane/internal/dateutil"
	"github.com/javiermolinar/timelane/internal/item"
)

func (a *App) addCmd() *cobra.Command {
	var (
		id       string
		group    string
		start    string
		end      string
		duration time.Duration
		overlay  bool
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an item to a lane",
		Long: `Add a new item to an existing lane.

Start and end take "[day] HH:MM", where day is YYYY-MM-DD, today,
tomorrow or a weekday name. An end without a day falls on the start day.
Without --end the item lasts --duration.`,
		Example: `  timelane add "Standup" --group=team --start="tomorrow 09:00" --end=09:15
  timelane add "Release freeze" --group=ops --start="2025-03-03 00:00" --duration=48h --overlay`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			now := time.Now().In(a.location())
			startAt, err := dateutil.ParseDateTime(start, now)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			endAt := startAt.Add(duration)
			if end != "" {
				if endAt, err = dateutil.ParseDateTime(end, startAt); err != nil {
					return fmt.Errorf("--end: %w", err)
				}
			}

			if id == "" {
				id = uuid.NewString()
			}
			it, err := item.New(id, group, args[0], startAt, endAt)
			if err != nil {
				return err
			}
			it.Overlay = overlay

			if err := a.repo.CreateItem(context.Background(), it); err != nil {
				return fmt.Errorf("creating item: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created item %s: %s [%s] %s\n",
				it.ID,
				it.Title,
				it.GroupID,
				formatSpan(it.Start, it.End),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Item id (default: a random UUID)")
	cmd.Flags().StringVar(&group, "group", "", "Lane id (required)")
	cmd.Flags().StringVar(&start, "start", "", `Start, "[day] HH:MM" (required)`)
	cmd.Flags().StringVar(&end, "end", "", `End, "[day] HH:MM"`)
	cmd.Flags().DurationVar(&duration, "duration", time.Hour, "Length when --end is not given")
	cmd.Flags().BoolVar(&overlay, "overlay", false, "Draw above the lane instead of stacking")

	_ = cmd.MarkFlagRequired("group")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
