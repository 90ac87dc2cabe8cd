package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timelane/internal/dateutil"
	"github.com/javiermolinar/timelane/internal/item"
	"github.com/javiermolinar/timelane/internal/layout"
	"github.com/javiermolinar/timelane/internal/viewport"
)

// windowFlags selects the visible range and geometry of a one-shot pass.
type windowFlags struct {
	startDate string
	endDate   string
	width     float64
	mode      string
}

func (f *windowFlags) register(cmd *cobra.Command, width float64) {
	cmd.Flags().StringVar(&f.startDate, "start", "", "First day shown (YYYY-MM-DD or week, defaults to today)")
	cmd.Flags().StringVar(&f.endDate, "end", "", "Last day shown (defaults to the start day)")
	cmd.Flags().Float64Var(&f.width, "width", width, "Visible width in pixels")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Stacking mode: free, none or fixed (default from config)")
}

func (a *App) layoutCmd() *cobra.Command {
	var (
		win    windowFlags
		asJSON bool
		copyIt bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the layout of a date range",
		Long: `Run one layout pass over a date range and print where every item lands.

The pass uses the same canvas as the viewer: one visible span on each side
of the range. Hidden items and show-more buckets are listed at the end.`,
		Example: `  timelane layout --start=monday --end=friday --mode=fixed
  timelane layout --json --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.runLayout(context.Background(), win)
			if err != nil {
				return err
			}

			var text string
			if asJSON {
				data, err := json.MarshalIndent(newLayoutReport(out, a.location()), "", "  ")
				if err != nil {
					return fmt.Errorf("encoding layout: %w", err)
				}
				text = string(data) + "\n"
			} else {
				var b strings.Builder
				printLayout(&b, out, a.location(), termWidth())
				text = b.String()
			}

			fmt.Fprint(cmd.OutOrStdout(), text)
			if copyIt {
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), formatMuted("Copied to clipboard"))
			}
			return nil
		},
	}

	win.register(cmd, 1000)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.Flags().BoolVar(&copyIt, "copy", false, "Also copy the output to the clipboard")

	return cmd
}

// runLayout loads the canvas around the requested days and lays it out.
func (a *App) runLayout(ctx context.Context, win windowFlags) (layout.Output, error) {
	if err := a.ensureRepo(); err != nil {
		return layout.Output{}, err
	}

	lc := a.config.Layout
	if win.mode != "" {
		lc.Stacking = win.mode
	}
	opts, err := lc.Options()
	if err != nil {
		return layout.Output{}, err
	}
	limits, err := lc.ZoomLimits()
	if err != nil {
		return layout.Output{}, err
	}

	now := time.Now().In(a.location())
	days, err := dateutil.NewDateRange(win.startDate, win.endDate, now)
	if err != nil {
		return layout.Output{}, err
	}
	from, to := days.Bounds()

	// The range is shown as asked, even outside the zoom limits.
	limits.MinZoom = min(limits.MinZoom, to.Sub(from))
	limits.MaxZoom = max(limits.MaxZoom, to.Sub(from))
	vp, err := viewport.New(from, to, win.width, limits)
	if err != nil {
		return layout.Output{}, err
	}

	groups, err := a.repo.ListGroups(ctx)
	if err != nil {
		return layout.Output{}, fmt.Errorf("listing lanes: %w", err)
	}
	items, err := a.repo.ListItemsInRange(ctx, vp.CanvasStart(), vp.CanvasEnd())
	if err != nil {
		return layout.Output{}, fmt.Errorf("listing items: %w", err)
	}

	engine := layout.NewEngine(opts, a.log)
	return engine.Run(layout.Input{
		Items:  item.List(items),
		Groups: item.Groups(groups),
		Window: vp.Window(),
		Force:  true,
	}), nil
}

// location returns the configured time zone. The config is validated on
// load, so a failure here falls back to local time.
func (a *App) location() *time.Location {
	loc, err := a.config.Layout.Location()
	if err != nil {
		return time.Local
	}
	return loc
}
