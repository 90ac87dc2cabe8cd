package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timelane/internal/render"
)

func (a *App) svgCmd() *cobra.Command {
	var (
		win     windowFlags
		outPath string
		sidebar float64
	)

	cmd := &cobra.Command{
		Use:   "svg",
		Short: "Render a date range as SVG",
		Long: `Lay out a date range and write it as an SVG image, with a lane title
column on the left, a two-row time header and "+N" markers for hidden items.`,
		Example: `  timelane svg --start=week --out=week.svg
  timelane svg --mode=fixed --width=1600 > today.svg`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.runLayout(context.Background(), win)
			if err != nil {
				return err
			}
			steps, err := a.config.Layout.Steps()
			if err != nil {
				return err
			}

			opts := render.DefaultOptions()
			opts.SidebarWidth = sidebar
			opts.Steps = steps
			opts.Location = a.location()

			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				defer func() { _ = f.Close() }()
				if err := render.SVG(f, out, opts); err != nil {
					return fmt.Errorf("writing %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outPath)
				return f.Close()
			}
			return render.SVG(cmd.OutOrStdout(), out, opts)
		},
	}

	win.register(cmd, 1200)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().Float64Var(&sidebar, "sidebar", 120, "Lane title column width in pixels")

	return cmd
}
