package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timelane/internal/config"
	"github.com/javiermolinar/timelane/internal/layout"
	"github.com/javiermolinar/timelane/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		Example: `  timelane config
  timelane config --path ./timelane.toml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), path)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Config file (default: ~/.config/timelane/config.toml)")

	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Layout.Stacking = promptChoice(reader, out, "Stacking", cfg.Layout.Stacking, func(v string) bool {
		_, err := layout.ParseKind(v)
		return err == nil
	}, "free, none, fixed")
	cfg.Layout.Timeframe = promptValue(reader, out, "Show-more timeframe", cfg.Layout.Timeframe)
	cfg.Layout.DragSnap = promptValue(reader, out, "Drag snap", cfg.Layout.DragSnap)
	cfg.Layout.Timezone = promptValue(reader, out, "Timezone", cfg.Layout.Timezone)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.Sync.Cron = promptValue(reader, out, "Feed sync schedule (cron)", cfg.Sync.Cron)
	cfg.UI.Theme = promptChoice(reader, out, "UI theme", cfg.UI.Theme, theme.IsAvailable, strings.Join(theme.Available(), ", "))

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[layout]")
	fmt.Fprintf(out, "  stacking         = %s\n", cfg.Layout.Stacking)
	fmt.Fprintf(out, "  line_height      = %g\n", cfg.Layout.LineHeight)
	if cfg.Layout.Stacking == "fixed" {
		fmt.Fprintf(out, "  group_height     = %g\n", cfg.Layout.GroupHeight)
		fmt.Fprintf(out, "  item_height      = %g\n", cfg.Layout.ItemHeight)
	}
	fmt.Fprintf(out, "  timeframe        = %s\n", cfg.Layout.Timeframe)
	fmt.Fprintf(out, "  drag_snap        = %s\n", cfg.Layout.DragSnap)
	fmt.Fprintf(out, "  zoom             = %s .. %s\n", cfg.Layout.MinZoom, cfg.Layout.MaxZoom)
	fmt.Fprintf(out, "  timezone         = %s\n", cfg.Layout.Timezone)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme            = %s\n", cfg.UI.Theme)
	fmt.Fprintln(out, "\n[sync]")
	fmt.Fprintf(out, "  cron             = %s\n", cfg.Sync.Cron)
	fmt.Fprintf(out, "  horizon_days     = %d\n", cfg.Sync.HorizonDays)
	for _, f := range cfg.Feeds {
		fmt.Fprintf(out, "  feed %-11s = %s\n", f.ID, f.URL)
	}
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, err := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" || (err != nil && err != io.EOF) {
		return current
	}
	return input
}

// promptChoice asks until valid accepts the answer. Running out of input
// keeps the current value.
func promptChoice(reader *bufio.Reader, out io.Writer, label, current string, valid func(string) bool, options string) string {
	full := fmt.Sprintf("%s (%s)", label, options)
	for {
		value := strings.ToLower(promptValue(reader, out, full, current))
		if valid(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid value %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
