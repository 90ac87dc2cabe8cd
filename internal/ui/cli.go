// Package ui provides the timelane command line.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timelane/internal/config"
	"github.com/javiermolinar/timelane/internal/db"
	"github.com/javiermolinar/timelane/internal/item"
	"github.com/javiermolinar/timelane/internal/logging"
	"github.com/javiermolinar/timelane/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo     item.Repository
	config   *config.Config
	root     *cobra.Command
	log      zerolog.Logger
	closeLog func() error

	debug   bool   // Enable debug logging
	logFile string // Overrides log.file
	noColor bool
}

// NewApp creates a new CLI application. The repository is opened on first
// use unless repo is non-nil.
func NewApp(repo item.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, log: zerolog.Nop()}

	a.root = &cobra.Command{
		Use:   "timelane",
		Short: "A timeline of lanes in your terminal",
		Long: `Timelane lays out scheduled items in horizontal lanes.

Items that overlap in time stack on top of each other, or hide behind
"show more" markers when lanes have a fixed height. Run without a
command to open the interactive viewer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.noColor {
				DisableColor()
			}
			return a.setupLogging(cmd)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config, a.log)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (the viewer logs to a temp file)")
	a.root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Append logs to this file")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.layoutCmd())
	a.root.AddCommand(a.svgCmd())
	a.root.AddCommand(a.syncCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timelane %s (commit: %s)\n", Version, Commit)
		},
	}
}

// setupLogging installs the logger. The viewer owns the terminal, so it only
// logs to a file.
func (a *App) setupLogging(cmd *cobra.Command) error {
	quiet := cmd == a.root
	file := a.logFile
	if file == "" {
		file = a.config.Log.File
	}
	if quiet && a.debug && file == "" {
		file = filepath.Join(os.TempDir(), "timelane-debug.log")
	}

	logger, closer, err := logging.Setup(logging.Options{
		Level:  a.config.Log.Level,
		Debug:  a.debug,
		File:   file,
		Pretty: quiet,
		Quiet:  quiet,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.log = logger
	a.closeLog = closer
	if quiet && file != "" {
		a.log.Debug().Str("file", file).Msg("logging to file")
	}
	return nil
}

// ensureRepo opens the configured database if no repository is set yet.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}
	repo, err := db.New(path)
	if err != nil {
		return err
	}
	a.repo = repo
	a.log.Debug().Str("path", path).Msg("database opened")
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository and the log file.
func (a *App) Close() error {
	var err error
	if a.repo != nil {
		err = a.repo.Close()
	}
	if a.closeLog != nil {
		if cerr := a.closeLog(); err == nil {
			err = cerr
		}
	}
	return err
}
