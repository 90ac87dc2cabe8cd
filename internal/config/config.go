// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/timelane/internal/layout"
	"github.com/javiermolinar/timelane/internal/timeunit"
	"github.com/javiermolinar/timelane/internal/viewport"
)

// Config holds the application configuration.
type Config struct {
	Layout  LayoutConfig  `toml:"layout"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
	Sync    SyncConfig    `toml:"sync"`
	Feeds   []FeedConfig  `toml:"feeds"`
}

// LayoutConfig holds the layout engine settings.
type LayoutConfig struct {
	LineHeight      float64        `toml:"line_height"`       // pixels per row
	ItemHeightRatio float64        `toml:"item_height_ratio"` // item height as a share of line_height
	HeaderHeight    float64        `toml:"header_height"`
	DragSnap        string         `toml:"drag_snap"`        // e.g., "15m"
	MinResizeWidth  int            `toml:"min_resize_width"` // pixels (columns in the viewer) a resized item keeps
	FullUpdate      bool           `toml:"full_update"`
	Stacking        string         `toml:"stacking"`     // "free", "none", "fixed"
	GroupHeight     float64        `toml:"group_height"` // lane height when stacking = "fixed"
	ItemHeight      float64        `toml:"item_height"`  // item height when stacking = "fixed"
	ItemSpacing     float64        `toml:"item_spacing"`
	Timeframe       string         `toml:"timeframe"` // show-more slot: hour, day, week, month, quarter, year
	MinZoom         string         `toml:"min_zoom"`
	MaxZoom         string         `toml:"max_zoom"`
	Timezone        string         `toml:"timezone"` // IANA name or "Local"
	TimeSteps       map[string]int `toml:"time_steps"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme        string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
	SidebarWidth int    `toml:"sidebar_width"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // zerolog level name
	File  string `toml:"file"`  // optional log file, required for the TUI to log
}

// SyncConfig holds feed refresh settings.
type SyncConfig struct {
	Cron        string `toml:"cron"` // standard 5-field cron spec
	HorizonDays int    `toml:"horizon_days"`
}

// FeedConfig describes one ICS source and the group it fills.
type FeedConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			LineHeight:      layout.DefaultLineHeight,
			ItemHeightRatio: layout.DefaultItemHeightRatio,
			HeaderHeight:    layout.DefaultHeaderHeight,
			DragSnap:        "15m",
			MinResizeWidth:  2,
			FullUpdate:      true,
			Stacking:        "free",
			GroupHeight:     layout.DefaultLaneHeight,
			ItemHeight:      layout.DefaultItemHeight,
			ItemSpacing:     layout.DefaultItemSpacing,
			Timeframe:       string(timeunit.Day),
			MinZoom:         "1h",
			MaxZoom:         "43800h", // 5 years
			Timezone:        "Local",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme:        "frappe",
			SidebarWidth: 16,
		},
		Log: LogConfig{
			Level: "info",
		},
		Sync: SyncConfig{
			Cron:        "*/15 * * * *",
			HorizonDays: 90,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "timelane.db"
	}
	return filepath.Join(home, ".local", "share", "timelane", "timelane.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "timelane", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	// Layout overrides
	if v := os.Getenv("TIMELANE_STACKING"); v != "" {
		cfg.Layout.Stacking = v
	}
	if v := os.Getenv("TIMELANE_TIMEFRAME"); v != "" {
		cfg.Layout.Timeframe = v
	}
	if v := os.Getenv("TIMELANE_TIMEZONE"); v != "" {
		cfg.Layout.Timezone = v
	}
	if v := os.Getenv("TIMELANE_DRAG_SNAP"); v != "" {
		cfg.Layout.DragSnap = v
	}
	if v := os.Getenv("TIMELANE_FULL_UPDATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TIMELANE_FULL_UPDATE: %w", err)
		}
		cfg.Layout.FullUpdate = b
	}

	// Storage overrides
	if v := os.Getenv("TIMELANE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// UI overrides
	if v := os.Getenv("TIMELANE_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	// Log overrides
	if v := os.Getenv("TIMELANE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TIMELANE_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	// Sync overrides
	if v := os.Getenv("TIMELANE_SYNC_CRON"); v != "" {
		cfg.Sync.Cron = v
	}

	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Layout.validate(); err != nil {
		return err
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.UI.SidebarWidth < 0 {
		return errors.New("sidebar_width must not be negative")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	if _, err := cron.ParseStandard(c.Sync.Cron); err != nil {
		return fmt.Errorf("invalid sync cron %q: %w", c.Sync.Cron, err)
	}
	if c.Sync.HorizonDays <= 0 {
		return errors.New("horizon_days must be positive")
	}

	seen := make(map[string]bool, len(c.Feeds))
	for _, f := range c.Feeds {
		if f.ID == "" {
			return errors.New("every feed needs an id")
		}
		if seen[f.ID] {
			return fmt.Errorf("duplicate feed id: %s", f.ID)
		}
		seen[f.ID] = true
		if f.URL == "" {
			return fmt.Errorf("feed %s has no url", f.ID)
		}
	}
	return nil
}

func (l LayoutConfig) validate() error {
	if l.LineHeight <= 0 {
		return errors.New("line_height must be positive")
	}
	if l.ItemHeightRatio <= 0 || l.ItemHeightRatio > 1 {
		return errors.New("item_height_ratio must be in (0, 1]")
	}
	if l.HeaderHeight < 0 {
		return errors.New("header_height must not be negative")
	}
	if _, err := l.Snap(); err != nil {
		return err
	}
	if l.MinResizeWidth < 0 {
		return errors.New("min_resize_width must not be negative")
	}

	kind, err := layout.ParseKind(l.Stacking)
	if err != nil {
		return err
	}
	if kind == layout.Fixed {
		if l.GroupHeight <= 0 || l.ItemHeight <= 0 {
			return errors.New("group_height and item_height must be positive for fixed stacking")
		}
		if l.ItemHeight+2*l.ItemSpacing > l.GroupHeight {
			return errors.New("item_height plus spacing must fit in group_height")
		}
	}
	if l.ItemSpacing < 0 {
		return errors.New("item_spacing must not be negative")
	}

	tf, err := timeunit.Parse(l.Timeframe)
	if err != nil {
		return fmt.Errorf("timeframe: %w", err)
	}
	if !tf.IsTimeframe() {
		return fmt.Errorf("timeframe must be hour or coarser, got %q", l.Timeframe)
	}

	if _, err := l.ZoomLimits(); err != nil {
		return err
	}
	if _, err := l.Location(); err != nil {
		return err
	}
	if _, err := l.Steps(); err != nil {
		return err
	}
	return nil
}

// Snap returns the drag snap duration.
func (l LayoutConfig) Snap() (time.Duration, error) {
	if l.DragSnap == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(l.DragSnap)
	if err != nil {
		return 0, fmt.Errorf("drag_snap: %w", err)
	}
	if d < 0 {
		return 0, errors.New("drag_snap must not be negative")
	}
	return d, nil
}

// ZoomLimits returns the configured zoom bounds.
func (l LayoutConfig) ZoomLimits() (viewport.Limits, error) {
	minZoom, err := time.ParseDuration(l.MinZoom)
	if err != nil {
		return viewport.Limits{}, fmt.Errorf("min_zoom: %w", err)
	}
	maxZoom, err := time.ParseDuration(l.MaxZoom)
	if err != nil {
		return viewport.Limits{}, fmt.Errorf("max_zoom: %w", err)
	}
	if minZoom <= 0 || maxZoom < minZoom {
		return viewport.Limits{}, errors.New("min_zoom must be positive and not above max_zoom")
	}
	return viewport.Limits{MinZoom: minZoom, MaxZoom: maxZoom}, nil
}

// Location returns the configured time zone.
func (l LayoutConfig) Location() (*time.Location, error) {
	if l.Timezone == "" || strings.EqualFold(l.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return loc, nil
}

// Steps returns the header step multipliers over the defaults.
func (l LayoutConfig) Steps() (timeunit.Steps, error) {
	steps := timeunit.DefaultSteps()
	for name, n := range l.TimeSteps {
		u, err := timeunit.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("time_steps: %w", err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("time_steps.%s must be positive", name)
		}
		steps[u] = n
	}
	return steps, nil
}

// Options converts the layout section into engine options.
func (l LayoutConfig) Options() (layout.Options, error) {
	if err := l.validate(); err != nil {
		return layout.Options{}, err
	}
	snap, _ := l.Snap()
	kind, _ := layout.ParseKind(l.Stacking)
	loc, _ := l.Location()
	tf, _ := timeunit.Parse(l.Timeframe)

	opts := layout.Options{
		LineHeight:      l.LineHeight,
		ItemHeightRatio: l.ItemHeightRatio,
		HeaderHeight:    l.HeaderHeight,
		Snap:            snap,
		FullUpdate:      l.FullUpdate,
	}
	switch kind {
	case layout.None:
		opts.Mode = layout.NoStackMode()
	case layout.Fixed:
		opts.Mode = layout.FixedMode(layout.FixedParams{
			LaneHeight: l.GroupHeight,
			ItemHeight: l.ItemHeight,
			Spacing:    l.ItemSpacing,
			Timeframe:  tf,
			Location:   loc,
		})
	default:
		opts.Mode = layout.FreeMode()
	}
	return opts, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
