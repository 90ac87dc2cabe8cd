// Package tui provides the terminal timeline viewer for timelane.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/timelane/internal/config"
	"github.com/javiermolinar/timelane/internal/item"
	"github.com/javiermolinar/timelane/internal/layout"
	"github.com/javiermolinar/timelane/internal/overflow"
	"github.com/javiermolinar/timelane/internal/timeunit"
	"github.com/javiermolinar/timelane/internal/tui/theme"
	"github.com/javiermolinar/timelane/internal/viewport"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDrag        // Moving the selected item in time or across lanes
	ModeResize      // Moving one edge of the selected item
	ModePopup       // Browsing show-more buckets
	ModePrompt
)

// String returns the mode name shown in the title bar.
func (m Mode) String() string {
	switch m {
	case ModeDrag:
		return "drag"
	case ModeResize:
		return "resize"
	case ModePopup:
		return "hidden"
	case ModePrompt:
		return "prompt"
	default:
		return "view"
	}
}

const (
	minBodyCols   = 20
	chromeLines   = 5 // title, two header rows, status, help
	statusTimeout = 3 * time.Second
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   item.Repository
	config *config.Config
	log    zerolog.Logger

	// Theme and components
	theme   *theme.Theme
	styles  *Styles
	keys    keyMap
	help    help.Model
	prompt  textinput.Model
	overlay OverlayModel

	// Layout settings
	engine  *layout.Engine
	modes   []layout.Mode // cycled in order free, none, fixed
	modeIdx int
	steps   timeunit.Steps
	snap    time.Duration
	loc     *time.Location
	now     func() time.Time

	// Time window; nil until the terminal size is known
	vp                   *viewport.Viewport
	limits               viewport.Limits
	initStart, initEnd   time.Time
	loadedFrom, loadedTo time.Time
	loading              bool

	// Data and the latest layout pass
	groups []item.Group
	items  []item.Item
	out    layout.Output
	lanes  []laneView

	// Interaction state
	mode         Mode
	selected     string
	interaction  layout.Interaction
	resizeOrig   item.Item
	resizeStart  int64
	resizeEnd    int64
	buttons      []overflow.Button
	buttonIdx    int
	scrollOffset int // first lane line shown

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusTime time.Time
	err        error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNow replaces the clock, for tests.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model. The first visible range is the configured
// timeframe unit containing now.
func New(repo item.Repository, cfg *config.Config, log zerolog.Logger, opts ...ModelOption) (Model, error) {
	layoutOpts, err := cfg.Layout.Options()
	if err != nil {
		return Model{}, err
	}
	limits, err := cfg.Layout.ZoomLimits()
	if err != nil {
		return Model{}, err
	}
	steps, err := cfg.Layout.Steps()
	if err != nil {
		return Model{}, err
	}
	loc, err := cfg.Layout.Location()
	if err != nil {
		return Model{}, err
	}

	// The fixed-height parameters come from config even when starting free.
	fixedCfg := cfg.Layout
	fixedCfg.Stacking = "fixed"
	fixedOpts, err := fixedCfg.Options()
	if err != nil {
		return Model{}, err
	}
	modes := []layout.Mode{layout.FreeMode(), layout.NoStackMode(), fixedOpts.Mode}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		return Model{}, fmt.Errorf("loading theme: %w", err)
	}
	styles := NewStyles(t)

	prompt := textinput.New()
	prompt.Placeholder = "/goto tomorrow"
	prompt.CharLimit = 128
	prompt.Prompt = "> "
	prompt.TextStyle = styles.PromptStyle
	prompt.PromptStyle = styles.PromptStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle.Bold(true)
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle

	m := Model{
		repo:    repo,
		config:  cfg,
		log:     log.With().Str("component", "tui").Logger(),
		theme:   t,
		styles:  styles,
		keys:    newKeyMap(),
		help:    h,
		prompt:  prompt,
		overlay: NewOverlayModel(),
		engine:  layout.NewEngine(layoutOpts, log),
		modes:   modes,
		modeIdx: int(layoutOpts.Mode.Kind),
		steps:   steps,
		snap:    layoutOpts.Snap,
		loc:     loc,
		now:     time.Now,
		limits:  limits,
		mode:    ModeNormal,
	}
	for _, opt := range opts {
		opt(&m)
	}

	tf := fixedOpts.Mode.Fixed.Timeframe
	if !tf.IsTimeframe() {
		tf = timeunit.Day
	}
	m.initStart = timeunit.StartOf(m.now().In(loc), tf)
	m.initEnd = timeunit.Add(m.initStart, tf, 1)

	return m, nil
}

// Init initializes the model. Loading waits for the first window size.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("timelane")
}

// Run starts the TUI.
func Run(repo item.Repository, cfg *config.Config, log zerolog.Logger) error {
	model, err := New(repo, cfg, log)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// sidebarWidth is the width of the lane title column.
func (m Model) sidebarWidth() int {
	if w := m.config.UI.SidebarWidth; w > 0 {
		return w
	}
	return 16
}

// bodyCols is the number of columns showing the visible window.
func (m Model) bodyCols() int {
	return m.width - m.sidebarWidth()
}

// currentMode returns the active stacking mode.
func (m Model) currentMode() layout.Mode {
	return m.modes[m.modeIdx]
}

// step is how far one key press moves a dragged item or edge: the snap,
// rounded up so that the item moves at least one column.
func (m Model) step() time.Duration {
	snap := m.snap
	if snap <= 0 {
		snap = time.Minute
	}
	if m.vp == nil || m.vp.Width() <= 0 {
		return snap
	}
	col := time.Duration(float64(m.vp.Zoom()) / m.vp.Width())
	n := (col + snap - 1) / snap
	return max(n, 1) * snap
}

func (m Model) itemByID(id string) (item.Item, int, bool) {
	for i, it := range m.items {
		if it.ID == id {
			return it, i, true
		}
	}
	return item.Item{}, -1, false
}

func (m Model) groupIndex(id string) int {
	for i, g := range m.groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}
