package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timelane/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg lipgloss.Color

	TitleStyle  lipgloss.Style
	HeaderStyle lipgloss.Style
	TickStyle   lipgloss.Style

	// Lanes alternate between two backgrounds.
	SidebarStyle    lipgloss.Style
	SidebarAltStyle lipgloss.Style
	LaneStyle       lipgloss.Style
	LaneAltStyle    lipgloss.Style

	ItemStyle     lipgloss.Style
	ItemAltStyle  lipgloss.Style
	OverlayStyle  lipgloss.Style
	SelectedStyle lipgloss.Style
	ActiveStyle   lipgloss.Style // dragged or resized item
	MoreStyle     lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style

	PopupStyle      lipgloss.Style
	PopupTitleStyle lipgloss.Style
	PopupItemStyle  lipgloss.Style
	PopupMutedStyle lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		colorBg: p.Bg,

		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Padding(0, 1),
		HeaderStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.BgHighlight).
			Bold(true),
		TickStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.BgHighlight),

		SidebarStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.Bg).
			Bold(true),
		SidebarAltStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.BgHighlight).
			Bold(true),
		LaneStyle:    lipgloss.NewStyle().Background(p.Bg),
		LaneAltStyle: lipgloss.NewStyle().Background(p.BgHighlight),

		ItemStyle: lipgloss.NewStyle().
			Foreground(p.TextOnItem).
			Background(p.ItemBg),
		ItemAltStyle: lipgloss.NewStyle().
			Foreground(p.TextOnItem).
			Background(p.ItemBgAlt),
		OverlayStyle: lipgloss.NewStyle().
			Foreground(p.TextOnOverlay).
			Background(p.OverlayBg).
			Italic(true),
		SelectedStyle: lipgloss.NewStyle().
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Bold(true),
		ActiveStyle: lipgloss.NewStyle().
			Foreground(p.TextOnWarning).
			Background(p.Warning).
			Bold(true),
		MoreStyle: lipgloss.NewStyle().
			Foreground(p.More).
			Bold(true),

		StatusStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.Bg),
		ErrorStyle: lipgloss.NewStyle().
			Foreground(p.More).
			Background(p.Bg).
			Bold(true),
		HelpStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.Bg),
		PromptStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.BgHighlight),

		PopupStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.PopupBorder).
			BorderBackground(p.PopupBg).
			Background(p.PopupBg).
			Padding(0, 1),
		PopupTitleStyle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Background(p.PopupBg).
			Bold(true),
		PopupItemStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.PopupBg),
		PopupMutedStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.PopupBg),
	}
}
