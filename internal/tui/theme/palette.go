package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	More        lipgloss.Color
	Warning     lipgloss.Color

	// Item fills. Alternate shades separate neighbours on the same row.
	ItemBg    lipgloss.Color
	ItemBgAlt lipgloss.Color
	OverlayBg lipgloss.Color

	TextOnItem    lipgloss.Color
	TextOnOverlay lipgloss.Color
	TextOnWarning lipgloss.Color
	TextOnAccent  lipgloss.Color

	PopupBg     lipgloss.Color
	PopupBorder lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	light := IsLight(t.Bg)
	itemBg := fill(t.Item, t.Bg, light)
	overlayBg := fill(t.Overlay, t.Bg, light)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		More:        lipgloss.Color(t.More),
		Warning:     lipgloss.Color(t.Warning),

		ItemBg:    lipgloss.Color(itemBg),
		ItemBgAlt: lipgloss.Color(alternate(itemBg, light)),
		OverlayBg: lipgloss.Color(overlayBg),

		TextOnItem:    lipgloss.Color(TextColor(itemBg, t.Bg, t.Fg)),
		TextOnOverlay: lipgloss.Color(TextColor(overlayBg, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(TextColor(t.Warning, t.Bg, t.Fg)),
		TextOnAccent:  lipgloss.Color(TextColor(t.Accent, t.Bg, t.Fg)),

		PopupBg:     lipgloss.Color(t.PopupBg),
		PopupBorder: lipgloss.Color(t.PopupBorder),
	}
}

// IsLight reports whether a background is light enough to need dark text.
func IsLight(bg string) bool {
	c, err := colorful.Hex(bg)
	if err != nil {
		return false
	}
	l, _, _ := c.Lab()
	return l > 0.6
}

// fill returns the block color for an accent: a pale tint on light themes and
// a dimmed shade on dark ones.
func fill(accent, bg string, light bool) string {
	a, err := colorful.Hex(accent)
	if err != nil {
		return accent
	}
	if light {
		b, err := colorful.Hex(bg)
		if err != nil {
			return accent
		}
		return a.BlendLab(b, 0.6).Clamped().Hex()
	}
	return a.BlendLab(colorful.Color{}, 0.45).Clamped().Hex()
}

func alternate(hex string, light bool) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	if light {
		return c.BlendLab(colorful.Color{}, 0.1).Clamped().Hex()
	}
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.15).Clamped().Hex()
}

// TextColor picks whichever of a and b contrasts more with bg.
func TextColor(bg, a, b string) string {
	if contrast(bg, a) >= contrast(bg, b) {
		return a
	}
	return b
}

func contrast(x, y string) float64 {
	l1, l2 := luminance(x), luminance(y)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
