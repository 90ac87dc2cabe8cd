package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestIsLight(t *testing.T) {
	tests := []struct {
		bg   string
		want bool
	}{
		{"#ffffff", true},
		{"#eff1f5", true},
		{"#1e1e2e", false},
		{"#000000", false},
		{"not-a-color", false},
	}

	for _, tt := range tests {
		t.Run(tt.bg, func(t *testing.T) {
			if got := IsLight(tt.bg); got != tt.want {
				t.Errorf("IsLight(%q) = %v, want %v", tt.bg, got, tt.want)
			}
		})
	}
}

func TestTextColor(t *testing.T) {
	if got := TextColor("#000000", "#ffffff", "#111111"); got != "#ffffff" {
		t.Errorf("TextColor on black = %q, want white", got)
	}
	if got := TextColor("#ffffff", "#eeeeee", "#000000"); got != "#000000" {
		t.Errorf("TextColor on white = %q, want black", got)
	}
}

func TestNewPalette(t *testing.T) {
	dark, err := Load("mocha")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	p := NewPalette(dark)

	if p.Bg != lipgloss.Color(dark.Bg) {
		t.Errorf("Bg = %q, want %q", p.Bg, dark.Bg)
	}
	if p.ItemBg == lipgloss.Color(dark.Item) {
		t.Error("expected item fill to be dimmed on a dark theme")
	}
	if p.ItemBgAlt == p.ItemBg {
		t.Error("expected alternate item shade to differ")
	}
	if luminance(string(p.ItemBg)) >= luminance(dark.Item) {
		t.Errorf("expected dark theme fill %s darker than %s", p.ItemBg, dark.Item)
	}

	light, err := Load("latte")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	lp := NewPalette(light)
	if luminance(string(lp.ItemBg)) <= luminance(light.Item) {
		t.Errorf("expected light theme fill %s paler than %s", lp.ItemBg, light.Item)
	}
	if lp.TextOnItem != lipgloss.Color(light.Fg) {
		t.Errorf("TextOnItem = %q, want dark text %q", lp.TextOnItem, light.Fg)
	}
}

func TestNewPalette_NilTheme(t *testing.T) {
	p := NewPalette(nil)
	if p.Bg == "" {
		t.Error("expected nil theme to fall back to the default palette")
	}
}
