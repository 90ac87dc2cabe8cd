package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Lane titles: bold cyan
	colorLane = color.New(color.FgCyan, color.Bold)

	// Overlay items sit above the stack
	colorOverlay = color.New(color.FgYellow)

	// Items hidden behind a show-more marker
	colorHidden = color.New(color.FgMagenta)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Success counts
	colorOK = color.New(color.FgGreen)

	// Failures
	colorFail = color.New(color.FgRed, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatLane(s string) string {
	return colorLane.Sprint(s)
}

func formatOverlay(s string) string {
	return colorOverlay.Sprint(s)
}

func formatHidden(s string) string {
	return colorHidden.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatOK(s string) string {
	return colorOK.Sprint(s)
}

func formatFail(s string) string {
	return colorFail.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
