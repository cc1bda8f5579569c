package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Warnings: overlaps and dropped events
	colorWarn = color.New(color.FgYellow)

	// Success: saved changes
	colorOK = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// blockColors maps the event palette onto terminal colors.
var blockColors = map[schedule.Color]*color.Color{
	schedule.ColorBlue:   color.New(color.FgBlue, color.Bold),
	schedule.ColorGreen:  color.New(color.FgGreen, color.Bold),
	schedule.ColorRed:    color.New(color.FgRed, color.Bold),
	schedule.ColorYellow: color.New(color.FgYellow, color.Bold),
	schedule.ColorPurple: color.New(color.FgMagenta, color.Bold),
	schedule.ColorPink:   color.New(color.FgHiMagenta),
	schedule.ColorOrange: color.New(color.FgHiYellow),
	schedule.ColorGray:   color.New(color.FgHiBlack),
}

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

// formatBlock formats text in the color of an event block.
func formatBlock(c schedule.Color, s string) string {
	if fc, ok := blockColors[c]; ok {
		return fc.Sprint(s)
	}
	return blockColors[schedule.DefaultColor].Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatWarn formats text as a warning.
func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

// formatOK formats text as a confirmation.
func formatOK(s string) string {
	return colorOK.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
