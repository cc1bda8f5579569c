package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rocinante/internal/schedule"
	"github.com/javiermolinar/rocinante/internal/tui/theme"
)

// blockVariant selects how an event block is drawn.
type blockVariant int

const (
	blockNormal blockVariant = iota
	blockAlt                 // adjacent block of the same color
	blockGhost               // original slot of the dragged event
	blockActive              // dragged event at its preview position
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title bar
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style

	// Header styles
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style

	// Time column
	TimeColumnStyle lipgloss.Style

	// Empty cell
	EmptyCellStyle lipgloss.Style

	// Footer
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	StatusDragStyle  lipgloss.Style
	HelpStyle        lipgloss.Style
	PromptLabel      lipgloss.Style
	PromptText       lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		palette: p,

		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Padding(0, 1),
		SubtitleStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.Bg),

		DayHeaderStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Fg).
			Background(p.BgHighlight).
			Align(lipgloss.Center),
		DayHeaderTodayStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Align(lipgloss.Center),

		TimeColumnStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.Bg),

		EmptyCellStyle: lipgloss.NewStyle().
			Background(p.Bg),

		StatusStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.BgHighlight),
		StatusErrorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnWarning).
			Background(p.Warning),
		StatusDragStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Warning).
			Background(p.BgHighlight),
		HelpStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.Bg),
		PromptLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent),
		PromptText: lipgloss.NewStyle().
			Foreground(p.Fg),
	}
}

// BlockStyle returns the style for an event block of color c.
func (s *Styles) BlockStyle(c schedule.Color, v blockVariant) lipgloss.Style {
	b := s.palette.Block(c)
	style := lipgloss.NewStyle().Foreground(b.Fg).Background(b.Bg)

	switch v {
	case blockAlt:
		style = style.Background(b.BgAlt)
	case blockGhost:
		style = style.Background(b.Ghost).Foreground(s.palette.FgMuted)
	case blockActive:
		style = style.Bold(true).Foreground(s.palette.Warning)
	}
	return style
}
