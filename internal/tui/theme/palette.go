// Package theme provides color themes for the TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Warning     lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color

	Blocks map[schedule.Color]BlockColors
}

// BlockColors are the shades used to draw one palette color.
type BlockColors struct {
	Bg    lipgloss.Color // block background
	BgAlt lipgloss.Color // adjacent block of the same color
	Ghost lipgloss.Color // original slot of a block being dragged
	Fg    lipgloss.Color // text on Bg
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	bg := parse(t.Bg)
	light := luminance(bg) > 0.55

	blocks := make(map[schedule.Color]BlockColors, len(schedule.Colors()))
	for _, c := range schedule.Colors() {
		raw := t.Block(c)
		base, ok := parseOK(raw)
		if !ok {
			// Unparseable colors are passed to lipgloss untouched.
			blocks[c] = BlockColors{
				Bg:    lipgloss.Color(raw),
				BgAlt: lipgloss.Color(raw),
				Ghost: lipgloss.Color(raw),
				Fg:    lipgloss.Color(t.Fg),
			}
			continue
		}
		block, alt, ghost := shades(base, bg, light)
		blocks[c] = BlockColors{
			Bg:    lipgloss.Color(block.Hex()),
			BgAlt: lipgloss.Color(alt.Hex()),
			Ghost: lipgloss.Color(ghost.Hex()),
			Fg:    lipgloss.Color(textOn(block, t.Fg, t.Bg)),
		}
	}

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Warning:     lipgloss.Color(t.Warning),

		TextOnAccent:  lipgloss.Color(textOn(parse(t.Accent), t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(textOn(parse(t.Warning), t.Bg, t.Fg)),

		Blocks: blocks,
	}
}

// Block returns the shades for c, falling back to the default color.
func (p *Palette) Block(c schedule.Color) BlockColors {
	if b, ok := p.Blocks[c]; ok {
		return b
	}
	return p.Blocks[schedule.DefaultColor]
}

var (
	black = colorful.Color{R: 0, G: 0, B: 0}
	white = colorful.Color{R: 1, G: 1, B: 1}
)

// shades returns the block background, the shade for an adjacent block of
// the same color and the drag ghost. Light themes wash the base color into
// the background; dark themes dim it with a brightness floor.
func shades(base, bg colorful.Color, light bool) (block, alt, ghost colorful.Color) {
	if light {
		block = base.BlendRgb(bg, 0.75)
		return block, block.BlendRgb(black, 0.10), base.BlendRgb(bg, 0.88)
	}
	block = dim(base, 0.50, 40)
	return block, block.BlendRgb(white, 0.30), dim(base, 0.30, 30)
}

// dim scales every channel by factor, never going below floor (0-255).
func dim(c colorful.Color, factor float64, floor uint8) colorful.Color {
	f := float64(floor) / 255
	return colorful.Color{
		R: max(c.R*factor, f),
		G: max(c.G*factor, f),
		B: max(c.B*factor, f),
	}.Clamped()
}

// textOn picks whichever of the two hex colors contrasts more with bg.
func textOn(bg colorful.Color, first, second string) string {
	if contrast(bg, parse(first)) >= contrast(bg, parse(second)) {
		return first
	}
	return second
}

func contrast(a, b colorful.Color) float64 {
	l1, l2 := luminance(a), luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// luminance is the WCAG relative luminance.
func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func parseOK(hex string) (colorful.Color, bool) {
	c, err := colorful.Hex(hex)
	return c, err == nil
}

// parse treats unparseable colors as black.
func parse(hex string) colorful.Color {
	c, _ := parseOK(hex)
	return c
}
