// Package tui is the terminal front end: a tcell screen showing the map from
// above with a keyboard cursor, a status line and a console line.
package tui

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"terrashift/internal/render"
	"terrashift/internal/world"
)

const (
	groundGlyph = ' '
	waterGlyph  = '~'
	emptyGlyph  = '·'
)

// Styler turns world display values into terminal cells.
type Styler struct {
	palette *render.Palette
}

// NewStyler builds a Styler over p, or the default palette when p is nil.
func NewStyler(p *render.Palette) Styler {
	if p == nil {
		p = render.DefaultPalette()
	}
	return Styler{palette: p}
}

// Cell returns the glyph and style drawn for display value v.
func (s Styler) Cell(v uint8) (rune, tcell.Style) {
	if v == 0 {
		return emptyGlyph, tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
	bg := rgb(s.palette.Color(v))
	st := tcell.StyleDefault.Background(bg)
	if v&world.WaterFlag != 0 {
		return waterGlyph, st.Foreground(tcell.ColorWhite)
	}
	return groundGlyph, st
}

// Cursor returns the style of the cell under the cursor.
func (s Styler) Cursor(v uint8, mode world.Mode) (rune, tcell.Style) {
	r, st := s.Cell(v)
	if r == groundGlyph || r == emptyGlyph {
		r = '+'
	}
	fg := tcell.ColorYellow
	if mode == world.ModeWater {
		fg = tcell.ColorAqua
	}
	return r, st.Foreground(fg).Bold(true)
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
