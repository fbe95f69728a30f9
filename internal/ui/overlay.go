//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strings"

	"terrashift/internal/core"
	"terrashift/internal/grid"
	"terrashift/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type modeProvider interface {
	Mode() world.Mode
}

// Overlay draws the hovered cell, the edit mode and the console on top of
// the map view.
type Overlay struct {
	sim   core.Sim
	scale int
	pixel *ebiten.Image

	exec    func(string) (string, error)
	open    bool
	input   []rune
	replies []string

	hover    grid.Coord
	hovering bool
}

const maxReplies = 8

// NewOverlay constructs an overlay. exec runs console lines; a nil exec
// disables the console.
func NewOverlay(sim core.Sim, scale int, exec func(string) (string, error)) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale, exec: exec}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Capturing reports whether the console owns the keyboard.
func (o *Overlay) Capturing() bool { return o.open }

// Hover returns the cell under the cursor.
func (o *Overlay) Hover() (grid.Coord, bool) { return o.hover, o.hovering }

// Update tracks the cursor and edits the console line.
func (o *Overlay) Update() {
	mx, my := ebiten.CursorPosition()
	size := o.sim.Size()
	col, row := mx/o.scale, my/o.scale
	o.hovering = mx >= 0 && my >= 0 && col < size.W && row < size.H
	o.hover = grid.Coord{Row: row, Col: col}

	if o.exec == nil {
		return
	}
	if !o.open {
		if inpututil.IsKeyJustPressed(ebiten.KeyBackquote) {
			o.open = true
			o.input = o.input[:0]
		}
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyBackquote):
		o.open = false
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		o.submit()
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		if len(o.input) > 0 {
			o.input = o.input[:len(o.input)-1]
		}
		return
	}
	o.input = ebiten.AppendInputChars(o.input)
}

func (o *Overlay) submit() {
	line := strings.TrimSpace(string(o.input))
	o.input = o.input[:0]
	if line == "" {
		return
	}
	o.push("> " + line)
	reply, err := o.exec(line)
	if err != nil {
		o.push("error: " + err.Error())
		return
	}
	for _, l := range strings.Split(reply, "\n") {
		o.push(l)
	}
}

func (o *Overlay) push(line string) {
	o.replies = append(o.replies, line)
	if len(o.replies) > maxReplies {
		o.replies = o.replies[len(o.replies)-maxReplies:]
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.hovering {
		o.drawOutline(screen, o.hover)
	}
	face := basicfont.Face7x13
	if p, ok := o.sim.(modeProvider); ok {
		label := p.Mode().String() + " mode"
		text.Draw(screen, label, face, 6, 16, badgeColor(p.Mode()))
	}
	if !o.open {
		return
	}
	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()
	lines := len(o.replies) + 1
	top := h - lines*consoleLine - consolePadding
	fillRect(screen, o.pixel, image.Rect(0, top, w, h), color.RGBA{R: 8, G: 8, B: 12, A: 220})
	y := top + consoleLine
	for _, r := range o.replies {
		text.Draw(screen, r, face, consolePadding, y, dimColor)
		y += consoleLine
	}
	text.Draw(screen, "> "+string(o.input)+"_", face, consolePadding, y, textColor)
}

func (o *Overlay) drawOutline(screen *ebiten.Image, c grid.Coord) {
	x, y, s := c.Col*o.scale, c.Row*o.scale, o.scale
	col := color.RGBA{R: 255, G: 255, B: 255, A: 200}
	fillRect(screen, o.pixel, image.Rect(x, y, x+s, y+1), col)
	fillRect(screen, o.pixel, image.Rect(x, y+s-1, x+s, y+s), col)
	fillRect(screen, o.pixel, image.Rect(x, y, x+1, y+s), col)
	fillRect(screen, o.pixel, image.Rect(x+s-1, y, x+s, y+s), col)
}

func badgeColor(m world.Mode) color.RGBA {
	if m == world.ModeWater {
		return color.RGBA{R: 120, G: 190, B: 255, A: 255}
	}
	return color.RGBA{R: 230, G: 210, B: 140, A: 255}
}

const (
	consoleLine    = 15
	consolePadding = 6
)
