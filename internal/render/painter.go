//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads the world display buffer into one RGBA image.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette *Palette
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int, p *Palette) *GridPainter {
	if p == nil {
		p = DefaultPalette()
	}
	gp := &GridPainter{palette: p}
	gp.Resize(w, h)
	return gp
}

// Resize reallocates the image when the map dimensions change.
func (gp *GridPainter) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		gp.w, gp.h, gp.img, gp.buf = 0, 0, nil, nil
		return
	}
	if gp.img != nil && gp.w == w && gp.h == h {
		return
	}
	gp.w, gp.h = w, h
	gp.buf = make([]byte, 4*w*h)
	gp.img = ebiten.NewImage(w, h)
}

// Blit paints cells and draws the image scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, scale int) {
	if gp.img == nil || len(cells) != gp.w*gp.h {
		return
	}
	gp.palette.Fill(gp.buf, cells)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
