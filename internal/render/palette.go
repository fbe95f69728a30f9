// Package render turns the world display buffer into pixels.
package render

import (
	"image/color"

	"terrashift/internal/world"
)

// Palette maps world display values to colours: zero is empty, ground bands
// run from dark lowland to pale peaks, water bands from deep to shallow blue.
type Palette struct {
	Empty  color.RGBA
	ground [world.Bands]color.RGBA
	water  [world.Bands]color.RGBA
}

// DefaultPalette returns the standard colours.
func DefaultPalette() *Palette {
	p := &Palette{}
	low := color.RGBA{R: 28, G: 64, B: 32, A: 255}
	mid := color.RGBA{R: 86, G: 150, B: 64, A: 255}
	high := color.RGBA{R: 214, G: 204, B: 170, A: 255}
	deep := color.RGBA{R: 16, G: 48, B: 132, A: 255}
	shallow := color.RGBA{R: 96, G: 176, B: 236, A: 255}
	half := float64(world.Bands-1) / 2
	for i := 0; i < world.Bands; i++ {
		t := float64(i) / float64(world.Bands-1)
		if float64(i) <= half {
			p.ground[i] = lerpRGBA(low, mid, float64(i)/half)
		} else {
			p.ground[i] = lerpRGBA(mid, high, (float64(i)-half)/half)
		}
		p.water[i] = lerpRGBA(deep, shallow, t)
	}
	return p
}

// Color returns the colour of one display value.
func (p *Palette) Color(v uint8) color.RGBA {
	switch {
	case v == 0:
		return p.Empty
	case v&world.WaterFlag != 0:
		return p.water[clampBand(int(v&^world.WaterFlag))]
	}
	return p.ground[clampBand(int(v)-1)]
}

// Fill converts display values into RGBA pixels in buf, which must hold four
// bytes per cell.
func (p *Palette) Fill(buf []byte, cells []uint8) {
	for i, c := range cells {
		base := i * 4
		if base+3 >= len(buf) {
			return
		}
		col := p.Color(c)
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func clampBand(b int) int {
	if b < 0 {
		return 0
	}
	if b >= world.Bands {
		return world.Bands - 1
	}
	return b
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
