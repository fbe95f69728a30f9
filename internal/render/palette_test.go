package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"terrashift/internal/world"
)

func brightness(c color.RGBA) int { return int(c.R) + int(c.G) + int(c.B) }

func TestPaletteGroundBrightensWithHeight(t *testing.T) {
	p := DefaultPalette()
	require.Equal(t, color.RGBA{}, p.Color(0))

	prev := -1
	for b := 0; b < world.Bands; b++ {
		c := p.Color(1 + uint8(b))
		require.Equal(t, uint8(255), c.A)
		require.Greater(t, brightness(c), prev, "band %d", b)
		prev = brightness(c)
	}
}

func TestPaletteWaterIsBlue(t *testing.T) {
	p := DefaultPalette()
	for b := 0; b < world.Bands; b++ {
		c := p.Color(world.WaterFlag | uint8(b))
		require.Greater(t, c.B, c.R, "band %d", b)
		require.Greater(t, c.B, c.G, "band %d", b)
	}
	require.Equal(t, p.Color(world.WaterFlag|uint8(world.Bands-1)), p.Color(world.WaterFlag|0x7f))
}

func TestPaletteFillMatchesColor(t *testing.T) {
	p := DefaultPalette()
	cells := []uint8{0, 1 + world.Band(0), world.WaterFlag | world.Band(0.5)}
	buf := make([]byte, 4*len(cells))
	p.Fill(buf, cells)
	for i, v := range cells {
		c := p.Color(v)
		require.Equal(t, []byte{c.R, c.G, c.B, c.A}, buf[i*4:i*4+4])
	}

	short := make([]byte, 4)
	require.NotPanics(t, func() { p.Fill(short, cells) })
}
