package mapgen

import (
	"github.com/chewxy/math32"

	"terrashift/internal/core"
	"terrashift/internal/grid"
)

// RoughStep is the height quantum of rough terrain. Neighbouring rough cells
// never differ by more than one step.
const RoughStep float32 = 0.5

func init() {
	Register(KindFlat, flat)
	Register(KindCurved, curved)
	Register(KindRough, rough)
}

func flat(Settings, *core.RNG) func(grid.Coord) float32 {
	return func(grid.Coord) float32 { return 0 }
}

// curved sums one sine wave per axis. An axis with a zero wavelength only
// contributes its vertical shift.
func curved(s Settings, _ *core.RNG) func(grid.Coord) float32 {
	k := s.Terrain.Curve
	wave := func(axis int, pos int) float32 {
		h := k.VerticalShift[axis]
		if k.Wavelength[axis] == 0 {
			return h
		}
		return h + k.Amplitude[axis]*math32.Sin(2*math32.Pi*float32(pos)/k.Wavelength[axis]+k.PhaseShift[axis])
	}
	return func(c grid.Coord) float32 {
		return wave(0, c.Row) + wave(1, c.Col)
	}
}

// rough lays out random non-negative heights row by row, picking each cell
// from the steps that stay within one RoughStep of the cell above and the
// cell to the left.
func rough(s Settings, rng *core.RNG) func(grid.Coord) float32 {
	n := s.Size
	heights := make([]float32, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			lo, hi := float32(0), float32(2)*RoughStep
			if r > 0 {
				up := heights[(r-1)*n+c]
				lo, hi = up-RoughStep, up+RoughStep
			}
			if c > 0 {
				left := heights[r*n+c-1]
				if r == 0 {
					lo, hi = left-RoughStep, left+RoughStep
				} else {
					lo = math32.Max(lo, left-RoughStep)
					hi = math32.Min(hi, left+RoughStep)
				}
			}
			lo = math32.Max(lo, 0)
			steps := int(math32.Round((hi-lo)/RoughStep)) + 1
			heights[r*n+c] = lo + float32(rng.IntN(steps))*RoughStep
		}
	}
	return func(c grid.Coord) float32 { return heights[c.Row*n+c.Col] }
}
