package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/floats"

	"terrashift/internal/grid"
	"terrashift/internal/terrain"
	"terrashift/internal/water"
)

// BlockView is a read-only snapshot of a terrain block.
type BlockView struct {
	Coord    grid.Coord
	Height   float32
	Rendered float32
	Shift    terrain.Direction
	Position mgl32.Vec3
}

// WaterView is a read-only snapshot of a water cell.
type WaterView struct {
	Coord    grid.Coord
	Height   float32
	Amount   float32
	Draining bool
	Position mgl32.Vec3
}

// Blocks returns every terrain block positioned at its rendered height.
func (w *World) Blocks() []BlockView {
	out := make([]BlockView, 0, w.ground.Len())
	w.ground.Each(func(_ grid.Index, b *terrain.Block) {
		out = append(out, BlockView{
			Coord:    b.Coord(),
			Height:   b.Height,
			Rendered: b.Rendered,
			Shift:    b.Shift,
			Position: grid.Position(b.Coord(), b.Rendered, w.size),
		})
	})
	return out
}

// Waters returns every water cell positioned at its surface.
func (w *World) Waters() []WaterView {
	out := make([]WaterView, 0, w.waters.Len())
	w.waters.Each(func(_ grid.Index, c *water.Cell) {
		out = append(out, WaterView{
			Coord:    c.Coord(),
			Height:   c.Height,
			Amount:   c.Amount,
			Draining: c.Draining,
			Position: grid.Position(c.Coord(), c.Height, w.size),
		})
	})
	return out
}

// Block returns the snapshot of the block at c.
func (w *World) Block(c grid.Coord) (BlockView, bool) {
	b := w.ground.At(w.ground.Find(c))
	if b == nil {
		return BlockView{}, false
	}
	return BlockView{
		Coord:    c,
		Height:   b.Height,
		Rendered: b.Rendered,
		Shift:    b.Shift,
		Position: grid.Position(c, b.Rendered, w.size),
	}, true
}

// Water returns the snapshot of the water cell at c.
func (w *World) Water(c grid.Coord) (WaterView, bool) {
	cell := w.waters.At(w.waters.Find(c))
	if cell == nil {
		return WaterView{}, false
	}
	return WaterView{
		Coord:    c,
		Height:   cell.Height,
		Amount:   cell.Amount,
		Draining: cell.Draining,
		Position: grid.Position(c, cell.Height, w.size),
	}, true
}

// Display values written by Cells. Ground cells carry 1+band, water cells
// set WaterFlag on top of the band of their surface.
const (
	Bands     = 16
	BandBase  = float32(-2)
	BandStep  = float32(0.5)
	WaterFlag = uint8(0x80)
)

// Band maps a height to its display band in [0, Bands).
func Band(h float32) uint8 {
	b := int(math32.Floor((h - BandBase) / BandStep))
	switch {
	case b < 0:
		return 0
	case b >= Bands:
		return Bands - 1
	}
	return uint8(b)
}

// Cells renders the map into the row-major display buffer: x follows
// columns, y follows rows, zero marks a missing cell.
func (w *World) Cells() []uint8 {
	g := w.display
	g.Clear()
	w.ground.Each(func(_ grid.Index, b *terrain.Block) {
		g.Set(b.Col, b.Row, 1+Band(b.Rendered))
	})
	w.waters.Each(func(_ grid.Index, c *water.Cell) {
		if c.Amount > 0 {
			g.Set(c.Col, c.Row, WaterFlag|Band(c.Height))
		}
	})
	return g.Cells()
}

// Stats aggregates the state of the map.
type Stats struct {
	Blocks   int
	Shifting int
	Waters   int
	Draining int
	Pairs    int

	MinHeight  float64
	MaxHeight  float64
	MeanHeight float64
	Volume     float64
	MaxLevel   float64
}

// Stats summarises the current map.
func (w *World) Stats() Stats {
	s := Stats{
		Blocks:   w.ground.Len(),
		Shifting: w.shift.Shifting(),
		Waters:   w.waters.Len(),
		Pairs:    w.manager.Pairs().Len(),
	}
	heights := make([]float64, 0, s.Blocks)
	w.ground.Each(func(_ grid.Index, b *terrain.Block) {
		heights = append(heights, float64(b.Height))
	})
	if len(heights) > 0 {
		s.MinHeight = floats.Min(heights)
		s.MaxHeight = floats.Max(heights)
		s.MeanHeight = floats.Sum(heights) / float64(len(heights))
	}
	amounts := make([]float64, 0, s.Waters)
	levels := make([]float64, 0, s.Waters)
	w.waters.Each(func(_ grid.Index, c *water.Cell) {
		amounts = append(amounts, float64(c.Amount))
		levels = append(levels, float64(c.Height))
		if c.Draining {
			s.Draining++
		}
	})
	if len(amounts) > 0 {
		s.Volume = floats.Sum(amounts)
		s.MaxLevel = floats.Max(levels)
	}
	return s
}
