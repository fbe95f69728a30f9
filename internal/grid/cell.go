// Package grid holds the cell types shared by the terrain and water
// populations and the generic arena that indexes their adjacency.
package grid

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// CellGap is the spacing between neighbouring cells in world units.
	CellGap float32 = 0.1
	// CellSize is the footprint of one cell in world units.
	CellSize float32 = 1
)

// Coord identifies a cell within its population.
type Coord struct {
	Row, Col int
}

// Offset returns the coordinate shifted by dr rows and dc columns.
func (c Coord) Offset(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Cell is one grid-addressed unit of terrain or water. Height is mutable
// state and does not take part in identity.
type Cell struct {
	Row    int
	Col    int
	Height float32
}

// Coord returns the identity of the cell.
func (c Cell) Coord() Coord { return Coord{Row: c.Row, Col: c.Col} }

// Same reports whether both cells address the same coordinate.
func (c Cell) Same(o Cell) bool { return c.Row == o.Row && c.Col == o.Col }

// Above returns a copy of c lifted by offset.
func (c Cell) Above(offset float32) Cell {
	return Cell{Row: c.Row, Col: c.Col, Height: c.Height + offset}
}

// Position maps a coordinate and height to a world position. Rows run along
// X and columns along Z; the map is centred on the origin for the given size.
func Position(c Coord, height float32, size int) mgl32.Vec3 {
	pitch := CellSize + CellGap
	offset := float32(size-1) * pitch / 2
	return mgl32.Vec3{
		float32(c.Row)*pitch - offset,
		height,
		float32(c.Col)*pitch - offset,
	}
}
