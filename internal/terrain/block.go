// Package terrain animates terrain blocks toward their target heights and
// keeps adjacent blocks within the slope limit once every shift settles.
package terrain

import "terrashift/internal/grid"

// Direction is the shifting marker of a block.
type Direction int8

const (
	Down  Direction = -1
	Still Direction = 0
	Up    Direction = 1
)

// DirectionOf returns the sign of delta as a Direction.
func DirectionOf(delta float32) Direction {
	switch {
	case delta > 0:
		return Up
	case delta < 0:
		return Down
	}
	return Still
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "still"
}

// Block is a terrain cell. Cell.Height is the target height; Rendered is the
// animated height the front ends draw.
type Block struct {
	grid.Cell
	Rendered float32
	Shift    Direction
}

// NewBlock returns an idle block resting at c.Height.
func NewBlock(c grid.Cell) Block {
	return Block{Cell: c, Rendered: c.Height}
}

// Shifting reports whether the block carries a shifting marker.
func (b *Block) Shifting() bool { return b.Shift != Still }

// Finished is emitted once a block's rendered height reaches its target.
type Finished struct {
	Index     grid.Index
	Coord     grid.Coord
	Direction Direction
	Height    float32
}
