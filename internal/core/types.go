package core

// Size describes the dimensions of a simulation grid in rows and columns.
type Size struct {
	W int
	H int
}

// Sim is the contract the front ends drive. Step advances exactly one fixed
// tick; Cells exposes a row-major display buffer of Size().W*Size().H bytes.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}
