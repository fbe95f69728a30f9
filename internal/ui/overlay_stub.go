//go:build !ebiten

package ui

import (
	"terrashift/internal/core"
	"terrashift/internal/grid"
)

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Sim, int, func(string) (string, error)) *Overlay { return &Overlay{} }

// Capturing is always false in headless builds.
func (o *Overlay) Capturing() bool { return false }

// Hover reports no cell in headless builds.
func (o *Overlay) Hover() (grid.Coord, bool) { return grid.Coord{}, false }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
