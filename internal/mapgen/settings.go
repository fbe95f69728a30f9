// Package mapgen turns map settings into the initial terrain cells.
package mapgen

import "github.com/go-gl/mathgl/mgl32"

// Built-in terrain kinds.
const (
	KindFlat   = "flat"
	KindCurved = "curved"
	KindRough  = "rough"
)

// MaxSize bounds the side length of a generated map. Adjacency is rebuilt
// pairwise, so very large maps are rejected up front.
const MaxSize = 128

// Curve parameterises curved terrain per axis; X follows rows and Y follows
// columns.
type Curve struct {
	Amplitude     mgl32.Vec2 `json:"amplitude" toml:"amplitude"`
	Wavelength    mgl32.Vec2 `json:"wavelength" toml:"wavelength"`
	PhaseShift    mgl32.Vec2 `json:"phase_shift" toml:"phase_shift"`
	VerticalShift mgl32.Vec2 `json:"vertical_shift" toml:"vertical_shift"`
}

// DefaultCurve returns gentle rolling hills.
func DefaultCurve() Curve {
	return Curve{
		Amplitude:  mgl32.Vec2{1, 1},
		Wavelength: mgl32.Vec2{8, 8},
	}
}

// Terrain selects the shape of the map.
type Terrain struct {
	Kind  string `json:"kind" toml:"kind"`
	Curve Curve  `json:"curve" toml:"curve"`
}

// Settings fully describes a generated map. Persisted maps store only
// these and regenerate on load.
type Settings struct {
	Size    int     `json:"size" toml:"size"`
	Terrain Terrain `json:"terrain" toml:"terrain"`
}

// DefaultSettings returns a flat 12×12 map.
func DefaultSettings() Settings {
	return Settings{
		Size:    12,
		Terrain: Terrain{Kind: KindFlat, Curve: DefaultCurve()},
	}
}
