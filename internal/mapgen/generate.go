package mapgen

import (
	"errors"
	"fmt"
	"sort"

	"terrashift/internal/core"
	"terrashift/internal/grid"
)

var (
	ErrInvalidSize    = errors.New("mapgen: invalid map size")
	ErrUnknownTerrain = errors.New("mapgen: unknown terrain kind")
)

// Heightfield prepares the height function of one terrain kind for s.
type Heightfield func(s Settings, rng *core.RNG) func(grid.Coord) float32

var kinds = map[string]Heightfield{}

// Register adds a terrain kind under the provided name.
func Register(kind string, h Heightfield) {
	if kind == "" || h == nil {
		return
	}
	kinds[kind] = h
}

// Kinds lists the registered terrain kinds in lexical order.
func Kinds() []string {
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Validate reports why s cannot be generated, or nil.
func Validate(s Settings) error {
	if s.Size <= 0 || s.Size > MaxSize {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidSize, s.Size, MaxSize)
	}
	if _, ok := kinds[s.Terrain.Kind]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTerrain, s.Terrain.Kind)
	}
	return nil
}

// Generate returns the cells of a Size×Size map in row-major order. Every
// coordinate appears exactly once. Kinds that draw randomness are
// deterministic for a given seed.
func Generate(s Settings, seed int64) ([]grid.Cell, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	height := kinds[s.Terrain.Kind](s, core.NewRNG(seed))
	cells := make([]grid.Cell, 0, s.Size*s.Size)
	for r := 0; r < s.Size; r++ {
		for c := 0; c < s.Size; c++ {
			cells = append(cells, grid.Cell{Row: r, Col: c, Height: height(grid.Coord{Row: r, Col: c})})
		}
	}
	return cells, nil
}
