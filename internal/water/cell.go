// Package water spawns, levels and removes the water cells that sit on top
// of terrain blocks.
package water

import (
	"strconv"

	"terrashift/internal/grid"
)

// Cell is a water cell. Height is the water surface and moves in lockstep
// with Amount.
type Cell struct {
	grid.Cell
	Amount float32
	// Rate is the signed unit flow computed by the last leveling pass.
	Rate float32
	// Draining marks the cell as taking part in leveling. Idle cells keep
	// their level until a neighbour or the lifecycle manager re-arms them.
	Draining bool
}

// Config holds the water tunables.
type Config struct {
	// LevelUnit is the height (and volume) of one spawned or filled layer.
	LevelUnit float32
	// Cutoff ignores neighbour differences at or below this magnitude.
	Cutoff float32
	// FlowSpeed is the height moved per tick by a unit rate.
	FlowSpeed float32
	// Seep is the amount every draining cell loses per tick. Zero disables it.
	Seep float32
}

// DefaultConfig returns the standard tunables.
func DefaultConfig() Config {
	return Config{
		LevelUnit: 0.5,
		Cutoff:    0.05,
		FlowSpeed: 0.02,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["level_unit"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.LevelUnit = float32(parsed)
		}
	}
	if v, ok := cfg["flow_cutoff"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			c.Cutoff = float32(parsed)
		}
	}
	if v, ok := cfg["flow_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.FlowSpeed = float32(parsed)
		}
	}
	if v, ok := cfg["seep"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			c.Seep = float32(parsed)
		}
	}
	return c
}
