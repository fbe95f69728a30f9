package world

import (
	"terrashift/internal/grid"
	"terrashift/internal/terrain"
)

// Mode selects what an edit acts on.
type Mode uint8

const (
	// ModeShift raises or lowers terrain by one slope step.
	ModeShift Mode = iota
	// ModeWater adds or removes one layer of water.
	ModeWater
)

func (m Mode) String() string {
	if m == ModeWater {
		return "water"
	}
	return "shift"
}

// Edit is a player request against the cell at Coord.
type Edit struct {
	Coord     grid.Coord
	Direction terrain.Direction
}

type queuedEdit struct {
	Edit
	mode Mode
}

// Mode returns the active edit mode.
func (w *World) Mode() Mode { return w.mode }

// SetMode selects the edit mode for subsequent edits.
func (w *World) SetMode(m Mode) { w.mode = m }

// ToggleMode flips between shift and water mode and returns the new mode.
func (w *World) ToggleMode() Mode {
	if w.mode == ModeShift {
		w.mode = ModeWater
	} else {
		w.mode = ModeShift
	}
	return w.mode
}

// Queue records e under the active mode. Edits take effect at the start of
// the next tick.
func (w *World) Queue(e Edit) {
	if e.Direction == terrain.Still {
		return
	}
	w.edits = append(w.edits, queuedEdit{Edit: e, mode: w.mode})
}

// applyEdits routes queued edits to the shift engine or the water manager.
// Edits against coordinates without terrain are dropped.
func (w *World) applyEdits() int {
	applied := 0
	for _, e := range w.edits {
		t := w.ground.Find(e.Coord)
		if !t.Valid() {
			continue
		}
		switch e.mode {
		case ModeWater:
			w.manager.Fill(t, e.Direction)
			applied++
		default:
			if w.shift.Nudge(t, e.Direction) {
				applied++
			}
		}
	}
	w.edits = w.edits[:0]
	return applied
}
