package terrain

import (
	"log/slog"

	"terrashift/internal/grid"
)

// Engine runs the shift state machine over a block population.
type Engine struct {
	cfg    Config
	blocks *grid.Population[Block]
	log    *slog.Logger
}

// NewEngine binds an engine to blocks. A nil logger discards output.
func NewEngine(cfg Config, blocks *grid.Population[Block], logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{cfg: cfg, blocks: blocks, log: logger}
}

// Config returns the active tunables.
func (e *Engine) Config() Config { return e.cfg }

// SetConfig swaps the tunables; running animations continue at the new rate.
func (e *Engine) SetConfig(cfg Config) { e.cfg = cfg }

// SetTarget moves the target height of block i to h and marks it shifting in
// the direction of the change. An edit that does not change the target, or
// that addresses a missing block, is ignored.
func (e *Engine) SetTarget(i grid.Index, h float32) bool {
	b := e.blocks.At(i)
	if b == nil {
		return false
	}
	dir := DirectionOf(h - b.Height)
	if dir == Still {
		return false
	}
	b.Height = h
	b.Shift = dir
	return true
}

// Nudge raises or lowers block i by one slope step.
func (e *Engine) Nudge(i grid.Index, dir Direction) bool {
	b := e.blocks.At(i)
	if b == nil || dir == Still {
		return false
	}
	return e.SetTarget(i, b.Height+float32(dir)*e.cfg.SlopeLimit)
}

// Advance moves every shifting block toward its target by Rate*dt and returns
// the blocks that arrived during this pass. Arrival is exact: the rendered
// height is clamped onto the target.
func (e *Engine) Advance(dt float32) []Finished {
	var done []Finished
	step := e.cfg.Rate * dt
	e.blocks.Each(func(i grid.Index, b *Block) {
		if !b.Shifting() {
			return
		}
		switch {
		case b.Rendered < b.Height:
			b.Rendered += step
			if b.Rendered > b.Height {
				b.Rendered = b.Height
			}
		case b.Rendered > b.Height:
			b.Rendered -= step
			if b.Rendered < b.Height {
				b.Rendered = b.Height
			}
		}
		if b.Rendered == b.Height {
			done = append(done, Finished{
				Index:     i,
				Coord:     b.Coord(),
				Direction: b.Shift,
				Height:    b.Height,
			})
			b.Shift = Still
		}
	})
	return done
}

// Cascade applies the slope rule once per completion: a neighbour left more
// than one slope step behind is moved one step in the same direction and
// starts shifting. Shifts started here are animated from the next Advance.
// It returns how many neighbours were moved.
func (e *Engine) Cascade(done []Finished) int {
	limit := e.cfg.SlopeLimit
	moved := 0
	for _, f := range done {
		for _, n := range e.blocks.Neighbors(f.Index).All() {
			nb := e.blocks.At(n)
			if nb == nil {
				continue
			}
			separation := f.Height - nb.Height
			switch {
			case f.Direction == Up && separation > limit:
				nb.Height += limit
				nb.Shift = Up
			case f.Direction == Down && separation < -limit:
				nb.Height -= limit
				nb.Shift = Down
			default:
				continue
			}
			moved++
		}
	}
	if moved > 0 {
		e.log.Debug("cascade", "completions", len(done), "moved", moved)
	}
	return moved
}

// Shifting counts blocks that are still animating.
func (e *Engine) Shifting() int {
	n := 0
	e.blocks.Each(func(_ grid.Index, b *Block) {
		if b.Shifting() {
			n++
		}
	})
	return n
}

// Settle advances and cascades until no block is shifting or maxTicks passes
// have run. It returns the number of ticks used and whether the terrain settled.
func (e *Engine) Settle(dt float32, maxTicks int) (int, bool) {
	for tick := 0; tick < maxTicks; tick++ {
		if e.Shifting() == 0 {
			return tick, true
		}
		e.Cascade(e.Advance(dt))
	}
	return maxTicks, e.Shifting() == 0
}
