package water

import (
	"github.com/chewxy/math32"

	"terrashift/internal/grid"
)

// ProbeSink receives the ground checks raised by leveling.
type ProbeSink interface {
	Probe(Probe)
}

// Report summarises one leveling pass.
type Report struct {
	Active  int // draining cells
	Moving  int // cells with a non-zero rate
	Drained int // cells that ran dry and went idle
	Probes  int
}

// Leveler equalises neighbouring water levels one unit step per tick.
type Leveler struct {
	cfg    Config
	waters *grid.Population[Cell]
	sink   ProbeSink

	rearm  []grid.Index
	probes []Probe
}

// NewLeveler binds a leveler to the water population. Probes raised by
// draining cells are forwarded to sink, which may be nil.
func NewLeveler(cfg Config, waters *grid.Population[Cell], sink ProbeSink) *Leveler {
	return &Leveler{cfg: cfg, waters: waters, sink: sink}
}

// Config returns the active tunables.
func (l *Leveler) Config() Config { return l.cfg }

// SetConfig swaps the tunables.
func (l *Leveler) SetConfig(cfg Config) { l.cfg = cfg }

// Level runs one leveling pass. Every rate is computed from the heights at
// the start of the pass before any cell moves, so the outcome does not
// depend on iteration order. Adjacency must be current.
func (l *Leveler) Level() Report {
	var rep Report
	l.rearm = l.rearm[:0]
	l.probes = l.probes[:0]

	l.waters.Each(func(i grid.Index, w *Cell) {
		if !w.Draining {
			w.Rate = 0
			return
		}
		rep.Active++
		w.Rate = unit(l.pressure(i, w))
		if w.Rate != 0 {
			rep.Moving++
		}
	})

	speed := l.cfg.FlowSpeed
	l.waters.Each(func(_ grid.Index, w *Cell) {
		if !w.Draining {
			return
		}
		delta := w.Rate * speed
		if l.cfg.Seep > 0 && w.Amount > 0 {
			delta -= l.cfg.Seep
		}
		w.Amount += delta
		w.Height += delta
		// Height keeps the overshoot so the cell sinks below its block and
		// is despawned in the same tick.
		if w.Amount < 0 {
			w.Amount = 0
			w.Rate = 0
			w.Draining = false
			rep.Drained++
		}
	})

	for _, n := range l.rearm {
		if w := l.waters.At(n); w != nil {
			w.Draining = true
		}
	}
	rep.Probes = len(l.probes)
	if l.sink != nil {
		for _, p := range l.probes {
			l.sink.Probe(p)
		}
	}
	return rep
}

// pressure sums the level differences towards water neighbours that hold
// water. Lower empty neighbours are queued for re-arming instead, and
// directions without water are probed when w has water to give.
func (l *Leveler) pressure(i grid.Index, w *Cell) float32 {
	var sum float32
	hood := l.waters.Neighbors(i)
	for _, d := range grid.Directions {
		n := hood.Get(d)
		nb := l.waters.At(n)
		if nb == nil {
			if w.Amount > 0 {
				dr, dc := d.Step()
				l.probes = append(l.probes, Probe{Coord: w.Coord().Offset(dr, dc), Level: w.Height})
			}
			continue
		}
		diff := nb.Height - w.Height
		if math32.Abs(diff) <= l.cfg.Cutoff {
			continue
		}
		switch {
		case nb.Amount > 0:
			sum += diff
		case diff < 0:
			l.rearm = append(l.rearm, n)
		}
	}
	return sum
}

func unit(v float32) float32 {
	if v == 0 {
		return 0
	}
	return math32.Copysign(1, v)
}
