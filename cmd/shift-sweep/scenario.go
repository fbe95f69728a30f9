package main

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"terrashift/internal/grid"
	"terrashift/internal/terrain"
	"terrashift/internal/world"
)

type paramSet struct {
	slopeLimit float32
	shiftRate  float32
	levelUnit  float32
	flowSpeed  float32
	cutoff     float32
}

func (p paramSet) String() string {
	return fmt.Sprintf("slope=%.2f rate=%.1f unit=%.2f speed=%.3f cutoff=%.3f",
		p.slopeLimit, p.shiftRate, p.levelUnit, p.flowSpeed, p.cutoff)
}

func (p paramSet) apply(cfg world.Config) world.Config {
	cfg.Terrain.SlopeLimit = p.slopeLimit
	cfg.Terrain.Rate = p.shiftRate
	cfg.Water.LevelUnit = p.levelUnit
	cfg.Water.FlowSpeed = p.flowSpeed
	cfg.Water.Cutoff = p.cutoff
	return cfg
}

// paramGrid crosses slope and flow options around the base tunables.
func paramGrid(base world.Config) []paramSet {
	slopeOptions := []float32{0.25, 0.5, 1}
	rateOptions := []float32{base.Terrain.Rate}
	unitOptions := []float32{0.25, 0.5}
	speedOptions := []float32{0.01, 0.02, 0.05}
	cutoffOptions := []float32{0.02, 0.05}

	var sets []paramSet
	for _, slope := range slopeOptions {
		for _, rate := range rateOptions {
			for _, unit := range unitOptions {
				for _, speed := range speedOptions {
					for _, cutoff := range cutoffOptions {
						sets = append(sets, paramSet{
							slopeLimit: slope,
							shiftRate:  rate,
							levelUnit:  unit,
							flowSpeed:  speed,
							cutoff:     cutoff,
						})
					}
				}
			}
		}
	}
	return sets
}

// step is one scripted edit, applied under the given mode.
type step struct {
	mode world.Mode
	edit world.Edit
}

// defaultScript raises the centre of an n×n map, then pours water onto two
// opposite corners.
func defaultScript(n, raises int) []step {
	centre := grid.Coord{Row: n / 2, Col: n / 2}
	var script []step
	for i := 0; i < raises; i++ {
		script = append(script, step{mode: world.ModeShift, edit: world.Edit{Coord: centre, Direction: terrain.Up}})
	}
	for _, c := range []grid.Coord{{Row: 0, Col: 0}, {Row: n - 1, Col: n - 1}} {
		script = append(script, step{mode: world.ModeWater, edit: world.Edit{Coord: c, Direction: terrain.Up}})
	}
	return script
}

type scenarioResult struct {
	params    paramSet
	err       error
	ticks     int
	settled   bool
	waters    int
	volume    float64
	maxLevel  float64
	minHeight float64
	maxHeight float64
}

func (r scenarioResult) String() string {
	state := "settled"
	if !r.settled {
		state = "running"
	}
	return fmt.Sprintf("%s after %d ticks waters=%d volume=%.2f level=%.2f ground[%.2f,%.2f] params=%s",
		state, r.ticks, r.waters, r.volume, r.maxLevel, r.minHeight, r.maxHeight, r.params)
}

// less orders settled scenarios first, then by ticks used.
func (r scenarioResult) less(o scenarioResult) bool {
	if r.settled != o.settled {
		return r.settled
	}
	return r.ticks < o.ticks
}

// runScenario plays the script one edit per tick and then runs the world
// until it settles. Each scenario owns its world.
func runScenario(base world.Config, params paramSet, script []step, maxTicks int) scenarioResult {
	res := scenarioResult{params: params}
	w, err := world.New(params.apply(base))
	if err != nil {
		res.err = err
		return res
	}
	for _, s := range script {
		w.SetMode(s.mode)
		w.Queue(s.edit)
		w.Step()
		res.ticks++
	}
	used, settled := w.RunUntilSettled(max(maxTicks-res.ticks, 0))
	res.ticks += used
	res.settled = settled

	st := w.Stats()
	res.waters = st.Waters
	res.volume = st.Volume
	res.maxLevel = st.MaxLevel
	res.minHeight = st.MinHeight
	res.maxHeight = st.MaxHeight
	return res
}

type summary struct {
	runs      int
	settled   int
	minTicks  float64
	maxTicks  float64
	meanTicks float64
	minVolume float64
	maxVolume float64
}

func (s summary) String() string {
	return fmt.Sprintf("%d/%d settled  ticks min=%.0f mean=%.1f max=%.0f  volume min=%.2f max=%.2f",
		s.settled, s.runs, s.minTicks, s.meanTicks, s.maxTicks, s.minVolume, s.maxVolume)
}

func summarize(all []scenarioResult) (summary, bool) {
	if len(all) == 0 {
		return summary{}, false
	}
	ticks := make([]float64, len(all))
	volumes := make([]float64, len(all))
	s := summary{runs: len(all)}
	for i, r := range all {
		ticks[i] = float64(r.ticks)
		volumes[i] = r.volume
		if r.settled {
			s.settled++
		}
	}
	s.minTicks = floats.Min(ticks)
	s.maxTicks = floats.Max(ticks)
	s.meanTicks = floats.Sum(ticks) / float64(len(ticks))
	s.minVolume = floats.Min(volumes)
	s.maxVolume = floats.Max(volumes)
	return s, true
}
