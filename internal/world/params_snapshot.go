package world

import (
	"fmt"
	"strconv"

	"terrashift/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	t, wt := w.cfg.Terrain, w.cfg.Water
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("tps", "Ticks per second", w.cfg.TPS),
				int64Param("seed", "Seed", w.cfg.Seed),
				intParam("size", "Map size", w.settings.Size),
			},
		},
		{
			Name: "Terrain",
			Params: []core.Parameter{
				floatParam("slope_limit", "Slope limit", t.SlopeLimit),
				floatParam("shift_rate", "Shift rate", t.Rate),
			},
		},
		{
			Name: "Water",
			Params: []core.Parameter{
				floatParam("level_unit", "Level unit", wt.LevelUnit),
				floatParam("flow_cutoff", "Flow cutoff", wt.Cutoff),
				floatParam("flow_speed", "Flow speed", wt.FlowSpeed),
				floatParam("seep", "Seep", wt.Seep),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

var controls = []core.ParameterControl{
	{Key: "slope_limit", Label: "Slope limit", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, Max: 2, HasMin: true, HasMax: true},
	{Key: "shift_rate", Label: "Shift rate", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.5, Max: 30, HasMin: true, HasMax: true},
	{Key: "level_unit", Label: "Level unit", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, Max: 2, HasMin: true, HasMax: true},
	{Key: "flow_cutoff", Label: "Flow cutoff", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 0.5, HasMin: true, HasMax: true},
	{Key: "flow_speed", Label: "Flow speed", Type: core.ParamTypeFloat, Step: 0.005, Min: 0.005, Max: 0.2, HasMin: true, HasMax: true},
	{Key: "seep", Label: "Seep", Type: core.ParamTypeFloat, Step: 0.001, Min: 0, Max: 0.05, HasMin: true, HasMax: true},
}

// ParameterControls lists the tunables the HUD may adjust.
func (w *World) ParameterControls() []core.ParameterControl {
	out := make([]core.ParameterControl, len(controls))
	copy(out, controls)
	return out
}

// SetFloatParameter updates one engine tunable, clamped to its control
// bounds. It reports false for an unknown key.
func (w *World) SetFloatParameter(key string, value float64) bool {
	var ctrl core.ParameterControl
	found := false
	for _, c := range controls {
		if c.Key == key {
			ctrl, found = c, true
			break
		}
	}
	if !found {
		return false
	}
	v := float32(ctrl.Clamp(value))
	t, wt := w.cfg.Terrain, w.cfg.Water
	switch key {
	case "slope_limit":
		t.SlopeLimit = v
	case "shift_rate":
		t.Rate = v
	case "level_unit":
		wt.LevelUnit = v
	case "flow_cutoff":
		wt.Cutoff = v
	case "flow_speed":
		wt.FlowSpeed = v
	case "seep":
		wt.Seep = v
	}
	w.SetTerrainConfig(t)
	w.SetWaterConfig(wt)
	w.log.Debug("parameter set", "key", key, "value", v)
	return true
}

// StatusLines reports the edit mode and the state of the map for overlays.
func (w *World) StatusLines() []string {
	s := w.Stats()
	return []string{
		fmt.Sprintf("mode: %s", w.mode),
		fmt.Sprintf("tick: %d", w.ticks),
		fmt.Sprintf("blocks: %d (%d shifting)", s.Blocks, s.Shifting),
		fmt.Sprintf("water: %d cells, %d draining, volume %.2f", s.Waters, s.Draining, s.Volume),
		fmt.Sprintf("height: %.2f..%.2f", s.MinHeight, s.MaxHeight),
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float32) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(float64(value), 'f', -1, 32),
	}
}
