package world

import (
	"flag"
	"strconv"

	"terrashift/internal/mapgen"
	"terrashift/internal/terrain"
	"terrashift/internal/water"
)

// Config controls the world: pacing, the map to generate and the engine
// tunables.
type Config struct {
	TPS  int
	Seed int64

	Map     mapgen.Settings
	Terrain terrain.Config
	Water   water.Config
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		TPS:     60,
		Seed:    42,
		Map:     mapgen.DefaultSettings(),
		Terrain: terrain.DefaultConfig(),
		Water:   water.DefaultConfig(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Engine keys are forwarded to the terrain and water configs.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["tps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TPS = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Map.Size = parsed
		}
	}
	if v, ok := cfg["terrain"]; ok && v != "" {
		c.Map.Terrain.Kind = v
	}
	c.Terrain = terrain.FromMap(cfg)
	c.Water = water.FromMap(cfg)
	return c
}

// Dt returns the fixed step length in seconds.
func (c Config) Dt() float32 {
	if c.TPS <= 0 {
		return 1.0 / 60.0
	}
	return 1 / float32(c.TPS)
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for map generation")
	fs.IntVar(&c.Map.Size, "size", c.Map.Size, "map side length in cells")
	fs.StringVar(&c.Map.Terrain.Kind, "terrain", c.Map.Terrain.Kind, "terrain kind (flat, curved, rough)")
	fs.Var(float32Value{&c.Terrain.SlopeLimit}, "slope-limit", "largest settled height step between neighbours")
	fs.Var(float32Value{&c.Terrain.Rate}, "shift-rate", "terrain animation speed in height units per second")
	fs.Var(float32Value{&c.Water.LevelUnit}, "level-unit", "height of one water layer")
	fs.Var(float32Value{&c.Water.FlowSpeed}, "flow-speed", "water height moved per tick")
	fs.Var(float32Value{&c.Water.Cutoff}, "flow-cutoff", "ignored water level difference")
	fs.Var(float32Value{&c.Water.Seep}, "seep", "water lost per tick by draining cells")
}

type float32Value struct{ p *float32 }

func (v float32Value) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.FormatFloat(float64(*v.p), 'f', -1, 32)
}

func (v float32Value) Set(s string) error {
	parsed, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*v.p = float32(parsed)
	return nil
}
