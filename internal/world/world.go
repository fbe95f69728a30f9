// Package world ties the terrain and water engines to one map and runs them
// tick by tick.
package world

import (
	"log/slog"

	"terrashift/internal/core"
	"terrashift/internal/grid"
	"terrashift/internal/mapgen"
	"terrashift/internal/terrain"
	"terrashift/internal/water"
)

// Option customises a World at construction.
type Option func(*World)

// WithLogger routes the world's log output to l.
func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithSpawnHook calls fn with the coordinate of every water cell created.
func WithSpawnHook(fn func(grid.Coord)) Option {
	return func(w *World) { w.onSpawn = fn }
}

// Tick summarises one Advance.
type Tick struct {
	Edits     int
	Finished  int
	Cascaded  int
	Spawned   int
	Despawned int
	Level     water.Report
}

// Quiet reports whether nothing moved during the tick.
func (t Tick) Quiet() bool {
	return t.Edits == 0 && t.Finished == 0 && t.Cascaded == 0 && t.Spawned == 0 &&
		t.Despawned == 0 && t.Level.Moving == 0 && t.Level.Drained == 0
}

var _ core.Sim = (*World)(nil)

// World is a terrashift map: terrain blocks, the water resting on them and
// the engines that move both. A World is not safe for concurrent use.
type World struct {
	cfg      Config
	settings mapgen.Settings
	size     int
	log      *slog.Logger
	onSpawn  func(grid.Coord)

	ground  *grid.Population[terrain.Block]
	waters  *grid.Population[water.Cell]
	shift   *terrain.Engine
	manager *water.Manager
	leveler *water.Leveler

	mode  Mode
	edits []queuedEdit

	ticks    uint64
	last     Tick
	shifting bool
	display  *core.ByteGrid
}

// New builds a world and generates the map described by cfg.Map.
func New(cfg Config, opts ...Option) (*World, error) {
	if err := mapgen.Validate(cfg.Map); err != nil {
		return nil, err
	}
	w := &World{
		cfg: cfg,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	n := cfg.Map.Size * cfg.Map.Size
	w.ground = grid.NewPopulation[terrain.Block](n)
	w.waters = grid.NewPopulation[water.Cell](n)
	w.shift = terrain.NewEngine(cfg.Terrain, w.ground, w.log)
	w.manager = water.NewManager(cfg.Water, w.ground, w.waters, w.log)
	w.manager.OnSpawn = w.onSpawn
	w.leveler = water.NewLeveler(cfg.Water, w.waters, w.manager)
	if err := w.Generate(cfg.Map); err != nil {
		return nil, err
	}
	return w, nil
}

// Name identifies the simulation.
func (w *World) Name() string { return "terrashift" }

// Size returns the map dimensions; zero after Clear.
func (w *World) Size() core.Size { return core.Size{W: w.size, H: w.size} }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Settings returns the settings of the current map.
func (w *World) Settings() mapgen.Settings { return w.settings }

// Ticks returns the number of ticks run since the map was generated.
func (w *World) Ticks() uint64 { return w.ticks }

// LastTick returns the summary of the most recent Advance.
func (w *World) LastTick() Tick { return w.last }

// Generate replaces the map with one generated from s. On error the current
// map is left untouched.
func (w *World) Generate(s mapgen.Settings) error {
	cells, err := mapgen.Generate(s, w.cfg.Seed)
	if err != nil {
		return err
	}
	w.reset()
	for _, c := range cells {
		w.ground.Add(terrain.NewBlock(c))
	}
	w.ground.Connect()
	w.settings = s
	w.size = s.Size
	w.display = core.NewByteGrid(s.Size, s.Size)
	w.log.Info("map generated", "size", s.Size, "terrain", s.Terrain.Kind, "seed", w.cfg.Seed)
	return nil
}

// Reset regenerates the current map with a new seed.
func (w *World) Reset(seed int64) {
	w.cfg.Seed = seed
	if err := w.Generate(w.settings); err != nil {
		w.log.Warn("reset failed", "err", err)
	}
}

// Clear removes every cell. The settings of the removed map are kept so a
// later Reset can bring it back.
func (w *World) Clear() {
	w.reset()
	w.size = 0
	w.display = core.NewByteGrid(0, 0)
	w.log.Info("map cleared")
}

func (w *World) reset() {
	w.ground.Clear()
	w.waters.Clear()
	w.manager.Clear()
	w.edits = w.edits[:0]
	w.ticks = 0
	w.last = Tick{}
	w.shifting = false
}

// Step advances the world by one fixed step of 1/TPS seconds.
func (w *World) Step() { w.Advance(w.cfg.Dt()) }

// Advance runs one tick of dt seconds: queued edits, terrain animation,
// cascade and notification, water spawning, adjacency rebuild, leveling and
// despawning, in that order.
func (w *World) Advance(dt float32) Tick {
	var t Tick
	t.Edits = w.applyEdits()

	done := w.shift.Advance(dt)
	t.Finished = len(done)
	t.Cascaded = w.shift.Cascade(done)
	w.manager.Notify(done)

	t.Spawned = w.manager.Process()

	if w.ground.Dirty() {
		w.ground.Connect()
	}
	if w.waters.Dirty() {
		w.waters.Connect()
	}

	t.Level = w.leveler.Level()
	t.Despawned = w.manager.Despawn()

	w.ticks++
	w.last = t
	w.trackSettle()
	return t
}

func (w *World) trackSettle() {
	shifting := w.shift.Shifting() > 0
	if w.shifting && !shifting {
		w.log.Debug("terrain settled", "tick", w.ticks)
	}
	w.shifting = shifting
}

// Settled reports whether the last tick was quiet and no edit is queued.
// Probes raised by standing water are always pending and do not count.
func (w *World) Settled() bool {
	return w.last.Quiet() && len(w.edits) == 0 && w.shift.Shifting() == 0
}

// RunUntilSettled steps until the world settles or maxTicks ticks ran. It
// returns the ticks used and whether the world settled.
func (w *World) RunUntilSettled(maxTicks int) (int, bool) {
	for i := 0; i < maxTicks; i++ {
		w.Step()
		if w.Settled() {
			return i + 1, true
		}
	}
	return maxTicks, false
}

// SetTerrainConfig swaps the shift tunables.
func (w *World) SetTerrainConfig(c terrain.Config) {
	w.cfg.Terrain = c
	w.shift.SetConfig(c)
}

// SetWaterConfig swaps the water tunables.
func (w *World) SetWaterConfig(c water.Config) {
	w.cfg.Water = c
	w.manager.SetConfig(c)
	w.leveler.SetConfig(c)
}
