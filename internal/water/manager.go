package water

import (
	"log/slog"

	"terrashift/internal/grid"
	"terrashift/internal/terrain"
)

// Probe asks whether the terrain at Coord sits below Level and should carry
// water.
type Probe struct {
	Coord grid.Coord
	Level float32
}

// Fill is a manual request to add or remove one layer of water on a block.
type Fill struct {
	Terrain   grid.Index
	Direction terrain.Direction
}

// Manager owns the pair table and the water population lifecycle: it spawns
// water in answer to probes and fills, re-arms water when terrain settles
// and removes water that ended up under its block.
type Manager struct {
	cfg    Config
	ground *grid.Population[terrain.Block]
	waters *grid.Population[Cell]
	pairs  *Pairs
	probes []Probe
	fills  []Fill
	log    *slog.Logger

	// OnSpawn, when set, is called for every water cell created.
	OnSpawn func(grid.Coord)
}

// NewManager binds a manager to the terrain and water populations. A nil
// logger discards output.
func NewManager(cfg Config, ground *grid.Population[terrain.Block], waters *grid.Population[Cell], logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		cfg:    cfg,
		ground: ground,
		waters: waters,
		pairs:  NewPairs(),
		log:    logger,
	}
}

// Config returns the active tunables.
func (m *Manager) Config() Config { return m.cfg }

// SetConfig swaps the tunables.
func (m *Manager) SetConfig(cfg Config) { m.cfg = cfg }

// Pairs exposes the pair table.
func (m *Manager) Pairs() *Pairs { return m.pairs }

// Probe queues a ground check for the next Process.
func (m *Manager) Probe(p Probe) { m.probes = append(m.probes, p) }

// Fill queues a manual fill for the next Process.
func (m *Manager) Fill(t grid.Index, dir terrain.Direction) {
	if dir == terrain.Still {
		return
	}
	m.fills = append(m.fills, Fill{Terrain: t, Direction: dir})
}

// Pending returns the number of queued probes and fills.
func (m *Manager) Pending() int { return len(m.probes) + len(m.fills) }

// Process drains the probe and fill queues and returns the number of water
// cells spawned.
func (m *Manager) Process() int {
	spawned := 0
	probes := m.probes
	m.probes = nil
	for _, p := range probes {
		if m.check(p) {
			spawned++
		}
	}
	fills := m.fills
	m.fills = nil
	for _, f := range fills {
		if m.fill(f) {
			spawned++
		}
	}
	return spawned
}

// check answers one probe. It reports whether water was spawned.
func (m *Manager) check(p Probe) bool {
	t := m.ground.Find(p.Coord)
	block := m.ground.At(t)
	if block == nil || block.Height >= p.Level {
		return false
	}
	if w := m.paired(t); w != nil {
		w.Draining = true
		return false
	}
	_, ok := m.Spawn(t)
	return ok
}

func (m *Manager) fill(f Fill) bool {
	if m.ground.At(f.Terrain) == nil {
		return false
	}
	w := m.paired(f.Terrain)
	if w == nil {
		if f.Direction != terrain.Up {
			return false
		}
		_, ok := m.Spawn(f.Terrain)
		return ok
	}
	unit := m.cfg.LevelUnit
	if f.Direction == terrain.Down {
		unit = -unit
	}
	w.Amount += unit
	w.Height += unit
	if w.Amount < 0 {
		w.Height -= w.Amount
		w.Amount = 0
	}
	w.Draining = true
	return false
}

// paired returns the live water cell paired with terrain block t. A pair
// whose water side is gone is dropped.
func (m *Manager) paired(t grid.Index) *Cell {
	pair, ok := m.pairs.ForTerrain(t)
	if !ok {
		return nil
	}
	w := m.waters.At(pair.Water)
	if w == nil {
		m.pairs.Remove(t)
	}
	return w
}

// Spawn creates a water cell one level unit above terrain block t and pairs
// them. It returns the existing water index and false when t is already
// paired, and None and false when t does not resolve.
func (m *Manager) Spawn(t grid.Index) (grid.Index, bool) {
	block := m.ground.At(t)
	if block == nil {
		return grid.None, false
	}
	if pair, ok := m.pairs.ForTerrain(t); ok && m.waters.Alive(pair.Water) {
		return pair.Water, false
	}
	m.pairs.Remove(t)
	cell := Cell{
		Cell:     block.Cell.Above(m.cfg.LevelUnit),
		Amount:   m.cfg.LevelUnit,
		Draining: true,
	}
	coord := cell.Coord()
	w := m.waters.Add(cell)
	m.pairs.Add(Pair{Terrain: t, Water: w})
	m.log.Debug("water spawned", "coord", coord, "height", cell.Height)
	if m.OnSpawn != nil {
		m.OnSpawn(coord)
	}
	return w, true
}

// Notify re-arms the water resting on every finished block and on its
// terrain neighbours so leveling re-evaluates the changed ground.
func (m *Manager) Notify(done []terrain.Finished) int {
	armed := 0
	arm := func(t grid.Index) {
		if w := m.paired(t); w != nil && !w.Draining {
			w.Draining = true
			armed++
		}
	}
	for _, f := range done {
		arm(f.Index)
		for _, n := range m.ground.Neighbors(f.Index).All() {
			arm(n)
		}
	}
	return armed
}

// Despawn removes every water cell that sits strictly below the target
// height of its block, together with its pair, and drops pairs with a
// missing side. It returns the number of water cells removed.
func (m *Manager) Despawn() int {
	removed := 0
	for _, pair := range m.pairs.List() {
		block := m.ground.At(pair.Terrain)
		w := m.waters.At(pair.Water)
		switch {
		case w == nil:
		case block == nil || w.Height < block.Height:
			m.log.Debug("water despawned", "coord", w.Coord(), "height", w.Height)
			m.waters.Remove(pair.Water)
			removed++
		default:
			continue
		}
		m.pairs.Remove(pair.Terrain)
	}
	return removed
}

// Clear drops the queues and the pair table.
func (m *Manager) Clear() {
	m.probes = nil
	m.fills = nil
	m.pairs.Clear()
}
