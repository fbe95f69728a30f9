package water

import (
	"testing"

	"github.com/stretchr/testify/require"

	"terrashift/internal/grid"
	"terrashift/internal/terrain"
)

// row builds a connected 1×len(heights) strip of terrain.
func row(heights ...float32) *grid.Population[terrain.Block] {
	p := grid.NewPopulation[terrain.Block](len(heights))
	for c, h := range heights {
		p.Add(terrain.NewBlock(grid.Cell{Col: c, Height: h}))
	}
	p.Connect()
	return p
}

type recorder struct{ probes []Probe }

func (r *recorder) Probe(p Probe) { r.probes = append(r.probes, p) }

func waterAt(p *grid.Population[Cell], c grid.Coord) *Cell {
	return p.At(p.Find(c))
}

func TestProbeSpawnsWaterOnLowerGround(t *testing.T) {
	ground := row(1.0)
	waters := grid.NewPopulation[Cell](1)
	m := NewManager(DefaultConfig(), ground, waters, nil)

	var spawned []grid.Coord
	m.OnSpawn = func(c grid.Coord) { spawned = append(spawned, c) }

	m.Probe(Probe{Coord: grid.Coord{Row: 0, Col: 0}, Level: 1.5})
	require.Equal(t, 1, m.Process())

	w := waterAt(waters, grid.Coord{})
	require.NotNil(t, w)
	require.Equal(t, float32(1.5), w.Height)
	require.Equal(t, float32(0.5), w.Amount)
	require.True(t, w.Draining)
	require.True(t, waters.Dirty())
	require.Equal(t, []grid.Coord{{}}, spawned)

	pair, ok := m.Pairs().ForTerrain(0)
	require.True(t, ok)
	require.Equal(t, waters.Find(grid.Coord{}), pair.Water)
}

func TestProbeIgnoresHighGroundAndMisses(t *testing.T) {
	ground := row(2.0)
	waters := grid.NewPopulation[Cell](1)
	m := NewManager(DefaultConfig(), ground, waters, nil)

	m.Probe(Probe{Coord: grid.Coord{}, Level: 1.5})
	m.Probe(Probe{Coord: grid.Coord{}, Level: 2.0})
	m.Probe(Probe{Coord: grid.Coord{Row: 4, Col: 4}, Level: 10})
	require.Equal(t, 0, m.Process())
	require.Zero(t, waters.Len())
	require.Zero(t, m.Pending())
}

func TestProbeRearmsPairedWater(t *testing.T) {
	ground := row(0)
	waters := grid.NewPopulation[Cell](1)
	m := NewManager(DefaultConfig(), ground, waters, nil)

	w, ok := m.Spawn(0)
	require.True(t, ok)
	waters.At(w).Draining = false

	m.Probe(Probe{Coord: grid.Coord{}, Level: 3})
	require.Equal(t, 0, m.Process())
	require.True(t, waters.At(w).Draining)
	require.Equal(t, 1, waters.Len())
}

func TestPairingIsUnique(t *testing.T) {
	ground := row(0, 0, 0)
	waters := grid.NewPopulation[Cell](3)
	m := NewManager(DefaultConfig(), ground, waters, nil)

	for i := 0; i < 5; i++ {
		m.Probe(Probe{Coord: grid.Coord{Col: 1}, Level: 1})
		m.Fill(1, terrain.Up)
	}
	require.Equal(t, 1, m.Process())
	require.Equal(t, 1, waters.Len())
	require.Equal(t, 1, m.Pairs().Len())

	_, ok := m.Spawn(1)
	require.False(t, ok)

	seen := map[grid.Index]bool{}
	for _, p := range m.Pairs().List() {
		require.False(t, seen[p.Water], "water %d paired twice", p.Water)
		seen[p.Water] = true
	}
}

func TestFillRaisesAndLowersOneUnit(t *testing.T) {
	ground := row(1.0)
	waters := grid.NewPopulation[Cell](1)
	m := NewManager(DefaultConfig(), ground, waters, nil)

	m.Fill(0, terrain.Down)
	require.Equal(t, 0, m.Process())
	require.Zero(t, waters.Len())

	m.Fill(0, terrain.Up)
	require.Equal(t, 1, m.Process())
	m.Fill(0, terrain.Up)
	require.Equal(t, 0, m.Process())

	w := waterAt(waters, grid.Coord{})
	require.Equal(t, float32(1.0), w.Amount)
	require.Equal(t, float32(2.0), w.Height)

	w.Draining = false
	for i := 0; i < 3; i++ {
		m.Fill(0, terrain.Down)
	}
	m.Process()
	w = waterAt(waters, grid.Coord{})
	require.Equal(t, float32(0), w.Amount)
	require.Equal(t, float32(1.0), w.Height)
	require.True(t, w.Draining)

	require.Equal(t, 0, m.Despawn(), "water level with its block stays")
}

func TestNotifyRearmsFinishedBlockAndNeighbours(t *testing.T) {
	ground := row(0, 0, 0, 0)
	waters := grid.NewPopulation[Cell](4)
	m := NewManager(DefaultConfig(), ground, waters, nil)

	for _, t0 := range []grid.Index{0, 2, 3} {
		w, ok := m.Spawn(t0)
		require.True(t, ok)
		waters.At(w).Draining = false
	}

	armed := m.Notify([]terrain.Finished{{Index: 1, Direction: terrain.Up, Height: 0.5}})
	require.Equal(t, 2, armed)
	require.True(t, waterAt(waters, grid.Coord{Col: 0}).Draining)
	require.True(t, waterAt(waters, grid.Coord{Col: 2}).Draining)
	require.False(t, waterAt(waters, grid.Coord{Col: 3}).Draining)
}

func TestDespawnRemovesSubmergedWaterWithItsPair(t *testing.T) {
	ground := row(1.0, 1.0)
	waters := grid.NewPopulation[Cell](2)
	m := NewManager(DefaultConfig(), ground, waters, nil)

	_, ok := m.Spawn(0)
	require.True(t, ok)
	_, ok = m.Spawn(1)
	require.True(t, ok)

	ground.At(0).Height = 2.0
	ground.At(1).Height = 1.5

	require.Equal(t, 1, m.Despawn())
	require.Equal(t, 1, waters.Len())
	require.Equal(t, 1, m.Pairs().Len())
	_, ok = m.Pairs().ForTerrain(0)
	require.False(t, ok)
	require.Nil(t, waterAt(waters, grid.Coord{Col: 0}))
	require.NotNil(t, waterAt(waters, grid.Coord{Col: 1}))
}

func TestDespawnDropsOrphanedPairs(t *testing.T) {
	ground := row(0)
	waters := grid.NewPopulation[Cell](1)
	m := NewManager(DefaultConfig(), ground, waters, nil)

	w, _ := m.Spawn(0)
	waters.Remove(w)

	require.Equal(t, 0, m.Despawn())
	require.Zero(t, m.Pairs().Len())

	// The block can carry water again.
	_, ok := m.Spawn(0)
	require.True(t, ok)
}

func TestTwoCellLeveling(t *testing.T) {
	waters := grid.NewPopulation[Cell](2)
	hi := waters.Add(Cell{Cell: grid.Cell{Col: 0, Height: 3.0}, Amount: 3.0, Draining: true})
	lo := waters.Add(Cell{Cell: grid.Cell{Col: 1, Height: 1.0}, Amount: 1.0, Draining: true})
	waters.Connect()

	sink := &recorder{}
	l := NewLeveler(DefaultConfig(), waters, sink)
	rep := l.Level()

	require.Equal(t, 2, rep.Active)
	require.Equal(t, 2, rep.Moving)
	require.InDelta(t, 2.98, waters.At(hi).Height, 1e-6)
	require.InDelta(t, 1.02, waters.At(lo).Height, 1e-6)
	require.InDelta(t, 3.0-waters.At(hi).Height, waters.At(lo).Height-1.0, 1e-6)
	require.Equal(t, float32(-1), waters.At(hi).Rate)
	require.Equal(t, float32(1), waters.At(lo).Rate)

	// Three open sides each, probed at the cell's level before moving.
	require.Len(t, sink.probes, 6)
	require.Equal(t, 6, rep.Probes)
	require.Contains(t, sink.probes, Probe{Coord: grid.Coord{Row: -1, Col: 0}, Level: 3.0})
	require.Contains(t, sink.probes, Probe{Coord: grid.Coord{Row: 0, Col: 2}, Level: 1.0})
}

func TestLevelingConvergesAndConservesVolume(t *testing.T) {
	waters := grid.NewPopulation[Cell](2)
	hi := waters.Add(Cell{Cell: grid.Cell{Col: 0, Height: 3.0}, Amount: 3.0, Draining: true})
	lo := waters.Add(Cell{Cell: grid.Cell{Col: 1, Height: 1.0}, Amount: 1.0, Draining: true})
	waters.Connect()

	cfg := DefaultConfig()
	l := NewLeveler(cfg, waters, nil)
	settled := false
	for i := 0; i < 200; i++ {
		if l.Level().Moving == 0 {
			settled = true
			break
		}
	}
	require.True(t, settled)
	diff := waters.At(hi).Height - waters.At(lo).Height
	require.LessOrEqual(t, diff, cfg.Cutoff)
	require.GreaterOrEqual(t, diff, -cfg.Cutoff)
	require.InDelta(t, 4.0, waters.At(hi).Amount+waters.At(lo).Amount, 1e-3)
}

func TestIsolatedWaterSitsIdle(t *testing.T) {
	waters := grid.NewPopulation[Cell](1)
	i := waters.Add(Cell{Cell: grid.Cell{Height: 1.5}, Amount: 0.5, Draining: true})
	waters.Connect()

	rep := NewLeveler(DefaultConfig(), waters, nil).Level()
	require.Equal(t, 0, rep.Moving)
	require.Equal(t, float32(1.5), waters.At(i).Height)
	require.Equal(t, float32(0), waters.At(i).Rate)
}

func TestNearEquilibriumRateIsZero(t *testing.T) {
	waters := grid.NewPopulation[Cell](3)
	waters.Add(Cell{Cell: grid.Cell{Col: 0, Height: 1.00}, Amount: 0.5, Draining: true})
	mid := waters.Add(Cell{Cell: grid.Cell{Col: 1, Height: 1.03}, Amount: 0.5, Draining: true})
	waters.Add(Cell{Cell: grid.Cell{Col: 2, Height: 0.99}, Amount: 0.5, Draining: true})
	waters.Connect()

	l := NewLeveler(DefaultConfig(), waters, nil)
	require.Equal(t, 0, l.Level().Moving)
	require.Equal(t, float32(1.03), waters.At(mid).Height)
	waters.Each(func(_ grid.Index, w *Cell) {
		require.Equal(t, float32(0), w.Rate)
	})
}

func TestIdleCellsDoNotMove(t *testing.T) {
	waters := grid.NewPopulation[Cell](2)
	idle := waters.Add(Cell{Cell: grid.Cell{Col: 0, Height: 3.0}, Amount: 3.0})
	waters.Add(Cell{Cell: grid.Cell{Col: 1, Height: 1.0}, Amount: 1.0, Draining: true})
	waters.Connect()

	NewLeveler(DefaultConfig(), waters, nil).Level()
	require.Equal(t, float32(3.0), waters.At(idle).Height)
	require.Equal(t, float32(0), waters.At(idle).Rate)
}

func TestEmptyLowerNeighbourIsRearmed(t *testing.T) {
	waters := grid.NewPopulation[Cell](2)
	full := waters.Add(Cell{Cell: grid.Cell{Col: 0, Height: 2.0}, Amount: 1.0, Draining: true})
	empty := waters.Add(Cell{Cell: grid.Cell{Col: 1, Height: 1.0}})
	waters.Connect()

	l := NewLeveler(DefaultConfig(), waters, nil)
	l.Level()
	require.True(t, waters.At(empty).Draining)
	require.Equal(t, float32(0), waters.At(empty).Amount)
	require.Equal(t, float32(2.0), waters.At(full).Height, "empty neighbours are not summed")

	l.Level()
	require.InDelta(t, 0.02, waters.At(empty).Amount, 1e-6)
	require.InDelta(t, 1.02, waters.At(empty).Height, 1e-6)
}

func TestDrainOutGoesIdle(t *testing.T) {
	waters := grid.NewPopulation[Cell](2)
	thin := waters.Add(Cell{Cell: grid.Cell{Col: 0, Height: 1.01}, Amount: 0.01, Draining: true})
	waters.Add(Cell{Cell: grid.Cell{Col: 1, Height: 0.5}, Amount: 0.5, Draining: true})
	waters.Connect()

	rep := NewLeveler(DefaultConfig(), waters, nil).Level()
	require.Equal(t, 1, rep.Drained)
	w := waters.At(thin)
	require.Equal(t, float32(0), w.Amount)
	require.InDelta(t, 0.99, w.Height, 1e-6, "surface sinks below the ground it drained into")
	require.False(t, w.Draining)
}

func TestSeepDrainsStandingWater(t *testing.T) {
	waters := grid.NewPopulation[Cell](1)
	i := waters.Add(Cell{Cell: grid.Cell{Height: 1.5}, Amount: 0.5, Draining: true})
	waters.Connect()

	cfg := DefaultConfig()
	cfg.Seep = 0.15
	l := NewLeveler(cfg, waters, nil)
	for j := 0; j < 3; j++ {
		l.Level()
	}
	require.InDelta(t, 0.05, waters.At(i).Amount, 1e-5)
	require.InDelta(t, 1.05, waters.At(i).Height, 1e-5)

	require.Equal(t, 1, l.Level().Drained)
	require.Equal(t, float32(0), waters.At(i).Amount)
	require.InDelta(t, 0.9, waters.At(i).Height, 1e-5)
	require.False(t, waters.At(i).Draining)
}

func TestPairsTable(t *testing.T) {
	p := NewPairs()
	require.True(t, p.Add(Pair{Terrain: 4, Water: 0}))
	require.True(t, p.Add(Pair{Terrain: 1, Water: 1}))
	require.False(t, p.Add(Pair{Terrain: 4, Water: 2}))

	got, ok := p.ForWater(1)
	require.True(t, ok)
	require.Equal(t, grid.Index(1), got.Terrain)
	require.Equal(t, []Pair{{Terrain: 4, Water: 0}, {Terrain: 1, Water: 1}}, p.List())

	require.True(t, p.Remove(4))
	require.False(t, p.Remove(4))
	_, ok = p.ForWater(0)
	require.False(t, ok)

	p.Clear()
	require.Zero(t, p.Len())
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"level_unit":  "0.25",
		"flow_cutoff": "0.1",
		"flow_speed":  "bogus",
		"seep":        "-1",
	})
	require.Equal(t, float32(0.25), c.LevelUnit)
	require.Equal(t, float32(0.1), c.Cutoff)
	require.Equal(t, DefaultConfig().FlowSpeed, c.FlowSpeed)
	require.Equal(t, float32(0), c.Seep)
	require.Equal(t, DefaultConfig(), FromMap(nil))
}
