package water

import (
	"github.com/elliotchance/orderedmap/v2"

	"terrashift/internal/grid"
)

// Pair binds a terrain block to the water cell standing on it.
type Pair struct {
	Terrain grid.Index
	Water   grid.Index
}

// Pairs is the pair table, keyed by terrain index and kept in creation order
// so sweeps over it are deterministic.
type Pairs struct {
	byTerrain *orderedmap.OrderedMap[grid.Index, Pair]
	byWater   map[grid.Index]grid.Index
}

// NewPairs returns an empty table.
func NewPairs() *Pairs {
	return &Pairs{
		byTerrain: orderedmap.NewOrderedMap[grid.Index, Pair](),
		byWater:   make(map[grid.Index]grid.Index),
	}
}

// Add registers p. It refuses a second pair for an already paired block.
func (p *Pairs) Add(pair Pair) bool {
	if _, ok := p.byTerrain.Get(pair.Terrain); ok {
		return false
	}
	p.byTerrain.Set(pair.Terrain, pair)
	p.byWater[pair.Water] = pair.Terrain
	return true
}

// ForTerrain returns the pair of terrain block t.
func (p *Pairs) ForTerrain(t grid.Index) (Pair, bool) {
	return p.byTerrain.Get(t)
}

// ForWater returns the pair of water cell w.
func (p *Pairs) ForWater(w grid.Index) (Pair, bool) {
	t, ok := p.byWater[w]
	if !ok {
		return Pair{}, false
	}
	return p.byTerrain.Get(t)
}

// Remove deletes the pair of terrain block t.
func (p *Pairs) Remove(t grid.Index) bool {
	pair, ok := p.byTerrain.Get(t)
	if !ok {
		return false
	}
	p.byTerrain.Delete(t)
	delete(p.byWater, pair.Water)
	return true
}

// Len returns the number of pairs.
func (p *Pairs) Len() int { return p.byTerrain.Len() }

// List returns every pair in creation order.
func (p *Pairs) List() []Pair {
	out := make([]Pair, 0, p.byTerrain.Len())
	for el := p.byTerrain.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Clear drops every pair.
func (p *Pairs) Clear() {
	p.byTerrain = orderedmap.NewOrderedMap[grid.Index, Pair]()
	clear(p.byWater)
}
