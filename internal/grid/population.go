package grid

// Located is implemented by anything that occupies a grid coordinate.
type Located interface {
	Coord() Coord
}

// Population is an arena of cells of one kind. Slots are never reused while
// the population lives, so a stale Index resolves to nothing rather than to a
// newer cell. Pointers returned by At are invalidated by the next Add.
type Population[T Located] struct {
	cells   []T
	alive   []bool
	hoods   []Neighborhood
	byCoord map[Coord]Index
	live    int
	dirty   bool
}

// NewPopulation returns an empty population sized for capacity cells.
func NewPopulation[T Located](capacity int) *Population[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Population[T]{
		cells:   make([]T, 0, capacity),
		alive:   make([]bool, 0, capacity),
		hoods:   make([]Neighborhood, 0, capacity),
		byCoord: make(map[Coord]Index, capacity),
	}
}

// Add appends c and returns its index. Adjacency is stale until Connect.
func (p *Population[T]) Add(c T) Index {
	idx := Index(len(p.cells))
	p.cells = append(p.cells, c)
	p.alive = append(p.alive, true)
	p.hoods = append(p.hoods, Isolated)
	p.byCoord[c.Coord()] = idx
	p.live++
	p.dirty = true
	return idx
}

// Remove retires the cell at i. It reports false for an absent cell.
func (p *Population[T]) Remove(i Index) bool {
	if !p.Alive(i) {
		return false
	}
	p.alive[i] = false
	p.hoods[i] = Isolated
	if p.byCoord[p.cells[i].Coord()] == i {
		delete(p.byCoord, p.cells[i].Coord())
	}
	var zero T
	p.cells[i] = zero
	p.live--
	p.dirty = true
	return true
}

// Alive reports whether i resolves to a live cell.
func (p *Population[T]) Alive(i Index) bool {
	return i >= 0 && int(i) < len(p.cells) && p.alive[i]
}

// At returns the cell at i, or nil when the reference no longer resolves.
func (p *Population[T]) At(i Index) *T {
	if !p.Alive(i) {
		return nil
	}
	return &p.cells[i]
}

// Find resolves a coordinate to an index, or None.
func (p *Population[T]) Find(c Coord) Index {
	if i, ok := p.byCoord[c]; ok {
		return i
	}
	return None
}

// Len returns the number of live cells.
func (p *Population[T]) Len() int { return p.live }

// Each calls fn for every live cell in ascending index order.
func (p *Population[T]) Each(fn func(Index, *T)) {
	for i := range p.cells {
		if p.alive[i] {
			fn(Index(i), &p.cells[i])
		}
	}
}

// Indices returns the live indices in ascending order.
func (p *Population[T]) Indices() []Index {
	out := make([]Index, 0, p.live)
	for i := range p.cells {
		if p.alive[i] {
			out = append(out, Index(i))
		}
	}
	return out
}

// Neighbors returns the adjacency computed by the last Connect.
func (p *Population[T]) Neighbors(i Index) Neighborhood {
	if !p.Alive(i) {
		return Isolated
	}
	return p.hoods[i]
}

// Neighbor resolves the neighbour of i in direction d, or nil.
func (p *Population[T]) Neighbor(i Index, d Direction) (Index, *T) {
	n := p.Neighbors(i).Get(d)
	c := p.At(n)
	if c == nil {
		return None, nil
	}
	return n, c
}

// Dirty reports whether cells were added or removed since the last Connect.
func (p *Population[T]) Dirty() bool { return p.dirty }

// Connect rebuilds the adjacency table of every live cell.
func (p *Population[T]) Connect() {
	Connect(p.cells, p.alive, p.hoods)
	p.dirty = false
}

// Clear drops every cell.
func (p *Population[T]) Clear() {
	p.cells = p.cells[:0]
	p.alive = p.alive[:0]
	p.hoods = p.hoods[:0]
	clear(p.byCoord)
	p.live = 0
	p.dirty = false
}

// Connect fills hoods with the axis-aligned neighbours of every live cell by
// comparing each pair once. It serves both populations; grids are small and
// the pass only runs when a population changed size.
func Connect[T Located](cells []T, alive []bool, hoods []Neighborhood) {
	for i := range hoods {
		hoods[i] = Isolated
	}
	for i := range cells {
		if !alive[i] {
			continue
		}
		a := cells[i].Coord()
		for j := i + 1; j < len(cells); j++ {
			if !alive[j] {
				continue
			}
			d, ok := directionTo(a, cells[j].Coord())
			if !ok {
				continue
			}
			hoods[i].set(d, Index(j))
			hoods[j].set(d.Opposite(), Index(i))
		}
	}
}
