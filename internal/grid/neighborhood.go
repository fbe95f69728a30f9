package grid

// Index addresses a cell slot inside a Population.
type Index int

// None marks an absent reference: the map edge, or a cell that no longer exists.
const None Index = -1

// Valid reports whether i refers to a slot at all.
func (i Index) Valid() bool { return i >= 0 }

// Direction names one of the four axis-aligned neighbours.
type Direction uint8

const (
	Left  Direction = iota // row - 1
	Right                  // row + 1
	Front                  // col - 1
	Back                   // col + 1
)

// Directions lists every neighbour direction.
var Directions = [4]Direction{Left, Right, Front, Back}

// Step returns the row and column delta of d.
func (d Direction) Step() (int, int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Front:
		return 0, -1
	default:
		return 0, 1
	}
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Front:
		return Back
	default:
		return Front
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Front:
		return "front"
	default:
		return "back"
	}
}

// Neighborhood holds the up to four neighbours of a cell.
type Neighborhood struct {
	Left, Right, Front, Back Index
}

// Isolated is a neighbourhood without any neighbours.
var Isolated = Neighborhood{Left: None, Right: None, Front: None, Back: None}

// Get returns the neighbour in direction d.
func (n Neighborhood) Get(d Direction) Index {
	switch d {
	case Left:
		return n.Left
	case Right:
		return n.Right
	case Front:
		return n.Front
	default:
		return n.Back
	}
}

func (n *Neighborhood) set(d Direction, i Index) {
	switch d {
	case Left:
		n.Left = i
	case Right:
		n.Right = i
	case Front:
		n.Front = i
	default:
		n.Back = i
	}
}

// All returns the neighbours in Directions order, None included.
func (n Neighborhood) All() [4]Index {
	return [4]Index{n.Left, n.Right, n.Front, n.Back}
}

// directionTo classifies b relative to a. ok is false when they are not
// axis-aligned neighbours.
func directionTo(a, b Coord) (Direction, bool) {
	switch {
	case b.Row == a.Row-1 && b.Col == a.Col:
		return Left, true
	case b.Row == a.Row+1 && b.Col == a.Col:
		return Right, true
	case b.Col == a.Col-1 && b.Row == a.Row:
		return Front, true
	case b.Col == a.Col+1 && b.Row == a.Row:
		return Back, true
	}
	return 0, false
}
