package board

import "fmt"

// Position identifies one cell of the board. X is the column (character index
// within a map line) and Z is the row (line index). Valid positions are never
// negative.
type Position struct {
	X int
	Z int
}

// P is a convenience constructor for Position.
func P(x, z int) Position {
	return Position{X: x, Z: z}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Z)
}

// Add returns p offset by d. No clamping is applied, so the result may lie
// off the grid; bounds are checked by Board.At.
func (p Position) Add(d Direction) Position {
	return Position{X: p.X + d.X, Z: p.Z + d.Z}
}

// Step applies d to p the way movement commits a finished move: a component
// that would take an axis below zero is ignored and that axis stays put.
// The upper edge of the grid is not checked here; moves are gated by
// Board.FreeDirections before they start.
func (p Position) Step(d Direction) Position {
	out := p
	if x := p.X + d.X; x >= 0 {
		out.X = x
	}
	if z := p.Z + d.Z; z >= 0 {
		out.Z = z
	}
	return out
}

// Manhattan returns the Manhattan distance to another position.
func (p Position) Manhattan(o Position) int {
	dx := p.X - o.X
	dz := p.Z - o.Z
	if dx < 0 {
		dx = -dx
	}
	if dz < 0 {
		dz = -dz
	}
	return dx + dz
}

// Direction is a unit step along one axis. The zero value means "not moving".
type Direction struct {
	X int
	Z int
}

var (
	None     = Direction{}            // not moving
	Right    = Direction{X: 1, Z: 0}  // +x
	Left     = Direction{X: -1, Z: 0} // -x
	Forward  = Direction{X: 0, Z: 1}  // +z, "below" / south on screen
	Backward = Direction{X: 0, Z: -1} // -z, north on screen
)

// freeOrder is the enumeration order used by FreeDirections and by the wall
// connectivity search. Enemy pursuit tie-breaks depend on it.
var freeOrder = [4]Direction{Right, Left, Forward, Backward}

// blastOrder is the order in which an explosion is walked outwards.
var blastOrder = [4]Direction{Left, Backward, Right, Forward}

// Cardinal returns the four cardinal directions in FreeDirections order.
func Cardinal() [4]Direction {
	return freeOrder
}

// IsZero reports whether d is the "not moving" direction.
func (d Direction) IsZero() bool {
	return d.X == 0 && d.Z == 0
}

// Scale returns d multiplied by n.
func (d Direction) Scale(n int) Direction {
	return Direction{X: d.X * n, Z: d.Z * n}
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return Direction{X: -d.X, Z: -d.Z}
}

func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case Right:
		return "right"
	case Left:
		return "left"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("(%d,%d)", d.X, d.Z)
	}
}
