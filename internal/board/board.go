package board

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// CellSize is the edge length of one cell in world units, on every axis.
const CellSize = 0.25

// DefaultBlastRadius is the bomb range a freshly parsed board starts with.
const DefaultBlastRadius = 5

// Map configuration errors. A broken map is a build-time defect, so callers
// treat all of these as fatal.
var (
	ErrEmptyMap             = errors.New("board: map has no rows")
	ErrUnknownMapCharacter  = errors.New("board: unknown map character")
	ErrRaggedRows           = errors.New("board: rows differ in length")
	ErrMissingPlayerStart   = errors.New("board: map has no player start")
	ErrMissingExit          = errors.New("board: map has no exit")
	ErrDuplicatePlayerStart = errors.New("board: map has more than one player start")
	ErrDuplicateExit        = errors.New("board: map has more than one exit")
)

// Vec3 is a point in continuous render space. Y is always 0 for grid anchors.
type Vec3 struct {
	X, Y, Z float64
}

// Cell is one immutable grid square.
type Cell struct {
	Kind   BlockKind
	Anchor Vec3     // world-space centre of the cell
	Pos    Position // grid coordinate
}

// EntityID is an opaque handle owned by whoever spawned the entity. The board
// only associates it with a position and never creates or destroys one.
type EntityID uint64

// Bomb is an active bomb: its range and the cell it sits on.
type Bomb struct {
	Range int
	Pos   Position
}

// Board is the grid model of one level. The cell layout is fixed at Parse
// time; only the occupancy associations change while the level is played.
// A Board is not safe for concurrent use.
type Board struct {
	width   int
	height  int
	offsetX float64 // centres the grid on the origin
	offsetZ float64
	cells   []Cell // row-major: index = z*width + x

	player Position
	exit   Position

	enemies map[EntityID]Position
	coins   map[EntityID]Position
	bombs   map[EntityID]Bomb

	blastRadius  int
	exitRevealed bool
}

// Parse builds a board from ASCII map text. Lines are separated by '\n' and
// empty lines are dropped; a trailing '\r' is tolerated on every line.
func Parse(text string) (*Board, error) {
	var lines [][]rune
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, []rune(line))
	}
	if len(lines) == 0 {
		return nil, ErrEmptyMap
	}

	width := len(lines[0])
	height := len(lines)
	b := &Board{
		width:       width,
		height:      height,
		offsetX:     CellSize * float64(width) / 2,
		offsetZ:     CellSize * float64(height) / 2,
		cells:       make([]Cell, 0, width*height),
		enemies:     make(map[EntityID]Position),
		coins:       make(map[EntityID]Position),
		bombs:       make(map[EntityID]Bomb),
		blastRadius: DefaultBlastRadius,
	}

	foundPlayer, foundExit := false, false
	for z, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRows, z, len(line), width)
		}
		for x, r := range line {
			kind, ok := parseBlockKind(r)
			if !ok {
				return nil, fmt.Errorf("%w %q at row %d col %d", ErrUnknownMapCharacter, r, z, x)
			}
			pos := P(x, z)
			switch kind {
			case BlockPlayer:
				if foundPlayer {
					return nil, fmt.Errorf("%w: second start at %s", ErrDuplicatePlayerStart, pos)
				}
				foundPlayer = true
				b.player = pos
			case BlockExit:
				if foundExit {
					return nil, fmt.Errorf("%w: second exit at %s", ErrDuplicateExit, pos)
				}
				foundExit = true
				b.exit = pos
			}
			b.cells = append(b.cells, Cell{Kind: kind, Anchor: b.GridToWorld(pos), Pos: pos})
		}
	}

	if !foundPlayer {
		return nil, ErrMissingPlayerStart
	}
	if !foundExit {
		return nil, ErrMissingExit
	}
	return b, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// compiled-in fixtures.
func MustParse(text string) *Board {
	b, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Offsets returns the centering offsets applied by GridToWorld.
func (b *Board) Offsets() (x, z float64) { return b.offsetX, b.offsetZ }

// InBounds reports whether p lies on the grid.
func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.width && p.Z >= 0 && p.Z < b.height
}

// At returns the cell at (x, z), or false if the coordinate is off the grid.
// Every other query goes through this accessor.
func (b *Board) At(x, z int) (Cell, bool) {
	if x < 0 || z < 0 || x >= b.width || z >= b.height {
		return Cell{}, false
	}
	return b.cells[z*b.width+x], true
}

// Kind returns the block kind at p, or false when p is off the grid.
func (b *Board) Kind(p Position) (BlockKind, bool) {
	c, ok := b.At(p.X, p.Z)
	return c.Kind, ok
}

// Cells returns a copy of every cell in row-major order.
func (b *Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// StartPositions returns the grid positions of every cell of the given kind,
// in row-major order. Hosts use it to spawn enemies and coins.
func (b *Board) StartPositions(kind BlockKind) []Position {
	var out []Position
	for i := range b.cells {
		if b.cells[i].Kind == kind {
			out = append(out, b.cells[i].Pos)
		}
	}
	return out
}

// GridToWorld maps a grid position to the world-space centre of its cell.
// The grid is centred on the origin.
func (b *Board) GridToWorld(p Position) Vec3 {
	return Vec3{
		X: float64(p.X)*CellSize - b.offsetX + CellSize/2,
		Y: 0,
		Z: float64(p.Z)*CellSize - b.offsetZ + CellSize/2,
	}
}

// WorldToGrid is the inverse of GridToWorld. The point is snapped to the
// nearest cell centre; false is returned if that cell is off the grid.
func (b *Board) WorldToGrid(v Vec3) (Position, bool) {
	x := int(math.Round((v.X + b.offsetX - CellSize/2) / CellSize))
	z := int(math.Round((v.Z + b.offsetZ - CellSize/2) / CellSize))
	p := P(x, z)
	return p, b.InBounds(p)
}

// String renders the static layout back into map text.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for z := 0; z < b.height; z++ {
		for x := 0; x < b.width; x++ {
			sb.WriteRune(b.cells[z*b.width+x].Kind.Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
