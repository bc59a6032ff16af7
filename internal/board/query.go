package board

// FreeDirections returns the cardinal directions from p whose neighbour is on
// the grid and not a wall, in the order right, left, forward, backward.
func (b *Board) FreeDirections(p Position) []Direction {
	out := make([]Direction, 0, len(freeOrder))
	for _, d := range freeOrder {
		n := p.Add(d)
		c, ok := b.At(n.X, n.Z)
		if !ok || c.Kind.IsWall() {
			continue
		}
		out = append(out, d)
	}
	return out
}

// IsFree reports whether moving from p in direction d is allowed.
func (b *Board) IsFree(p Position, d Direction) bool {
	if d.IsZero() {
		return false
	}
	for _, f := range b.FreeDirections(p) {
		if f == d {
			return true
		}
	}
	return false
}

// ConnectedWalls returns the wall cluster sitting directly below p (one step
// in +z), used to render those walls see-through. The cell below is the seed
// and is always included when it is a wall. From there the search grows over
// cardinal neighbours that are walls other than vertical small walls, which
// never connect. The result is empty if the cell below is not a wall.
// Order is not significant.
func (b *Board) ConnectedWalls(p Position) []Position {
	seed := p.Add(Forward)
	c, ok := b.At(seed.X, seed.Z)
	if !ok || !c.Kind.IsWall() {
		return nil
	}

	out := []Position{seed}
	visited := map[Position]struct{}{seed: {}}
	stack := []Position{seed}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range freeOrder {
			n := cur.Add(d)
			// Every candidate is marked, including rejected ones.
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = struct{}{}
			nc, ok := b.At(n.X, n.Z)
			if !ok {
				continue
			}
			if nc.Kind.IsWall() && nc.Kind != BlockSmallWallVertical {
				out = append(out, n)
				stack = append(stack, n)
			}
		}
	}
	return out
}

// Blast is one cell reached by an explosion.
type Blast struct {
	Pos   Position
	Step  int // 0 for the bomb's own cell
	Range int // the bomb's range, for staggering animation
}

// Delay returns Step/Range, the fraction of the stagger delay for this cell.
func (bl Blast) Delay() float64 {
	if bl.Range <= 0 {
		return 0
	}
	return float64(bl.Step) / float64(bl.Range)
}

// BlastReach returns every cell an explosion of the given radius at origin
// would reach. The origin comes first at step 0. Then each direction is walked
// in the order left, backward, right, forward, one cell at a time from step 1
// up to and including step radius. A walk stops at the grid edge or at the
// first wall, and neither is included.
func (b *Board) BlastReach(origin Position, radius int) []Blast {
	out := make([]Blast, 0, 1+4*max(radius, 0))
	out = append(out, Blast{Pos: origin, Step: 0, Range: radius})
	for _, d := range blastOrder {
		for step := 1; step <= radius; step++ {
			p := origin.Add(d.Scale(step))
			c, ok := b.At(p.X, p.Z)
			if !ok || c.Kind.IsWall() {
				break
			}
			out = append(out, Blast{Pos: p, Step: step, Range: radius})
		}
	}
	return out
}

// BlastPositions returns the reach of an active bomb. An unknown id yields an
// empty result: the bomb was already resolved.
func (b *Board) BlastPositions(id EntityID) []Blast {
	bomb, ok := b.bombs[id]
	if !ok {
		return nil
	}
	return b.BlastReach(bomb.Pos, bomb.Range)
}
