package board

import "testing"

// wallFixture is the regression map for the see-through wall search. The
// cluster below (0,0) has exactly 15 cells.
const wallFixture = `
o        ex
###########
##        #
#         x
*         x
-----******
`

func TestConnectedWalls_RegressionFixture(t *testing.T) {
	b := MustParse(wallFixture)
	got := b.ConnectedWalls(P(0, 0))
	if len(got) != 15 {
		t.Fatalf("expected 15 connected walls, got %d: %v", len(got), got)
	}
	seen := map[Position]bool{}
	for _, p := range got {
		if seen[p] {
			t.Fatalf("duplicate position %s", p)
		}
		seen[p] = true
		c, ok := b.At(p.X, p.Z)
		if !ok || !c.Kind.IsWall() {
			t.Fatalf("%s is not a wall", p)
		}
	}
	if !seen[P(0, 1)] {
		t.Fatal("seed cell below the position should be included")
	}
	if seen[P(0, 5)] {
		t.Fatal("bottom wall row is not connected and must be excluded")
	}
}

func TestConnectedWalls_NothingBelow(t *testing.T) {
	b := MustParse(wallFixture)
	if got := b.ConnectedWalls(P(3, 2)); len(got) != 0 {
		t.Fatalf("open cell below should hide nothing, got %v", got)
	}
	// Bottom row: the cell below is off the grid.
	if got := b.ConnectedWalls(P(0, 5)); len(got) != 0 {
		t.Fatalf("off-grid below should hide nothing, got %v", got)
	}
}

func TestConnectedWalls_VerticalWallDoesNotConnect(t *testing.T) {
	b := MustParse(`
o   e
##|##
`)
	got := b.ConnectedWalls(P(0, 0))
	want := map[Position]bool{P(0, 1): true, P(1, 1): true}
	if len(got) != len(want) {
		t.Fatalf("expected %d walls, got %v", len(want), got)
	}
	for _, p := range got {
		if !want[p] {
			t.Fatalf("unexpected wall %s in %v", p, got)
		}
	}
}

func TestConnectedWalls_VerticalSeedStillIncluded(t *testing.T) {
	b := MustParse(`
 o e
#|#-
`)
	got := b.ConnectedWalls(P(1, 0))
	want := map[Position]bool{P(1, 1): true, P(0, 1): true, P(2, 1): true, P(3, 1): true}
	if len(got) != len(want) {
		t.Fatalf("expected %d walls, got %v", len(want), got)
	}
	for _, p := range got {
		if !want[p] {
			t.Fatalf("unexpected wall %s in %v", p, got)
		}
	}
}

func TestFreeDirections_Order(t *testing.T) {
	b := MustParse(`
#####
#   #
# o #
#  e#
#####
`)
	got := b.FreeDirections(P(2, 2))
	want := []Direction{Right, Left, Forward, Backward}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("direction %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFreeDirections_CornerExcludesBounds(t *testing.T) {
	b := MustParse("o  \n   \n  e")
	got := b.FreeDirections(P(0, 0))
	if len(got) != 2 || got[0] != Right || got[1] != Forward {
		t.Fatalf("corner (0,0) expected [right forward], got %v", got)
	}
	got = b.FreeDirections(P(2, 2))
	if len(got) != 2 || got[0] != Left || got[1] != Backward {
		t.Fatalf("corner (2,2) expected [left backward], got %v", got)
	}
}

func TestFreeDirections_WallsExcluded(t *testing.T) {
	b := MustParse(" - \n|o#\n *e")
	got := b.FreeDirections(P(1, 1))
	if len(got) != 1 || got[0] != Forward {
		t.Fatalf("expected only forward (coin is not a wall), got %v", got)
	}
	if b.IsFree(P(1, 1), Right) {
		t.Fatal("moving into a big wall should not be free")
	}
	if !b.IsFree(P(1, 1), Forward) {
		t.Fatal("moving onto a coin should be free")
	}
	if b.IsFree(P(1, 1), None) {
		t.Fatal("zero direction is never free")
	}
}

func TestBlastReach_StopsAtWall(t *testing.T) {
	// Bomb at (1,1); wall 4 cells to the right leaves 3 open cells.
	b := MustParse(`
#########
#o   #  #
#e#######
`)
	reach := b.BlastReach(P(1, 1), 5)
	var right []Blast
	for _, bl := range reach {
		if bl.Pos.Z == 1 && bl.Pos.X > 1 {
			right = append(right, bl)
		}
		if c, _ := b.At(bl.Pos.X, bl.Pos.Z); c.Kind.IsWall() {
			t.Fatalf("wall %s included in blast", bl.Pos)
		}
	}
	if len(right) != 3 {
		t.Fatalf("expected 3 cells to the right, got %v", right)
	}
	for i, bl := range right {
		if bl.Step != i+1 || bl.Range != 5 {
			t.Fatalf("cell %d: step=%d range=%d", i, bl.Step, bl.Range)
		}
	}
}

func TestBlastReach_StopsAtRange(t *testing.T) {
	b := MustParse("o          e")
	reach := b.BlastReach(P(0, 0), 5)
	// Origin plus exactly 5 cells to the right; every other direction is clipped by bounds.
	if len(reach) != 6 {
		t.Fatalf("expected 6 entries, got %d: %v", len(reach), reach)
	}
	last := reach[len(reach)-1]
	if last.Pos != P(5, 0) || last.Step != 5 {
		t.Fatalf("max-range cell should be included, last=%+v", last)
	}
}

func TestBlastReach_OriginAndDirectionOrder(t *testing.T) {
	b := MustParse("     \n  o  \n    e")
	reach := b.BlastReach(P(2, 1), 1)
	want := []Position{P(2, 1), P(1, 1), P(2, 0), P(3, 1), P(2, 2)}
	if len(reach) != len(want) {
		t.Fatalf("expected %v, got %v", want, reach)
	}
	for i, p := range want {
		if reach[i].Pos != p {
			t.Fatalf("entry %d = %s, want %s", i, reach[i].Pos, p)
		}
	}
	if reach[0].Step != 0 {
		t.Fatalf("origin step=%d, want 0", reach[0].Step)
	}
}

func TestBlastReach_ZeroRadius(t *testing.T) {
	b := MustParse("o e")
	reach := b.BlastReach(P(1, 0), 0)
	if len(reach) != 1 || reach[0].Pos != P(1, 0) {
		t.Fatalf("zero radius should only hit the origin, got %v", reach)
	}
	if reach[0].Delay() != 0 {
		t.Fatal("zero range delay should be 0")
	}
}

func TestBlastPositions_UsesPlacedRange(t *testing.T) {
	b := MustParse("o         e")
	b.SetBlastRadius(2)
	if err := b.PlaceBomb(7, P(4, 0)); err != nil {
		t.Fatal(err)
	}
	b.SetBlastRadius(9) // later changes do not affect placed bombs
	got := b.BlastPositions(7)
	if len(got) != 5 {
		t.Fatalf("expected origin + 2 left + 2 right, got %v", got)
	}
	for _, bl := range got {
		if bl.Range != 2 {
			t.Fatalf("range=%d, want 2", bl.Range)
		}
	}
	if d := got[2].Delay(); d != 1.0 {
		t.Fatalf("step 2 of 2 delay=%v, want 1", d)
	}
}

func TestBlastPositions_UnknownBombIsEmpty(t *testing.T) {
	b := MustParse("o e")
	if err := b.PlaceBomb(1, P(1, 0)); err != nil {
		t.Fatal(err)
	}
	b.RemoveBomb(1)
	if got := b.BlastPositions(1); len(got) != 0 {
		t.Fatalf("removed bomb should have no blast, got %v", got)
	}
	if got := b.BlastPositions(99); len(got) != 0 {
		t.Fatalf("unknown bomb should have no blast, got %v", got)
	}
}
