package game

import (
	"strings"
	"testing"

	"github.com/Garsondee/Bomb-Maze/internal/board"
	"github.com/Garsondee/Bomb-Maze/internal/levels"
)

// slowEnemies keeps every enemy on its start cell for the length of a test.
func slowEnemies() levels.Tuning {
	t := levels.DefaultTuning
	t.EnemySecondsPerCell = 1000
	return t
}

const corridorMap = `
#####
#o e#
#####
`

// trappedEnemyMap walls its enemy in so the exit stays hidden.
const trappedEnemyMap = `
#######
#o*  e#
#######
##x####
#######
`

// pocketMap has a side pocket at (1,2) out of the line of a bomb at (2,1).
const pocketMap = `
#########
# o  x*e#
#  ######
#########
`

func TestSim_WalkToExitCompletesLevel(t *testing.T) {
	ts := NewTestSim(WithMap(corridorMap))
	if !ts.Walk(board.Right) {
		t.Fatal("expected first move to be accepted")
	}
	if got := ts.Sim.Player().Pos; got != board.P(2, 1) {
		t.Fatalf("expected player at (2,1), got %s", got)
	}
	if ts.CurrentTick() != 6 {
		t.Fatalf("expected a move to take 6 ticks, took %d", ts.CurrentTick())
	}
	if !ts.Board.ExitRevealed() {
		t.Fatal("a level with no enemies should reveal its exit")
	}
	ts.Walk(board.Right)
	if ts.Sim.Outcome() != OutcomeLevelComplete {
		t.Fatalf("expected level_complete, got %s", ts.Sim.Outcome())
	}
	if ts.Sim.Score().Moves != 2 {
		t.Fatalf("expected 2 moves, got %d", ts.Sim.Score().Moves)
	}
	if ts.Step(Input{Dir: board.Left}) != nil {
		t.Fatal("a decided level should ignore further steps")
	}
}

func TestSim_MoveIntoWallRefused(t *testing.T) {
	ts := NewTestSim(WithMap(corridorMap))
	if ts.Walk(board.Backward) {
		t.Fatal("expected move into a wall to be refused")
	}
	if ts.Sim.Score().Moves != 0 {
		t.Fatalf("refused moves must not count, got %d", ts.Sim.Score().Moves)
	}
	if ts.Sim.Player().Pos != board.P(1, 1) {
		t.Fatalf("player moved to %s", ts.Sim.Player().Pos)
	}
}

func TestSim_InputIgnoredWhileMoving(t *testing.T) {
	ts := NewTestSim(WithMap(corridorMap))
	ts.Step(Input{Dir: board.Right})
	ts.Step(Input{Dir: board.Left})
	if ts.Sim.Score().Moves != 1 {
		t.Fatalf("expected 1 move, got %d", ts.Sim.Score().Moves)
	}
	if ts.Sim.Player().Dir != board.Right {
		t.Fatalf("expected the first move to continue, dir=%s", ts.Sim.Player().Dir)
	}
}

func TestSim_CollectsCoin(t *testing.T) {
	ts := NewTestSim(WithMap(trappedEnemyMap))
	if ts.Board.CoinCount() != 1 {
		t.Fatalf("expected 1 coin, got %d", ts.Board.CoinCount())
	}
	ts.Walk(board.Right)
	if ts.Sim.Score().Coins != 1 {
		t.Fatalf("expected 1 coin collected, got %d", ts.Sim.Score().Coins)
	}
	if ts.Board.CoinCount() != 0 {
		t.Fatal("collected coin should leave the board")
	}
	if ts.CountEvents(EventCoinCollected) != 1 {
		t.Fatalf("expected 1 coin event, got %d", ts.CountEvents(EventCoinCollected))
	}
	if ts.Board.ExitRevealed() {
		t.Fatal("exit must stay hidden while an enemy lives")
	}
}

func TestSim_EnemyCatchesPlayer(t *testing.T) {
	ts := NewTestSim(WithMap("#######\n#o x e#\n#######"))
	tick := ts.RunUntil(func(ts *TestSim) bool { return ts.Sim.Outcome() == OutcomePlayerDied }, 200)
	if tick != 24 {
		t.Fatalf("expected the enemy to arrive on tick 24 (two 12-tick moves), got %d\n%s", tick, ts.SimLog.Format())
	}
	if ts.CountEvents(EventPlayerDied) != 1 {
		t.Fatal("expected exactly one player_died event")
	}
	if !ts.SimLog.HasEntry("player", EventPlayerDied.String(), "by E") {
		t.Fatalf("expected an enemy named as the killer:\n%s", ts.SimLog.Format())
	}
}

func TestSim_EnemyPursuesTowardsPlayer(t *testing.T) {
	ts := NewTestSim(WithMap(`
#######
#  o  #
#  x  #
#    e#
#######
`))
	ts.Step(Input{})
	enemies := ts.Sim.Enemies()
	if len(enemies) != 1 {
		t.Fatalf("expected 1 enemy, got %d", len(enemies))
	}
	if enemies[0].Dir != board.Backward {
		t.Fatalf("expected the enemy to head for the player (backward), got %s", enemies[0].Dir)
	}
}

func TestSim_OneBombPerCell(t *testing.T) {
	ts := NewTestSim(WithMap(trappedEnemyMap))
	ts.Step(Input{Bomb: true})
	ts.Step(Input{Bomb: true})
	if n := len(ts.Sim.Bombs()); n != 1 {
		t.Fatalf("expected 1 bomb, got %d", n)
	}
	if ts.CountEvents(EventBombPlaced) != 1 {
		t.Fatalf("expected 1 bomb_placed event, got %d", ts.CountEvents(EventBombPlaced))
	}
}

func TestSim_OwnBombKillsPlayer(t *testing.T) {
	ts := NewTestSim(WithMap(trappedEnemyMap))
	ts.Step(Input{Bomb: true})
	danger := ts.Sim.Danger()
	if !danger[board.P(1, 1)] || !danger[board.P(2, 1)] {
		t.Fatalf("expected bomb reach to be dangerous, got %v", danger)
	}
	ts.RunTicks(400)
	if ts.Sim.Outcome() != OutcomePlayerDied {
		t.Fatalf("expected player_died, got %s", ts.Sim.Outcome())
	}
	e, ok := ts.SimLog.LastOf("player", EventPlayerDied.String())
	if !ok || e.Tick != 150 {
		t.Fatalf("expected death on the fuse tick 150, got %+v ok=%v", e, ok)
	}
	if !strings.Contains(e.Value, " by B") {
		t.Fatalf("expected the bomb named as the killer, got %q", e.Value)
	}
}

func TestSim_BombKillsEnemyAndOpensExit(t *testing.T) {
	ts := NewTestSim(WithMap(pocketMap), WithTuning(slowEnemies()))
	ts.Step(Input{Bomb: true})
	ts.Walk(board.Forward)
	ts.Walk(board.Left)
	if got := ts.Sim.Player().Pos; got != board.P(1, 2) {
		t.Fatalf("expected player in the pocket, got %s", got)
	}

	tick := ts.RunUntil(func(ts *TestSim) bool { return ts.Board.ExitRevealed() }, 300)
	if tick != 150 {
		t.Fatalf("expected exit to open on the fuse tick 150, got %d\n%s", tick, ts.SimLog.Format())
	}
	if ts.CountEvents(EventEnemyKilled) != 1 {
		t.Fatalf("expected 1 enemy killed, got %d", ts.CountEvents(EventEnemyKilled))
	}
	if ts.Board.CoinCount() != 0 {
		t.Fatal("opening the exit should clear the remaining coins")
	}
	if ts.Board.BombAt(board.P(2, 1)) {
		t.Fatal("exploded bomb should leave the board")
	}

	// The far end of the blast is still in its propagation delay.
	var near, far ExplosionView
	for _, ex := range ts.Sim.Explosions() {
		switch ex.Pos {
		case board.P(2, 1):
			near = ex
		case board.P(7, 1):
			far = ex
		}
	}
	if !near.Visible || far.Visible {
		t.Fatalf("expected origin visible and max-range cell delayed, near=%+v far=%+v", near, far)
	}

	ts.RunTicks(60)
	if len(ts.Sim.Explosions()) != 0 {
		t.Fatal("explosions should have burned out")
	}
	ts.Walk(board.Backward)
	for i := 0; i < 6; i++ {
		ts.Walk(board.Right)
	}
	if ts.Sim.Outcome() != OutcomeLevelComplete {
		t.Fatalf("expected level_complete, got %s at %s", ts.Sim.Outcome(), ts.Sim.Player().Pos)
	}
	if ts.Sim.Score().Coins != 0 {
		t.Fatalf("cleared coins cannot be collected, got %d", ts.Sim.Score().Coins)
	}
}

func TestSim_BlastRadiusLimitsReach(t *testing.T) {
	ts := NewTestSim(WithMap(pocketMap), WithTuning(slowEnemies()), WithBlastRadius(1))
	ts.Step(Input{Bomb: true})
	ts.Walk(board.Forward)
	ts.Walk(board.Left)
	ts.RunTicks(200)
	if ts.CountEvents(EventEnemyKilled) != 0 {
		t.Fatal("a radius 1 bomb should not reach the enemy three cells away")
	}
	if ts.Sim.Outcome() != OutcomePlaying {
		t.Fatalf("expected to still be playing, got %s", ts.Sim.Outcome())
	}
}

func TestSim_EventsRecordedInSimLog(t *testing.T) {
	ts := NewTestSim(WithMap(corridorMap))
	ts.Walk(board.Right)
	e, ok := ts.SimLog.FirstOf("move", EventMoveStarted.String())
	if !ok || e.Tick != 1 || e.Actor != "P" {
		t.Fatalf("unexpected move entry %+v ok=%v", e, ok)
	}
	if !ts.SimLog.HasEntry("level", EventExitRevealed.String(), "(3,1)") {
		t.Fatalf("expected exit reveal entry, log:\n%s", ts.SimLog.Format())
	}
}
