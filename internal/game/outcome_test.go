package game

import (
	"strings"
	"testing"

	"github.com/Garsondee/Bomb-Maze/internal/board"
)

func TestDetermineLevelOutcome_Cleared(t *testing.T) {
	ts := NewTestSim(WithMap(corridorMap))
	ts.Walk(board.Right)
	ts.Walk(board.Right)
	r := DetermineLevelOutcome(ts.Sim)
	if r.Outcome != OutcomeLevelComplete || r.Description != "cleared" {
		t.Fatalf("expected level_complete/cleared, got %s/%s", r.Outcome, r.Description)
	}
	if !r.ExitOpen || r.EnemiesTotal != 0 {
		t.Fatalf("unexpected counts %+v", r)
	}
}

func TestDetermineLevelOutcome_CaughtByEnemy(t *testing.T) {
	ts := NewTestSim(WithMap("#######\n#o x e#\n#######"))
	ts.RunTicks(200)
	r := DetermineLevelOutcome(ts.Sim)
	if r.Description != "caught_by_enemy" {
		t.Fatalf("expected caught_by_enemy, got %s", r.Description)
	}
	if r.Killer == 0 || r.EnemiesLeft != 1 {
		t.Fatalf("expected the living enemy named as killer, got %+v", r)
	}
}

func TestDetermineLevelOutcome_OwnBlast(t *testing.T) {
	ts := NewTestSim(WithMap(trappedEnemyMap))
	ts.Step(Input{Bomb: true})
	ts.RunTicks(400)
	r := DetermineLevelOutcome(ts.Sim)
	if r.Outcome != OutcomePlayerDied || r.Description != "killed_by_blast" {
		t.Fatalf("expected player_died/killed_by_blast, got %s/%s", r.Outcome, r.Description)
	}
	if !strings.Contains(ts.SimLog.Summary(ts.Sim), "Outcome: player_died (killed_by_blast)") {
		t.Fatalf("summary should carry the reason:\n%s", ts.SimLog.Summary(ts.Sim))
	}
}

func TestDetermineLevelOutcome_Playing(t *testing.T) {
	ts := NewTestSim(WithMap(trappedEnemyMap))
	r := DetermineLevelOutcome(ts.Sim)
	if r.Description != "no_progress" || r.CoinsTotal != 1 || r.EnemiesTotal != 1 {
		t.Fatalf("expected an untouched level, got %+v", r)
	}
	ts.Step(Input{Bomb: true})
	if r := DetermineLevelOutcome(ts.Sim); r.Description != "bomb_ticking" || r.BombsLive != 1 {
		t.Fatalf("expected bomb_ticking, got %+v", r)
	}
}
