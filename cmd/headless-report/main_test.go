package main

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Bomb-Maze/internal/game"
	"github.com/Garsondee/Bomb-Maze/internal/levels"
)

func TestClassify_Verdicts(t *testing.T) {
	cases := []struct {
		name    string
		st      game.RunStats
		verdict string
		reason  string
	}{
		{"won", game.RunStats{State: game.StateWon, LevelsCleared: 5}, "won", "cleared=5"},
		{"own blast", game.RunStats{State: game.StateLost, KilledByBomb: true}, "lost", "own_blast"},
		{"caught", game.RunStats{State: game.StateLost}, "lost", "caught"},
		{"idle", game.RunStats{State: game.StatePlaying}, "stalled", "never_bombed"},
		{"missed", game.RunStats{State: game.StatePlaying, BombsPlaced: 3}, "stalled", "no_kills"},
		{"wandering", game.RunStats{State: game.StatePlaying, BombsPlaced: 3, EnemiesKilled: 2}, "stalled", "exit_not_reached"},
	}
	for _, tc := range cases {
		v, r := classify(tc.st)
		if v != tc.verdict || r != tc.reason {
			t.Fatalf("%s: expected %s/%s, got %s/%s", tc.name, tc.verdict, tc.reason, v, r)
		}
	}
}

func TestValidate_RejectsBadFlags(t *testing.T) {
	good := options{runs: 1, ticks: 1, workers: 1}
	if err := validate(good); err != nil {
		t.Fatalf("expected valid options, got %v", err)
	}
	for _, bad := range []options{
		{runs: 0, ticks: 1, workers: 1},
		{runs: 1, ticks: 0, workers: 1},
		{runs: 1, ticks: 1, workers: 0},
		{runs: 1, ticks: 1, workers: 1, level: -1},
	} {
		if err := validate(bad); err == nil {
			t.Fatalf("expected an error for %+v", bad)
		}
	}
}

func TestJoinCounts_Sorted(t *testing.T) {
	if got := joinCounts(map[string]int{"won": 2, "lost": 1}); got != "lost=1 won=2" {
		t.Fatalf("unexpected %q", got)
	}
	if got := joinCounts(nil); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}
}

func TestRunAll_KeepsRunOrder(t *testing.T) {
	cat := &levels.Catalogue{
		Tuning: levels.DefaultTuning,
		Levels: []levels.Level{{Name: "Walk", Map: "######\n#o  e#\n######", BlastRadius: 1}},
	}
	o := options{runs: 6, ticks: 600, seedBase: 10, seedStep: 3, workers: 3}
	all, err := runAll(context.Background(), cat, o, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	for i, rs := range all {
		if rs.runIndex != i+1 || rs.Seed != 10+int64(i)*3 {
			t.Fatalf("run %d out of order: index=%d seed=%d", i, rs.runIndex, rs.Seed)
		}
		if rs.verdict != "won" {
			t.Fatalf("run %d: expected the bot to walk to the open exit, got %s/%s", i+1, rs.verdict, rs.reason)
		}
	}
}

func TestRunLevel_SingleLevelHarness(t *testing.T) {
	cat := &levels.Catalogue{
		Tuning: levels.DefaultTuning,
		Levels: []levels.Level{
			{Name: "Unused", Map: "###\n#o#\n#e#\n###", BlastRadius: 1},
			{Name: "Trap", Map: "#######\n#o    #\n###e###\n#######\n###x###\n#######", BlastRadius: 2},
		},
	}
	rs := runLevel(cat, 1, 7, 300, true)
	if rs.Level != 1 {
		t.Fatalf("expected level index 1, got %d", rs.Level)
	}
	if rs.verdict == "won" {
		t.Fatal("a walled-in enemy keeps the exit shut")
	}
	if !strings.Contains(rs.report, "Outcome:") {
		t.Fatalf("expected a kept report, got %q", rs.report)
	}
}
