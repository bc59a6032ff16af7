package game

import (
	"testing"

	"github.com/Garsondee/Bomb-Maze/internal/board"
	"github.com/Garsondee/Bomb-Maze/internal/levels"
)

// stepMap is a level won by a single forward step.
const stepMap = "###\n#o#\n#e#\n###"

func twoLevelCatalogue() *levels.Catalogue {
	return &levels.Catalogue{
		Tuning: levels.DefaultTuning,
		Levels: []levels.Level{
			{Name: "One", Map: stepMap, BlastRadius: 1},
			{Name: "Two", Map: stepMap, BlastRadius: 2},
		},
	}
}

// stepUntil steps the session with in until pred holds, or fails after limit.
func stepUntil(t *testing.T, s *Session, in Input, pred func(*Session) bool, limit int) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if pred(s) {
			return
		}
		s.Step(in)
	}
	if !pred(s) {
		t.Fatalf("condition not reached within %d ticks (state=%s)", limit, s.State())
	}
}

func TestSession_StartsInMenu(t *testing.T) {
	s := NewSession(twoLevelCatalogue())
	if s.State() != StateMenu {
		t.Fatalf("expected menu, got %s", s.State())
	}
	s.Step(Input{Dir: board.Forward})
	if s.State() != StateMenu || s.Sim() != nil {
		t.Fatal("stepping the menu should do nothing")
	}
}

func TestSession_LoadingLastsConfiguredTicks(t *testing.T) {
	s := NewSession(twoLevelCatalogue())
	s.Start()
	if s.State() != StateLoading {
		t.Fatalf("expected loading, got %s", s.State())
	}
	for i := 0; i < 8; i++ {
		s.Step(Input{})
	}
	if s.State() != StateLoading {
		t.Fatalf("expected still loading after 8 ticks, got %s", s.State())
	}
	s.Step(Input{})
	if s.State() != StatePlaying || s.Sim() == nil {
		t.Fatalf("expected playing after 9 ticks, got %s", s.State())
	}
	if s.Sim().Board().BlastRadius() != 1 {
		t.Fatalf("expected level blast radius 1, got %d", s.Sim().Board().BlastRadius())
	}
}

func TestSession_AdvancesThroughLevelsToWon(t *testing.T) {
	s := NewSession(twoLevelCatalogue())
	s.Start()
	playing := func(s *Session) bool { return s.State() == StatePlaying }

	stepUntil(t, s, Input{}, playing, 20)
	s.Step(Input{Dir: board.Forward})
	stepUntil(t, s, Input{}, func(s *Session) bool { return s.State() != StatePlaying }, 20)
	if s.State() != StateLoading || s.Level() != 1 {
		t.Fatalf("expected loading level 2, got %s level=%d", s.State(), s.Level()+1)
	}
	if s.Sim() != nil {
		t.Fatal("the previous level's sim should be dropped")
	}
	if got := s.Score().Moves; got != 1 {
		t.Fatalf("expected carried moves=1, got %d", got)
	}

	stepUntil(t, s, Input{}, playing, 20)
	if s.LevelName() != "Two" {
		t.Fatalf("expected level Two, got %q", s.LevelName())
	}
	s.Step(Input{Dir: board.Forward})
	stepUntil(t, s, Input{}, func(s *Session) bool { return s.State() == StateWon }, 20)
	if got := s.Score().Moves; got != 2 {
		t.Fatalf("expected score to persist across levels (moves=2), got %d", got)
	}
	if !s.Log().HasEntry("session", "state", "playing → won") {
		t.Fatalf("expected won transition in log:\n%s", s.Log().Format())
	}
}

func TestSession_DeathLosesAndResetClearsScore(t *testing.T) {
	cat := &levels.Catalogue{
		Tuning: levels.DefaultTuning,
		Levels: []levels.Level{{Name: "Trap", Map: "#####\n#o e#\n#####", BlastRadius: 1}},
	}
	s := NewSession(cat)
	s.Start()
	stepUntil(t, s, Input{}, func(s *Session) bool { return s.State() == StatePlaying }, 20)
	s.Step(Input{Bomb: true})
	stepUntil(t, s, Input{}, func(s *Session) bool { return s.State() == StateLost }, 300)
	if s.Sim() == nil || s.Sim().Outcome() != OutcomePlayerDied {
		t.Fatal("the lost level should stay available for rendering")
	}

	s.Reset()
	if s.State() != StateMenu || s.Sim() != nil {
		t.Fatalf("expected a clean menu, got %s", s.State())
	}
	if s.Score() != (Score{}) {
		t.Fatalf("expected score reset, got %+v", s.Score())
	}
	s.Start()
	if s.State() != StateLoading || s.Level() != 0 {
		t.Fatalf("expected a new game from level 1, got %s level=%d", s.State(), s.Level()+1)
	}
}

func TestSession_StartLevelOption(t *testing.T) {
	s := NewSession(twoLevelCatalogue(), WithStartLevel(1))
	s.Start()
	if s.Level() != 1 {
		t.Fatalf("expected start at level 2, got %d", s.Level()+1)
	}
	s = NewSession(twoLevelCatalogue(), WithStartLevel(9))
	s.Start()
	if s.Level() != 0 {
		t.Fatalf("out-of-range start level should fall back to 1, got %d", s.Level()+1)
	}
}

func TestSession_StartIgnoredOutsideMenu(t *testing.T) {
	s := NewSession(twoLevelCatalogue())
	s.Start()
	s.Step(Input{})
	left := s.loadLeft
	s.Start()
	if s.State() != StateLoading || s.loadLeft != left {
		t.Fatal("Start outside the menu should be a no-op")
	}
}
