package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RunStats is the outcome of one session, collected from its SimLog.
type RunStats struct {
	RunID         uuid.UUID
	Seed          int64
	State         State
	Level         int // 0-based level the run ended on
	LevelsCleared int
	Score         Score
	Ticks         int

	BombsPlaced    int
	BombsExploded  int
	EnemiesKilled  int
	CoinsCollected int

	FirstBombTick int // -1 when it never happened
	FirstKillTick int
	DeathTick     int
	KilledByBomb  bool
}

// CollectStats summarises a session.
func CollectStats(runID uuid.UUID, seed int64, s *Session) RunStats {
	st := statsFromLog(s.Log())
	st.RunID, st.Seed = runID, seed
	st.State = s.State()
	st.Level = s.Level()
	st.Score = s.Score()
	st.Ticks = s.Tick()
	return st
}

// Stats summarises a single-level harness run. A completed level counts as
// won and a level still in play as playing.
func (ts *TestSim) Stats(runID uuid.UUID) RunStats {
	st := statsFromLog(ts.SimLog)
	st.RunID, st.Seed = runID, ts.seed
	switch ts.Sim.Outcome() {
	case OutcomeLevelComplete:
		st.State = StateWon
	case OutcomePlayerDied:
		st.State = StateLost
	default:
		st.State = StatePlaying
	}
	st.Level = ts.level
	st.Score = ts.Sim.Score()
	st.Ticks = ts.Sim.Tick()
	return st
}

func statsFromLog(log *SimLog) RunStats {
	return RunStats{
		LevelsCleared:  log.CountCategory("level", EventLevelComplete.String()),
		BombsPlaced:    log.CountCategory("bomb", EventBombPlaced.String()),
		BombsExploded:  log.CountCategory("bomb", EventBombExploded.String()),
		EnemiesKilled:  log.CountCategory("enemy", EventEnemyKilled.String()),
		CoinsCollected: log.CountCategory("coin", EventCoinCollected.String()),
		FirstBombTick:  firstTick(log, "bomb", EventBombPlaced.String()),
		FirstKillTick:  firstTick(log, "enemy", EventEnemyKilled.String()),
		DeathTick:      firstTick(log, "player", EventPlayerDied.String()),
		KilledByBomb:   log.HasEntry("player", EventPlayerDied.String(), " by B"),
	}
}

func firstTick(log *SimLog, category, key string) int {
	if e, ok := log.FirstOf(category, key); ok {
		return e.Tick
	}
	return -1
}

// RunReport renders a plain-text report of the last lastTicks ticks of a
// session, for the clipboard and the headless CLI.
func RunReport(runID uuid.UUID, s *Session, lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 600
	}
	toTick := s.Tick()
	fromTick := max(toTick-lastTicks+1, 0)

	var b strings.Builder
	fmt.Fprintf(&b, "--- Bomb-Maze run report ---\n")
	fmt.Fprintf(&b, "run=%s tick_range=[%d..%d] ticks=%d\n", runID, fromTick, toTick, toTick-fromTick+1)
	fmt.Fprintf(&b, "state=%s level=%d/%d (%s)\n", s.State(), s.Level()+1, s.Levels(), s.LevelName())
	sc := s.Score()
	fmt.Fprintf(&b, "score: coins=%d moves=%d\n\n", sc.Coins, sc.Moves)

	if sim := s.Sim(); sim != nil {
		b.WriteString(s.Log().Summary(sim))
		b.WriteString("\n== BOARD ==\n")
		b.WriteString(BoardSnapshot(sim))
		b.WriteByte('\n')
	}

	entries := s.Log().FilterTickRange(fromTick, toTick)
	b.WriteString("== EVENTS ==\n")
	n := 0
	for _, e := range entries {
		if e.Key == "position" || e.Key == EventMoveStarted.String() {
			continue
		}
		b.WriteString(e.String())
		b.WriteByte('\n')
		n++
	}
	if n == 0 {
		b.WriteString("(no events in range)\n")
	}
	return b.String()
}

// BoardSnapshot draws the live board as text: the static layout with actors,
// bombs and explosions over it.
func BoardSnapshot(s *Sim) string {
	b := s.Board()
	grid := make([][]rune, b.Height())
	for _, c := range b.Cells() {
		if grid[c.Pos.Z] == nil {
			grid[c.Pos.Z] = make([]rune, b.Width())
		}
		r := ' '
		if c.Kind.IsWall() {
			r = c.Kind.Rune()
		}
		grid[c.Pos.Z][c.Pos.X] = r
	}
	put := func(x, z int, r rune) { grid[z][x] = r }

	for _, id := range b.CoinIDs() {
		p, _ := b.CoinPosition(id)
		put(p.X, p.Z, '*')
	}
	if b.ExitRevealed() {
		e := b.ExitPosition()
		put(e.X, e.Z, 'E')
	}
	for _, bomb := range s.Bombs() {
		put(bomb.Pos.X, bomb.Pos.Z, 'B')
	}
	for _, ex := range s.Explosions() {
		put(ex.Pos.X, ex.Pos.Z, '+')
	}
	for _, e := range s.Enemies() {
		put(e.Pos.X, e.Pos.Z, 'x')
	}
	p := s.Player().Pos
	put(p.X, p.Z, 'o')

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
