package game

import (
	"fmt"

	"github.com/Garsondee/Bomb-Maze/internal/board"
	"github.com/Garsondee/Bomb-Maze/internal/levels"
)

// harnessMap is the board used when no map option is given.
const harnessMap = `
#########
|o  *   |
# # # # #
|   *  x|
#      e#
#########
`

// TestSim is a headless single-level harness used by tests and by the
// headless report. It wraps a Sim with a scripted or bot-driven input source.
type TestSim struct {
	Board  *board.Board
	Sim    *Sim
	SimLog *SimLog
	Bot    *Bot

	mapText   string
	levelName string
	level     int
	radius    int
	tuning    levels.Tuning
	seed      int64
	script    map[int]Input
	events    []Event
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // map, tuning, seed, verbose: applied first
	simOptBoard                      // board tweaks: applied after the map is parsed
	simOptActor                      // input sources: applied after the Sim exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithMap sets the ASCII map to play.
func WithMap(text string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.mapText = text
		ts.levelName = "custom"
	}}
}

// WithLevel plays level i (0-based) of the embedded catalogue, with its
// blast radius and the catalogue tuning.
func WithLevel(i int) SimOption {
	return WithCatalogueLevel(levels.Default(), i)
}

// WithCatalogueLevel plays level i (0-based) of cat.
func WithCatalogueLevel(cat *levels.Catalogue, i int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		lvl, ok := cat.Level(i)
		if !ok {
			panic(fmt.Sprintf("test harness: no level %d", i))
		}
		ts.mapText = lvl.Map
		ts.levelName = lvl.Name
		ts.level = i
		ts.radius = lvl.BlastRadius
		ts.tuning = cat.Tuning
	}}
}

// WithTuning overrides the timing values.
func WithTuning(t levels.Tuning) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.tuning = t
	}}
}

// WithSeed sets the seed used by the bot.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithBlastRadius sets the range of bombs placed in the run.
func WithBlastRadius(r int) SimOption {
	return SimOption{simOptBoard, func(ts *TestSim) {
		ts.radius = r
	}}
}

// WithBot lets a seeded Bot drive every tick without a scripted input.
func WithBot() SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.Bot = NewBot(ts.seed)
	}}
}

// WithInput schedules in for the given tick (1-based, matching Sim.Tick
// after the step).
func WithInput(tick int, in Input) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.script[tick] = in
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (map, tuning, seed, verbose)
//  2. Parse the board and apply board tweaks
//  3. Build the Sim and attach input sources
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		mapText:   harnessMap,
		levelName: "harness",
		tuning:    levels.DefaultTuning,
		seed:      1,
		SimLog:    NewSimLog(false),
		script:    map[int]Input{},
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Board = board.MustParse(ts.mapText)
	for _, o := range opts {
		if o.kind == simOptBoard {
			o.fn(ts)
		}
	}
	if ts.radius > 0 {
		ts.Board.SetBlastRadius(ts.radius)
	}
	ts.Sim = NewSim(ts.Board, ts.tuning, ts.SimLog)
	for _, o := range opts {
		if o.kind == simOptActor {
			o.fn(ts)
		}
	}
	return ts
}

// LevelName returns the name of the map being played.
func (ts *TestSim) LevelName() string { return ts.levelName }

// Step runs one tick with an explicit input, ignoring script and bot.
func (ts *TestSim) Step(in Input) []Event {
	ev := ts.Sim.Step(in)
	ts.events = append(ts.events, ev...)
	return ev
}

func (ts *TestSim) nextInput() Input {
	if in, ok := ts.script[ts.Sim.Tick()+1]; ok {
		return in
	}
	if ts.Bot != nil {
		return ts.Bot.Think(ts.Sim)
	}
	return Input{}
}

// RunTicks advances the simulation n ticks, stopping early once the level is
// decided.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n && ts.Sim.Outcome() == OutcomePlaying; i++ {
		ts.Step(ts.nextInput())
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if
// predicate returns true. Returns the tick at which the predicate was
// satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step(ts.nextInput())
		if predicate(ts) {
			return ts.Sim.Tick()
		}
		if ts.Sim.Outcome() != OutcomePlaying {
			return -1
		}
	}
	return -1
}

// Walk presses d once and runs until the move finishes. It returns false if
// the move was refused.
func (ts *TestSim) Walk(d board.Direction) bool {
	moves := ts.Sim.Score().Moves
	ts.Step(Input{Dir: d})
	if ts.Sim.Score().Moves == moves {
		return false
	}
	for !ts.Sim.Player().Dir.IsZero() && ts.Sim.Outcome() == OutcomePlaying {
		ts.Step(Input{})
	}
	return true
}

// Events returns every event produced so far.
func (ts *TestSim) Events() []Event { return ts.events }

// CountEvents returns how many events of kind were produced so far.
func (ts *TestSim) CountEvents(kind EventKind) int {
	n := 0
	for _, e := range ts.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Sim.Tick()
}

// SimSnapshot captures a lightweight state summary.
type SimSnapshot struct {
	Tick    int
	Outcome Outcome
	Score   Score
	Player  board.Position
	Enemies []board.Position
	Coins   int
	Exit    bool
}

// Snapshot returns the current state of the level.
func (ts *TestSim) Snapshot() SimSnapshot {
	snap := SimSnapshot{
		Tick:    ts.Sim.Tick(),
		Outcome: ts.Sim.Outcome(),
		Score:   ts.Sim.Score(),
		Player:  ts.Sim.Player().Pos,
		Coins:   ts.Board.CoinCount(),
		Exit:    ts.Board.ExitRevealed(),
	}
	for _, e := range ts.Sim.Enemies() {
		snap.Enemies = append(snap.Enemies, e.Pos)
	}
	return snap
}
