package game

import (
	"fmt"
	"math"
	"slices"

	"github.com/Garsondee/Bomb-Maze/internal/board"
	"github.com/Garsondee/Bomb-Maze/internal/levels"
)

// enemyProbe is how far along a candidate direction (in world units) an enemy
// looks when ranking its moves against the player.
const enemyProbe = 0.05

// Input is the player's request for one tick. Dir is edge-triggered: hosts
// set it only on the tick a key went down.
type Input struct {
	Dir  board.Direction
	Bomb bool
}

// Score is the running tally of a level or a whole session.
type Score struct {
	Coins int
	Moves int
}

// Add returns the sum of two scores.
func (s Score) Add(o Score) Score {
	return Score{Coins: s.Coins + o.Coins, Moves: s.Moves + o.Moves}
}

// actor is anything that walks cell to cell: the player and every enemy.
// Movement progress is counted in whole ticks.
type actor struct {
	id       board.EntityID
	pos      board.Position  // committed cell
	dir      board.Direction // None while idle
	progress int             // ticks into the current move
	duration int             // ticks per cell
}

func (a *actor) moving() bool { return !a.dir.IsZero() }

func (a *actor) start(d board.Direction) {
	a.dir = d
	a.progress = 0
}

// advance moves the actor one tick and reports whether it reached the next
// cell on this tick.
func (a *actor) advance() bool {
	if !a.moving() {
		return false
	}
	a.progress++
	if a.progress < a.duration {
		return false
	}
	a.pos = a.pos.Step(a.dir)
	a.dir = board.None
	a.progress = 0
	return true
}

// fraction returns how far into the current move the actor is, in [0,1).
func (a *actor) fraction() float64 {
	if !a.moving() || a.duration <= 0 {
		return 0
	}
	return float64(a.progress) / float64(a.duration)
}

// world returns the interpolated world position of the actor.
func (a *actor) world(b *board.Board) board.Vec3 {
	v := b.GridToWorld(a.pos)
	f := a.fraction() * board.CellSize
	v.X += float64(a.dir.X) * f
	v.Z += float64(a.dir.Z) * f
	return v
}

// fuse is a ticking bomb owned by the simulation.
type fuse struct {
	id    board.EntityID
	pos   board.Position
	ticks int // remaining
	total int
}

// explosion is one cell of a detonation. It is harmful for its whole life,
// including the delay before it becomes visible.
type explosion struct {
	pos   board.Position
	delay int // ticks before it is drawn
	life  int // total ticks, delay included
	age   int
	bomb  board.EntityID
}

func (e *explosion) live() bool { return e.age < e.life }

// Sim runs one level. It owns the Board and every actor on it and advances
// them in a fixed order each tick. A Sim is not safe for concurrent use.
type Sim struct {
	board  *board.Board
	tuning levels.Tuning
	log    *SimLog

	player  actor
	enemies []*actor // ascending id
	fuses   []*fuse  // placement order
	blasts  []*explosion

	tick     int
	tickBase int // added to logged ticks so one SimLog can span levels
	nextID   board.EntityID
	score    Score
	outcome  Outcome
	death    Event // the PlayerDied event, once there is one

	fuseTicks      int
	explosionTicks int
	enemiesTotal   int
	coinsTotal     int
}

// NewSim spawns the actors and coins for b and returns a ready simulation.
// log may be nil.
func NewSim(b *board.Board, tuning levels.Tuning, log *SimLog) *Sim {
	if log == nil {
		log = NewSimLog(false)
	}
	s := &Sim{
		board:          b,
		tuning:         tuning,
		log:            log,
		nextID:         1,
		fuseTicks:      tuning.Ticks(tuning.FuseSeconds),
		explosionTicks: tuning.Ticks(tuning.ExplosionSeconds),
	}
	s.player = actor{
		id:       s.allocID(),
		pos:      b.PlayerPosition(),
		duration: tuning.Ticks(tuning.PlayerSecondsPerCell),
	}
	enemyTicks := tuning.Ticks(tuning.EnemySecondsPerCell)
	for _, p := range b.StartPositions(board.BlockEnemy) {
		e := &actor{id: s.allocID(), pos: p, duration: enemyTicks}
		_ = b.SetEnemyPosition(e.id, p) // start positions are on the grid
		s.enemies = append(s.enemies, e)
	}
	for _, p := range b.StartPositions(board.BlockCoin) {
		_ = b.AddCoin(s.allocID(), p)
	}
	s.enemiesTotal, s.coinsTotal = len(s.enemies), b.CoinCount()
	s.log.Add(0, "--", "level", "spawn",
		fmt.Sprintf("%dx%d enemies=%d coins=%d radius=%d", b.Width(), b.Height(), len(s.enemies), b.CoinCount(), b.BlastRadius()),
		float64(len(s.enemies)))
	return s
}

func (s *Sim) allocID() board.EntityID {
	id := s.nextID
	s.nextID++
	return id
}

// Step advances the simulation one tick and returns what happened. Once the
// outcome is decided Step does nothing.
func (s *Sim) Step(in Input) []Event {
	if s.outcome != OutcomePlaying {
		return nil
	}
	s.tick++
	var events []Event

	// 1. INPUT
	events = s.applyInput(in, events)

	// 2. ENEMY AI
	s.thinkEnemies()

	// 3. MOVEMENT
	s.player.advance()
	for _, e := range s.enemies {
		e.advance()
	}

	// 4. OCCUPANCY
	events = s.syncOccupancy(events)

	// 5. FUSES
	events = s.burnFuses(events)

	// 6. EXPLOSIONS
	events = s.applyExplosions(events)

	// 7. EXIT
	if s.outcome == OutcomePlaying && s.board.EnemyCount() == 0 && s.board.RevealExit() {
		s.board.ClearCoins()
		events = s.emit(events, Event{Kind: EventExitRevealed, Pos: s.board.ExitPosition()})
	}

	for _, e := range s.enemies {
		s.log.AddVerbose(s.tickBase+s.tick, enemyLabel(e.id), "move", "position", e.pos.String(), e.fraction())
	}
	s.log.AddVerbose(s.tickBase+s.tick, "P", "move", "position", s.player.pos.String(), s.player.fraction())
	return events
}

func (s *Sim) applyInput(in Input, events []Event) []Event {
	if !in.Dir.IsZero() && !s.player.moving() && s.board.IsFree(s.player.pos, in.Dir) {
		s.player.start(in.Dir)
		s.score.Moves++
		events = s.emit(events, Event{Kind: EventMoveStarted, Actor: s.player.id, Pos: s.player.pos, Dir: in.Dir})
	}
	if in.Bomb && !s.board.BombAt(s.player.pos) {
		id := s.allocID()
		if err := s.board.PlaceBomb(id, s.player.pos); err == nil {
			s.fuses = append(s.fuses, &fuse{id: id, pos: s.player.pos, ticks: s.fuseTicks, total: s.fuseTicks})
			events = s.emit(events, Event{Kind: EventBombPlaced, Actor: id, Pos: s.player.pos})
		}
	}
	return events
}

// thinkEnemies starts a move for every idle enemy: free directions are ranked
// by how close a short probe along them lands to the player.
func (s *Sim) thinkEnemies() {
	target := s.player.world(s.board)
	for _, e := range s.enemies {
		if e.moving() {
			continue
		}
		dirs := s.board.FreeDirections(e.pos)
		if len(dirs) == 0 {
			continue
		}
		from := e.world(s.board)
		slices.SortStableFunc(dirs, func(a, b board.Direction) int {
			da, db := probeDistance(from, a, target), probeDistance(from, b, target)
			switch {
			case da < db:
				return -1
			case da > db:
				return 1
			}
			return 0
		})
		e.start(dirs[0])
	}
}

func probeDistance(from board.Vec3, d board.Direction, to board.Vec3) float64 {
	x := from.X + float64(d.X)*enemyProbe
	z := from.Z + float64(d.Z)*enemyProbe
	return math.Hypot(x-to.X, z-to.Z)
}

func (s *Sim) syncOccupancy(events []Event) []Event {
	for _, e := range s.enemies {
		_ = s.board.SetEnemyPosition(e.id, e.pos)
		if e.pos == s.player.pos && s.outcome == OutcomePlaying {
			s.outcome = OutcomePlayerDied
			events = s.emit(events, Event{Kind: EventPlayerDied, Actor: e.id, Pos: e.pos})
			s.death = events[len(events)-1]
		}
	}
	// Moves are gated by FreeDirections, so the committed cell is never a wall.
	_ = s.board.SetPlayerPosition(s.player.pos)

	if s.outcome != OutcomePlaying {
		return events
	}
	if s.board.ExitRevealed() && s.player.pos == s.board.ExitPosition() {
		s.outcome = OutcomeLevelComplete
		return s.emit(events, Event{Kind: EventLevelComplete, Pos: s.player.pos})
	}
	for _, id := range s.board.CoinsAt(s.player.pos) {
		s.board.RemoveCoin(id)
		s.score.Coins++
		events = s.emit(events, Event{Kind: EventCoinCollected, Actor: id, Pos: s.player.pos})
	}
	return events
}

func (s *Sim) burnFuses(events []Event) []Event {
	kept := s.fuses[:0]
	for _, f := range s.fuses {
		f.ticks--
		if f.ticks > 0 {
			kept = append(kept, f)
			continue
		}
		for _, bl := range s.board.BlastPositions(f.id) {
			delay := int(math.Round(bl.Delay() / 2 * float64(s.tuning.TicksPerSecond)))
			s.blasts = append(s.blasts, &explosion{
				pos:   bl.Pos,
				delay: delay,
				life:  delay + s.explosionTicks,
				bomb:  f.id,
			})
		}
		s.board.RemoveBomb(f.id)
		events = s.emit(events, Event{Kind: EventBombExploded, Actor: f.id, Pos: f.pos})
	}
	s.fuses = kept
	return events
}

func (s *Sim) applyExplosions(events []Event) []Event {
	kept := s.blasts[:0]
	for _, ex := range s.blasts {
		if s.outcome == OutcomePlaying && ex.pos == s.player.pos {
			s.outcome = OutcomePlayerDied
			events = s.emit(events, Event{Kind: EventPlayerDied, Actor: ex.bomb, Pos: ex.pos, ByBomb: true})
			s.death = events[len(events)-1]
		}
		for _, id := range s.board.EnemiesAt(ex.pos) {
			s.board.RemoveEnemy(id)
			s.enemies = slices.DeleteFunc(s.enemies, func(e *actor) bool { return e.id == id })
			events = s.emit(events, Event{Kind: EventEnemyKilled, Actor: id, Pos: ex.pos})
		}
		ex.age++
		if ex.live() {
			kept = append(kept, ex)
		}
	}
	s.blasts = kept
	return events
}

func (s *Sim) emit(events []Event, ev Event) []Event {
	ev.Tick = s.tickBase + s.tick
	s.log.Add(ev.Tick, ev.label(), ev.Kind.category(), ev.Kind.String(), ev.detail(), float64(ev.Actor))
	return append(events, ev)
}

// Board returns the level's board. Hosts must treat it as read-only.
func (s *Sim) Board() *board.Board { return s.board }

// Tick returns the number of ticks stepped so far.
func (s *Sim) Tick() int { return s.tick }

// Score returns the level's tally.
func (s *Sim) Score() Score { return s.score }

// Outcome returns the current outcome.
func (s *Sim) Outcome() Outcome { return s.outcome }

// Log returns the structured event log.
func (s *Sim) Log() *SimLog { return s.log }

// Tuning returns the timing values the simulation runs with.
func (s *Sim) Tuning() levels.Tuning { return s.tuning }

// ActorView is a read-only snapshot of an actor for rendering.
type ActorView struct {
	ID       board.EntityID
	Pos      board.Position
	Dir      board.Direction
	Progress float64 // fraction of the current move, 0 when idle
	World    board.Vec3
}

func (s *Sim) view(a *actor) ActorView {
	return ActorView{ID: a.id, Pos: a.pos, Dir: a.dir, Progress: a.fraction(), World: a.world(s.board)}
}

// Player returns the player's view.
func (s *Sim) Player() ActorView { return s.view(&s.player) }

// Enemies returns every live enemy in ascending id order.
func (s *Sim) Enemies() []ActorView {
	out := make([]ActorView, len(s.enemies))
	for i, e := range s.enemies {
		out[i] = s.view(e)
	}
	return out
}

// BombView is a ticking bomb. Fuse runs from 1 at placement to 0.
type BombView struct {
	ID   board.EntityID
	Pos  board.Position
	Fuse float64
}

// Bombs returns active bombs in placement order.
func (s *Sim) Bombs() []BombView {
	out := make([]BombView, len(s.fuses))
	for i, f := range s.fuses {
		out[i] = BombView{ID: f.id, Pos: f.pos, Fuse: float64(f.ticks) / float64(f.total)}
	}
	return out
}

// ExplosionView is one burning cell. Scale grows 0→1 over the visible part
// of its life; Visible is false during the propagation delay.
type ExplosionView struct {
	Pos     board.Position
	Visible bool
	Scale   float64
}

// Explosions returns every live explosion cell.
func (s *Sim) Explosions() []ExplosionView {
	out := make([]ExplosionView, len(s.blasts))
	for i, ex := range s.blasts {
		v := ExplosionView{Pos: ex.pos}
		if ex.age >= ex.delay {
			v.Visible = true
			v.Scale = float64(ex.age-ex.delay+1) / float64(ex.life-ex.delay)
		}
		out[i] = v
	}
	return out
}

// Danger returns every cell that is burning now or will burn when an active
// bomb goes off.
func (s *Sim) Danger() map[board.Position]bool {
	out := make(map[board.Position]bool)
	for _, ex := range s.blasts {
		out[ex.pos] = true
	}
	for _, f := range s.fuses {
		for _, bl := range s.board.BlastPositions(f.id) {
			out[bl.Pos] = true
		}
	}
	return out
}
