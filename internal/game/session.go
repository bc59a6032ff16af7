package game

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Bomb-Maze/internal/levels"
)

// State is the top-level screen of a play session.
type State uint8

const (
	StateMenu    State = iota // waiting for the player to start
	StateLoading              // short pause before a level starts
	StatePlaying              // a level is running
	StateWon                  // every level completed
	StateLost                 // the player died
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Session walks the catalogue level by level. It owns at most one Sim, which
// it replaces wholesale on every level change, and carries the score across
// levels.
type Session struct {
	cat    *levels.Catalogue
	logger zerolog.Logger
	log    *SimLog

	state    State
	level    int
	startAt  int
	loadLeft int
	sim      *Sim
	carried  Score // score from completed levels
	tick     int   // session ticks, across levels
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the process logger used for state transitions.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithStartLevel makes new games begin at level i (0-based).
func WithStartLevel(i int) SessionOption {
	return func(s *Session) { s.startAt = i }
}

// WithSimLog records every level's events into log.
func WithSimLog(log *SimLog) SessionOption {
	return func(s *Session) { s.log = log }
}

// NewSession returns a session in the menu state.
func NewSession(cat *levels.Catalogue, opts ...SessionOption) *Session {
	s := &Session{
		cat:    cat,
		logger: zerolog.Nop(),
		state:  StateMenu,
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = NewSimLog(false)
	}
	if s.startAt < 0 || s.startAt >= cat.Len() {
		s.startAt = 0
	}
	return s
}

// Start leaves the menu and begins loading the first level. It does nothing
// outside the menu.
func (s *Session) Start() {
	if s.state != StateMenu {
		return
	}
	s.carried = Score{}
	s.beginLoading(s.startAt)
}

// Reset returns to the menu from any state and clears the score.
func (s *Session) Reset() {
	s.sim = nil
	s.carried = Score{}
	s.level = s.startAt
	s.setState(StateMenu)
}

func (s *Session) beginLoading(level int) {
	s.level = level
	s.sim = nil
	s.loadLeft = s.cat.Tuning.Ticks(s.cat.Tuning.LoadingSeconds)
	s.setState(StateLoading)
}

func (s *Session) setState(st State) {
	if st == s.state {
		return
	}
	s.log.Add(s.tick, "--", "session", "state", fmt.Sprintf("%s → %s", s.state, st), float64(s.level))
	s.logger.Info().
		Str("from", s.state.String()).
		Str("to", st.String()).
		Int("level", s.level+1).
		Msg("session state")
	s.state = st
}

// Step advances the session one tick. Events come from the running level;
// outside StatePlaying there are none.
func (s *Session) Step(in Input) []Event {
	s.tick++
	switch s.state {
	case StateLoading:
		s.loadLeft--
		if s.loadLeft <= 0 {
			s.startLevel()
		}
		return nil
	case StatePlaying:
		events := s.sim.Step(in)
		if s.sim.Outcome() != OutcomePlaying {
			s.logLevelEnd()
		}
		switch s.sim.Outcome() {
		case OutcomeLevelComplete:
			s.carried = s.carried.Add(s.sim.Score())
			if s.level+1 >= s.cat.Len() {
				s.setState(StateWon)
			} else {
				s.beginLoading(s.level + 1)
			}
		case OutcomePlayerDied:
			s.setState(StateLost)
		}
		return events
	default:
		return nil
	}
}

func (s *Session) logLevelEnd() {
	r := DetermineLevelOutcome(s.sim)
	s.logger.Info().
		Int("level", s.level+1).
		Str("outcome", r.Outcome.String()).
		Str("reason", r.Description).
		Int("coins", r.CoinsTaken).
		Int("coins_total", r.CoinsTotal).
		Int("enemies_left", r.EnemiesLeft).
		Int("ticks", s.sim.Tick()).
		Msg("level ended")
}

func (s *Session) startLevel() {
	lvl, _ := s.cat.Level(s.level)
	b, err := lvl.Board()
	if err != nil {
		// Catalogues are validated at load, so this only happens with a
		// hand-built catalogue.
		s.logger.Error().Err(err).Int("level", s.level+1).Msg("level failed to load")
		s.setState(StateLost)
		return
	}
	s.sim = NewSim(b, s.cat.Tuning, s.log)
	s.sim.tickBase = s.tick
	s.setState(StatePlaying)
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Level returns the 0-based index of the current (or last played) level.
func (s *Session) Level() int { return s.level }

// LevelName returns the current level's name.
func (s *Session) LevelName() string {
	lvl, _ := s.cat.Level(s.level)
	return lvl.Name
}

// Levels returns how many levels the catalogue has.
func (s *Session) Levels() int { return s.cat.Len() }

// Sim returns the level simulation, or nil in the menu and while loading.
// After Won or Lost the last Sim stays available for rendering.
func (s *Session) Sim() *Sim { return s.sim }

// Score returns the total score: completed levels plus the running one.
func (s *Session) Score() Score {
	if s.sim != nil && (s.state == StatePlaying || s.state == StateLost) {
		return s.carried.Add(s.sim.Score())
	}
	return s.carried
}

// Tick returns the number of session ticks so far.
func (s *Session) Tick() int { return s.tick }

// Log returns the structured log shared by every level of the session.
func (s *Session) Log() *SimLog { return s.log }

// Tuning returns the catalogue's timing values.
func (s *Session) Tuning() levels.Tuning { return s.cat.Tuning }
