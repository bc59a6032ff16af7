package game

import "github.com/Garsondee/Bomb-Maze/internal/board"

// Outcome is the state of one level's simulation.
type Outcome uint8

const (
	OutcomePlaying       Outcome = iota // level in progress
	OutcomeLevelComplete                // player reached the revealed exit
	OutcomePlayerDied                   // caught by an enemy or an explosion
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeLevelComplete:
		return "level_complete"
	case OutcomePlayerDied:
		return "player_died"
	default:
		return "unknown"
	}
}

// LevelOutcomeReason explains where a level stands.
type LevelOutcomeReason struct {
	Outcome      Outcome
	EnemiesLeft  int
	EnemiesTotal int
	CoinsTaken   int
	CoinsTotal   int
	BombsLive    int
	ExitOpen     bool
	Killer       board.EntityID // zero unless the player died
	Description  string
}

// DetermineLevelOutcome summarises s with a machine-readable description.
func DetermineLevelOutcome(s *Sim) LevelOutcomeReason {
	r := LevelOutcomeReason{
		Outcome:      s.outcome,
		EnemiesLeft:  len(s.enemies),
		EnemiesTotal: s.enemiesTotal,
		CoinsTaken:   s.score.Coins,
		CoinsTotal:   s.coinsTotal,
		BombsLive:    len(s.fuses),
		ExitOpen:     s.board.ExitRevealed(),
	}

	switch s.outcome {
	case OutcomeLevelComplete:
		r.Description = "cleared"
		if r.CoinsTotal > 0 && r.CoinsTaken == r.CoinsTotal {
			r.Description = "cleared_all_coins"
		}
	case OutcomePlayerDied:
		r.Killer = s.death.Actor
		r.Description = "caught_by_enemy"
		if s.death.ByBomb {
			r.Description = "killed_by_blast"
		}
	default:
		switch {
		case r.ExitOpen:
			r.Description = "exit_open_not_reached"
		case r.EnemiesLeft < r.EnemiesTotal:
			r.Description = "enemies_remaining"
		case r.BombsLive > 0:
			r.Description = "bomb_ticking"
		default:
			r.Description = "no_progress"
		}
	}
	return r
}
