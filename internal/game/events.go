package game

import (
	"fmt"

	"github.com/Garsondee/Bomb-Maze/internal/board"
)

// EventKind classifies what happened during a tick.
type EventKind uint8

const (
	EventMoveStarted   EventKind = iota // player began a move
	EventCoinCollected                  // coin picked up
	EventBombPlaced                     // bomb dropped on the player's cell
	EventBombExploded                   // fuse ran out
	EventEnemyKilled                    // enemy caught in an explosion
	EventPlayerDied                     // player caught by enemy or explosion
	EventExitRevealed                   // last enemy gone
	EventLevelComplete                  // player stepped on the open exit
	eventKindCount
)

func (k EventKind) String() string {
	switch k {
	case EventMoveStarted:
		return "move_started"
	case EventCoinCollected:
		return "coin_collected"
	case EventBombPlaced:
		return "bomb_placed"
	case EventBombExploded:
		return "bomb_exploded"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventPlayerDied:
		return "player_died"
	case EventExitRevealed:
		return "exit_revealed"
	case EventLevelComplete:
		return "level_complete"
	default:
		return "unknown"
	}
}

// category groups event kinds for SimLog filtering.
func (k EventKind) category() string {
	switch k {
	case EventMoveStarted:
		return "move"
	case EventCoinCollected:
		return "coin"
	case EventBombPlaced, EventBombExploded:
		return "bomb"
	case EventEnemyKilled:
		return "enemy"
	case EventPlayerDied:
		return "player"
	case EventExitRevealed, EventLevelComplete:
		return "level"
	default:
		return "misc"
	}
}

// Event is one thing that happened during a tick. Actor is the entity the
// event is about (coin, bomb or enemy id, or the player); it is zero for
// level-wide events. For EventPlayerDied, Actor is the killer and ByBomb
// tells a blast from an enemy.
type Event struct {
	Tick   int
	Kind   EventKind
	Actor  board.EntityID
	Pos    board.Position
	Dir    board.Direction
	ByBomb bool
}

func (e Event) label() string {
	switch e.Kind {
	case EventMoveStarted, EventCoinCollected, EventPlayerDied, EventLevelComplete:
		return "P"
	case EventBombPlaced, EventBombExploded:
		return fmt.Sprintf("B%d", e.Actor)
	case EventEnemyKilled:
		return enemyLabel(e.Actor)
	default:
		return "--"
	}
}

func (e Event) detail() string {
	switch e.Kind {
	case EventMoveStarted:
		return fmt.Sprintf("%s from %s", e.Dir, e.Pos)
	case EventPlayerDied:
		if e.ByBomb {
			return fmt.Sprintf("at %s by B%d", e.Pos, e.Actor)
		}
		return fmt.Sprintf("at %s by %s", e.Pos, enemyLabel(e.Actor))
	default:
		return "at " + e.Pos.String()
	}
}

// Message is the human-readable line shown in the on-screen event log.
func (e Event) Message() string {
	switch e.Kind {
	case EventMoveStarted:
		return "moving " + e.Dir.String()
	case EventCoinCollected:
		return "coin collected"
	case EventBombPlaced:
		return "bomb placed at " + e.Pos.String()
	case EventBombExploded:
		return "bomb exploded at " + e.Pos.String()
	case EventEnemyKilled:
		return "enemy down at " + e.Pos.String()
	case EventPlayerDied:
		if e.ByBomb {
			return "you were blown up"
		}
		return "you were caught"
	case EventExitRevealed:
		return "exit open at " + e.Pos.String()
	case EventLevelComplete:
		return "level complete"
	default:
		return e.Kind.String()
	}
}

func enemyLabel(id board.EntityID) string {
	return fmt.Sprintf("E%d", id)
}
