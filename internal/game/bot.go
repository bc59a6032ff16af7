package game

import (
	"math/rand"

	"github.com/Garsondee/Bomb-Maze/internal/board"
)

// botExplore is the chance the bot takes a random safe step instead of the
// greedy one. It gets the bot out of dead ends the greedy rule walks into.
const botExplore = 0.2

// Bot is a greedy one-step autopilot. Each tick it looks at the board and
// returns the Input a player would give: flee danger, bomb an enemy in
// reach, otherwise step towards the nearest enemy (or the open exit).
type Bot struct {
	rng  *rand.Rand
	last board.Direction
}

// NewBot returns a bot whose tie-breaks are driven by seed.
func NewBot(seed int64) *Bot {
	return &Bot{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- gameplay autopilot
}

// Think picks the input for the next tick.
func (bt *Bot) Think(s *Sim) Input {
	if s == nil || s.Outcome() != OutcomePlaying {
		return Input{}
	}
	p := s.Player()
	if !p.Dir.IsZero() {
		return Input{}
	}
	b := s.Board()
	danger := s.Danger()
	enemies := s.Enemies()
	crowded := enemyZone(enemies)
	free := b.FreeDirections(p.Pos)

	if danger[p.Pos] {
		d, _ := bt.escape(b, p.Pos, free, danger, crowded)
		if d.IsZero() {
			return Input{}
		}
		return bt.move(d)
	}

	if !b.BombAt(p.Pos) && enemyInReach(b, p.Pos, enemies) {
		hot := make(map[board.Position]bool, len(danger))
		for pos := range danger {
			hot[pos] = true
		}
		for _, bl := range b.BlastReach(p.Pos, b.BlastRadius()) {
			hot[bl.Pos] = true
		}
		if _, ok := bt.escape(b, p.Pos, free, hot, crowded); ok {
			return Input{Bomb: true}
		}
	}

	var safe []board.Direction
	for _, d := range free {
		n := p.Pos.Add(d)
		if !danger[n] && !crowded[n] {
			safe = append(safe, d)
		}
	}
	if len(safe) == 0 {
		return Input{}
	}
	target, ok := botTarget(b, enemies)
	if !ok || bt.rng.Float64() < botExplore {
		return bt.move(safe[bt.rng.Intn(len(safe))])
	}

	// Prefer not to undo the previous step unless it is the only way on.
	if len(safe) > 1 {
		back := bt.last.Reverse()
		forward := safe[:0:0]
		for _, d := range safe {
			if d != back {
				forward = append(forward, d)
			}
		}
		safe = forward
	}
	best := -1
	var picks []board.Direction
	for _, d := range safe {
		dist := p.Pos.Add(d).Manhattan(target)
		switch {
		case best < 0 || dist < best:
			best = dist
			picks = append(picks[:0], d)
		case dist == best:
			picks = append(picks, d)
		}
	}
	return bt.move(picks[bt.rng.Intn(len(picks))])
}

func (bt *Bot) move(d board.Direction) Input {
	bt.last = d
	return Input{Dir: d}
}

// escape picks a direction out of hot cells with a two-step lookahead: a
// neighbour that is already cool wins, then one with a cool neighbour of its
// own. Enemy-adjacent cells are avoided. The bool is false when neither
// exists; the direction is then the least bad step, or None.
func (bt *Bot) escape(b *board.Board, from board.Position, free []board.Direction, hot, crowded map[board.Position]bool) (board.Direction, bool) {
	best := 3
	var picks []board.Direction
	for _, d := range free {
		n := from.Add(d)
		if crowded[n] {
			continue
		}
		score := 2
		if !hot[n] {
			score = 0
		} else {
			for _, d2 := range b.FreeDirections(n) {
				m := n.Add(d2)
				if m != from && !hot[m] && !crowded[m] {
					score = 1
					break
				}
			}
		}
		switch {
		case score < best:
			best = score
			picks = append(picks[:0], d)
		case score == best:
			picks = append(picks, d)
		}
	}
	if len(picks) == 0 {
		return board.None, false
	}
	return picks[bt.rng.Intn(len(picks))], best <= 1
}

// enemyZone marks every enemy cell and its four neighbours.
func enemyZone(enemies []ActorView) map[board.Position]bool {
	out := make(map[board.Position]bool, len(enemies)*5)
	for _, e := range enemies {
		out[e.Pos] = true
		for _, d := range board.Cardinal() {
			out[e.Pos.Add(d)] = true
		}
		if !e.Dir.IsZero() {
			out[e.Pos.Add(e.Dir)] = true
		}
	}
	return out
}

func enemyInReach(b *board.Board, from board.Position, enemies []ActorView) bool {
	reach := b.BlastReach(from, b.BlastRadius())
	for _, e := range enemies {
		for _, bl := range reach {
			if bl.Pos == e.Pos {
				return true
			}
		}
	}
	return false
}

// botTarget is the open exit if there is one, otherwise the closest enemy.
func botTarget(b *board.Board, enemies []ActorView) (board.Position, bool) {
	if b.ExitRevealed() {
		return b.ExitPosition(), true
	}
	from := b.PlayerPosition()
	best := -1
	var target board.Position
	for _, e := range enemies {
		if d := from.Manhattan(e.Pos); best < 0 || d < best {
			best = d
			target = e.Pos
		}
	}
	return target, best >= 0
}
