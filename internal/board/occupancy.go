package board

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Occupancy errors returned by the validating setters.
var (
	ErrOutOfBounds = errors.New("board: position off the grid")
	ErrWallCell    = errors.New("board: position is a wall")
)

func (b *Board) checkInBounds(p Position) error {
	if !b.InBounds(p) {
		return fmt.Errorf("%w: %s on %dx%d", ErrOutOfBounds, p, b.width, b.height)
	}
	return nil
}

// PlayerPosition returns the tracked player cell.
func (b *Board) PlayerPosition() Position { return b.player }

// SetPlayerPosition moves the tracked player. Walls are never entered.
func (b *Board) SetPlayerPosition(p Position) error {
	if err := b.checkInBounds(p); err != nil {
		return err
	}
	if k, _ := b.Kind(p); k.IsWall() {
		return fmt.Errorf("%w: %s", ErrWallCell, p)
	}
	b.player = p
	return nil
}

// ExitPosition returns the exit cell.
func (b *Board) ExitPosition() Position { return b.exit }

// ExitRevealed reports whether the exit has been opened.
func (b *Board) ExitRevealed() bool { return b.exitRevealed }

// RevealExit opens the exit. The flag never reverts; the return value is true
// only for the call that performed the transition.
func (b *Board) RevealExit() bool {
	if b.exitRevealed {
		return false
	}
	b.exitRevealed = true
	return true
}

// BlastRadius returns the range newly placed bombs get.
func (b *Board) BlastRadius() int { return b.blastRadius }

// SetBlastRadius changes the range for bombs placed from now on. Negative
// values are treated as zero.
func (b *Board) SetBlastRadius(r int) {
	b.blastRadius = max(r, 0)
}

// --- Enemies ---

// SetEnemyPosition inserts or updates an enemy association.
func (b *Board) SetEnemyPosition(id EntityID, p Position) error {
	if err := b.checkInBounds(p); err != nil {
		return err
	}
	b.enemies[id] = p
	return nil
}

// EnemyPosition returns the tracked cell of an enemy.
func (b *Board) EnemyPosition(id EntityID) (Position, bool) {
	p, ok := b.enemies[id]
	return p, ok
}

// RemoveEnemy drops an enemy association. Unknown ids are ignored.
func (b *Board) RemoveEnemy(id EntityID) {
	delete(b.enemies, id)
}

// EnemyCount returns how many enemies are tracked.
func (b *Board) EnemyCount() int { return len(b.enemies) }

// EnemyIDs returns the tracked enemy ids in ascending order.
func (b *Board) EnemyIDs() []EntityID {
	return slices.Sorted(maps.Keys(b.enemies))
}

// EnemiesAt returns the ids of enemies on p in ascending order.
func (b *Board) EnemiesAt(p Position) []EntityID {
	return idsAt(b.enemies, p)
}

// --- Coins ---

// AddCoin inserts or updates a coin association.
func (b *Board) AddCoin(id EntityID, p Position) error {
	if err := b.checkInBounds(p); err != nil {
		return err
	}
	b.coins[id] = p
	return nil
}

// CoinPosition returns the cell of a coin.
func (b *Board) CoinPosition(id EntityID) (Position, bool) {
	p, ok := b.coins[id]
	return p, ok
}

// RemoveCoin drops a coin association. Unknown ids are ignored.
func (b *Board) RemoveCoin(id EntityID) {
	delete(b.coins, id)
}

// ClearCoins drops every coin association.
func (b *Board) ClearCoins() {
	clear(b.coins)
}

// CoinCount returns how many coins are tracked.
func (b *Board) CoinCount() int { return len(b.coins) }

// CoinIDs returns the tracked coin ids in ascending order.
func (b *Board) CoinIDs() []EntityID {
	return slices.Sorted(maps.Keys(b.coins))
}

// CoinsAt returns the ids of coins on p in ascending order.
func (b *Board) CoinsAt(p Position) []EntityID {
	return idsAt(b.coins, p)
}

// --- Bombs ---

// PlaceBomb records a bomb with the current blast radius under id. The board
// does not enforce one bomb per cell; that rule belongs to the caller.
func (b *Board) PlaceBomb(id EntityID, p Position) error {
	if err := b.checkInBounds(p); err != nil {
		return err
	}
	b.bombs[id] = Bomb{Range: b.blastRadius, Pos: p}
	return nil
}

// Bomb returns an active bomb.
func (b *Board) Bomb(id EntityID) (Bomb, bool) {
	bomb, ok := b.bombs[id]
	return bomb, ok
}

// RemoveBomb drops a bomb. Unknown ids are ignored.
func (b *Board) RemoveBomb(id EntityID) {
	delete(b.bombs, id)
}

// BombAt reports whether any active bomb sits on p.
func (b *Board) BombAt(p Position) bool {
	for _, bomb := range b.bombs {
		if bomb.Pos == p {
			return true
		}
	}
	return false
}

// BombIDs returns the active bomb ids in ascending order.
func (b *Board) BombIDs() []EntityID {
	return slices.Sorted(maps.Keys(b.bombs))
}

func idsAt(m map[EntityID]Position, p Position) []EntityID {
	var out []EntityID
	for id, at := range m {
		if at == p {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}
