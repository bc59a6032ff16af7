package board

// BlockKind identifies what a map cell was built from.
type BlockKind uint8

const (
	BlockSpace               BlockKind = iota // ' ' open floor
	BlockBigWall                              // '#'
	BlockSmallWallVertical                    // '|'
	BlockSmallWallHorizontal                  // '-'
	BlockCoin                                 // '*'
	BlockEnemy                                // 'x' enemy start
	BlockPlayer                               // 'o' player start
	BlockExit                                 // 'e' hidden exit
	blockKindCount                            // sentinel
)

// parseBlockKind maps one map character onto its block kind.
func parseBlockKind(r rune) (BlockKind, bool) {
	switch r {
	case ' ':
		return BlockSpace, true
	case '#':
		return BlockBigWall, true
	case '|':
		return BlockSmallWallVertical, true
	case '-':
		return BlockSmallWallHorizontal, true
	case '*':
		return BlockCoin, true
	case 'x':
		return BlockEnemy, true
	case 'o':
		return BlockPlayer, true
	case 'e':
		return BlockExit, true
	default:
		return BlockSpace, false
	}
}

// IsWall returns true for every wall kind, big or small.
func (k BlockKind) IsWall() bool {
	switch k {
	case BlockBigWall, BlockSmallWallVertical, BlockSmallWallHorizontal:
		return true
	default:
		return false
	}
}

// Rune returns the map character the kind is parsed from.
func (k BlockKind) Rune() rune {
	switch k {
	case BlockBigWall:
		return '#'
	case BlockSmallWallVertical:
		return '|'
	case BlockSmallWallHorizontal:
		return '-'
	case BlockCoin:
		return '*'
	case BlockEnemy:
		return 'x'
	case BlockPlayer:
		return 'o'
	case BlockExit:
		return 'e'
	default:
		return ' '
	}
}

func (k BlockKind) String() string {
	switch k {
	case BlockSpace:
		return "space"
	case BlockBigWall:
		return "big_wall"
	case BlockSmallWallVertical:
		return "small_wall_v"
	case BlockSmallWallHorizontal:
		return "small_wall_h"
	case BlockCoin:
		return "coin"
	case BlockEnemy:
		return "enemy"
	case BlockPlayer:
		return "player"
	case BlockExit:
		return "exit"
	default:
		return "unknown"
	}
}
