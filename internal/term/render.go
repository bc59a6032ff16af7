// Package term is a terminal front end for the game, drawn with tcell.
package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Bomb-Maze/internal/game"
)

var (
	styleDefault = tcell.StyleDefault
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorMediumPurple)
	styleCoin    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true)
	styleEnemy   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleBomb    = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed).Bold(true)
	styleBlast   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleExit    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// boardTop is the first screen row of the board; the rows above hold the HUD.
const boardTop = 2

func runeStyle(r rune) tcell.Style {
	switch r {
	case '#', '|', '-':
		return styleWall
	case '*':
		return styleCoin
	case 'o':
		return stylePlayer
	case 'x':
		return styleEnemy
	case 'B':
		return styleBomb
	case '+':
		return styleBlast
	case 'E':
		return styleExit
	default:
		return styleDefault
	}
}

// putString writes s at (x, y) and returns the column after it.
func putString(scr tcell.Screen, x, y int, s string, st tcell.Style) int {
	for _, r := range s {
		scr.SetContent(x, y, r, nil, st)
		x++
	}
	return x
}

// Render draws the whole frame for s. messages are the recent event lines,
// oldest first; they are listed under the board.
func Render(scr tcell.Screen, s *game.Session, messages []string) {
	scr.Clear()
	sc := s.Score()
	putString(scr, 0, 0, fmt.Sprintf("%s (%d/%d)  coins %d  moves %d  [%s]",
		s.LevelName(), s.Level()+1, s.Levels(), sc.Coins, sc.Moves, s.State()), styleDefault)

	y := boardTop
	switch s.State() {
	case game.StateMenu:
		for _, l := range []string{
			"BOMB MAZE",
			"",
			"arrows move, space bomb",
			"enter start, r menu, m mute, q quit",
		} {
			putString(scr, 2, y, l, styleDefault)
			y++
		}
		return
	case game.StateLoading:
		putString(scr, 2, y, "loading "+s.LevelName()+"...", styleDim)
		return
	}

	if sim := s.Sim(); sim != nil {
		for _, row := range strings.Split(strings.TrimSuffix(game.BoardSnapshot(sim), "\n"), "\n") {
			x := 0
			for _, r := range row {
				scr.SetContent(x, y, r, nil, runeStyle(r))
				x++
			}
			y++
		}
	}
	y++
	switch s.State() {
	case game.StateWon:
		putString(scr, 0, y, "YOU WIN - enter to play again", styleExit)
		y++
	case game.StateLost:
		putString(scr, 0, y, "GAME OVER - enter to try again", styleBomb)
		y++
	}
	for _, m := range messages {
		putString(scr, 0, y, m, styleDim)
		y++
	}
}
