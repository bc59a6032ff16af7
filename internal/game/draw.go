package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Bomb-Maze/internal/board"
)

var (
	colBackground = color.RGBA{R: 12, G: 12, B: 16, A: 255}
	colFloor      = color.RGBA{R: 34, G: 36, B: 44, A: 255}
	colGrid       = color.RGBA{R: 44, G: 46, B: 56, A: 255}
	colWallTop    = color.RGBA{R: 120, G: 110, B: 140, A: 255}
	colWallFace   = color.RGBA{R: 78, G: 70, B: 96, A: 255}
	colCoin       = color.RGBA{R: 240, G: 200, B: 40, A: 255}
	colExit       = color.RGBA{R: 60, G: 210, B: 110, A: 255}
	colPlayer     = color.RGBA{R: 70, G: 150, B: 240, A: 255}
	colEnemy      = color.RGBA{R: 200, G: 60, B: 200, A: 255}
	colBomb       = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	colFuse       = color.RGBA{R: 240, G: 120, B: 40, A: 255}
	colBlast      = color.RGBA{R: 255, G: 150, B: 40, A: 220}
	colText       = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	colDim        = color.RGBA{R: 140, G: 140, B: 160, A: 255}
)

// wallLift is how far wall tops are drawn above their footprint, as a
// fraction of a tile, to fake height in the top-down view.
const wallLift = 0.3

// seeThroughAlpha is the opacity of walls hiding the player.
const seeThroughAlpha = 0.35

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)

	switch g.session.State() {
	case StateMenu:
		g.drawMenu(screen)
	case StateLoading:
		g.drawCentred(screen, []string{"LOADING", g.session.LevelName()})
	default:
		if sim := g.session.Sim(); sim != nil {
			g.drawBoard(screen, sim)
		}
		g.drawHUD(screen)
		switch g.session.State() {
		case StateWon:
			g.drawBanner(screen, "YOU WIN", "enter: play again   c: copy report")
		case StateLost:
			g.drawBanner(screen, "GAME OVER", "enter: try again   c: copy report")
		}
	}

	g.events.Draw(screen, g.width-logPanelWidth, g.height)
	if g.statusTTL > 0 {
		g.drawText(screen, g.status, borderWidth, g.height-borderWidth+4, colDim)
	}
}

// origin is the top-left pixel of b, centred in the play area.
func (g *Game) origin(b *board.Board) (float32, float32) {
	areaW := g.width - logPanelWidth
	areaH := g.height - hudHeight
	x := (areaW - b.Width()*g.tile) / 2
	y := hudHeight + (areaH-b.Height()*g.tile)/2
	return float32(x), float32(y)
}

// toScreen maps a world-space point to the pixel centre it is drawn at.
func (g *Game) toScreen(b *board.Board, v board.Vec3) (float32, float32) {
	ox, oz := b.Offsets()
	bx, by := g.origin(b)
	t := float64(g.tile)
	return bx + float32((v.X+ox)/board.CellSize*t), by + float32((v.Z+oz)/board.CellSize*t)
}

func (g *Game) drawBoard(screen *ebiten.Image, sim *Sim) {
	b := sim.Board()
	bx, by := g.origin(b)
	t := float32(g.tile)

	vector.FillRect(screen, bx, by, float32(b.Width())*t, float32(b.Height())*t, colFloor, false)
	for x := 0; x <= b.Width(); x++ {
		xf := bx + float32(x)*t
		vector.StrokeLine(screen, xf, by, xf, by+float32(b.Height())*t, 1, colGrid, false)
	}
	for z := 0; z <= b.Height(); z++ {
		zf := by + float32(z)*t
		vector.StrokeLine(screen, bx, zf, bx+float32(b.Width())*t, zf, 1, colGrid, false)
	}

	if b.ExitRevealed() {
		e := b.ExitPosition()
		cx, cy := g.toScreen(b, b.GridToWorld(e))
		vector.FillRect(screen, cx-t*0.4, cy-t*0.4, t*0.8, t*0.8, colExit, false)
	}
	for _, id := range b.CoinIDs() {
		p, _ := b.CoinPosition(id)
		cx, cy := g.toScreen(b, b.GridToWorld(p))
		vector.FillCircle(screen, cx, cy, t*0.15, colCoin, true)
	}

	for _, bomb := range sim.Bombs() {
		cx, cy := g.toScreen(b, b.GridToWorld(bomb.Pos))
		vector.FillCircle(screen, cx, cy, t*0.3, colBomb, true)
		vector.StrokeCircle(screen, cx, cy, t*0.3, 2, colFuse, true)
		// Fuse bar shrinks as the bomb burns down.
		vector.FillRect(screen, cx-t*0.3, cy-t*0.45, t*0.6*float32(bomb.Fuse), 3, colFuse, false)
	}

	player := sim.Player()
	for _, e := range sim.Enemies() {
		cx, cy := g.toScreen(b, e.World)
		vector.FillRect(screen, cx-t*0.3, cy-t*0.3, t*0.6, t*0.6, colEnemy, true)
	}
	if sim.Outcome() != OutcomePlayerDied {
		cx, cy := g.toScreen(b, player.World)
		vector.FillCircle(screen, cx, cy, t*0.32, colPlayer, true)
	}

	for _, ex := range sim.Explosions() {
		if !ex.Visible {
			continue
		}
		cx, cy := g.toScreen(b, b.GridToWorld(ex.Pos))
		r := t * 0.5 * float32(ex.Scale)
		vector.FillRect(screen, cx-r, cy-r, 2*r, 2*r, colBlast, true)
	}

	hidden := make(map[board.Position]bool)
	for _, p := range b.ConnectedWalls(player.Pos) {
		hidden[p] = true
	}
	// Walls last so lifted tops overlap the row above.
	for _, c := range b.Cells() {
		if !c.Kind.IsWall() {
			continue
		}
		alpha := float32(1)
		if hidden[c.Pos] {
			alpha = seeThroughAlpha
		}
		g.drawWall(screen, bx+float32(c.Pos.X)*t, by+float32(c.Pos.Z)*t, c.Kind, alpha)
	}
}

// drawWall draws one wall tile whose footprint starts at (x, y). Small walls
// are thin bars across the middle of the tile.
func (g *Game) drawWall(screen *ebiten.Image, x, y float32, k board.BlockKind, alpha float32) {
	t := float32(g.tile)
	fx, fy, fw, fh := x, y, t, t
	switch k {
	case board.BlockSmallWallVertical:
		fx, fw = x+t*0.4, t*0.2
	case board.BlockSmallWallHorizontal:
		fy, fh = y+t*0.4, t*0.2
	}
	lift := t * wallLift
	vector.FillRect(screen, fx, fy, fw, fh, fade(colWallFace, alpha), false)
	vector.FillRect(screen, fx, fy-lift, fw, fh, fade(colWallTop, alpha), false)
}

func fade(c color.RGBA, a float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R) * a),
		G: uint8(float32(c.G) * a),
		B: uint8(float32(c.B) * a),
		A: uint8(float32(c.A) * a),
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	sc := g.session.Score()
	line := fmt.Sprintf("%s (%d/%d)   coins %d   moves %d",
		g.session.LevelName(), g.session.Level()+1, g.session.Levels(), sc.Coins, sc.Moves)
	if sim := g.session.Sim(); sim != nil {
		if sim.Board().ExitRevealed() {
			line += "   exit open"
		} else {
			line += fmt.Sprintf("   enemies %d", len(sim.Enemies()))
		}
	}
	g.drawText(screen, line, borderWidth, 8, colText)
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	g.drawCentred(screen, []string{
		"BOMB MAZE",
		"",
		"arrows / WASD  move",
		"space          bomb",
		"enter          start",
		"m mute   c copy report   esc menu",
	})
}

func (g *Game) drawBanner(screen *ebiten.Image, title, hint string) {
	areaW := float32(g.width - logPanelWidth)
	y := float32(g.height)/2 - 30
	vector.FillRect(screen, 0, y, areaW, 60, color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
	g.drawTextCentred(screen, title, int(y)+12, colText)
	g.drawTextCentred(screen, hint, int(y)+34, colDim)
}

func (g *Game) drawCentred(screen *ebiten.Image, lines []string) {
	const lineH = 18
	y := g.height/2 - len(lines)*lineH/2
	for i, l := range lines {
		c := colDim
		if i == 0 {
			c = colText
		}
		g.drawTextCentred(screen, l, y+i*lineH, c)
	}
}

func (g *Game) drawTextCentred(screen *ebiten.Image, s string, y int, c color.Color) {
	w, _ := text.Measure(s, g.face, 0)
	x := (g.width-logPanelWidth)/2 - int(w)/2
	g.drawText(screen, s, x, y, c)
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, g.face, op)
}
