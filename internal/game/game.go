package game

import (
	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Bomb-Maze/internal/audio"
	"github.com/Garsondee/Bomb-Maze/internal/board"
)

// borderWidth is the pixel gap between the window edge and the board.
const borderWidth = 24

// hudHeight is the strip above the board holding level and score.
const hudHeight = 28

// defaultTile is the on-screen size of one cell in pixels.
const defaultTile = 40

// statusTicks is how long a transient status line stays on screen.
const statusTicks = 120

// Game is the ebiten host: it feeds keyboard input into a Session, routes the
// resulting events to the event log and the speaker, and draws the board.
type Game struct {
	session *Session
	events  *EventLog
	sound   *audio.SoundManager
	logger  zerolog.Logger
	runID   uuid.UUID
	face    text.Face

	tile      int
	gridW     int // widest board in the catalogue, in cells
	gridH     int
	width     int
	height    int
	status    string
	statusTTL int
}

// Option configures a Game.
type Option func(*Game)

// WithSound routes cues to sm.
func WithSound(sm *audio.SoundManager) Option {
	return func(g *Game) { g.sound = sm }
}

// WithHostLogger sets the process logger.
func WithHostLogger(l zerolog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithTileSize sets the cell size in pixels.
func WithTileSize(px int) Option {
	return func(g *Game) {
		if px > 0 {
			g.tile = px
		}
	}
}

// New builds a host for s. The window is sized to fit the largest level.
func New(s *Session, opts ...Option) *Game {
	g := &Game{
		session: s,
		events:  NewEventLog(),
		logger:  zerolog.Nop(),
		runID:   uuid.New(),
		face:    text.NewGoXFace(basicfont.Face7x13),
		tile:    defaultTile,
	}
	for _, o := range opts {
		o(g)
	}
	for _, lvl := range s.cat.Levels {
		b, err := lvl.Board()
		if err != nil {
			continue
		}
		g.gridW = max(g.gridW, b.Width())
		g.gridH = max(g.gridH, b.Height())
	}
	g.width = g.gridW*g.tile + 2*borderWidth + logPanelWidth
	g.height = max(g.gridH*g.tile+2*borderWidth+hudHeight, 360)
	return g
}

// Size returns the logical screen size.
func (g *Game) Size() (int, int) { return g.width, g.height }

// RunID identifies this play session in copied reports.
func (g *Game) RunID() uuid.UUID { return g.runID }

func (g *Game) Update() error {
	in := g.handleInput()

	level := g.session.Level()
	for _, ev := range g.session.Step(in) {
		g.events.Add(level, ev)
		if c, ok := CueFor(ev.Kind); ok && g.sound != nil {
			g.sound.Play(c)
		}
	}

	if g.statusTTL > 0 {
		g.statusTTL--
	}
	return nil
}

// handleInput processes edge-triggered keys. Session keys act immediately;
// movement and bombs are returned for the next sim tick.
func (g *Game) handleInput() Input {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		switch g.session.State() {
		case StateMenu:
			g.events.Clear()
			g.session.Start()
		case StateWon, StateLost:
			g.newGame()
			g.session.Start()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.newGame()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.sound != nil {
		if g.sound.ToggleMute() {
			g.flash("sound off")
		} else {
			g.flash("sound on")
		}
	}

	return readInput(inpututil.IsKeyJustPressed)
}

// newGame returns to the menu with a fresh run id.
func (g *Game) newGame() {
	g.session.Reset()
	g.events.Clear()
	g.runID = uuid.New()
}

func (g *Game) copyReport() {
	rep := RunReport(g.runID, g.session, 0)
	if err := clipboard.WriteAll(rep); err != nil {
		g.logger.Warn().Err(err).Msg("copy report")
		g.flash("clipboard unavailable")
		return
	}
	g.logger.Info().Str("run", g.runID.String()).Int("bytes", len(rep)).Msg("report copied")
	g.flash("report copied")
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusTTL = statusTicks
}

// moveKeys maps keys onto board directions. Arrows and WASD both work.
var moveKeys = []struct {
	key ebiten.Key
	dir board.Direction
}{
	{ebiten.KeyArrowLeft, board.Left},
	{ebiten.KeyA, board.Left},
	{ebiten.KeyArrowRight, board.Right},
	{ebiten.KeyD, board.Right},
	{ebiten.KeyArrowUp, board.Backward},
	{ebiten.KeyW, board.Backward},
	{ebiten.KeyArrowDown, board.Forward},
	{ebiten.KeyS, board.Forward},
}

// readInput builds the sim input from a key predicate. The first matching
// direction wins.
func readInput(pressed func(ebiten.Key) bool) Input {
	var in Input
	for _, mk := range moveKeys {
		if pressed(mk.key) {
			in.Dir = mk.dir
			break
		}
	}
	in.Bomb = pressed(ebiten.KeySpace)
	return in
}

// CueFor picks the sound for an event. Moves are silent.
func CueFor(k EventKind) (audio.Cue, bool) {
	switch k {
	case EventCoinCollected:
		return audio.CueCoin, true
	case EventBombPlaced:
		return audio.CueBombPlaced, true
	case EventBombExploded:
		return audio.CueExplosion, true
	case EventEnemyKilled:
		return audio.CueEnemyKilled, true
	case EventPlayerDied:
		return audio.CuePlayerDied, true
	case EventExitRevealed:
		return audio.CueExitRevealed, true
	case EventLevelComplete:
		return audio.CueLevelComplete, true
	default:
		return 0, false
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
