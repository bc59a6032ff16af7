package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Bomb-Maze/internal/audio"
	"github.com/Garsondee/Bomb-Maze/internal/board"
	"github.com/Garsondee/Bomb-Maze/internal/game"
)

// maxMessages is how many event lines are kept under the board.
const maxMessages = 6

// Command is what a key asks the app to do.
type Command uint8

const (
	CmdNone Command = iota
	CmdMove
	CmdBomb
	CmdStart
	CmdReset
	CmdMute
	CmdQuit
)

// KeyCommand maps a terminal key onto a command. Only CmdMove carries a
// direction.
func KeyCommand(k tcell.Key, r rune) (Command, board.Direction) {
	switch k {
	case tcell.KeyLeft:
		return CmdMove, board.Left
	case tcell.KeyRight:
		return CmdMove, board.Right
	case tcell.KeyUp:
		return CmdMove, board.Backward
	case tcell.KeyDown:
		return CmdMove, board.Forward
	case tcell.KeyEnter:
		return CmdStart, board.None
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CmdQuit, board.None
	case tcell.KeyRune:
		switch r {
		case ' ':
			return CmdBomb, board.None
		case 'r':
			return CmdReset, board.None
		case 'm':
			return CmdMute, board.None
		case 'q':
			return CmdQuit, board.None
		}
	}
	return CmdNone, board.None
}

// App runs a session in a terminal.
type App struct {
	screen   tcell.Screen
	session  *game.Session
	sound    *audio.SoundManager
	logger   zerolog.Logger
	tick     time.Duration
	pending  game.Input
	messages []string
}

// Option configures an App.
type Option func(*App)

// WithSound plays cues through sm.
func WithSound(sm *audio.SoundManager) Option {
	return func(a *App) { a.sound = sm }
}

// WithLogger sets the logger. Terminal apps should log to a file, not stderr.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// NewApp wires a screen to a session. The screen must already be initialised.
func NewApp(scr tcell.Screen, s *game.Session, opts ...Option) *App {
	tps := s.Tuning().TicksPerSecond
	if tps <= 0 {
		tps = 60
	}
	a := &App{
		screen:  scr,
		session: s,
		logger:  zerolog.Nop(),
		tick:    time.Second / time.Duration(tps),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run polls keys and steps the session at the tuning's tick rate until ctx
// is done or the player quits. The caller owns screen.Fini.
func (a *App) Run(ctx context.Context) error {
	keys := make(chan *tcell.EventKey, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				select {
				case keys <- ev:
				case <-quit:
					return
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
		}
	}()

	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()
	a.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-keys:
			if !a.HandleKey(ev.Key(), ev.Rune()) {
				a.logger.Info().Int("tick", a.session.Tick()).Msg("quit")
				return nil
			}
		case <-ticker.C:
			a.Step()
			a.draw()
		}
	}
}

// HandleKey applies one key press. Moves and bombs are latched until the
// next tick. It returns false when the player asked to quit.
func (a *App) HandleKey(k tcell.Key, r rune) bool {
	cmd, dir := KeyCommand(k, r)
	switch cmd {
	case CmdMove:
		a.pending.Dir = dir
	case CmdBomb:
		a.pending.Bomb = true
	case CmdStart:
		switch a.session.State() {
		case game.StateWon, game.StateLost:
			a.session.Reset()
			a.messages = nil
		}
		a.session.Start()
	case CmdReset:
		a.session.Reset()
		a.messages = nil
	case CmdMute:
		if a.sound != nil {
			a.sound.ToggleMute()
		}
	case CmdQuit:
		return false
	}
	return true
}

// Step runs one session tick with the latched input.
func (a *App) Step() {
	level := a.session.Level()
	for _, ev := range a.session.Step(a.pending) {
		if ev.Kind == game.EventMoveStarted {
			continue
		}
		a.messages = append(a.messages, fmt.Sprintf("L%d %5d %s", level+1, ev.Tick, ev.Message()))
		if c, ok := game.CueFor(ev.Kind); ok && a.sound != nil {
			a.sound.Play(c)
		}
	}
	if n := len(a.messages); n > maxMessages {
		a.messages = a.messages[n-maxMessages:]
	}
	a.pending = game.Input{}
}

func (a *App) draw() {
	Render(a.screen, a.session, a.messages)
	a.screen.Show()
}
