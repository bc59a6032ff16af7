package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Bomb-Maze/internal/audio"
	"github.com/Garsondee/Bomb-Maze/internal/game"
	"github.com/Garsondee/Bomb-Maze/internal/levels"
	"github.com/Garsondee/Bomb-Maze/internal/term"
)

type options struct {
	config  string
	level   int
	mute    bool
	logFile string
}

func main() {
	var o options
	flag.StringVar(&o.config, "config", "", "level catalogue YAML (default: embedded levels)")
	flag.IntVar(&o.level, "level", 1, "level to start on (1-based)")
	flag.BoolVar(&o.mute, "mute", false, "disable sound")
	flag.StringVar(&o.logFile, "log", "", "write logs to this file (the terminal is taken by the game)")
	flag.Parse()

	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "bomb-maze: %v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	var out io.Writer = io.Discard
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := zerolog.New(out).With().Timestamp().Logger()

	cat, err := levels.Resolve(o.config)
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}

	sound := audio.NewSoundManager(logger)
	if !o.mute {
		_ = sound.Init()
	}
	defer sound.Close()

	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer scr.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := game.NewSession(cat, game.WithLogger(logger), game.WithStartLevel(o.level-1))
	app := term.NewApp(scr, session, term.WithSound(sound), term.WithLogger(logger))
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Int("ticks", session.Tick()).Str("state", session.State().String()).Msg("bye")
	return nil
}
