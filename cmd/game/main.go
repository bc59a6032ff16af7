package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Bomb-Maze/internal/audio"
	"github.com/Garsondee/Bomb-Maze/internal/game"
	"github.com/Garsondee/Bomb-Maze/internal/levels"
)

func main() {
	var (
		config string
		level  int
		mute   bool
		scale  int
	)
	flag.StringVar(&config, "config", "", "level catalogue YAML (default: embedded levels)")
	flag.IntVar(&level, "level", 1, "level to start on (1-based)")
	flag.BoolVar(&mute, "mute", false, "start with sound off")
	flag.IntVar(&scale, "scale", 40, "cell size in pixels")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cat, err := levels.Resolve(config)
	if err != nil {
		logger.Fatal().Err(err).Str("config", config).Msg("load levels")
	}
	logger.Info().Int("levels", cat.Len()).Str("config", config).Msg("catalogue loaded")

	sound := audio.NewSoundManager(logger)
	if !mute {
		// Failure leaves the manager silent.
		_ = sound.Init()
	}
	defer sound.Close()

	session := game.NewSession(cat, game.WithLogger(logger), game.WithStartLevel(level-1))
	g := game.New(session,
		game.WithSound(sound),
		game.WithHostLogger(logger),
		game.WithTileSize(scale),
	)

	w, h := g.Size()
	ebiten.SetWindowTitle("Bomb Maze")
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(cat.Tuning.TicksPerSecond)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal().Err(err).Msg("game exited")
	}
}
