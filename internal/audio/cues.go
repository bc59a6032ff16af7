// Package audio synthesises the game's sound cues and plays them through a
// shared speaker mixer.
package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue is a sound played in response to a game event.
type Cue uint8

const (
	CueCoin Cue = iota
	CueBombPlaced
	CueExplosion
	CueEnemyKilled
	CuePlayerDied
	CueExitRevealed
	CueLevelComplete
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueCoin:
		return "coin"
	case CueBombPlaced:
		return "bomb_placed"
	case CueExplosion:
		return "explosion"
	case CueEnemyKilled:
		return "enemy_killed"
	case CuePlayerDied:
		return "player_died"
	case CueExitRevealed:
		return "exit_revealed"
	case CueLevelComplete:
		return "level_complete"
	default:
		return "unknown"
	}
}

// Cues lists every cue.
func Cues() []Cue {
	out := make([]Cue, 0, cueCount)
	for c := Cue(0); c < cueCount; c++ {
		out = append(out, c)
	}
	return out
}

// Streamer builds a fresh, finite streamer for c at linear volume vol.
// It returns nil for an unknown cue.
func Streamer(c Cue, vol float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueCoin:
		s = beep.Seq(
			note(988, 988, 60*time.Millisecond, WaveSquare),
			note(1319, 1319, 140*time.Millisecond, WaveSquare),
		)
		vol *= 0.35
	case CueBombPlaced:
		s = note(220, 140, 90*time.Millisecond, WaveSquare)
		vol *= 0.4
	case CueExplosion:
		d := 450 * time.Millisecond
		s = beep.Take(SampleRate.N(d), beep.Mix(
			gain(note(0, 0, d, WaveNoise), 0.55),
			gain(note(90, 40, d, WaveSine), 0.4),
		))
	case CueEnemyKilled:
		s = note(660, 110, 220*time.Millisecond, WaveSquare)
		vol *= 0.4
	case CuePlayerDied:
		s = beep.Seq(
			note(392, 370, 180*time.Millisecond, WaveSine),
			note(311, 294, 180*time.Millisecond, WaveSine),
			note(233, 196, 360*time.Millisecond, WaveSine),
		)
		vol *= 0.6
	case CueExitRevealed:
		d := 300 * time.Millisecond
		s = beep.Take(SampleRate.N(d), beep.Mix(
			gain(note(523, 523, d, WaveSine), 0.5),
			gain(note(784, 784, d, WaveSine), 0.3),
		))
	case CueLevelComplete:
		s = beep.Seq(
			note(523, 523, 100*time.Millisecond, WaveSquare),
			note(659, 659, 100*time.Millisecond, WaveSquare),
			note(784, 784, 100*time.Millisecond, WaveSquare),
			note(1047, 1047, 250*time.Millisecond, WaveSquare),
		)
		vol *= 0.3
	default:
		return nil
	}
	return gain(s, vol)
}
