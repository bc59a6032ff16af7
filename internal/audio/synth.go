package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every cue is synthesised at.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave uint8

const (
	WaveSine   Wave = iota
	WaveSquare      // 50% duty
	WaveNoise       // white noise from a seeded source
)

// tone is a single oscillator with a linear pitch sweep from freq to endFreq.
type tone struct {
	freq, endFreq float64
	wave          Wave
	phase         float64
	pos, total    int
	rng           *rand.Rand
}

func newTone(freq, endFreq float64, d time.Duration, w Wave) *tone {
	return &tone{
		freq:    freq,
		endFreq: endFreq,
		wave:    w,
		total:   SampleRate.N(d),
		rng:     rand.New(rand.NewSource(int64(freq*1000) + 1)), // #nosec G404 -- audio noise, not security
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = -1
			if t.phase < 0.5 {
				v = 1
			}
		case WaveNoise:
			v = t.rng.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		f := t.freq + (t.endFreq-t.freq)*float64(t.pos)/float64(t.total)
		t.phase += f / float64(SampleRate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// shape applies a linear attack and release over a fixed-length stream.
type shape struct {
	s                    beep.Streamer
	pos, attack, release int
	total                int
}

func newShape(s beep.Streamer, d, attack, release time.Duration) *shape {
	return &shape{
		s:       s,
		total:   SampleRate.N(d),
		attack:  SampleRate.N(attack),
		release: SampleRate.N(release),
	}
}

func (e *shape) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			gain = math.Max(float64(left)/float64(e.release), 0)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *shape) Err() error { return e.s.Err() }

// gain wraps s in a volume effect with linear level v (0 silences).
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// note is a shaped tone with a short attack and a release over its last third.
func note(freq, endFreq float64, d time.Duration, w Wave) beep.Streamer {
	return newShape(newTone(freq, endFreq, d, w), d, 5*time.Millisecond, d/3)
}
