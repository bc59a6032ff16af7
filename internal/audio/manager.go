package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

// SoundManager owns the speaker and mixes cues into it. Until Init succeeds
// every Play is a no-op, so a machine without an audio device runs silent.
type SoundManager struct {
	mu     sync.Mutex
	log    zerolog.Logger
	mixer  *beep.Mixer
	ready  bool
	muted  bool
	volume float64
}

// NewSoundManager returns a silent manager at full volume.
func NewSoundManager(log zerolog.Logger) *SoundManager {
	return &SoundManager{
		log:    log,
		mixer:  &beep.Mixer{},
		volume: 1,
	}
}

// Init opens the speaker. It is safe to call more than once.
func (sm *SoundManager) Init() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.ready {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		sm.log.Warn().Err(err).Msg("audio unavailable, running silent")
		return err
	}
	speaker.Play(sm.mixer)
	sm.ready = true
	sm.log.Debug().Int("sample_rate", int(SampleRate)).Msg("audio ready")
	return nil
}

// Play queues cue c. Nothing happens while muted or before Init.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.ready || sm.muted {
		return
	}
	s := Streamer(c, sm.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// SetVolume sets the linear master volume, clamped to [0, 1].
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = min(max(v, 0), 1)
}

// ToggleMute flips the mute flag and returns the new value. Muting drops
// cues already playing.
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	if sm.muted && sm.ready {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
	}
	return sm.muted
}

// Muted reports the mute flag.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Ready reports whether the speaker was opened.
func (sm *SoundManager) Ready() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.ready
}

// Close stops every cue. The speaker itself stays open for the process.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.ready {
		return
	}
	speaker.Clear()
	sm.mixer.Clear()
	sm.ready = false
}
