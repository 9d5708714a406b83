// Package playback plays synthesized cues through the system speaker.
// It is the only package that opens an audio device, so only the local
// game links it.
package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/invaders/internal/audio"
)

// ErrNotInitialized is returned when playing before the speaker is up.
var ErrNotInitialized = errors.New("playback: speaker not initialized")

// Player mixes cues into the system speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a player. Call Init before Play.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the speaker. It fails on machines without an output device;
// callers are expected to carry on silently.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(audio.SampleRate, audio.SampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play starts one playback of the cue and returns immediately.
func (p *Player) Play(gen audio.Generator) error {
	if p == nil {
		return ErrNotInitialized
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return ErrNotInitialized
	}
	speaker.Lock()
	p.mixer.Add(gen())
	speaker.Unlock()
	return nil
}

// Close stops everything that is playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
