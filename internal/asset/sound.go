package asset

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/audio"
)

// CuePlayer starts one playback of a synthesized cue.
type CuePlayer interface {
	Play(gen audio.Generator) error
}

// Sounds plays named sound cues, fire-and-forget. A missing resource, a
// missing output device or a panicking backend never reaches the caller.
type Sounds struct {
	Registry *Registry
	Player   CuePlayer   // Nil means silent
	Logger   *log.Logger // Optional, failures are logged at debug level
}

// Play looks up the named sound and starts it.
func (s *Sounds) Play(name string) {
	if s == nil || s.Player == nil || s.Registry == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && s.Logger != nil {
			s.Logger.Debug("sound playback panicked", "sound", name, "panic", r)
		}
	}()

	h, err := s.Registry.Resolve(name)
	if err == nil && h.Sound == nil {
		return
	}
	if err == nil {
		err = s.Player.Play(h.Sound)
	}
	if err != nil && s.Logger != nil {
		s.Logger.Debug("sound playback failed", "sound", name, "err", err)
	}
}
