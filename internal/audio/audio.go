// Package audio synthesizes the game's sound cues. Playing them through the
// system speaker lives in the playback subpackage, the only part that needs
// an audio device.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every generated cue is rendered at.
const SampleRate = beep.SampleRate(44100)

// Generator builds a fresh, finite streamer for one playback of a cue.
type Generator func() beep.Streamer

// Raygun is a short descending square-wave zap.
func Raygun() beep.Streamer {
	return newSweep(1400, 300, 120*time.Millisecond, 0.25)
}

// Explosion is a burst of decaying noise.
func Explosion() beep.Streamer {
	n := SampleRate.N(350 * time.Millisecond)
	pos := 0
	noise := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			if pos >= n {
				return i, i > 0
			}
			envelope := 1 - float64(pos)/float64(n)
			v := (rand.Float64()*2 - 1) * envelope * envelope * 0.5
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
	return &effects.Volume{Streamer: noise, Base: 2, Volume: -0.5}
}

// newSweep generates a square wave sliding linearly from one frequency to another.
func newSweep(fromHz, toHz float64, d time.Duration, amp float64) beep.Streamer {
	n := SampleRate.N(d)
	pos := 0
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			if pos >= n {
				return i, i > 0
			}
			t := float64(pos) / float64(n)
			freq := fromHz + (toHz-fromHz)*t
			v := amp
			if phase >= 0.5 {
				v = -amp
			}
			samples[i][0] = v
			samples[i][1] = v
			phase += freq / float64(SampleRate)
			phase -= math.Floor(phase)
			pos++
		}
		return len(samples), true
	})
}
