package main

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	splashFreq   = 660
	splashLength = 40 * time.Millisecond
	splashGap    = 120 * time.Millisecond
)

// Splash plays a short tone when water appears. Requests made within one
// frame collapse into a single tone.
type Splash struct {
	ready   bool
	pending bool
	last    time.Time
}

// NewSplash opens the speaker. The returned Splash is usable even when the
// error is non-nil; it just stays silent.
func NewSplash() (*Splash, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &Splash{}, fmt.Errorf("speaker init: %w", err)
	}
	return &Splash{ready: true}, nil
}

// Request marks a tone for the next Flush.
func (s *Splash) Request() {
	if s != nil {
		s.pending = true
	}
}

// Flush plays the pending tone unless one played within the last gap.
func (s *Splash) Flush(now time.Time) {
	if s == nil || !s.pending {
		return
	}
	s.pending = false
	if !s.ready || now.Sub(s.last) < splashGap {
		return
	}
	tone, err := generators.SineTone(sampleRate, splashFreq)
	if err != nil {
		return
	}
	s.last = now
	speaker.Play(beep.Take(sampleRate.N(splashLength), tone))
}

// Close releases the speaker.
func (s *Splash) Close() {
	if s != nil && s.ready {
		speaker.Close()
		s.ready = false
	}
}
