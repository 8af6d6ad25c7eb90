package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"blocksnake/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// tone is a short sine beep for one engine event
type tone struct {
	freq     float64
	duration time.Duration
}

var tones = map[game.EventKind]tone{
	game.EventAte:      {freq: 880, duration: 50 * time.Millisecond},
	game.EventGameOver: {freq: 220, duration: 300 * time.Millisecond},
}

// sound plays event tones; a zero value is muted
type sound struct {
	enabled bool
}

// newSound initializes the speaker. Audio failure is not fatal.
func newSound(mute bool) *sound {
	if mute {
		return &sound{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio initialization failed: %v", err)
		return &sound{}
	}
	return &sound{enabled: true}
}

// play beeps for ev if it has a tone
func (s *sound) play(ev game.Event) {
	if !s.enabled {
		return
	}
	t, ok := tones[ev.Kind]
	if !ok {
		return
	}
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(t.duration), sine))
}
