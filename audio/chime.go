// Package audio plays the optional hover chime.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const sampleRate = beep.SampleRate(48000)

// attack is the linear fade-in that avoids a click at tone start
const attack = 4 * time.Millisecond

// ToneGenerator produces a sine tone with a short attack and exponential decay
type ToneGenerator struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	pos    int
	total  int
	attack int
}

// NewToneGenerator creates a finite enveloped tone
func NewToneGenerator(sr beep.SampleRate, freq float64, duration time.Duration, volume float64) *ToneGenerator {
	return &ToneGenerator{
		sr:     sr,
		freq:   freq,
		volume: math.Max(0, math.Min(1, volume)),
		total:  sr.N(duration),
		attack: sr.N(attack),
	}
}

// Stream implements beep.Streamer
func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-5 * float64(g.pos) / float64(g.total))
		if g.attack > 0 && g.pos < g.attack {
			env *= float64(g.pos) / float64(g.attack)
		}
		v := g.volume * env * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer
func (g *ToneGenerator) Err() error {
	return nil
}

// Player outputs streamers
type Player interface {
	Play(s beep.Streamer)
}

// Chime plays a short tone each time the pointer enters the surface
type Chime struct {
	player   Player
	freq     float64
	duration time.Duration
	volume   float64
}

// NewChime creates a chime on player
func NewChime(player Player, freq float64, duration time.Duration, volume float64) *Chime {
	return &Chime{player: player, freq: freq, duration: duration, volume: volume}
}

// Play implements the engine's pointer-enter hook
func (c *Chime) Play() {
	if c == nil || c.player == nil || c.volume <= 0 {
		return
	}
	c.player.Play(NewToneGenerator(sampleRate, c.freq, c.duration, c.volume))
}
