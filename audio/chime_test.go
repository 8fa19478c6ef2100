package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// TestToneGeneratorRangeAndLength verifies samples stay in [-volume, volume] and the stream ends
func TestToneGeneratorRangeAndLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	g := NewToneGenerator(rate, 880, 50*time.Millisecond, 0.3)

	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := g.Stream(buf)
		for i := 0; i < n; i++ {
			if math.Abs(buf[i][0]) > 0.3+1e-9 {
				t.Fatalf("sample %d = %v exceeds volume", total+i, buf[i][0])
			}
			if buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d channels differ", total+i)
			}
		}
		total += n
		if !ok {
			break
		}
	}

	if want := rate.N(50 * time.Millisecond); total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
	if g.Err() != nil {
		t.Errorf("Err() = %v", g.Err())
	}
}

// TestToneGeneratorAttack verifies the tone starts from silence
func TestToneGeneratorAttack(t *testing.T) {
	g := NewToneGenerator(beep.SampleRate(48000), 440, 100*time.Millisecond, 1)
	buf := make([][2]float64, 1)
	g.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %v, want 0", buf[0][0])
	}
}

type recordingPlayer struct {
	played []beep.Streamer
}

func (p *recordingPlayer) Play(s beep.Streamer) { p.played = append(p.played, s) }

func TestChimePlay(t *testing.T) {
	p := &recordingPlayer{}
	c := NewChime(p, 660, 80*time.Millisecond, 0.2)
	c.Play()
	c.Play()
	if len(p.played) != 2 {
		t.Fatalf("played %d streamers, want 2", len(p.played))
	}

	muted := NewChime(p, 660, 80*time.Millisecond, 0)
	muted.Play()
	if len(p.played) != 2 {
		t.Error("muted chime played")
	}

	var nilChime *Chime
	nilChime.Play()
}

// TestSpeakerPlayerDropsBeforeInit verifies Play and Cleanup are safe without a device
func TestSpeakerPlayerDropsBeforeInit(t *testing.T) {
	p := NewSpeakerPlayer()
	p.Play(NewToneGenerator(sampleRate, 440, time.Millisecond, 0.1))
	p.Cleanup()
}
