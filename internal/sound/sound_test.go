package sound

import (
	"io"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/tomz197/novasiege/internal/sfx"
)

func drain(t *testing.T, s beep.Streamer) (count int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := range n {
			peak = max(peak, math.Abs(buf[i][0]), math.Abs(buf[i][1]))
		}
		count += n
		if !ok {
			return count, peak
		}
		if count > int(sampleRate)*5 {
			t.Fatal("streamer never ended")
		}
	}
}

func TestCueStreamersEnd(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	want := map[sfx.Cue]int{
		sfx.Shoot:     sampleRate.N(80e6),
		sfx.Hit:       sampleRate.N(60e6),
		sfx.PowerUp:   sampleRate.N(250e6),
		sfx.GameOver:  sampleRate.N(900e6),
		sfx.Explosion: sampleRate.N(400e6),
	}

	for _, cue := range sfx.Cues {
		t.Run(string(cue), func(t *testing.T) {
			s := cueStreamer(cue, sampleRate, rng)
			if s == nil {
				t.Fatal("no streamer for cue")
			}
			n, peak := drain(t, s)
			if n != want[cue] {
				t.Errorf("samples = %d, want %d", n, want[cue])
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak = %v, want within (0, 1]", peak)
			}
		})
	}
}

func TestUnknownCue(t *testing.T) {
	if s := cueStreamer("laser", sampleRate, rand.New(rand.NewPCG(1, 1))); s != nil {
		t.Error("expected nil streamer for unknown cue")
	}
}

func TestVolumeScaling(t *testing.T) {
	p := New(0.5, log.New(io.Discard))

	loud, _ := drain(t, p.streamer(sfx.Shoot, 1))
	if loud == 0 {
		t.Fatal("empty stream")
	}

	_, quiet := drain(t, p.streamer(sfx.Shoot, 0.5))
	_, full := drain(t, New(1, log.New(io.Discard)).streamer(sfx.Shoot, 1))
	if math.Abs(quiet-full/4) > 1e-9 {
		t.Errorf("peak at quarter gain = %v, want %v", quiet, full/4)
	}

	_, silent := drain(t, New(0, log.New(io.Discard)).streamer(sfx.Shoot, 1))
	if silent != 0 {
		t.Errorf("muted peak = %v", silent)
	}
}

func TestPlayBeforeInitIsNoOp(t *testing.T) {
	p := New(1, log.New(io.Discard))
	p.Play(sfx.Explosion, 1)
	p.Play("laser", 1)
	p.Close()
}
