package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/novasiege/internal/sfx"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sweep is a one-shot tone that glides from one frequency to another with a
// linear fade out.
type sweep struct {
	from, to float64
	wave     Wave
	rate     beep.SampleRate
	total    int
	pos      int
	phase    float64
	rng      *rand.Rand
}

func newSweep(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate, rng *rand.Rand) *sweep {
	return &sweep{
		from:  from,
		to:    to,
		wave:  wave,
		rate:  rate,
		total: rate.N(d),
		rng:   rng,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		t := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*t

		var v float64
		switch s.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			v = 1
			if s.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (s.phase - 0.5)
		case WaveNoise:
			v = s.rng.Float64()*2 - 1
		}
		v *= 0.5 * (1 - t)

		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// cueStreamer synthesizes the effect for a cue, or returns nil for cues it
// does not know.
func cueStreamer(cue sfx.Cue, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	switch cue {
	case sfx.Shoot:
		return newSweep(880, 440, 80*time.Millisecond, WaveSquare, rate, rng)
	case sfx.Hit:
		return newSweep(0, 0, 60*time.Millisecond, WaveNoise, rate, rng)
	case sfx.Explosion:
		d := 400 * time.Millisecond
		return beep.Take(rate.N(d), beep.Mix(
			newSweep(0, 0, d, WaveNoise, rate, rng),
			newSweep(90, 40, d, WaveSine, rate, rng),
		))
	case sfx.PowerUp:
		return newSweep(440, 1320, 250*time.Millisecond, WaveSine, rate, rng)
	case sfx.GameOver:
		return newSweep(440, 110, 900*time.Millisecond, WaveSaw, rate, rng)
	}
	return nil
}
