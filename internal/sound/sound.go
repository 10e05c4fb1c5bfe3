// Package sound plays game cues through the local speaker.
package sound

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/novasiege/internal/sfx"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes one-shot cues onto the speaker. Until Init succeeds every
// cue is dropped.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      float64
	rng         *rand.Rand
	logger      *log.Logger
	initialized bool
}

var _ sfx.Sink = (*Player)(nil)

// New creates a player with a master volume in [0, 1].
func New(master float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer:  &beep.Mixer{},
		master: master,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		logger: logger,
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues a cue. It never blocks on the audio device.
func (p *Player) Play(cue sfx.Cue, volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := p.streamer(cue, volume)
	if s == nil {
		p.logger.Debug("unknown sound cue", "cue", cue)
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// streamer builds the volume-scaled stream for a cue.
func (p *Player) streamer(cue sfx.Cue, volume float64) beep.Streamer {
	src := cueStreamer(cue, sampleRate, p.rng)
	if src == nil {
		return nil
	}
	gain := volume * p.master
	return &effects.Volume{
		Streamer: src,
		Base:     2,
		Volume:   math.Log2(max(gain, 1e-6)),
		Silent:   gain <= 0,
	}
}

// Close stops every playing cue.
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
