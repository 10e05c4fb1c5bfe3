// Package game owns the simulation: the state machine, the per-tick update
// pipeline, collision resolution and scoring. It publishes an immutable
// Snapshot after every tick for renderers.
package game

import (
	"io"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/novasiege/internal/config"
	"github.com/tomz197/novasiege/internal/input"
	"github.com/tomz197/novasiege/internal/object"
	"github.com/tomz197/novasiege/internal/physics"
	"github.com/tomz197/novasiege/internal/sfx"
)

// DefaultMaxDelta bounds a single simulation step.
const DefaultMaxDelta = 50 * time.Millisecond

// Options configures a Game. Zero values pick defaults.
type Options struct {
	Tuning   *config.Tuning
	Rand     *rand.Rand
	Sound    sfx.Sink
	Logger   *log.Logger
	MaxDelta time.Duration
}

// NewRand returns a PCG source for seed. Seed 0 picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Game is the controller. It is not safe for concurrent use except for
// Snapshot, which may be called from any goroutine.
type Game struct {
	tuning   *config.Tuning
	kinds    *object.KindTable
	field    object.Field
	rng      *rand.Rand
	sound    sfx.Sink
	logger   *log.Logger
	maxDelta time.Duration
	grid     *physics.SpatialGrid

	state     State
	world     *World
	stars     *object.StarField
	highScore int
	clock     float64
	quit      bool

	snapshot atomic.Pointer[Snapshot]
}

// New creates a game sitting in the menu.
func New(opts Options) (*Game, error) {
	t := opts.Tuning
	if t == nil {
		t = config.DefaultTuning()
	}
	kinds, err := object.NewKindTable(t)
	if err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = NewRand(0)
	}
	sound := opts.Sound
	if sound == nil {
		sound = sfx.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	maxDelta := opts.MaxDelta
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}

	field := object.Field{Width: t.Field.Width, Height: t.Field.Height}
	g := &Game{
		tuning:   t,
		kinds:    kinds,
		field:    field,
		rng:      rng,
		sound:    sound,
		logger:   logger,
		maxDelta: maxDelta,
		grid:     physics.NewSpatialGrid(field.Width, field.Height, t.MaxEnemySize()+t.Bullets.Player.Radius),
		state:    StateMenu,
		stars:    object.NewStarField(field, rng),
	}
	g.world = g.newWorld()
	g.publish()
	return g, nil
}

// SanitizeDelta clamps a frame delta into [0, limit].
func SanitizeDelta(d, limit time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return min(d, limit)
}

// Tick advances the game by one frame.
func (g *Game) Tick(delta time.Duration, in input.Actions) {
	dt := SanitizeDelta(delta, g.maxDelta)
	secs := dt.Seconds()
	g.clock += secs

	if in.Quit {
		if !g.quit {
			g.logger.Info("quit requested", "state", g.state)
		}
		g.quit = true
		g.publish()
		return
	}

	g.handleEdges(in)

	g.stars.Update(secs)
	switch g.state {
	case StatePlaying:
		g.updatePlaying(dt, in)
	case StateGameOver:
		g.world.Particles.Update(secs)
	}

	g.publish()
}

// handleEdges applies the edge-triggered actions legal in the current state.
func (g *Game) handleEdges(in input.Actions) {
	switch g.state {
	case StateMenu, StateGameOver:
		if in.Confirm {
			g.start()
		}
	case StatePlaying:
		if in.Pause {
			g.setState(StatePaused)
		}
	case StatePaused:
		if in.Pause {
			g.setState(StatePlaying)
		}
	}
}

func (g *Game) start() {
	g.world = g.newWorld()
	g.setState(StatePlaying)
}

func (g *Game) setState(s State) {
	g.logger.Debug("state change", "from", g.state, "to", s)
	g.state = s
}

// State returns the current mode.
func (g *Game) State() State { return g.state }

// Quitting reports whether a quit action has been seen.
func (g *Game) Quitting() bool { return g.quit }

// HighScore returns the best score seen by this game.
func (g *Game) HighScore() int { return g.highScore }

// SetHighScore seeds the best score, e.g. from a shared scoreboard.
func (g *Game) SetHighScore(score int) {
	g.highScore = max(0, score)
	g.publish()
}

// Score returns the current session score.
func (g *Game) Score() int { return g.world.Score }

// Field returns the playfield dimensions.
func (g *Game) Field() object.Field { return g.field }
