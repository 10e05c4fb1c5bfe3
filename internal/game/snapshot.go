package game

import (
	"github.com/tomz197/novasiege/internal/object"
)

// Snapshot is a read-only copy of the game after a tick. Nothing in it is
// shared with the live simulation.
type Snapshot struct {
	State     State
	Field     object.Field
	Clock     float64 // seconds since the game was created
	HighScore int

	Player    object.Player
	Enemies   []object.Enemy
	Bullets   []object.Bullet
	PowerUps  []object.PowerUp
	Particles []object.Particle
	Stars     []object.Star

	Score      int
	Multiplier int
	ComboRatio float64 // remaining combo window, 0 to 1
	ScorePop   float64
	Wave       int
	NewRecord  bool
}

// Snapshot returns the state published by the last tick. Safe for
// concurrent use.
func (g *Game) Snapshot() *Snapshot {
	return g.snapshot.Load()
}

func (g *Game) publish() {
	w := g.world
	s := &Snapshot{
		State:      g.state,
		Field:      g.field,
		Clock:      g.clock,
		HighScore:  g.highScore,
		Player:     *w.Player,
		Enemies:    make([]object.Enemy, len(w.Enemies)),
		Bullets:    make([]object.Bullet, len(w.Bullets)),
		PowerUps:   make([]object.PowerUp, len(w.PowerUps)),
		Particles:  append([]object.Particle(nil), w.Particles.Particles()...),
		Stars:      append([]object.Star(nil), g.stars.Stars()...),
		Score:      w.Score,
		Multiplier: w.Multiplier,
		ScorePop:   w.ScorePop,
		Wave:       w.Spawner.Wave(),
		NewRecord:  w.NewRecord,
	}
	if window := g.tuning.Scoring.ComboWindow; window > 0 {
		s.ComboRatio = w.ComboTimer / window
	}
	for i, e := range w.Enemies {
		s.Enemies[i] = *e
	}
	for i, b := range w.Bullets {
		s.Bullets[i] = *b
	}
	for i, pu := range w.PowerUps {
		s.PowerUps[i] = *pu
	}
	g.snapshot.Store(s)
}
