package game

import (
	"github.com/tomz197/novasiege/internal/object"
)

// World is the state of one play session. A fresh World is built on every
// start, and only the tick pipeline mutates it.
type World struct {
	Player    *object.Player
	Enemies   []*object.Enemy
	Bullets   []*object.Bullet
	PowerUps  []*object.PowerUp
	Particles *object.ParticleSystem
	Spawner   *object.EnemySpawner

	Score      int
	ComboChain int
	ComboTimer float64
	Multiplier int
	NewRecord  bool
	ScorePop   float64 // 1 right after a kill, decays to 0
}

func (g *Game) newWorld() *World {
	t := g.tuning
	return &World{
		Player:     object.NewPlayer(t.Player, object.NewBulletParams(t.Bullets.Player, t.Bullets), g.field),
		Particles:  object.NewParticleSystem(g.rng),
		Spawner:    object.NewEnemySpawner(t.Spawner),
		Multiplier: 1,
	}
}

// prune drops every dead entity, keeping the survivors in order.
func (w *World) prune() {
	w.Enemies = compact(w.Enemies, (*object.Enemy).Alive)
	w.Bullets = compact(w.Bullets, (*object.Bullet).Alive)
	w.PowerUps = compact(w.PowerUps, (*object.PowerUp).Alive)
}

func compact[T any](s []*T, alive func(*T) bool) []*T {
	kept := s[:0]
	for _, v := range s {
		if alive(v) {
			kept = append(kept, v)
		}
	}
	clear(s[len(kept):])
	return kept
}

func (w *World) breakCombo() {
	w.ComboChain = 0
	w.ComboTimer = 0
	w.Multiplier = 1
}

// decayCombo runs once per playing tick.
func (w *World) decayCombo(dt float64) {
	w.ComboTimer = max(0, w.ComboTimer-dt)
	if w.ComboTimer == 0 && w.Multiplier > 1 {
		w.breakCombo()
	}
}
