package game

import (
	"time"

	"github.com/tomz197/novasiege/internal/input"
	"github.com/tomz197/novasiege/internal/object"
	"github.com/tomz197/novasiege/internal/sfx"
)

// updatePlaying runs the fixed pipeline: player, spawner, enemies, bullets,
// power-ups, particles, collisions, pruning.
func (g *Game) updatePlaying(dt time.Duration, in input.Actions) {
	w := g.world
	p := w.Player
	secs := dt.Seconds()

	ctx := object.UpdateContext{
		Delta:  dt,
		Input:  in,
		Field:  g.field,
		Target: p.Position(),
	}

	bullets, pulse := p.Update(ctx)
	w.decayCombo(secs)
	if len(bullets) > 0 {
		g.sound.Play(sfx.Shoot, 0.4)
		w.Bullets = append(w.Bullets, bullets...)
	}
	if pulse {
		g.triggerPulse()
	}
	if p.Alive() {
		_, hh := p.HalfExtents()
		w.Particles.EmitThrust(p.X, p.Y+hh)
	}

	if kind, ok := w.Spawner.Update(secs, w.Score, g.rng); ok {
		g.spawnEnemy(kind)
	}

	ctx.Target = p.Position()
	for _, e := range w.Enemies {
		w.Bullets = append(w.Bullets, e.Update(ctx)...)
	}
	for _, b := range w.Bullets {
		b.Update(secs, g.field)
	}
	for _, pu := range w.PowerUps {
		pu.Update(secs, g.field)
	}
	w.Particles.Update(secs)
	w.ScorePop = max(0, w.ScorePop-secs*4)

	g.checkCollisions()
	w.prune()
	g.checkInvariants()

	if !p.Alive() {
		g.onPlayerDeath()
	}
}

func (g *Game) spawnEnemy(kind object.Kind) {
	e := g.tuning.Enemies
	x := e.SpawnMarginX + g.rng.Float64()*(g.field.Width-2*e.SpawnMarginX)
	g.world.Enemies = append(g.world.Enemies, g.kinds.Spawn(kind, x, e.SpawnY, g.rng))
}

func (g *Game) onPlayerDeath() {
	w := g.world
	p := w.Player

	w.Particles.EmitExplosion(p.X, p.Y, object.TintPlayer, object.BurstDeath)
	g.sound.Play(sfx.GameOver, 0.9)

	w.NewRecord = w.Score > g.highScore
	if w.NewRecord {
		g.highScore = w.Score
	}
	g.setState(StateGameOver)
	g.logger.Info("game over", "score", w.Score, "high_score", g.highScore, "new_record", w.NewRecord, "wave", w.Spawner.Wave())
}
