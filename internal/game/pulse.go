package game

import (
	"github.com/tomz197/novasiege/internal/object"
	"github.com/tomz197/novasiege/internal/physics"
)

// triggerPulse applies the radial shockwave around the player to the
// entities present right now.
func (g *Game) triggerPulse() {
	w := g.world
	p := w.Player
	radius := g.tuning.Pulse.Radius

	w.Particles.EmitExplosion(p.X, p.Y, object.TintPulse, object.BurstPulse)

	cleared := 0
	for _, b := range w.Bullets {
		if b.Alive() && b.Team == object.TeamEnemy && physics.PointInCircle(b.X, b.Y, p.X, p.Y, radius) {
			b.Deactivate()
			w.Particles.EmitHit(b.X, b.Y)
			cleared++
		}
	}

	hit := 0
	for _, e := range w.Enemies {
		if !e.Alive() || !physics.PointInCircle(e.X, e.Y, p.X, p.Y, radius) {
			continue
		}
		hit++
		if e.TakeDamage(g.tuning.Pulse.Damage) {
			g.onEnemyKilled(e)
		}
	}

	g.logger.Debug("pulse", "bullets_cleared", cleared, "enemies_hit", hit)
}
