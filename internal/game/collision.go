package game

import (
	"github.com/tomz197/novasiege/internal/object"
	"github.com/tomz197/novasiege/internal/sfx"
)

// checkCollisions resolves one tick of contacts in a fixed order: player
// bullets against enemies, enemy bullets against the player, enemy bodies
// against the player, then power-up pickups.
func (g *Game) checkCollisions() {
	g.resolvePlayerBullets()

	w := g.world
	p := w.Player
	if !p.Alive() {
		return
	}
	playerBox := p.Hitbox()

	for _, b := range w.Bullets {
		if !p.Alive() {
			break
		}
		if !b.Alive() || b.Team != object.TeamEnemy || !b.Hitbox().Overlaps(playerBox) {
			continue
		}
		g.damagePlayer(b.Damage)
		b.Deactivate()
		w.Particles.EmitHit(b.X, b.Y)
		g.sound.Play(sfx.Hit, 0.5)
	}

	for _, e := range w.Enemies {
		if !p.Alive() {
			break
		}
		if !e.Alive() || !e.Hitbox().Overlaps(playerBox) {
			continue
		}
		g.damagePlayer(g.tuning.Enemies.ContactDamage)
		e.Destroy()
		w.Particles.EmitExplosion(e.X, e.Y, object.KindTint(e.Kind), object.BurstExplosion)
		g.sound.Play(sfx.Explosion, 0.7)
	}

	for _, pu := range w.PowerUps {
		if !p.Alive() {
			break
		}
		if !pu.Alive() || !pu.Hitbox().Overlaps(playerBox) {
			continue
		}
		p.ApplyPowerUp(pu.Kind)
		pu.Deactivate()
		w.Particles.EmitExplosion(pu.X, pu.Y, object.PowerUpTint(pu.Kind), object.BurstPickup)
		g.sound.Play(sfx.PowerUp, 0.8)
	}
}

// resolvePlayerBullets tests each player bullet against nearby enemies in
// collection order. A bullet stops at the first live enemy it overlaps.
func (g *Game) resolvePlayerBullets() {
	w := g.world

	g.grid.Clear()
	for i, e := range w.Enemies {
		if e.Alive() {
			g.grid.Insert(e.X, e.Y, i)
		}
	}

	for _, b := range w.Bullets {
		if !b.Alive() || b.Team != object.TeamPlayer {
			continue
		}
		box := b.Hitbox()
		for _, i := range g.grid.Nearby(b.X, b.Y) {
			e := w.Enemies[i]
			if !e.Alive() || !box.Overlaps(e.Hitbox()) {
				continue
			}
			killed := e.TakeDamage(b.Damage)
			b.Deactivate()
			w.Particles.EmitHit(b.X, b.Y)
			g.sound.Play(sfx.Hit, 0.5)
			if killed {
				g.onEnemyKilled(e)
			}
			break
		}
	}
}

// damagePlayer applies damage and breaks the combo if anything landed.
func (g *Game) damagePlayer(amount int) {
	w := g.world
	before := w.Player.Vitality()
	w.Player.TakeDamage(amount)
	if w.Player.Vitality() < before {
		w.breakCombo()
	}
}

// onEnemyKilled scores a kill made by a bullet or the pulse.
func (g *Game) onEnemyKilled(e *object.Enemy) {
	w := g.world
	sc := g.tuning.Scoring

	w.ComboChain++
	w.Multiplier = min(sc.MultiplierCap, 1+w.ComboChain/sc.ChainStep)
	w.ComboTimer = sc.ComboWindow
	w.Score += e.ScoreValue() * w.Multiplier
	w.ScorePop = 1

	w.Particles.EmitExplosion(e.X, e.Y, object.KindTint(e.Kind), object.BurstKill)
	g.sound.Play(sfx.Explosion, 0.6)

	if g.rng.Float64() < g.tuning.PowerUps.DropChance {
		kind := object.RandomPowerUpKind(g.rng)
		w.PowerUps = append(w.PowerUps, object.NewPowerUp(e.X, e.Y, kind, g.tuning.PowerUps))
	}
}
