package object

import (
	"math"

	"github.com/tomz197/novasiege/internal/config"
	"github.com/tomz197/novasiege/internal/physics"
)

// maxTrail bounds the trail buffer so bullets stay plain values.
const maxTrail = 8

// BulletParams describes one team's bullets.
type BulletParams struct {
	Speed       float64
	Damage      int
	Radius      float64
	CullMargin  float64
	TrailLength int
}

// NewBulletParams combines per-team values with the shared bullet settings.
func NewBulletParams(bt config.BulletTuning, shared config.BulletsTuning) BulletParams {
	return BulletParams{
		Speed:       bt.Speed,
		Damage:      bt.Damage,
		Radius:      bt.Radius,
		CullMargin:  shared.CullMargin,
		TrailLength: min(shared.TrailLength, maxTrail),
	}
}

// Bullet is a projectile owned by one team.
type Bullet struct {
	X, Y   float64
	VX, VY float64
	Team   Team
	Damage int
	Radius float64

	alive      bool
	cullMargin float64
	trail      [maxTrail]Point
	trailLen   int
	trailCap   int
}

// NewBullet fires a bullet from (x, y) at angle radians, where 0 points
// right and angles grow clockwise on screen.
func NewBullet(x, y, angle float64, team Team, p BulletParams) *Bullet {
	return &Bullet{
		X:          x,
		Y:          y,
		VX:         math.Cos(angle) * p.Speed,
		VY:         math.Sin(angle) * p.Speed,
		Team:       team,
		Damage:     p.Damage,
		Radius:     p.Radius,
		alive:      true,
		cullMargin: p.CullMargin,
		trailCap:   p.TrailLength,
	}
}

// Update records the trail, moves the bullet and culls it once it leaves
// the field.
func (b *Bullet) Update(dt float64, field Field) {
	if !b.alive {
		return
	}

	if b.trailCap > 0 {
		if b.trailLen == b.trailCap {
			copy(b.trail[:], b.trail[1:b.trailLen])
			b.trailLen--
		}
		b.trail[b.trailLen] = Point{X: b.X, Y: b.Y}
		b.trailLen++
	}

	b.X += b.VX * dt
	b.Y += b.VY * dt

	if field.Outside(b.X, b.Y, b.cullMargin) {
		b.alive = false
	}
}

// Alive reports whether the bullet is still in play.
func (b *Bullet) Alive() bool { return b.alive }

// Deactivate removes the bullet from play.
func (b *Bullet) Deactivate() { b.alive = false }

// Hitbox returns the square bounding the bullet.
func (b *Bullet) Hitbox() physics.Rect {
	return physics.RectAround(b.X, b.Y, b.Radius, b.Radius)
}

// Trail returns past positions, oldest first.
func (b *Bullet) Trail() []Point {
	return b.trail[:b.trailLen]
}
