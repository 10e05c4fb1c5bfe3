package object

import (
	"math"
	"math/rand/v2"

	"github.com/tomz197/novasiege/internal/physics"
)

// Enemy is a hostile ship. Its behavior comes entirely from its KindStats.
type Enemy struct {
	X, Y         float64
	Kind         Kind
	HP           int
	MaxHP        int
	FireCooldown float64
	HitFlash     float64
	Age          float64

	stats    KindStats
	params   EnemyParams
	alive    bool
	originX  float64
	sineAmp  float64
	sineFreq float64
}

func newEnemy(k Kind, x, y float64, stats KindStats, params EnemyParams, rng *rand.Rand) *Enemy {
	return &Enemy{
		X:            x,
		Y:            y,
		Kind:         k,
		HP:           stats.HP,
		MaxHP:        stats.HP,
		FireCooldown: rng.Float64() / stats.FireRate,
		stats:        stats,
		params:       params,
		alive:        true,
		originX:      x,
		sineAmp:      uniform(rng, params.SineAmpMin, params.SineAmpMax),
		sineFreq:     uniform(rng, params.SineFreqMin, params.SineFreqMax),
	}
}

// Update advances timers, applies the movement rule and returns any bullets
// fired this tick. Dead enemies do nothing.
func (e *Enemy) Update(ctx UpdateContext) []*Bullet {
	if !e.alive {
		return nil
	}
	dt := ctx.Delta.Seconds()

	e.Age += dt
	e.FireCooldown -= dt
	e.HitFlash = decay(e.HitFlash, dt)

	switch e.stats.Movement {
	case MoveStraight:
		e.Y += e.stats.Speed * dt
	case MoveSine:
		e.Y += e.stats.Speed * dt
		e.X = e.originX + math.Sin(e.Age*e.sineFreq)*e.sineAmp
	case MoveTrack:
		step := e.stats.Speed * dt
		e.X += physics.Clamp((ctx.Target.X-e.X)*e.params.TrackGain*dt, -step, step)
		e.Y += e.stats.Speed * e.params.TrackDescent * dt
	}

	e.X = ctx.Field.ClampX(e.X, e.stats.Size)

	if e.Y > ctx.Field.Height+e.params.EscapeMargin {
		e.alive = false
		return nil
	}

	if e.FireCooldown <= 0 {
		e.FireCooldown = 1 / e.stats.FireRate
		return e.fire()
	}
	return nil
}

// fire emits Shots bullets fanned SpreadDeg apart around straight down.
func (e *Enemy) fire() []*Bullet {
	n := e.stats.Shots
	bullets := make([]*Bullet, 0, n)
	for i := range n {
		offset := (float64(i) - float64(n-1)/2) * e.stats.SpreadDeg
		angle := (90 + offset) * math.Pi / 180
		bullets = append(bullets, NewBullet(e.X, e.Y+e.stats.Size, angle, TeamEnemy, e.params.Bullet))
	}
	return bullets
}

// TakeDamage subtracts HP and reports whether this hit killed the enemy.
// Damage to a dead enemy is ignored.
func (e *Enemy) TakeDamage(amount int) bool {
	if !e.alive {
		return false
	}
	e.HP = max(0, e.HP-amount)
	e.HitFlash = e.params.HitFlash
	if e.HP == 0 {
		e.alive = false
		return true
	}
	return false
}

// Destroy removes the enemy without a kill.
func (e *Enemy) Destroy() { e.alive = false }

// Alive reports whether the enemy is still in play.
func (e *Enemy) Alive() bool { return e.alive }

// Size is the half extent of the enemy's square hitbox.
func (e *Enemy) Size() float64 { return e.stats.Size }

// ScoreValue is the base score awarded for a kill.
func (e *Enemy) ScoreValue() int { return e.stats.Score }

// Hitbox returns the enemy's square.
func (e *Enemy) Hitbox() physics.Rect {
	return physics.RectAround(e.X, e.Y, e.stats.Size, e.stats.Size)
}

// HealthRatio is HP over MaxHP in [0, 1].
func (e *Enemy) HealthRatio() float64 {
	if e.MaxHP <= 0 {
		return 0
	}
	return float64(e.HP) / float64(e.MaxHP)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
