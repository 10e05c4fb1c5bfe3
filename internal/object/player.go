package object

import (
	"math"

	"github.com/tomz197/novasiege/internal/config"
	"github.com/tomz197/novasiege/internal/physics"
)

// AmmoMode selects the player's shot pattern.
type AmmoMode uint8

const (
	AmmoNormal AmmoMode = iota
	AmmoTriple
)

// Player is the ship controlled by the user.
type Player struct {
	X, Y      float64
	Health    int
	MaxHealth int
	Shield    int
	MaxShield int

	Invincible    float64 // seconds of damage immunity left
	HitFlash      float64
	ShootCooldown float64
	PulseCooldown float64
	TripleTimer   float64
	RapidTimer    float64
	Ammo          AmmoMode
	RapidFire     bool

	Age  float64
	Tilt float64 // visual bank in degrees

	cfg    config.PlayerTuning
	bullet BulletParams
	alive  bool
}

// NewPlayer places a fresh ship at the bottom center of the field.
func NewPlayer(cfg config.PlayerTuning, bullet BulletParams, field Field) *Player {
	return &Player{
		X:         field.Width / 2,
		Y:         field.Height - cfg.SpawnOffsetY,
		Health:    cfg.Health,
		MaxHealth: cfg.Health,
		MaxShield: cfg.MaxShield,
		cfg:       cfg,
		bullet:    bullet,
		alive:     true,
	}
}

// Update runs one tick: move, decay timers, fire, then pulse. It returns the
// bullets fired and whether a pulse was triggered.
func (p *Player) Update(ctx UpdateContext) (bullets []*Bullet, pulse bool) {
	if !p.alive {
		return nil, false
	}
	dt := ctx.Delta.Seconds()

	p.move(ctx, dt)
	p.tickTimers(dt)
	if ctx.Input.Fire {
		bullets = p.fire()
	}
	if ctx.Input.Pulse {
		pulse = p.tryPulse()
	}
	return bullets, pulse
}

func (p *Player) move(ctx UpdateContext, dt float64) {
	dx, dy := ctx.Input.Axis()
	if dx != 0 && dy != 0 {
		dx *= math.Sqrt2 / 2
		dy *= math.Sqrt2 / 2
	}

	p.X += dx * p.cfg.Speed * dt
	p.Y += dy * p.cfg.Speed * dt
	p.X = physics.Clamp(p.X, p.cfg.HalfWidth, ctx.Field.Width-p.cfg.HalfWidth)
	p.Y = physics.Clamp(p.Y, p.cfg.HalfHeight, ctx.Field.Height-p.cfg.HalfHeight)

	p.Tilt = physics.Lerp(p.Tilt, dx*18, min(1, dt*10))
}

func (p *Player) tickTimers(dt float64) {
	p.Age += dt
	p.ShootCooldown = decay(p.ShootCooldown, dt)
	p.Invincible = decay(p.Invincible, dt)
	p.HitFlash = decay(p.HitFlash, dt)
	p.PulseCooldown = decay(p.PulseCooldown, dt)

	if p.TripleTimer > 0 {
		p.TripleTimer = decay(p.TripleTimer, dt)
		if p.TripleTimer == 0 {
			p.Ammo = AmmoNormal
		}
	}
	if p.RapidTimer > 0 {
		p.RapidTimer = decay(p.RapidTimer, dt)
		if p.RapidTimer == 0 {
			p.RapidFire = false
		}
	}
}

func (p *Player) fire() []*Bullet {
	if p.ShootCooldown > 0 {
		return nil
	}
	rate := p.cfg.ShootRate
	if p.RapidFire {
		rate *= p.cfg.RapidFireFactor
	}
	p.ShootCooldown = 1 / rate

	originY := p.Y - p.cfg.HalfHeight
	if p.Ammo != AmmoTriple {
		return []*Bullet{NewBullet(p.X, originY, -math.Pi/2, TeamPlayer, p.bullet)}
	}

	spread := p.cfg.TripleSpreadDeg
	bullets := make([]*Bullet, 0, 3)
	for _, side := range []float64{-1, 0, 1} {
		angle := (-90 + side*spread) * math.Pi / 180
		bullets = append(bullets, NewBullet(p.X+side*p.cfg.TripleOffsetX, originY, angle, TeamPlayer, p.bullet))
	}
	return bullets
}

func (p *Player) tryPulse() bool {
	if p.PulseCooldown > 0 {
		return false
	}
	p.PulseCooldown = p.cfg.PulseCooldown
	return true
}

// TakeDamage applies damage to the shield first and the remainder to health.
// It does nothing while invincible. Any hit that lands, even one the shield
// fully absorbs, starts the invincibility window and the hit flash.
func (p *Player) TakeDamage(amount int) {
	if !p.alive || p.Invincible > 0 || amount <= 0 {
		return
	}

	absorbed := min(p.Shield, amount)
	p.Shield -= absorbed
	p.Health = max(0, p.Health-(amount-absorbed))
	p.HitFlash = p.cfg.HitFlash
	p.Invincible = p.cfg.Invincibility
	if p.Health == 0 {
		p.alive = false
	}
}

// ApplyPowerUp applies a pickup. Timed effects restart rather than stack.
func (p *Player) ApplyPowerUp(kind PowerUpKind) {
	switch kind {
	case PowerUpHealth:
		p.Health = min(p.MaxHealth, p.Health+p.cfg.HealthPickup)
	case PowerUpShield:
		p.Shield = p.MaxShield
	case PowerUpRapidFire:
		p.RapidTimer = p.cfg.RapidFireDuration
		p.RapidFire = true
	case PowerUpTriple:
		p.TripleTimer = p.cfg.TripleDuration
		p.Ammo = AmmoTriple
	}
}

// Alive reports whether the ship is still flying.
func (p *Player) Alive() bool { return p.alive }

// Position returns the ship center.
func (p *Player) Position() Point { return Point{X: p.X, Y: p.Y} }

// Vitality is health plus shield.
func (p *Player) Vitality() int { return p.Health + p.Shield }

// Hitbox is slightly smaller than the drawn ship.
func (p *Player) Hitbox() physics.Rect {
	inset := p.cfg.HitboxInset
	return physics.RectAround(p.X, p.Y, p.cfg.HalfWidth-inset, p.cfg.HalfHeight-inset)
}

// HalfExtents returns the drawn half width and height.
func (p *Player) HalfExtents() (float64, float64) {
	return p.cfg.HalfWidth, p.cfg.HalfHeight
}

// PulseReadiness is how charged the pulse is, from 0 (just used) to 1.
func (p *Player) PulseReadiness() float64 {
	if p.cfg.PulseCooldown <= 0 {
		return 1
	}
	return physics.Clamp(1-p.PulseCooldown/p.cfg.PulseCooldown, 0, 1)
}

// TimerRatios returns the remaining fraction of the triple and rapid timers.
func (p *Player) TimerRatios() (triple, rapid float64) {
	if p.cfg.TripleDuration > 0 {
		triple = p.TripleTimer / p.cfg.TripleDuration
	}
	if p.cfg.RapidFireDuration > 0 {
		rapid = p.RapidTimer / p.cfg.RapidFireDuration
	}
	return triple, rapid
}

// Visible reports whether the ship is drawn this frame; it blinks at 10Hz
// while invincible.
func (p *Player) Visible() bool {
	return p.alive && ShouldRenderBlink(p.Invincible, p.Age, 10)
}
