package object

import (
	"math"
	"math/rand/v2"
)

// Tint is the palette entry a renderer picks for a particle.
type Tint uint8

const (
	TintWhite Tint = iota
	TintPlayer
	TintThrust
	TintPulse
	TintScout
	TintHunter
	TintTank
	TintHealth
	TintShield
	TintRapid
	TintTriple
)

// KindTint returns the tint used for an enemy kind's effects.
func KindTint(k Kind) Tint {
	switch k {
	case KindHunter:
		return TintHunter
	case KindTank:
		return TintTank
	}
	return TintScout
}

// PowerUpTint returns the tint used for a power-up kind.
func PowerUpTint(k PowerUpKind) Tint {
	switch k {
	case PowerUpShield:
		return TintShield
	case PowerUpRapidFire:
		return TintRapid
	case PowerUpTriple:
		return TintTriple
	}
	return TintHealth
}

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y        float64
	VX, VY      float64
	Lifetime    float64 // seconds remaining
	MaxLifetime float64
	Gravity     float64
	Size        float64
	Tint        Tint
}

// Fade is remaining lifetime over total lifetime.
func (p Particle) Fade() float64 {
	if p.MaxLifetime <= 0 {
		return 0
	}
	return p.Lifetime / p.MaxLifetime
}

// Burst describes a radial explosion.
type Burst struct {
	Count              int
	SpeedMin, SpeedMax float64
}

// Effect presets.
var (
	BurstExplosion = Burst{Count: 18, SpeedMin: 40, SpeedMax: 180}
	BurstKill      = Burst{Count: 20, SpeedMin: 40, SpeedMax: 180}
	BurstPickup    = Burst{Count: 12, SpeedMin: 30, SpeedMax: 100}
	BurstDeath     = Burst{Count: 40, SpeedMin: 60, SpeedMax: 240}
	BurstPulse     = Burst{Count: 28, SpeedMin: 80, SpeedMax: 240}
)

// ParticleSystem owns every live particle. Particles are cosmetic and never
// take part in collisions.
type ParticleSystem struct {
	particles []Particle
	rng       *rand.Rand
}

// NewParticleSystem creates an empty system drawing randomness from rng.
func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{rng: rng}
}

// EmitExplosion scatters a radial burst with gravity.
func (s *ParticleSystem) EmitExplosion(x, y float64, tint Tint, b Burst) {
	for range b.Count {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := uniform(s.rng, b.SpeedMin, b.SpeedMax)
		life := uniform(s.rng, 0.3, 0.8)
		s.particles = append(s.particles, Particle{
			X:           x,
			Y:           y,
			VX:          math.Cos(angle) * speed,
			VY:          math.Sin(angle) * speed,
			Lifetime:    life,
			MaxLifetime: life,
			Gravity:     80,
			Size:        uniform(s.rng, 1.5, 4),
			Tint:        tint,
		})
	}
}

// EmitThrust adds engine exhaust below the ship.
func (s *ParticleSystem) EmitThrust(x, y float64) {
	for range 3 {
		life := uniform(s.rng, 0.1, 0.25)
		s.particles = append(s.particles, Particle{
			X:           x + uniform(s.rng, -4, 4),
			Y:           y,
			VX:          uniform(s.rng, -20, 20),
			VY:          uniform(s.rng, 60, 140),
			Lifetime:    life,
			MaxLifetime: life,
			Size:        uniform(s.rng, 2, 5),
			Tint:        TintThrust,
		})
	}
}

// EmitHit adds a small white spark.
func (s *ParticleSystem) EmitHit(x, y float64) {
	for range 8 {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := uniform(s.rng, 30, 120)
		life := uniform(s.rng, 0.15, 0.35)
		s.particles = append(s.particles, Particle{
			X:           x,
			Y:           y,
			VX:          math.Cos(angle) * speed,
			VY:          math.Sin(angle) * speed,
			Lifetime:    life,
			MaxLifetime: life,
			Size:        uniform(s.rng, 1, 3),
			Tint:        TintWhite,
		})
	}
}

// Update ages every particle and drops the expired ones.
func (s *ParticleSystem) Update(dt float64) {
	kept := s.particles[:0]
	for _, p := range s.particles {
		p.Lifetime -= dt
		if p.Lifetime <= 0 {
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VY += p.Gravity * dt
		kept = append(kept, p)
	}
	s.particles = kept
}

// Particles returns the live particles. The slice is owned by the system.
func (s *ParticleSystem) Particles() []Particle {
	return s.particles
}

// Len returns the number of live particles.
func (s *ParticleSystem) Len() int {
	return len(s.particles)
}
