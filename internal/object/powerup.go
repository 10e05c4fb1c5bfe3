package object

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/tomz197/novasiege/internal/config"
	"github.com/tomz197/novasiege/internal/physics"
)

// PowerUpKind is the effect a power-up applies on pickup.
type PowerUpKind uint8

const (
	PowerUpHealth PowerUpKind = iota
	PowerUpShield
	PowerUpRapidFire
	PowerUpTriple
	powerUpKindCount
)

var powerUpLabels = [powerUpKindCount]string{"HP", "SH", "RF", "3X"}

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpHealth:
		return "health"
	case PowerUpShield:
		return "shield"
	case PowerUpRapidFire:
		return "rapid"
	case PowerUpTriple:
		return "triple"
	}
	return fmt.Sprintf("powerup(%d)", uint8(k))
}

// Label is the two-letter tag shown on the pickup.
func (k PowerUpKind) Label() string {
	if k < powerUpKindCount {
		return powerUpLabels[k]
	}
	return "??"
}

// RandomPowerUpKind picks a kind uniformly.
func RandomPowerUpKind(rng *rand.Rand) PowerUpKind {
	return PowerUpKind(rng.IntN(int(powerUpKindCount)))
}

// PowerUp falls toward the bottom edge until collected or lost.
type PowerUp struct {
	X, Y   float64
	Kind   PowerUpKind
	Speed  float64
	Radius float64
	Age    float64

	alive      bool
	cullMargin float64
}

// NewPowerUp drops a power-up at (x, y).
func NewPowerUp(x, y float64, kind PowerUpKind, t config.PowerUpTuning) *PowerUp {
	return &PowerUp{
		X:          x,
		Y:          y,
		Kind:       kind,
		Speed:      t.FallSpeed,
		Radius:     t.Radius,
		alive:      true,
		cullMargin: t.CullMargin,
	}
}

// Update moves the power-up down and culls it below the field.
func (p *PowerUp) Update(dt float64, field Field) {
	if !p.alive {
		return
	}
	p.Y += p.Speed * dt
	p.Age += dt
	if p.Y > field.Height+p.cullMargin {
		p.alive = false
	}
}

// Alive reports whether the power-up is still in play.
func (p *PowerUp) Alive() bool { return p.alive }

// Deactivate removes the power-up from play.
func (p *PowerUp) Deactivate() { p.alive = false }

// Hitbox returns the square bounding the pickup.
func (p *PowerUp) Hitbox() physics.Rect {
	return physics.RectAround(p.X, p.Y, p.Radius, p.Radius)
}

// Bob is the vertical draw offset of the idle animation.
func (p *PowerUp) Bob() float64 {
	return math.Sin(p.Age*4) * 4
}
