package object

import "math/rand/v2"

// Star is one background point.
type Star struct {
	X, Y  float64
	Speed float64
	Layer int // 0 is farthest
}

const (
	starLayers    = 3
	starsPerLayer = 40
)

// StarField is a parallax background that scrolls downward.
type StarField struct {
	stars []Star
	field Field
	rng   *rand.Rand
}

// NewStarField scatters three layers of stars across the field.
func NewStarField(field Field, rng *rand.Rand) *StarField {
	sf := &StarField{
		stars: make([]Star, 0, starLayers*starsPerLayer),
		field: field,
		rng:   rng,
	}
	for layer := range starLayers {
		base := float64(layer + 1)
		for range starsPerLayer {
			sf.stars = append(sf.stars, Star{
				X:     rng.Float64() * field.Width,
				Y:     rng.Float64() * field.Height,
				Speed: base * uniform(rng, 0.8, 1.2),
				Layer: layer,
			})
		}
	}
	return sf
}

// Update scrolls the stars, wrapping those that leave the bottom edge.
func (sf *StarField) Update(dt float64) {
	for i := range sf.stars {
		s := &sf.stars[i]
		s.Y += s.Speed * 60 * dt
		if s.Y > sf.field.Height {
			s.Y = 0
			s.X = sf.rng.Float64() * sf.field.Width
		}
	}
}

// Stars returns the stars. The slice is owned by the field.
func (sf *StarField) Stars() []Star {
	return sf.stars
}
