// Package object holds the simulation entities. Nothing here draws; renderers
// read entity state through the game snapshot.
package object

import (
	"time"

	"github.com/tomz197/novasiege/internal/input"
	"github.com/tomz197/novasiege/internal/physics"
)

// Point is a position in field coordinates.
type Point struct {
	X, Y float64
}

// Field is the logical playfield. Origin is top-left, y grows downward.
type Field struct {
	Width  float64
	Height float64
}

// Outside reports whether (x, y) lies beyond the field expanded by margin.
func (f Field) Outside(x, y, margin float64) bool {
	return x < -margin || x > f.Width+margin || y < -margin || y > f.Height+margin
}

// ClampX limits x so an object with half extent hw stays inside the field.
func (f Field) ClampX(x, hw float64) float64 {
	return physics.Clamp(x, hw, f.Width-hw)
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Delta  time.Duration
	Input  input.Actions
	Field  Field
	Target Point // player position, read-only
}

// Team tells which side fired a bullet.
type Team uint8

const (
	TeamPlayer Team = iota
	TeamEnemy
)

// ShouldRenderBlink returns true if an object with remaining invincibility
// time should be rendered this frame. age drives the blink phase.
func ShouldRenderBlink(remaining, age, frequency float64) bool {
	if remaining <= 0 {
		return true
	}
	return int(age*frequency)%2 != 0
}

// decay lowers a timer by dt, stopping at zero.
func decay(v, dt float64) float64 {
	return max(0, v-dt)
}
