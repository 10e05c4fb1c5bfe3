// Package sfx defines the sound cues the game emits and the sink that plays them.
package sfx

//go:generate go tool mockgen -destination=./mocks/sink_mock.go -package=mocks . Sink

// Cue names a sound effect.
type Cue string

const (
	Shoot     Cue = "shoot"
	Hit       Cue = "hit"
	Explosion Cue = "explosion"
	PowerUp   Cue = "powerup"
	GameOver  Cue = "gameover"
)

// Cues lists every cue the game can emit.
var Cues = []Cue{Shoot, Hit, Explosion, PowerUp, GameOver}

// Sink plays cues. Play must not block, and unknown cues are ignored.
type Sink interface {
	Play(cue Cue, volume float64)
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Cue, float64) {}
