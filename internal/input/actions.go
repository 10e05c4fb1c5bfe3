// Package input turns raw key events into the logical actions the game polls
// once per tick.
package input

// Actions is the set of logical actions active for one tick.
//
// Movement, Fire and Pulse are level-triggered: they stay true while the key
// is held. Pause, Confirm and Quit are edge-triggered: they are true only on
// the tick that observed the key press.
type Actions struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Fire  bool
	Pulse bool

	Pause   bool
	Confirm bool
	Quit    bool
}

// Axis returns the raw movement direction, each component in {-1, 0, 1}.
func (a Actions) Axis() (dx, dy float64) {
	if a.Left {
		dx--
	}
	if a.Right {
		dx++
	}
	if a.Up {
		dy--
	}
	if a.Down {
		dy++
	}
	return dx, dy
}

// Any reports whether any action is active.
func (a Actions) Any() bool {
	return a != Actions{}
}
