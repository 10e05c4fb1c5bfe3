package game

import "fmt"

// State is the top-level mode of a game.
type State uint8

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// ShowsWorld reports whether entities are drawn in this state.
func (s State) ShowsWorld() bool {
	return s == StatePlaying || s == StatePaused || s == StateGameOver
}
