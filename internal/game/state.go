// Package game provides the main game loop and state management.
package game

import "github.com/samdwyer/mazedelve/internal/movement"

// State represents the current game state.
type State int

const (
	// StateExplore is the default mode where the player walks the level.
	StateExplore State = iota
	// StateGenerating waits for the next level; movement is frozen.
	StateGenerating
	// StatePaused stops the clock until resumed.
	StatePaused
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateGenerating:
		return "generating"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// stateOf combines the pause flag with the resolver's state.
func stateOf(paused bool, rs movement.State) State {
	switch {
	case paused:
		return StatePaused
	case rs == movement.StateGenerating:
		return StateGenerating
	default:
		return StateExplore
	}
}
