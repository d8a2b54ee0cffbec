package movement

import (
	"github.com/samdwyer/mazedelve/internal/world"
)

// EventKind tags what happened during a tick.
type EventKind int

const (
	EventEnteredExitRange EventKind = iota
	EventLeftExitRange
	EventRegenerating
	EventRegenerated
	EventRegenerateFailed
)

func (k EventKind) String() string {
	switch k {
	case EventEnteredExitRange:
		return "entered_exit_range"
	case EventLeftExitRange:
		return "left_exit_range"
	case EventRegenerating:
		return "regenerating"
	case EventRegenerated:
		return "regenerated"
	case EventRegenerateFailed:
		return "regenerate_failed"
	default:
		return "unknown"
	}
}

// Event is emitted to UI collaborators.
type Event struct {
	Kind  EventKind
	Level *world.Level // Set for EventRegenerated
	Err   error        // Set for EventRegenerateFailed
}
