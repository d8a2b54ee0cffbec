package game

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// action is a logical control bound to one or more keys.
type action int

const (
	actForward action = iota
	actBack
	actLeft
	actRight
	actTurnLeft
	actTurnRight
	actLookUp
	actLookDown
	actCount
)

// holdWindow is how long a key counts as held after its last press or
// autorepeat. Terminals report presses only, never releases.
const holdWindow = 250 * time.Millisecond

// keyState emulates held keys from a stream of key presses.
type keyState struct {
	last [actCount]time.Time
	use  bool
}

// press records a press of a at now.
func (k *keyState) press(a action, now time.Time) {
	k.last[a] = now
}

// pressUse records a use press. It is reported by exactly one snapshot.
func (k *keyState) pressUse() {
	k.use = true
}

// held reports whether a was pressed within holdWindow of now.
func (k *keyState) held(a action, now time.Time) bool {
	t := k.last[a]
	return !t.IsZero() && now.Sub(t) <= holdWindow
}

// takeUse returns and clears the pending use press.
func (k *keyState) takeUse() bool {
	u := k.use
	k.use = false
	return u
}

// release forgets every held key.
func (k *keyState) release() {
	k.last = [actCount]time.Time{}
	k.use = false
}

// bindKey maps a key event to an action.
func bindKey(ev *tcell.EventKey) (action, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return actTurnLeft, true
	case tcell.KeyRight:
		return actTurnRight, true
	case tcell.KeyUp:
		return actLookUp, true
	case tcell.KeyDown:
		return actLookDown, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return actForward, true
		case 's', 'S':
			return actBack, true
		case 'a', 'A':
			return actLeft, true
		case 'd', 'D':
			return actRight, true
		}
	}
	return 0, false
}
