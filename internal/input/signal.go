// Package input turns raw key codes and touch gestures into game signals.
package input

import "blocksnake/internal/game"

// Browser key codes the game listens for
const (
	KeyEnter = 13
	KeyLeft  = 37
	KeyUp    = 38
	KeyRight = 39
	KeyDown  = 40
)

// SwipeSlop is the minimum travel in pixels before a touch counts as a swipe
const SwipeSlop = 10

// Signal is a decoded player intent
type Signal int

const (
	None Signal = iota
	SteerUp
	SteerDown
	SteerLeft
	SteerRight
	Restart
)

func (s Signal) String() string {
	switch s {
	case SteerUp:
		return "up"
	case SteerDown:
		return "down"
	case SteerLeft:
		return "left"
	case SteerRight:
		return "right"
	case Restart:
		return "restart"
	}
	return "none"
}

// Direction returns the heading for a steer signal
func (s Signal) Direction() (game.Direction, bool) {
	switch s {
	case SteerUp:
		return game.Up, true
	case SteerDown:
		return game.Down, true
	case SteerLeft:
		return game.Left, true
	case SteerRight:
		return game.Right, true
	}
	return 0, false
}

// FromKeyCode maps a key code; unknown codes give None
func FromKeyCode(code int) Signal {
	switch code {
	case KeyLeft:
		return SteerLeft
	case KeyUp:
		return SteerUp
	case KeyRight:
		return SteerRight
	case KeyDown:
		return SteerDown
	case KeyEnter:
		return Restart
	}
	return None
}

// FromSwipe maps a gesture delta in screen pixels (y grows downward).
// The dominant axis picks the heading; short or perfectly diagonal swipes give None.
func FromSwipe(dx, dy float64) Signal {
	ax, ay := dx, dy
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}
	if ax < SwipeSlop && ay < SwipeSlop {
		return None
	}
	switch {
	case ax > ay && dx > 0:
		return SteerRight
	case ax > ay:
		return SteerLeft
	case ay > ax && dy > 0:
		return SteerDown
	case ay > ax:
		return SteerUp
	}
	return None
}

// Controller is the part of the engine that input drives
type Controller interface {
	Steer(dir game.Direction) bool
	Restart()
}

// Dispatch applies s to c; None is a no-op
func Dispatch(c Controller, s Signal) {
	if s == Restart {
		c.Restart()
		return
	}
	if dir, ok := s.Direction(); ok {
		c.Steer(dir)
	}
}
