package main

import "blocksnake/internal/input"

type touchStart struct {
	X, Y         int
	LastX, LastY int
}

// swipeTracker follows touches from press to release
type swipeTracker struct {
	starts map[int]touchStart
}

func newSwipeTracker() *swipeTracker {
	return &swipeTracker{starts: map[int]touchStart{}}
}

func (t *swipeTracker) press(id, x, y int) {
	t.starts[id] = touchStart{X: x, Y: y, LastX: x, LastY: y}
}

// move records the latest position; unknown ids start a new touch
func (t *swipeTracker) move(id, x, y int) {
	st, ok := t.starts[id]
	if !ok {
		t.press(id, x, y)
		return
	}
	st.LastX, st.LastY = x, y
	t.starts[id] = st
}

// release ends the touch and returns the swipe it made
func (t *swipeTracker) release(id int) input.Signal {
	st, ok := t.starts[id]
	if !ok {
		return input.None
	}
	delete(t.starts, id)
	return input.FromSwipe(float64(st.LastX-st.X), float64(st.LastY-st.Y))
}
