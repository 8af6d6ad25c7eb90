package game

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending one-shot callback
type Timer interface {
	// Stop cancels the callback; it reports false if it already ran or was stopped
	Stop() bool
}

// Scheduler runs callbacks after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the runtime timer.
// Callbacks run on their own goroutine.
type RealScheduler struct{}

// NewRealScheduler creates a wall-clock scheduler
func NewRealScheduler() *RealScheduler {
	return &RealScheduler{}
}

// AfterFunc wraps time.AfterFunc
func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler is a controllable clock for tests.
// Nothing fires until Advance moves time past a timer's deadline; callbacks then
// run synchronously on the caller's goroutine in deadline order.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	s   *ManualScheduler
	due time.Duration
	seq int
	f   func()
}

// NewManualScheduler creates a manual clock at time zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc registers f to run once d has elapsed on the manual clock
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, due: s.now + d, seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Stop removes the timer if it is still pending
func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i, other := range t.s.timers {
		if other == t {
			t.s.timers = append(t.s.timers[:i], t.s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d, firing every timer that falls due.
// Timers scheduled by a callback fire in the same call if they are due.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.popDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.due
		s.mu.Unlock()

		next.f()
	}
}

// popDue removes and returns the earliest timer due by target (caller must hold mu)
func (s *ManualScheduler) popDue(target time.Duration) *manualTimer {
	if len(s.timers) == 0 {
		return nil
	}
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].due == s.timers[j].due {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].due < s.timers[j].due
	})
	first := s.timers[0]
	if first.due > target {
		return nil
	}
	s.timers = s.timers[1:]
	return first
}

// Now returns the elapsed manual time
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns how many timers are waiting
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
