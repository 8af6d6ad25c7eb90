package game

import (
	"sync"
	"testing"
	"time"

	"blocksnake/internal/render"
)

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) record(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) count(kind EventKind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, ev := range l.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func newTestEngine(t *testing.T, mutate func(*Options)) (*Engine, *ManualScheduler, *eventLog) {
	t.Helper()
	sched := NewManualScheduler()
	log := &eventLog{}
	opts := DefaultOptions()
	opts.Scheduler = sched
	opts.Seed = 1
	opts.OnEvent = log.record
	if mutate != nil {
		mutate(&opts)
	}
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Start()
	t.Cleanup(e.Stop)
	return e, sched, log
}

func TestNewRejectsDegenerateBoard(t *testing.T) {
	opts := DefaultOptions()
	opts.BlockSize = 0
	if _, err := New(opts); err == nil {
		t.Error("expected error for zero block size")
	}
}

func TestStartState(t *testing.T) {
	e, sched, log := newTestEngine(t, nil)

	snap := e.Snapshot()
	if snap.State != Running || snap.Score != 0 {
		t.Errorf("state=%s score=%d, want running/0", snap.State, snap.Score)
	}
	if len(snap.Snake) != 3 || snap.Snake[0] != (Cell{Col: 7, Row: 5}) {
		t.Errorf("unexpected initial snake %v", snap.Snake)
	}
	if snap.Food != (Cell{Col: 10, Row: 10}) {
		t.Errorf("food = %v, want (10,10)", snap.Food)
	}
	if snap.Direction != Right {
		t.Errorf("direction = %s, want right", snap.Direction)
	}
	if snap.Cadence != 80 {
		t.Errorf("cadence = %dms, want 80", snap.Cadence)
	}
	if sched.Pending() != 1 {
		t.Errorf("expected exactly one armed timer, got %d", sched.Pending())
	}
	if log.count(EventStarted) != 1 {
		t.Errorf("expected one started event, got %d", log.count(EventStarted))
	}
}

func TestTimerDrivesAdvance(t *testing.T) {
	e, sched, _ := newTestEngine(t, nil)

	sched.Advance(79 * time.Millisecond)
	if head := e.Snapshot().Snake[0]; head != (Cell{Col: 7, Row: 5}) {
		t.Fatalf("moved before cadence elapsed: head %v", head)
	}
	sched.Advance(1 * time.Millisecond)
	if head := e.Snapshot().Snake[0]; head != (Cell{Col: 8, Row: 5}) {
		t.Fatalf("head = %v after one cadence, want (8,5)", head)
	}

	// Three more ticks
	sched.Advance(240 * time.Millisecond)
	if head := e.Snapshot().Snake[0]; head != (Cell{Col: 11, Row: 5}) {
		t.Errorf("head = %v, want (11,5)", head)
	}
	if sched.Pending() != 1 {
		t.Errorf("expected a single timer slot, got %d pending", sched.Pending())
	}
}

func TestAdvanceKeepsHeadAdjacentAndLength(t *testing.T) {
	e, _, _ := newTestEngine(t, nil)

	steps := []Direction{Down, Down, Left, Left, Down, Right, Right, Right, Up}
	for _, d := range steps {
		before := e.Snapshot()
		e.Steer(d)
		e.Advance()
		after := e.Snapshot()
		if after.State != Running {
			t.Fatalf("unexpected game over at %v", after.Snake[0])
		}
		if !before.Snake[0].Adjacent(after.Snake[0]) {
			t.Errorf("head jumped from %v to %v", before.Snake[0], after.Snake[0])
		}
		grew := after.Score > before.Score
		wantLen := len(before.Snake)
		if grew {
			wantLen++
		}
		if len(after.Snake) != wantLen {
			t.Errorf("length %d -> %d (ate=%v)", len(before.Snake), len(after.Snake), grew)
		}
	}
}

func TestInputCoalescesToOneChangePerTick(t *testing.T) {
	e, _, _ := newTestEngine(t, nil)

	// Heading right: down is accepted, left is a reversal of the committed heading
	if !e.Steer(Down) {
		t.Error("down should be accepted")
	}
	if e.Steer(Left) {
		t.Error("left should be rejected while committed heading is right")
	}
	e.Advance()
	if head := e.Snapshot().Snake[0]; head != (Cell{Col: 7, Row: 6}) {
		t.Errorf("head = %v, want (7,6)", head)
	}

	// Last accepted input before the tick wins
	e.Steer(Left)
	e.Steer(Right)
	e.Advance()
	if head := e.Snapshot().Snake[0]; head != (Cell{Col: 8, Row: 6}) {
		t.Errorf("head = %v, want (8,6)", head)
	}
}

func TestEatingFoodScenario(t *testing.T) {
	e, _, log := newTestEngine(t, func(o *Options) { o.StrictSpawn = true })

	// Align the row first, then the column
	e.Steer(Down)
	for e.Snapshot().Snake[0].Row < 10 {
		e.Advance()
	}
	e.Steer(Right)
	for e.Snapshot().Snake[0] != (Cell{Col: 10, Row: 10}) {
		if e.State() != Running {
			t.Fatal("game over before reaching food")
		}
		e.Advance()
	}

	snap := e.Snapshot()
	if snap.Score != 1 {
		t.Errorf("score = %d, want 1", snap.Score)
	}
	if len(snap.Snake) != 4 {
		t.Errorf("length = %d, want 4", len(snap.Snake))
	}
	if snap.Food == (Cell{Col: 10, Row: 10}) {
		t.Error("food was not relocated")
	}
	if !e.Grid().Interior(snap.Food) {
		t.Errorf("food relocated onto wall: %v", snap.Food)
	}
	if log.count(EventAte) != 1 {
		t.Errorf("expected one ate event, got %d", log.count(EventAte))
	}
}

func TestBaselineRelocationStaysInterior(t *testing.T) {
	e, _, _ := newTestEngine(t, nil)
	e.mu.Lock()
	e.food.Pos = Cell{Col: 8, Row: 5}
	e.mu.Unlock()

	e.Advance()
	snap := e.Snapshot()
	if snap.Score != 1 {
		t.Fatalf("score = %d, want 1", snap.Score)
	}
	if snap.Food.Col < 1 || snap.Food.Col > 58 || snap.Food.Row < 1 || snap.Food.Row > 38 {
		t.Errorf("food outside interior: %v", snap.Food)
	}
}

func TestWallCollisionEndsGame(t *testing.T) {
	e, sched, log := newTestEngine(t, nil)

	e.Steer(Up)
	for i := 0; i < 4; i++ {
		e.Advance() // rows 4,3,2,1
	}
	if e.State() != Running {
		t.Fatal("game ended before reaching the wall ring")
	}
	e.Advance()

	snap := e.Snapshot()
	if snap.State != GameOver {
		t.Fatalf("state = %s, want game over", snap.State)
	}
	if snap.Crash == nil || *snap.Crash != (Cell{Col: 7, Row: 0}) {
		t.Errorf("crash = %v, want (7,0)", snap.Crash)
	}
	if log.count(EventGameOver) != 1 {
		t.Errorf("expected one game over event, got %d", log.count(EventGameOver))
	}

	// Frozen until restart
	frozen := snap.Snake[0]
	e.Steer(Left)
	e.Advance()
	if head := e.Snapshot().Snake[0]; head != frozen {
		t.Errorf("snake moved during game over: %v -> %v", frozen, head)
	}
	if sched.Pending() != 1 {
		t.Errorf("expected only the restart timer pending, got %d", sched.Pending())
	}
}

func TestSelfCollisionEndsGame(t *testing.T) {
	e, _, _ := newTestEngine(t, nil)

	// Hook shape: moving up would re-enter the body
	e.mu.Lock()
	e.snake = NewSnakeAt([]Cell{
		{Col: 10, Row: 10},
		{Col: 11, Row: 10},
		{Col: 11, Row: 9},
		{Col: 10, Row: 9},
		{Col: 9, Row: 9},
	}, Left)
	e.mu.Unlock()

	e.Steer(Up)
	e.Advance()
	if e.State() != GameOver {
		t.Fatal("expected game over on self collision")
	}
	if c := e.Snapshot().Crash; c == nil || *c != (Cell{Col: 10, Row: 9}) {
		t.Errorf("crash = %v, want (10,9)", c)
	}
}

func TestAutomaticRestart(t *testing.T) {
	e, sched, log := newTestEngine(t, nil)
	crashIntoTopWall(e)

	sched.Advance(999 * time.Millisecond)
	if e.State() != GameOver {
		t.Fatal("restarted before delay elapsed")
	}
	sched.Advance(1 * time.Millisecond)

	assertFreshGame(t, e)
	if log.count(EventStarted) != 2 {
		t.Errorf("expected 2 started events, got %d", log.count(EventStarted))
	}
}

func TestManualRestartCancelsAutomatic(t *testing.T) {
	e, sched, log := newTestEngine(t, nil)
	crashIntoTopWall(e)

	e.Restart()
	assertFreshGame(t, e)

	// Well past the restart delay but before the new game can hit a wall
	sched.Advance(2 * time.Second)
	if log.count(EventStarted) != 2 {
		t.Errorf("expected 2 started events (initial + manual), got %d", log.count(EventStarted))
	}
	if e.State() != Running {
		t.Errorf("state = %s, want running", e.State())
	}
}

func TestRestartWhileRunning(t *testing.T) {
	e, _, _ := newTestEngine(t, nil)
	e.Steer(Down)
	e.Advance()
	e.Advance()

	e.Restart()
	assertFreshGame(t, e)
	if d := e.Snapshot().Direction; d != Right {
		t.Errorf("direction = %s after restart, want right", d)
	}
}

func TestCadenceFollowsScore(t *testing.T) {
	e, sched, _ := newTestEngine(t, nil)

	feed := func() {
		e.mu.Lock()
		e.food.Pos = e.snake.AdvanceHead(e.snake.Pending())
		e.mu.Unlock()
		e.Advance()
	}

	for i := 0; i < 5; i++ {
		feed()
	}
	if c := e.Snapshot().Cadence; c != 60 {
		t.Errorf("cadence at score 5 = %dms, want 60", c)
	}
	for i := 0; i < 5; i++ {
		feed()
	}
	if c := e.Snapshot().Cadence; c != 30 {
		t.Errorf("cadence at score 10 = %dms, want 30", c)
	}

	// Timer slot follows the new cadence
	head := e.Snapshot().Snake[0]
	sched.Advance(30 * time.Millisecond)
	if got := e.Snapshot().Snake[0]; !head.Adjacent(got) {
		t.Errorf("expected one step after 30ms, head %v -> %v", head, got)
	}
}

func TestStaleTimerCallbackIsIgnored(t *testing.T) {
	manual := NewManualScheduler()
	leaky := leakyScheduler{manual}
	opts := DefaultOptions()
	opts.Scheduler = leaky
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Start()
	defer e.Stop()

	// Manual advance re-arms; the first timer cannot be stopped and still fires
	e.Advance()
	manual.Advance(80 * time.Millisecond)

	if head := e.Snapshot().Snake[0]; head != (Cell{Col: 9, Row: 5}) {
		t.Errorf("head = %v, want (9,5): stale callback advanced the snake", head)
	}
}

func TestStopCancelsTimers(t *testing.T) {
	e, sched, _ := newTestEngine(t, nil)
	e.Stop()
	if sched.Pending() != 0 {
		t.Errorf("expected no pending timers after stop, got %d", sched.Pending())
	}
	sched.Advance(time.Second)
	if head := e.Snapshot().Snake[0]; head != (Cell{Col: 7, Row: 5}) {
		t.Errorf("snake moved after stop: %v", head)
	}
	e.Restart()
	if sched.Pending() != 0 {
		t.Error("restart after stop re-armed the timer")
	}
}

func TestRenderPlayingFrame(t *testing.T) {
	rec := render.NewRecorder()
	e, _, _ := newTestEngine(t, func(o *Options) { o.Surface = rec })

	if got := rec.Count(render.PaintSnake); got != 3 {
		t.Errorf("snake rects = %d, want 3", got)
	}
	if got := rec.Count(render.PaintFood); got != 1 {
		t.Errorf("food rects = %d, want 1", got)
	}
	if got := rec.Count(render.PaintBorder); got != 4 {
		t.Errorf("border rects = %d, want 4", got)
	}
	if texts := rec.Texts(); len(texts) != 1 || texts[0] != "Score: 0" {
		t.Errorf("texts = %v", texts)
	}

	// Owned surface is repainted on advance
	e.Steer(Down)
	e.Advance()
	var head render.Op
	for _, op := range rec.Ops() {
		if op.Kind == render.OpRect && op.Paint == render.PaintSnake {
			head = op
			break
		}
	}
	if head.X != 70 || head.Y != 60 {
		t.Errorf("head drawn at (%d,%d), want (70,60)", head.X, head.Y)
	}
}

func TestRenderGameOverSummary(t *testing.T) {
	rec := render.NewRecorder()
	e, _, _ := newTestEngine(t, func(o *Options) { o.Surface = rec })
	crashIntoTopWall(e)

	want := []string{"Game Over", "Score: 0", "Snake Length: 3"}
	got := rec.Texts()
	if len(got) != len(want) {
		t.Fatalf("texts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("text %d = %q, want %q", i, got[i], want[i])
		}
	}
	for _, op := range rec.Ops() {
		if op.Kind == render.OpText && (op.Align != render.AlignCenter || op.X != 300) {
			t.Errorf("summary line %q not centered: %+v", op.Str, op)
		}
	}
	if rec.Count(render.PaintSnake) != 0 {
		t.Error("summary frame should not draw the snake")
	}

	// Pull rendering matches the owned surface
	pulled := render.NewRecorder()
	e.Render(pulled)
	if len(pulled.Texts()) != 3 {
		t.Errorf("Render produced %v", pulled.Texts())
	}
}

func TestCadence(t *testing.T) {
	tests := []struct {
		score int
		want  time.Duration
	}{
		{0, 80 * time.Millisecond},
		{4, 80 * time.Millisecond},
		{5, 60 * time.Millisecond},
		{9, 60 * time.Millisecond},
		{10, 30 * time.Millisecond},
		{250, 30 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := Cadence(tt.score); got != tt.want {
			t.Errorf("Cadence(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func crashIntoTopWall(e *Engine) {
	e.Steer(Up)
	for e.State() == Running {
		e.Advance()
	}
}

func assertFreshGame(t *testing.T, e *Engine) {
	t.Helper()
	snap := e.Snapshot()
	if snap.State != Running {
		t.Errorf("state = %s, want running", snap.State)
	}
	if len(snap.Snake) != 3 {
		t.Errorf("length = %d, want 3", len(snap.Snake))
	}
	if snap.Score != 0 {
		t.Errorf("score = %d, want 0", snap.Score)
	}
	if snap.Food != InitialFood() {
		t.Errorf("food = %v, want %v", snap.Food, InitialFood())
	}
	if snap.Crash != nil {
		t.Errorf("crash not cleared: %v", snap.Crash)
	}
}

// leakyScheduler never cancels, so superseded callbacks still fire
type leakyScheduler struct {
	*ManualScheduler
}

func (s leakyScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.ManualScheduler.AfterFunc(d, f)
	return noopTimer{}
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }
