package game

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"blocksnake/internal/render"
)

// Board defaults
const (
	DefaultWidth        = 600
	DefaultHeight       = 400
	DefaultBlockSize    = 10
	DefaultRestartDelay = 1000 * time.Millisecond
)

// State is the engine's lifecycle state
type State int

const (
	Running State = iota
	GameOver
)

func (s State) String() string {
	if s == GameOver {
		return "game_over"
	}
	return "running"
}

// EventKind classifies an engine notification
type EventKind int

const (
	EventStarted  EventKind = iota // fresh game, manual or automatic restart
	EventAdvanced                  // ordinary move
	EventAte                       // move that consumed food
	EventGameOver                  // collision
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventAdvanced:
		return "advanced"
	case EventAte:
		return "ate"
	case EventGameOver:
		return "game_over"
	}
	return "unknown"
}

// Event is sent to Options.OnEvent after every state change
type Event struct {
	Kind   EventKind
	Score  int
	Length int
}

// Options configures an Engine
type Options struct {
	Width, Height int // board size in pixels
	BlockSize     int
	RestartDelay  time.Duration

	// StrictSpawn keeps relocated food off the snake's body.
	// Off by default: food may land on the body.
	StrictSpawn bool

	// Seed feeds the food source when Rand is nil; zero seeds from the clock
	Seed uint64
	Rand *rand.Rand

	// Scheduler drives the advance and restart timers; nil uses the wall clock
	Scheduler Scheduler

	// Surface, when set, is repainted by the engine after every state change
	Surface render.Surface

	// OnEvent is called after every state change, outside the engine lock.
	// It may call back into the engine. Calls can come from timer goroutines.
	OnEvent func(Event)
}

// DefaultOptions returns the 600x400 board with 10px blocks
func DefaultOptions() Options {
	return Options{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		BlockSize:    DefaultBlockSize,
		RestartDelay: DefaultRestartDelay,
	}
}

// Snapshot is a copy of the engine state for clients that draw themselves
type Snapshot struct {
	State     State     `json:"s"`
	Score     int       `json:"p"`
	Snake     []Cell    `json:"b"`
	Food      Cell      `json:"f"`
	Direction Direction `json:"d"`
	Cadence   int64     `json:"i"` // ms
	Crash     *Cell     `json:"x,omitempty"`
}

// Engine owns one game: snake, food, score, state and its timer slot.
// All entry points are safe for concurrent use.
type Engine struct {
	mu    sync.Mutex
	grid  Grid
	opts  Options
	sched Scheduler
	rng   *rand.Rand

	snake *Snake
	food  *Food
	score int
	state State
	crash *Cell

	// Timer slot: at most one of tick/restart is live; gen invalidates
	// callbacks that fire after being superseded.
	gen     uint64
	tick    Timer
	restart Timer
	cadence time.Duration
	stopped bool
}

// New creates an engine. Call Start to begin play.
func New(opts Options) (*Engine, error) {
	grid, err := NewGrid(opts.Width, opts.Height, opts.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	if opts.RestartDelay <= 0 {
		opts.RestartDelay = DefaultRestartDelay
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = NewRealScheduler()
	}
	rng := opts.Rand
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		rng = rand.New(rand.NewSource(seed))
	}
	e := &Engine{
		grid:    grid,
		opts:    opts,
		sched:   sched,
		rng:     rng,
		snake:   NewSnake(),
		food:    NewFood(),
		state:   Running,
		stopped: true,
	}
	return e, nil
}

// Grid returns the board geometry
func (e *Engine) Grid() Grid {
	return e.grid
}

// Start begins a fresh game and arms the advance timer at the base cadence
func (e *Engine) Start() {
	e.mu.Lock()
	e.stopped = false
	ev := e.reset()
	e.mu.Unlock()
	e.emit(ev)
}

// Restart reinitializes snake, food and score and resumes play.
// Any pending automatic restart is cancelled. Ignored after Stop.
func (e *Engine) Restart() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	ev := e.reset()
	e.mu.Unlock()
	e.emit(ev)
}

// Stop cancels all timers. The engine keeps its last state.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
	e.clearTimers()
}

// Steer queues a heading for the next advance.
// It reports false when the heading was rejected as a reversal.
func (e *Engine) Steer(dir Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snake.SetPendingDirection(dir)
}

// Advance runs one simulation step and re-arms the advance timer.
// It does nothing while the game is over.
func (e *Engine) Advance() {
	e.mu.Lock()
	ev, ok := e.step()
	e.mu.Unlock()
	if ok {
		e.emit(ev)
	}
}

// Active reports whether the engine has been started and not stopped
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.stopped
}

// State returns the current lifecycle state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Score returns the current score
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Snapshot returns a copy of the current state
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Render draws the current state onto s
func (e *Engine) Render(s render.Surface) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draw(s)
}

// Frame draws the current state onto s and returns the state it drew
func (e *Engine) Frame(s render.Surface) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draw(s)
	return e.snapshot()
}

// snapshot copies the state (caller must hold mu)
func (e *Engine) snapshot() Snapshot {
	snap := Snapshot{
		State:     e.state,
		Score:     e.score,
		Snake:     e.snake.Body(),
		Food:      e.food.Pos,
		Direction: e.snake.Direction(),
		Cadence:   e.cadence.Milliseconds(),
	}
	if e.crash != nil {
		c := *e.crash
		snap.Crash = &c
	}
	return snap
}

// reset starts a new game (caller must hold mu)
func (e *Engine) reset() Event {
	e.clearTimers()
	e.snake = NewSnake()
	e.food = NewFood()
	e.score = 0
	e.crash = nil
	e.state = Running
	e.armTick(Cadence(e.score))
	e.paint()
	return Event{Kind: EventStarted, Score: e.score, Length: e.snake.Len()}
}

// step advances the snake once (caller must hold mu)
func (e *Engine) step() (Event, bool) {
	if e.state != Running || e.stopped {
		return Event{}, false
	}

	e.snake.CommitDirection()
	next := e.snake.AdvanceHead(e.snake.Direction())

	if e.grid.IsOutOfBounds(next) || e.snake.Occupies(next) {
		e.enterGameOver(next)
		return Event{Kind: EventGameOver, Score: e.score, Length: e.snake.Len()}, true
	}

	kind := EventAdvanced
	if next == e.food.Pos {
		e.snake.Grow(next)
		e.score++
		e.relocateFood()
		kind = EventAte
	} else {
		e.snake.Slide(next)
	}

	// Re-arm on every advance, even when the bracket is unchanged
	e.armTick(Cadence(e.score))
	e.paint()
	return Event{Kind: kind, Score: e.score, Length: e.snake.Len()}, true
}

// enterGameOver halts the advance timer and schedules the automatic restart
// (caller must hold mu)
func (e *Engine) enterGameOver(crash Cell) {
	e.clearTimers()
	e.state = GameOver
	e.crash = &crash
	e.paint()

	gen := e.gen
	e.restart = e.sched.AfterFunc(e.opts.RestartDelay, func() {
		e.mu.Lock()
		if gen != e.gen || e.stopped {
			e.mu.Unlock()
			return
		}
		e.restart = nil
		ev := e.reset()
		e.mu.Unlock()
		e.emit(ev)
	})
}

func (e *Engine) relocateFood() {
	var forbidden func(Cell) bool
	if e.opts.StrictSpawn {
		forbidden = e.snake.Occupies
	}
	e.food.Relocate(e.grid, e.rng, forbidden)
}

// armTick replaces whatever is in the timer slot with an advance after d
// (caller must hold mu)
func (e *Engine) armTick(d time.Duration) {
	e.clearTimers()
	e.cadence = d
	gen := e.gen
	e.tick = e.sched.AfterFunc(d, func() {
		e.mu.Lock()
		if gen != e.gen {
			e.mu.Unlock()
			return
		}
		e.tick = nil
		ev, ok := e.step()
		e.mu.Unlock()
		if ok {
			e.emit(ev)
		}
	})
}

// clearTimers stops both timers and invalidates their callbacks (caller must hold mu)
func (e *Engine) clearTimers() {
	if e.tick != nil {
		e.tick.Stop()
		e.tick = nil
	}
	if e.restart != nil {
		e.restart.Stop()
		e.restart = nil
	}
	e.gen++
}

// paint repaints the owned surface, if any (caller must hold mu)
func (e *Engine) paint() {
	if e.opts.Surface != nil {
		e.draw(e.opts.Surface)
	}
}

func (e *Engine) emit(ev Event) {
	if e.opts.OnEvent != nil {
		e.opts.OnEvent(ev)
	}
}
