package main

import (
	"fmt"
	"log"
	"sync"

	"blocksnake/internal/game"
	"blocksnake/internal/input"
	"blocksnake/internal/render"
)

// GameLoop binds one browser connection to its own engine.
// The engine's timer slot drives the game; every change is pushed to the
// client as a frame.
type GameLoop struct {
	mu     sync.Mutex // orders frame capture with its send
	conn   *Conn
	engine *game.Engine
	board  *Scoreboard
}

// NewGameLoop creates an idle game for conn. The game starts on the first join.
func NewGameLoop(conn *Conn, opts game.Options, board *Scoreboard) (*GameLoop, error) {
	gl := &GameLoop{conn: conn, board: board}
	opts.OnEvent = gl.onEvent
	engine, err := game.New(opts)
	if err != nil {
		return nil, fmt.Errorf("game loop for %s: %w", conn.ID, err)
	}
	gl.engine = engine
	return gl, nil
}

// Handle applies one client message
func (gl *GameLoop) Handle(msg ClientMessage) {
	switch msg.Type {
	case MsgJoin:
		if gl.engine.Active() {
			return
		}
		gl.engine.Start()
		log.Printf("game started: %s", gl.conn.ID)

	case MsgKey:
		input.Dispatch(gl.engine, input.FromKeyCode(msg.Key))

	case MsgSwipe:
		input.Dispatch(gl.engine, input.FromSwipe(msg.DX, msg.DY))

	case MsgRestart:
		gl.engine.Restart()
	}
}

// Stop cancels the game's timers
func (gl *GameLoop) Stop() {
	gl.engine.Stop()
}

// onEvent pushes a frame after every engine change. Runs outside the engine lock.
// A failed write ends the session.
func (gl *GameLoop) onEvent(ev game.Event) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	rec := render.NewRecorder()
	snap := gl.engine.Frame(rec)
	if err := gl.conn.Send(FrameMsg{Type: MsgFrame, Ops: rec.Ops(), State: snap}); err != nil {
		gl.drop(err)
		return
	}

	if ev.Kind == game.EventGameOver {
		log.Printf("snake %s crashed: score=%d length=%d", gl.conn.ID, ev.Score, ev.Length)
		gl.board.Record(gl.conn.ID, ev.Score, ev.Length)
		err := gl.conn.Send(DeathMsg{
			Type:   MsgDeath,
			Score:  ev.Score,
			Length: ev.Length,
			Board:  gl.board.Leaderboard(),
		})
		if err != nil {
			gl.drop(err)
		}
	}
}

// drop stops the engine and closes the connection so ReadLoop returns
// and the server runs its disconnect cleanup.
func (gl *GameLoop) drop(err error) {
	log.Printf("send error to %s: %v", gl.conn.ID, err)
	gl.engine.Stop()
	gl.conn.Close()
}
