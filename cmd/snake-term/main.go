// Command snake-term plays the block snake game in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/speaker"

	"blocksnake/internal/game"
	"blocksnake/internal/input"
)

// termGame owns the screen and the engine driving it
type termGame struct {
	screen  tcell.Screen
	surface *termSurface
	engine  *game.Engine
	sound   *sound
	redraw  chan struct{}
}

func newTermGame(screen tcell.Screen, opts game.Options, snd *sound) (*termGame, error) {
	g := &termGame{
		screen:  screen,
		surface: newTermSurface(screen, opts.BlockSize),
		sound:   snd,
		redraw:  make(chan struct{}, 1),
	}
	opts.OnEvent = g.onEvent
	engine, err := game.New(opts)
	if err != nil {
		return nil, err
	}
	g.engine = engine
	return g, nil
}

// onEvent runs on timer goroutines; drawing stays on the main loop
func (g *termGame) onEvent(ev game.Event) {
	g.sound.play(ev)
	select {
	case g.redraw <- struct{}{}:
	default:
	}
}

// keyCode maps a terminal key to the browser key code the input package reads
func keyCode(ev *tcell.EventKey) int {
	switch ev.Key() {
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyEnter:
		return input.KeyEnter
	}
	return 0
}

// quits reports whether ev ends the program
func quits(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// handleInput applies one terminal event and reports whether to keep running
func (g *termGame) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if quits(ev) {
			return false
		}
		input.Dispatch(g.engine, input.FromKeyCode(keyCode(ev)))
	case *tcell.EventResize:
		g.screen.Sync()
		g.draw()
	}
	return true
}

func (g *termGame) draw() {
	g.engine.Render(g.surface)
	g.screen.Show()
}

func (g *termGame) run() {
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	g.engine.Start()
	defer g.engine.Stop()

	for {
		select {
		case ev := <-events:
			if !g.handleInput(ev) {
				return
			}
		case <-g.redraw:
			g.draw()
		}
	}
}

func main() {
	block := flag.Int("block", game.DefaultBlockSize, "block size in pixels")
	width := flag.Int("width", game.DefaultWidth, "board width in pixels")
	height := flag.Int("height", game.DefaultHeight, "board height in pixels")
	seed := flag.Uint64("seed", 0, "food seed, 0 uses the clock")
	strict := flag.Bool("strict-spawn", false, "keep food off the snake")
	mute := flag.Bool("mute", false, "disable sound")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	// The screen owns stdout; logs go to a file or nowhere
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	opts := game.DefaultOptions()
	opts.Width, opts.Height, opts.BlockSize = *width, *height, *block
	opts.Seed = *seed
	opts.StrictSpawn = *strict

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen init: %v\n", err)
		os.Exit(1)
	}

	snd := newSound(*mute)
	g, err := newTermGame(screen, opts, snd)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	g.run()

	if snd.enabled {
		speaker.Close()
	}
	screen.Fini()
	log.Printf("exited with score %d", g.engine.Score())
}
