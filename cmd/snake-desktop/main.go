// Command snake-desktop plays the block snake game in a window,
// with keyboard, mouse-drag and touch-swipe controls.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"blocksnake/internal/game"
	"blocksnake/internal/input"
)

// mouseID keeps the mouse apart from touch ids in the swipe tracker
const mouseID = -1

var keyCodes = []struct {
	key  ebiten.Key
	code int
}{
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyEnter, input.KeyEnter},
}

type app struct {
	engine  *game.Engine
	surface *imageSurface
	swipes  *swipeTracker
	width   int
	height  int
}

func newApp(opts game.Options) (*app, error) {
	opts.OnEvent = func(ev game.Event) {
		if ev.Kind == game.EventGameOver {
			log.Printf("game over: score=%d length=%d", ev.Score, ev.Length)
		}
	}
	engine, err := game.New(opts)
	if err != nil {
		return nil, err
	}
	return &app{
		engine:  engine,
		surface: newImageSurface(),
		swipes:  newSwipeTracker(),
		width:   engine.Grid().Width(),
		height:  engine.Grid().Height(),
	}, nil
}

// release turns a finished touch into a signal. A tap on the game-over
// summary restarts.
func (a *app) release(id int) {
	s := a.swipes.release(id)
	if s == input.None && a.engine.State() == game.GameOver {
		s = input.Restart
	}
	input.Dispatch(a.engine, s)
}

func (a *app) handleTouchInput() {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		a.swipes.press(int(id), x, y)
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		a.swipes.move(int(id), x, y)
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		a.release(int(id))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.swipes.press(mouseID, x, y)
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.swipes.move(mouseID, x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.release(mouseID)
	}
}

func (a *app) Update() error {
	for _, k := range keyCodes {
		if inpututil.IsKeyJustPressed(k.key) {
			input.Dispatch(a.engine, input.FromKeyCode(k.code))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	a.handleTouchInput()
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	a.surface.dst = screen
	a.engine.Render(a.surface)
}

func (a *app) Layout(_, _ int) (int, int) {
	return a.width, a.height
}

func main() {
	seed := flag.Uint64("seed", 0, "food seed, 0 uses the clock")
	strict := flag.Bool("strict-spawn", false, "keep food off the snake")
	flag.Parse()

	opts := game.DefaultOptions()
	opts.Seed = *seed
	opts.StrictSpawn = *strict

	a, err := newApp(opts)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	a.engine.Start()
	defer a.engine.Stop()

	ebiten.SetWindowSize(a.width, a.height)
	ebiten.SetWindowTitle("Block Snake")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	if err := ebiten.RunGame(a); err != nil {
		log.Fatalf("run: %v", err)
	}
	log.Printf("exited with score %d", a.engine.Score())
}
