package main

import (
	"github.com/gdamore/tcell/v2"

	"blocksnake/internal/render"
)

// cellWidth is how many terminal columns one block takes; two keeps blocks square-ish
const cellWidth = 2

// termSurface maps the pixel surface onto terminal cells, one block per cell pair
type termSurface struct {
	screen    tcell.Screen
	blockSize int
	bg        tcell.Style
	styles    map[render.Paint]tcell.Style
}

func newTermSurface(screen tcell.Screen, blockSize int) *termSurface {
	styles := make(map[render.Paint]tcell.Style)
	for _, p := range []render.Paint{render.PaintInk, render.PaintSnake, render.PaintFood, render.PaintBorder} {
		styles[p] = tcell.StyleDefault.Background(tcell.GetColor(p.Hex()))
	}
	return &termSurface{
		screen:    screen,
		blockSize: blockSize,
		bg:        tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack),
		styles:    styles,
	}
}

// Clear paints the whole screen with the page background
func (s *termSurface) Clear() {
	s.screen.SetStyle(s.bg)
	s.screen.Clear()
}

// FillRect paints every block the rectangle covers
func (s *termSurface) FillRect(r render.Rect, p render.Paint) {
	style := s.styles[p]
	c0, r0 := r.X/s.blockSize, r.Y/s.blockSize
	c1, r1 := (r.X+r.W-1)/s.blockSize, (r.Y+r.H-1)/s.blockSize
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for i := 0; i < cellWidth; i++ {
				s.screen.SetContent(col*cellWidth+i, row, ' ', nil, style)
			}
		}
	}
}

// FillText writes the text on the block row containing Y
func (s *termSurface) FillText(t render.Text) {
	style := s.bg.Foreground(tcell.GetColor(t.Paint.Hex()))
	if t.Size == render.SizeLarge {
		style = style.Bold(true)
	}
	runes := []rune(t.Value)
	x := t.X / s.blockSize * cellWidth
	if t.Align == render.AlignCenter {
		x -= len(runes) / 2
	}
	y := t.Y / s.blockSize
	for i, r := range runes {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}
