package game

import (
	"fmt"

	"blocksnake/internal/render"
)

// draw paints the current state (caller must hold mu)
func (e *Engine) draw(s render.Surface) {
	if e.state == GameOver {
		e.drawSummary(s)
		return
	}

	s.Clear()
	b := e.grid.BlockSize()
	s.FillText(render.Text{
		Value: fmt.Sprintf("Score: %d", e.score),
		X:     b,
		Y:     b,
		Align: render.AlignLeft,
		Size:  render.SizeSmall,
		Paint: render.PaintInk,
	})
	for _, seg := range e.snake.segments {
		s.FillRect(e.grid.CellRect(seg), render.PaintSnake)
	}
	s.FillRect(e.grid.CellRect(e.food.Pos), render.PaintFood)
	for _, r := range e.grid.BorderRects() {
		s.FillRect(r, render.PaintBorder)
	}
}

// drawSummary paints the centered game-over message
func (e *Engine) drawSummary(s render.Surface) {
	s.Clear()
	cx, cy := e.grid.Width()/2, e.grid.Height()/2
	lines := []render.Text{
		{Value: "Game Over", Y: cy - 60, Size: render.SizeLarge},
		{Value: fmt.Sprintf("Score: %d", e.score), Y: cy + 20, Size: render.SizeMedium},
		{Value: fmt.Sprintf("Snake Length: %d", e.snake.Len()), Y: cy + 60, Size: render.SizeMedium},
	}
	for _, t := range lines {
		t.X = cx
		t.Align = render.AlignCenter
		t.Paint = render.PaintInk
		s.FillText(t)
	}
}
