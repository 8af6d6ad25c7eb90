package game

import (
	"errors"
	"fmt"

	"blocksnake/internal/render"
)

// ErrDegenerateGrid is returned when the board cannot hold a playable interior
var ErrDegenerateGrid = errors.New("degenerate grid")

// Grid is the discrete coordinate space of the board.
// The outermost ring of cells is wall; only the interior is playable.
// Grid is immutable and safe to share.
type Grid struct {
	width, height int // pixels
	blockSize     int
	cols, rows    int
}

// NewGrid derives the block dimensions from the board size in pixels.
// Pixels that do not fill a whole block are ignored.
func NewGrid(width, height, blockSize int) (Grid, error) {
	if blockSize <= 0 {
		return Grid{}, fmt.Errorf("block size %d: %w", blockSize, ErrDegenerateGrid)
	}
	cols, rows := width/blockSize, height/blockSize
	// Need at least one interior cell inside the wall ring
	if cols < 3 || rows < 3 {
		return Grid{}, fmt.Errorf("%dx%d blocks: %w", cols, rows, ErrDegenerateGrid)
	}
	return Grid{width: width, height: height, blockSize: blockSize, cols: cols, rows: rows}, nil
}

// WidthInBlocks returns the number of columns
func (g Grid) WidthInBlocks() int { return g.cols }

// HeightInBlocks returns the number of rows
func (g Grid) HeightInBlocks() int { return g.rows }

// BlockSize returns the cell edge in pixels
func (g Grid) BlockSize() int { return g.blockSize }

// Width returns the board width in pixels
func (g Grid) Width() int { return g.width }

// Height returns the board height in pixels
func (g Grid) Height() int { return g.height }

// IsOutOfBounds reports whether c lies on the wall ring or outside the board
func (g Grid) IsOutOfBounds(c Cell) bool {
	return c.Col <= 0 || c.Row <= 0 || c.Col >= g.cols-1 || c.Row >= g.rows-1
}

// Interior reports whether c is a playable cell
func (g Grid) Interior(c Cell) bool {
	return !g.IsOutOfBounds(c)
}

// CellRect returns the pixel rectangle covered by c
func (g Grid) CellRect(c Cell) render.Rect {
	return render.Rect{X: c.Col * g.blockSize, Y: c.Row * g.blockSize, W: g.blockSize, H: g.blockSize}
}

// BorderRects returns the four wall strips, one block thick, in pixels.
// Strips follow the block ring so they line up with IsOutOfBounds.
func (g Grid) BorderRects() []render.Rect {
	b := g.blockSize
	w, h := g.cols*b, g.rows*b
	return []render.Rect{
		{X: 0, Y: 0, W: w, H: b},
		{X: 0, Y: h - b, W: w, H: b},
		{X: 0, Y: 0, W: b, H: h},
		{X: w - b, Y: 0, W: b, H: h},
	}
}
