// Package game implements the block-grid snake: the board model, the snake and
// its food, and the timer-driven engine that advances them.
package game

import "fmt"

// Cell is one grid square, addressed by column and row
type Cell struct {
	Col int `json:"c"`
	Row int `json:"r"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Add returns the cell offset by o
func (c Cell) Add(o Cell) Cell {
	return Cell{Col: c.Col + o.Col, Row: c.Row + o.Row}
}

// Adjacent reports whether o is exactly one grid step away from c
func (c Cell) Adjacent(o Cell) bool {
	dc, dr := abs(c.Col-o.Col), abs(c.Row-o.Row)
	return dc+dr == 1
}

// Direction is a heading on the grid
type Direction int

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

// Valid reports whether d is one of the four headings
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Opposite returns the reverse heading
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

// Offset returns the unit step for the heading
func (d Direction) Offset() Cell {
	switch d {
	case Up:
		return Cell{Col: 0, Row: -1}
	case Down:
		return Cell{Col: 0, Row: 1}
	case Left:
		return Cell{Col: -1, Row: 0}
	case Right:
		return Cell{Col: 1, Row: 0}
	}
	return Cell{}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
