// Package render defines the drawing surface the game core paints onto and a
// recording implementation used for wire frames and tests.
package render

// Paint identifies a visual region. Frontends decide the actual color.
type Paint int

const (
	PaintInk Paint = iota // text and labels
	PaintSnake
	PaintFood
	PaintBorder
)

// Hex returns the default CSS color for the paint.
func (p Paint) Hex() string {
	switch p {
	case PaintSnake:
		return "#550663"
	case PaintFood:
		return "#32cd32" // LimeGreen
	case PaintBorder:
		return "#110014"
	default:
		return "#000000"
	}
}

// String returns a short name, used in logs and tests
func (p Paint) String() string {
	switch p {
	case PaintSnake:
		return "snake"
	case PaintFood:
		return "food"
	case PaintBorder:
		return "border"
	default:
		return "ink"
	}
}

// Rect is a pixel rectangle with its origin at the top-left corner
type Rect struct {
	X, Y, W, H int
}

// Align is the horizontal anchor of a text run
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Size is a coarse font size; frontends map it to whatever they can draw.
type Size int

const (
	SizeSmall  Size = iota // score line
	SizeMedium             // game-over details
	SizeLarge              // game-over title
)

// Text is a single text run anchored at (X, Y).
// Left-aligned text hangs from Y, centered text is vertically centered on Y.
type Text struct {
	Value string
	X, Y  int
	Align Align
	Size  Size
	Paint Paint
}

// Surface is a fixed-size 2D drawing target
type Surface interface {
	// Clear erases the whole surface
	Clear()
	// FillRect paints a solid rectangle
	FillRect(r Rect, p Paint)
	// FillText draws a text run
	FillText(t Text)
}
