package main

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"blocksnake/internal/render"
)

var face = basicfont.Face7x13

// textScale maps a text size onto multiples of the 7x13 face
var textScale = map[render.Size]float64{
	render.SizeSmall:  1.5,
	render.SizeMedium: 2,
	render.SizeLarge:  3.5,
}

var pageColor = color.RGBA{0xf4, 0xf1, 0xe8, 0xff}

// parseHex turns "#rrggbb" into an opaque color; anything else is black
func parseHex(s string) color.RGBA {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{A: 0xff}
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// imageSurface draws onto the ebiten screen for one Draw call
type imageSurface struct {
	dst    *ebiten.Image
	colors map[render.Paint]color.RGBA
}

func newImageSurface() *imageSurface {
	colors := make(map[render.Paint]color.RGBA)
	for _, p := range []render.Paint{render.PaintInk, render.PaintSnake, render.PaintFood, render.PaintBorder} {
		colors[p] = parseHex(p.Hex())
	}
	return &imageSurface{colors: colors}
}

func (s *imageSurface) Clear() {
	s.dst.Fill(pageColor)
}

func (s *imageSurface) FillRect(r render.Rect, p render.Paint) {
	vector.DrawFilledRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), s.colors[p], false)
}

// textOrigin returns where the scaled baseline of t starts, and the scale.
// Y is the top of the text so the score line clears the border.
func textOrigin(t render.Text) (x, y, scale float64) {
	scale, ok := textScale[t.Size]
	if !ok {
		scale = 1
	}
	x = float64(t.X)
	if t.Align == render.AlignCenter {
		x -= float64(len([]rune(t.Value))*face.Advance) * scale / 2
	}
	return x, float64(t.Y) + float64(face.Ascent)*scale, scale
}

// FillText draws t in its paint, scaled by size
func (s *imageSurface) FillText(t render.Text) {
	x, y, scale := textOrigin(t)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(s.colors[t.Paint])
	text.DrawWithOptions(s.dst, t.Value, face, op)
}
