package main

import (
	"blocksnake/internal/game"
	"blocksnake/internal/render"
)

// Protocol uses single-character JSON keys to minimize wire size.
//
// Message type constants (value of "t" field):
//   Client → Server:
//     "j" = join    {"t":"j"}                 start playing once the panel is visible
//     "k" = key     {"t":"k","k":38}          browser keyCode (37-40 arrows, 13 enter)
//     "s" = swipe   {"t":"s","x":-80,"y":4}   touch delta in css pixels
//     "r" = restart {"t":"r"}                 restart click target
//   Server → Client:
//     "w" = welcome {"t":"w","i":"id","w":600,"h":400,"b":10,"c":["#000000",...]}
//     "f" = frame   {"t":"f","o":[ops],"g":{state}}
//     "d" = death   {"t":"d","p":score,"l":length,"b":[{"i":"id","p":9,"l":12}]}

// Message type identifiers
const (
	MsgJoin    = "j"
	MsgKey     = "k"
	MsgSwipe   = "s"
	MsgRestart = "r"
	MsgWelcome = "w"
	MsgFrame   = "f"
	MsgDeath   = "d"
	MsgError   = "e"
)

// ClientMessage is the base incoming message from the browser.
//   {"t":"k","k":37}          key
//   {"t":"s","x":1.5,"y":-40} swipe
type ClientMessage struct {
	Type string  `json:"t"`
	Key  int     `json:"k,omitempty"`
	DX   float64 `json:"x,omitempty"`
	DY   float64 `json:"y,omitempty"`
}

// WelcomeMsg is sent immediately on WebSocket connect.
// c = paint palette indexed by the "p" field of rect ops.
type WelcomeMsg struct {
	Type    string   `json:"t"`
	ID      string   `json:"i"`
	Width   int      `json:"w"`
	Height  int      `json:"h"`
	Block   int      `json:"b"`
	Palette []string `json:"c"`
}

// FrameMsg carries the draw calls of one frame plus the state they were drawn from
type FrameMsg struct {
	Type  string        `json:"t"`
	Ops   []render.Op   `json:"o"`
	State game.Snapshot `json:"g"`
}

// DeathMsg is sent when the snake crashes, with the best runs of connected players.
// {"t":"d","p":12,"l":15,"b":[...]}
type DeathMsg struct {
	Type   string             `json:"t"`
	Score  int                `json:"p"`
	Length int                `json:"l"`
	Board  []LeaderboardEntry `json:"b"`
}

// ErrorMsg is sent before the server closes a connection it refuses
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// palette lists paint colors in Paint order
func palette() []string {
	paints := []render.Paint{render.PaintInk, render.PaintSnake, render.PaintFood, render.PaintBorder}
	out := make([]string, len(paints))
	for i, p := range paints {
		out[i] = p.Hex()
	}
	return out
}
