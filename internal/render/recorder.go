package render

import "sync"

// Op kinds, single-char to keep frames small on the wire
const (
	OpClear = "c"
	OpRect  = "r"
	OpText  = "t"
)

// Op is one recorded draw call.
// {"k":"r","x":70,"y":50,"w":10,"h":10,"p":1}
// {"k":"t","s":"Score: 3","x":10,"y":10,"a":0,"z":0,"p":0}
type Op struct {
	Kind  string `json:"k"`
	X     int    `json:"x,omitempty"`
	Y     int    `json:"y,omitempty"`
	W     int    `json:"w,omitempty"`
	H     int    `json:"h,omitempty"`
	Paint Paint  `json:"p,omitempty"`
	Str   string `json:"s,omitempty"`
	Align Align  `json:"a,omitempty"`
	Size  Size   `json:"z,omitempty"`
}

// Recorder is a Surface that keeps the draw calls of the current frame.
// Clear starts a new frame, so Ops always returns the last full picture.
type Recorder struct {
	mu  sync.Mutex
	ops []Op
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{ops: make([]Op, 0, 64)}
}

// Clear drops the previous frame and records a clear op
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = r.ops[:0]
	r.ops = append(r.ops, Op{Kind: OpClear})
}

// FillRect records a rectangle
func (r *Recorder) FillRect(rect Rect, p Paint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Kind: OpRect, X: rect.X, Y: rect.Y, W: rect.W, H: rect.H, Paint: p})
}

// FillText records a text run
func (r *Recorder) FillText(t Text) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Kind: OpText, X: t.X, Y: t.Y, Paint: t.Paint, Str: t.Value, Align: t.Align, Size: t.Size})
}

// Ops returns a copy of the recorded frame
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Texts returns the text values of the frame in draw order
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, op := range r.ops {
		if op.Kind == OpText {
			out = append(out, op.Str)
		}
	}
	return out
}

// Count returns how many rectangles of paint p are in the frame
func (r *Recorder) Count(p Paint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == OpRect && op.Paint == p {
			n++
		}
	}
	return n
}
