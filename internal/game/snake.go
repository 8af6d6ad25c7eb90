package game

// InitialDirection is the heading of every new snake
const InitialDirection = Right

// InitialBody returns a fresh copy of the starting body, head first
func InitialBody() []Cell {
	return []Cell{{Col: 7, Row: 5}, {Col: 6, Row: 5}, {Col: 5, Row: 5}}
}

// Snake is the player's body on the grid.
// Segments are head-first; consecutive segments are always grid-adjacent.
type Snake struct {
	segments  []Cell // index 0 = head
	direction Direction
	pending   Direction
}

// NewSnake creates the 3-segment starting snake heading right
func NewSnake() *Snake {
	return NewSnakeAt(InitialBody(), InitialDirection)
}

// NewSnakeAt creates a snake from an explicit body, head first.
// body must be non-empty.
func NewSnakeAt(body []Cell, dir Direction) *Snake {
	segments := make([]Cell, len(body))
	copy(segments, body)
	return &Snake{
		segments:  segments,
		direction: dir,
		pending:   dir,
	}
}

// Head returns the head segment
func (s *Snake) Head() Cell {
	return s.segments[0]
}

// Len returns the number of segments
func (s *Snake) Len() int {
	return len(s.segments)
}

// Body returns a copy of the segments, head first
func (s *Snake) Body() []Cell {
	out := make([]Cell, len(s.segments))
	copy(out, s.segments)
	return out
}

// Direction returns the committed heading
func (s *Snake) Direction() Direction {
	return s.direction
}

// Pending returns the heading that the next commit will apply
func (s *Snake) Pending() Direction {
	return s.pending
}

// AdvanceHead returns the cell the head would move to in dir.
// It does not change the snake.
func (s *Snake) AdvanceHead(dir Direction) Cell {
	return s.Head().Add(dir.Offset())
}

// Grow prepends newHead and keeps the tail
func (s *Snake) Grow(newHead Cell) {
	s.segments = append(s.segments, Cell{})
	copy(s.segments[1:], s.segments)
	s.segments[0] = newHead
}

// Slide prepends newHead and drops the tail
func (s *Snake) Slide(newHead Cell) {
	copy(s.segments[1:], s.segments[:len(s.segments)-1])
	s.segments[0] = newHead
}

// Occupies reports whether any segment is on c
func (s *Snake) Occupies(c Cell) bool {
	for _, seg := range s.segments {
		if seg == c {
			return true
		}
	}
	return false
}

// SetPendingDirection queues dir for the next move.
// A reversal of the committed heading is ignored, as is an invalid heading.
func (s *Snake) SetPendingDirection(dir Direction) bool {
	if !dir.Valid() || dir == s.direction.Opposite() {
		return false
	}
	s.pending = dir
	return true
}

// CommitDirection makes the pending heading current
func (s *Snake) CommitDirection() {
	s.direction = s.pending
}
