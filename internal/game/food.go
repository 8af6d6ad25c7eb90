package game

import "golang.org/x/exp/rand"

// InitialFood returns where the food sits at the start of every game
func InitialFood() Cell {
	return Cell{Col: 10, Row: 10}
}

// maxSpawnAttempts bounds redraws when spawning must avoid occupied cells
const maxSpawnAttempts = 100

// Food is the single collectible on the board
type Food struct {
	Pos Cell
}

// NewFood places food at its starting cell
func NewFood() *Food {
	return &Food{Pos: InitialFood()}
}

// Relocate moves the food to a uniformly random interior cell.
// When forbidden is non-nil, cells it reports are redrawn up to maxSpawnAttempts
// times; the last draw is kept if no free cell turns up.
func (f *Food) Relocate(g Grid, rng *rand.Rand, forbidden func(Cell) bool) {
	var pos Cell
	for attempts := 0; attempts < maxSpawnAttempts; attempts++ {
		pos = Cell{
			Col: rng.Intn(g.WidthInBlocks()-2) + 1,
			Row: rng.Intn(g.HeightInBlocks()-2) + 1,
		}
		if forbidden == nil || !forbidden(pos) {
			break
		}
	}
	f.Pos = pos
}
