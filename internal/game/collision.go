package game

import (
	"github.com/kamstrup/intmap"

	"github.com/plus3/blockfall/ecs"
)

// CellKey packs a board cell into a single integer for the occupancy index.
type CellKey int64

func cellKey(width, x, y int) CellKey {
	return CellKey(y*width + x)
}

// Occupancy is a singleton index from occupied cells to the locked block
// entity in them. It is rebuilt at the start of every simulation tick and
// patched in place when rows clear, so all collision checks within a tick see
// a coherent board.
type Occupancy struct {
	Cells *intmap.Map[CellKey, ecs.Entity]
}

// NewOccupancy returns an index sized for a full board.
func NewOccupancy() Occupancy {
	return Occupancy{Cells: intmap.New[CellKey, ecs.Entity](BoardWidth * BoardHeight)}
}

func (o *Occupancy) occupied(width, x, y int) bool {
	_, ok := o.Cells.Get(cellKey(width, x, y))
	return ok
}

// fits reports whether a piece placed at origin stays inside the side and
// bottom bounds and overlaps no locked block. Cells above the top edge are
// allowed; pieces spawn partially off-screen.
func fits(kind PieceKind, rot int, origin GridPos, field *Playfield, occ *Occupancy) bool {
	for _, c := range kind.Cells(rot) {
		x, y := origin.X+c[0], origin.Y+c[1]
		if x < 0 || x >= field.Width || y >= field.Height {
			return false
		}
		if y >= 0 && occ.occupied(field.Width, x, y) {
			return false
		}
	}
	return true
}

// dropY returns the lowest origin row the piece can occupy from its current
// position without overlapping anything.
func dropY(kind PieceKind, rot int, origin GridPos, field *Playfield, occ *Occupancy) int {
	y := origin.Y
	for fits(kind, rot, GridPos{X: origin.X, Y: y + 1}, field, occ) {
		y++
	}
	return y
}

// OccupancySystem rebuilds the occupancy index from the locked blocks. It
// runs before any system that needs collision checks.
type OccupancySystem struct {
	Blocks ecs.Query[struct {
		*GridPos
		*Block
	}]
	Field     ecs.Singleton[Playfield]
	Occupancy ecs.Singleton[Occupancy]
}

func (s *OccupancySystem) Execute(frame *ecs.Frame) {
	occ := s.Occupancy.Get()
	field := s.Field.Get()

	occ.Cells.Clear()
	for id, item := range s.Blocks.Iter() {
		occ.Cells.Put(cellKey(field.Width, item.GridPos.X, item.GridPos.Y), id)
	}
}
