package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/blockfall/ecs"
)

func testField() *Playfield {
	return &Playfield{Width: BoardWidth, Height: BoardHeight}
}

func TestCellKeyUniquePerCell(t *testing.T) {
	seen := make(map[CellKey]bool)
	for y := 0; y < BoardHeight; y++ {
		for x := 0; x < BoardWidth; x++ {
			key := cellKey(BoardWidth, x, y)
			assert.False(t, seen[key], "duplicate key for (%d,%d)", x, y)
			seen[key] = true
		}
	}
}

func TestFitsBounds(t *testing.T) {
	field := testField()
	occ := NewOccupancy()

	assert.True(t, fits(PieceO, 0, GridPos{X: 4, Y: 5}, field, &occ))

	// O occupies box columns 1-2, so origin -1 touches the left wall.
	assert.True(t, fits(PieceO, 0, GridPos{X: -1, Y: 5}, field, &occ))
	assert.False(t, fits(PieceO, 0, GridPos{X: -2, Y: 5}, field, &occ))
	assert.False(t, fits(PieceO, 0, GridPos{X: 8, Y: 5}, field, &occ))

	// Cells above the top edge are fine; below the floor they are not.
	assert.True(t, fits(PieceO, 0, GridPos{X: 4, Y: -1}, field, &occ))
	assert.True(t, fits(PieceO, 0, GridPos{X: 4, Y: 17}, field, &occ))
	assert.False(t, fits(PieceO, 0, GridPos{X: 4, Y: 18}, field, &occ))
}

func TestFitsOccupiedCell(t *testing.T) {
	field := testField()
	occ := NewOccupancy()
	occ.Cells.Put(cellKey(field.Width, 5, 18), ecs.Entity(1))

	assert.False(t, fits(PieceO, 0, GridPos{X: 4, Y: 17}, field, &occ))
	assert.True(t, fits(PieceO, 0, GridPos{X: 4, Y: 16}, field, &occ))
}

func TestDropY(t *testing.T) {
	field := testField()
	occ := NewOccupancy()

	// I lies in box row 1, so the lowest origin on an empty board is 18.
	assert.Equal(t, 18, dropY(PieceI, 0, GridPos{X: 3, Y: -1}, field, &occ))

	occ.Cells.Put(cellKey(field.Width, 5, 10), ecs.Entity(1))
	assert.Equal(t, 8, dropY(PieceI, 0, GridPos{X: 3, Y: -1}, field, &occ))
}

func TestOccupancySystemRebuildsIndex(t *testing.T) {
	world := NewWorld()
	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&OccupancySystem{})

	id := world.Spawn(GridPos{X: 3, Y: 15}, Block{Color: PieceI.Color()})

	var occ *Occupancy
	assert.True(t, world.ReadSingleton(&occ))

	scheduler.Once(0)
	assert.True(t, occ.occupied(BoardWidth, 3, 15))
	assert.Equal(t, 1, occ.Cells.Len())

	world.Delete(id)
	scheduler.Once(0)
	assert.False(t, occ.occupied(BoardWidth, 3, 15))
	assert.Equal(t, 0, occ.Cells.Len())
}

func TestOccupancyIgnoresActivePiece(t *testing.T) {
	world := NewWorld()
	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&OccupancySystem{})

	world.Spawn(GridPos{X: 3, Y: 15}, ActivePiece{Kind: PieceT}, Fall{Interval: 1})

	scheduler.Once(0)

	var occ *Occupancy
	world.ReadSingleton(&occ)
	assert.Equal(t, 0, occ.Cells.Len())
}
