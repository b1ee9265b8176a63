package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/blockfall/ecs"
)

type fixture struct {
	world   *ecs.World
	sched   *ecs.Scheduler
	session *Session
	intent  *Intent
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	world := NewWorld()
	f := &fixture{
		world: world,
		sched: NewSimScheduler(world),
	}
	assert.True(t, world.ReadSingleton(&f.session))
	assert.True(t, world.ReadSingleton(&f.intent))
	return f
}

// spawnPiece places an active piece directly. A long fall interval keeps
// gravity out of tests that tick with small deltas.
func (f *fixture) spawnPiece(kind PieceKind, rot, x, y int) ecs.Entity {
	return f.world.Spawn(
		GridPos{X: x, Y: y},
		ActivePiece{Kind: kind, Rot: rot},
		Fall{Interval: 1000},
	)
}

func (f *fixture) lockBlock(x, y int) ecs.Entity {
	return f.world.Spawn(GridPos{X: x, Y: y}, Block{Color: PieceI.Color()})
}

func (f *fixture) fillRow(y int) {
	for x := 0; x < BoardWidth; x++ {
		f.lockBlock(x, y)
	}
}

func activeCount(world *ecs.World) int {
	n := 0
	view := ecs.NewView[struct{ *ActivePiece }](world)
	for range view.Iter() {
		n++
	}
	return n
}

func blockCells(world *ecs.World) map[GridPos]bool {
	cells := make(map[GridPos]bool)
	view := ecs.NewView[struct {
		*GridPos
		*Block
	}](world)
	for _, item := range view.Iter() {
		cells[*item.GridPos] = true
	}
	return cells
}

func TestMoveStopsAtWall(t *testing.T) {
	f := newFixture(t)

	// O occupies box columns 1-2; origin -1 puts it against the left wall.
	id := f.spawnPiece(PieceO, 0, -1, 5)

	f.intent.MoveX = -1
	f.sched.Once(0.001)
	assert.Equal(t, GridPos{X: -1, Y: 5}, *ecs.Component[GridPos](f.world, id))

	f.intent.MoveX = 1
	f.sched.Once(0.001)
	assert.Equal(t, GridPos{X: 0, Y: 5}, *ecs.Component[GridPos](f.world, id))
}

func TestMoveBlockedByLockedBlock(t *testing.T) {
	f := newFixture(t)

	id := f.spawnPiece(PieceO, 0, 4, 5)
	// O at origin 4 occupies columns 5-6; a block at column 7 stops a
	// rightward step.
	f.lockBlock(7, 6)

	f.intent.MoveX = 1
	f.sched.Once(0.001)
	assert.Equal(t, GridPos{X: 4, Y: 5}, *ecs.Component[GridPos](f.world, id))
}

func TestRotationApplies(t *testing.T) {
	f := newFixture(t)
	id := f.spawnPiece(PieceT, 0, 4, 5)

	f.intent.Rotate = 1
	f.sched.Once(0.001)

	piece := ecs.Component[ActivePiece](f.world, id)
	assert.Equal(t, 1, piece.Rot)
	assert.Equal(t, GridPos{X: 4, Y: 5}, *ecs.Component[GridPos](f.world, id))
}

func TestRotationRejectedAtWall(t *testing.T) {
	f := newFixture(t)

	// Vertical I hugging the right wall; the horizontal state would poke
	// through it.
	id := f.spawnPiece(PieceI, 1, 7, 0)

	f.intent.Rotate = 1
	f.sched.Once(0.001)

	piece := ecs.Component[ActivePiece](f.world, id)
	assert.Equal(t, 1, piece.Rot)
	assert.Equal(t, GridPos{X: 7, Y: 0}, *ecs.Component[GridPos](f.world, id))
}

func TestRotationRejectedOnOccupiedCell(t *testing.T) {
	f := newFixture(t)

	id := f.spawnPiece(PieceT, 0, 4, 5)
	// (6,6) is inside T's clockwise rotation target but not its current
	// cells.
	f.lockBlock(6, 6)

	f.intent.Rotate = 1
	f.sched.Once(0.001)

	assert.Equal(t, 0, ecs.Component[ActivePiece](f.world, id).Rot)
}

func TestSoftDropStepsDown(t *testing.T) {
	f := newFixture(t)
	id := f.spawnPiece(PieceT, 0, 4, 5)

	f.intent.SoftDrop = true
	f.sched.Once(0.001)

	assert.Equal(t, GridPos{X: 4, Y: 6}, *ecs.Component[GridPos](f.world, id))
}

func TestGravityStepsOnInterval(t *testing.T) {
	f := newFixture(t)
	id := f.world.Spawn(
		GridPos{X: 4, Y: 5},
		ActivePiece{Kind: PieceT},
		Fall{Interval: 0.1},
	)

	f.sched.Once(0.06)
	assert.Equal(t, GridPos{X: 4, Y: 5}, *ecs.Component[GridPos](f.world, id))

	f.sched.Once(0.06)
	assert.Equal(t, GridPos{X: 4, Y: 6}, *ecs.Component[GridPos](f.world, id))
}

func TestBlockedDescentLocksPiece(t *testing.T) {
	f := newFixture(t)
	f.world.Spawn(
		GridPos{X: 4, Y: 17},
		ActivePiece{Kind: PieceO},
		Fall{Interval: 0.5},
	)

	// Gravity fires, the step below the floor is rejected, and the piece
	// locks on the same tick.
	f.sched.Once(1.0)

	assert.Equal(t, 0, activeCount(f.world))
	assert.Equal(t, map[GridPos]bool{
		{X: 5, Y: 18}: true,
		{X: 6, Y: 18}: true,
		{X: 5, Y: 19}: true,
		{X: 6, Y: 19}: true,
	}, blockCells(f.world))
}

func TestHardDropLandsAtLowestPosition(t *testing.T) {
	f := newFixture(t)
	f.spawnPiece(PieceI, 0, 3, -1)
	f.lockBlock(5, 10)

	f.intent.HardDrop = true
	f.sched.Once(0.001)

	assert.Equal(t, 0, activeCount(f.world))
	assert.Equal(t, map[GridPos]bool{
		{X: 3, Y: 9}:  true,
		{X: 4, Y: 9}:  true,
		{X: 5, Y: 9}:  true,
		{X: 6, Y: 9}:  true,
		{X: 5, Y: 10}: true,
	}, blockCells(f.world))
}

func TestLineClearRemovesRowAndShiftsAbove(t *testing.T) {
	f := newFixture(t)
	f.fillRow(19)
	f.lockBlock(0, 18)
	f.lockBlock(3, 17)

	f.sched.Once(0.001)

	assert.Equal(t, 100, f.session.Score)
	assert.Equal(t, 1, f.session.Lines)
	assert.Equal(t, 1, f.session.Level)
	assert.Equal(t, map[GridPos]bool{
		{X: 0, Y: 19}: true,
		{X: 3, Y: 18}: true,
	}, blockCells(f.world))
}

func TestLineClearScoresQuadratically(t *testing.T) {
	f := newFixture(t)
	f.fillRow(18)
	f.fillRow(19)
	f.lockBlock(2, 17)

	f.sched.Once(0.001)

	assert.Equal(t, 400, f.session.Score)
	assert.Equal(t, 2, f.session.Lines)
	assert.Equal(t, map[GridPos]bool{
		{X: 2, Y: 19}: true,
	}, blockCells(f.world))
}

func TestLineClearAdvancesLevel(t *testing.T) {
	f := newFixture(t)
	f.session.Lines = 9
	f.fillRow(19)

	f.sched.Once(0.001)

	assert.Equal(t, 10, f.session.Lines)
	assert.Equal(t, 2, f.session.Level)
}

func TestSpawnCreatesPieceWhenNoneActive(t *testing.T) {
	f := newFixture(t)

	// The spawn is queued on the first tick and visible on the next.
	f.sched.Once(0.001)
	f.sched.Once(0.001)

	assert.Equal(t, 1, activeCount(f.world))
	assert.True(t, f.session.HasNext)
	assert.Equal(t, PhaseRunning, f.session.Phase)
}

func TestSpawnOverlapEndsGame(t *testing.T) {
	f := newFixture(t)
	// Every kind has cells in box rows 1-2 of the spawn columns, so
	// blocking those cells stops any spawn. The rows stay partial so no
	// line clear frees them first.
	for x := 3; x <= 6; x++ {
		f.lockBlock(x, 0)
		f.lockBlock(x, 1)
	}

	f.sched.Once(0.001)

	assert.Equal(t, PhaseGameOver, f.session.Phase)
	assert.Equal(t, 0, activeCount(f.world))

	// The game stays over; nothing new spawns.
	f.sched.Once(0.001)
	assert.Equal(t, PhaseGameOver, f.session.Phase)
	assert.Equal(t, 0, activeCount(f.world))
}

func TestPauseFreezesSimulation(t *testing.T) {
	f := newFixture(t)
	id := f.world.Spawn(
		GridPos{X: 4, Y: 5},
		ActivePiece{Kind: PieceT},
		Fall{Interval: 0.1},
	)

	f.intent.TogglePause = true
	f.sched.Once(0.001)
	assert.Equal(t, PhasePaused, f.session.Phase)

	// Neither gravity nor input moves the piece while paused; stale
	// intents are discarded rather than queued.
	f.intent.MoveX = -1
	f.intent.SoftDrop = true
	f.sched.Once(1.0)
	assert.Equal(t, GridPos{X: 4, Y: 5}, *ecs.Component[GridPos](f.world, id))
	assert.Equal(t, Intent{}, *f.intent)

	f.intent.TogglePause = true
	f.sched.Once(0.001)
	assert.Equal(t, PhaseRunning, f.session.Phase)
	assert.Equal(t, GridPos{X: 4, Y: 5}, *ecs.Component[GridPos](f.world, id))
}

func TestPauseIgnoredAfterGameOver(t *testing.T) {
	f := newFixture(t)
	f.session.Phase = PhaseGameOver

	f.intent.TogglePause = true
	f.sched.Once(0.001)

	assert.Equal(t, PhaseGameOver, f.session.Phase)
}

func TestRestartClearsBoardAndSession(t *testing.T) {
	f := newFixture(t)
	f.spawnPiece(PieceT, 0, 4, 5)
	f.lockBlock(0, 19)
	f.lockBlock(1, 19)
	f.session.Score = 700
	f.session.Lines = 12
	f.session.Level = 2
	f.session.Phase = PhaseGameOver

	f.intent.Restart = true
	f.sched.Once(0.001)

	assert.Equal(t, 0, f.session.Score)
	assert.Equal(t, 0, f.session.Lines)
	assert.Equal(t, 1, f.session.Level)
	assert.Equal(t, PhaseRunning, f.session.Phase)
	assert.Empty(t, blockCells(f.world))
	assert.Equal(t, 0, activeCount(f.world))

	// A fresh piece arrives on the next tick.
	f.sched.Once(0.001)
	f.sched.Once(0.001)
	assert.Equal(t, 1, activeCount(f.world))
}

func TestRestartClearsPieceLockedOnSameTick(t *testing.T) {
	f := newFixture(t)
	// O resting on the floor with an elapsed gravity interval: the blocked
	// descent locks it on the very tick the restart is handled.
	f.world.Spawn(
		GridPos{X: 4, Y: 17},
		ActivePiece{Kind: PieceO},
		Fall{Interval: 0.1},
	)

	f.intent.Restart = true
	f.sched.Once(1.0)

	assert.Empty(t, blockCells(f.world))
	assert.Equal(t, 0, activeCount(f.world))
	assert.Equal(t, PhaseRunning, f.session.Phase)
	assert.Equal(t, 0, f.session.Score)
}

func TestRestartDiscardsSameTickHardDrop(t *testing.T) {
	f := newFixture(t)
	f.spawnPiece(PieceO, 0, 4, 5)

	f.intent.Restart = true
	f.intent.HardDrop = true
	f.sched.Once(0.001)

	assert.Empty(t, blockCells(f.world))
	assert.Equal(t, 0, activeCount(f.world))
	assert.Equal(t, Intent{}, *f.intent)
}
