package game

import (
	"github.com/plus3/blockfall/ecs"
)

// ControlSystem handles the session-level intents: pause toggling and
// restart. It also drops stale gameplay intents while the simulation is not
// running, so nothing queued during a pause fires on resume.
type ControlSystem struct {
	Intent  ecs.Singleton[Intent]
	Session ecs.Singleton[Session]
}

func (s *ControlSystem) Execute(frame *ecs.Frame) {
	in := s.Intent.Get()
	session := s.Session.Get()

	if in.Restart {
		// The rest of the tick must not act on the old piece, and the board
		// sweep runs deferred so it also removes blocks the tick itself
		// locks (a landed or hard-dropped piece spawns its cells after the
		// queued deletes apply).
		*in = Intent{}
		session.reset()
		frame.Commands.Defer(func() {
			clearBoard(frame.World)
		})
	}

	if in.TogglePause {
		in.TogglePause = false
		switch session.Phase {
		case PhaseRunning:
			session.Phase = PhasePaused
		case PhasePaused:
			session.Phase = PhaseRunning
		}
	}

	if session.Phase != PhaseRunning {
		*in = Intent{}
	}
}

// clearBoard removes every board entity: the active piece and all locked
// blocks. Both carry a GridPos.
func clearBoard(world *ecs.World) {
	cells := ecs.NewView[struct{ *GridPos }](world)
	doomed := make([]ecs.Entity, 0, BoardWidth*BoardHeight)
	for id := range cells.Iter() {
		doomed = append(doomed, id)
	}
	for _, id := range doomed {
		world.Delete(id)
	}
}

// MoveSystem applies the player intents to the active piece: horizontal
// steps, rotation, soft drop and hard drop. Every change is validated against
// the board before it is applied; invalid moves are dropped with no effect.
type MoveSystem struct {
	Intent    ecs.Singleton[Intent]
	Session   ecs.Singleton[Session]
	Field     ecs.Singleton[Playfield]
	Occupancy ecs.Singleton[Occupancy]

	Active ecs.Query[struct {
		*GridPos
		*ActivePiece
		*Fall
	}]
}

func (s *MoveSystem) Execute(frame *ecs.Frame) {
	session := s.Session.Get()
	if session.Phase != PhaseRunning {
		return
	}

	in := s.Intent.Get()
	field := s.Field.Get()
	occ := s.Occupancy.Get()

	for _, item := range s.Active.Iter() {
		if in.MoveX != 0 {
			to := GridPos{X: item.GridPos.X + in.MoveX, Y: item.GridPos.Y}
			if fits(item.ActivePiece.Kind, item.ActivePiece.Rot, to, field, occ) {
				*item.GridPos = to
			}
		}

		if in.Rotate != 0 {
			rot := ((item.ActivePiece.Rot+in.Rotate)%4 + 4) % 4
			if fits(item.ActivePiece.Kind, rot, *item.GridPos, field, occ) {
				item.ActivePiece.Rot = rot
			}
		}

		if in.HardDrop {
			item.GridPos.Y = dropY(item.ActivePiece.Kind, item.ActivePiece.Rot, *item.GridPos, field, occ)
			item.Fall.Landed = true
			continue
		}

		if in.SoftDrop {
			down := GridPos{X: item.GridPos.X, Y: item.GridPos.Y + 1}
			if fits(item.ActivePiece.Kind, item.ActivePiece.Rot, down, field, occ) {
				*item.GridPos = down
				item.Fall.Accumulator = 0
			} else {
				item.Fall.Landed = true
			}
		}
	}

	*in = Intent{}
}

// GravitySystem steps the active piece down on a level-dependent timer. A
// blocked step marks the piece landed so it locks on the same tick.
type GravitySystem struct {
	Session   ecs.Singleton[Session]
	Field     ecs.Singleton[Playfield]
	Occupancy ecs.Singleton[Occupancy]

	Active ecs.Query[struct {
		*GridPos
		*ActivePiece
		*Fall
	}]
}

func (s *GravitySystem) Execute(frame *ecs.Frame) {
	if s.Session.Get().Phase != PhaseRunning {
		return
	}

	field := s.Field.Get()
	occ := s.Occupancy.Get()

	for _, item := range s.Active.Iter() {
		item.Fall.Accumulator += frame.DeltaTime
		if item.Fall.Accumulator < item.Fall.Interval {
			continue
		}
		item.Fall.Accumulator = 0

		down := GridPos{X: item.GridPos.X, Y: item.GridPos.Y + 1}
		if fits(item.ActivePiece.Kind, item.ActivePiece.Rot, down, field, occ) {
			*item.GridPos = down
		} else {
			item.Fall.Landed = true
		}
	}
}

// LockSystem converts a landed piece into individual locked blocks and
// removes the piece entity. Cells still above the top edge are discarded.
type LockSystem struct {
	Field ecs.Singleton[Playfield]

	Active ecs.Query[struct {
		*GridPos
		*ActivePiece
		*Fall
	}]
}

func (s *LockSystem) Execute(frame *ecs.Frame) {
	field := s.Field.Get()

	for id, item := range s.Active.Iter() {
		if !item.Fall.Landed {
			continue
		}
		for _, c := range item.ActivePiece.Kind.Cells(item.ActivePiece.Rot) {
			x, y := item.GridPos.X+c[0], item.GridPos.Y+c[1]
			if y < 0 || y >= field.Height || x < 0 || x >= field.Width {
				continue
			}
			frame.Commands.Spawn(
				GridPos{X: x, Y: y},
				Block{Color: item.ActivePiece.Kind.Color()},
			)
		}
		frame.Commands.Delete(id)
	}
}

// LineClearSystem removes full rows, shifts everything above them down, and
// updates score, line count and level. Scoring is quadratic in the number of
// rows cleared at once.
type LineClearSystem struct {
	Session   ecs.Singleton[Session]
	Field     ecs.Singleton[Playfield]
	Occupancy ecs.Singleton[Occupancy]

	Blocks ecs.Query[struct {
		*GridPos
		*Block
	}]
}

func (s *LineClearSystem) Execute(frame *ecs.Frame) {
	session := s.Session.Get()
	if session.Phase != PhaseRunning {
		return
	}

	field := s.Field.Get()

	counts := make([]int, field.Height)
	for _, item := range s.Blocks.Iter() {
		if item.GridPos.Y >= 0 && item.GridPos.Y < field.Height {
			counts[item.GridPos.Y]++
		}
	}

	full := make(map[int]bool)
	for y, n := range counts {
		if n == field.Width {
			full[y] = true
		}
	}
	if len(full) == 0 {
		return
	}

	occ := s.Occupancy.Get()
	occ.Cells.Clear()

	for id, item := range s.Blocks.Iter() {
		if full[item.GridPos.Y] {
			frame.Commands.Delete(id)
			continue
		}
		shift := 0
		for y := range full {
			if y > item.GridPos.Y {
				shift++
			}
		}
		item.GridPos.Y += shift
		occ.Cells.Put(cellKey(field.Width, item.GridPos.X, item.GridPos.Y), id)
	}

	cleared := len(full)
	session.Lines += cleared
	session.Score += cleared * cleared * 100
	session.Level = 1 + session.Lines/10
}

// SpawnSystem brings in the next piece when no active piece exists. A spawn
// that would overlap locked blocks ends the game instead.
type SpawnSystem struct {
	Session   ecs.Singleton[Session]
	Field     ecs.Singleton[Playfield]
	Occupancy ecs.Singleton[Occupancy]

	Active ecs.Query[struct {
		*ActivePiece
	}]
}

func (s *SpawnSystem) Execute(frame *ecs.Frame) {
	session := s.Session.Get()
	if session.Phase != PhaseRunning {
		return
	}
	for range s.Active.Iter() {
		return
	}

	field := s.Field.Get()
	kind := session.drawPiece()
	origin := GridPos{X: (field.Width - 4) / 2, Y: -1}

	if !fits(kind, 0, origin, field, s.Occupancy.Get()) {
		session.Phase = PhaseGameOver
		return
	}

	frame.Commands.Spawn(
		origin,
		ActivePiece{Kind: kind},
		Fall{Interval: fallInterval(session.Level)},
	)
}
