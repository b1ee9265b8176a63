package game

import "image/color"

const (
	BoardWidth  = 10
	BoardHeight = 20
	CellSize    = 30

	WindowWidth  = 500
	WindowHeight = 700
)

// Playfield is the board geometry singleton. Dimensions never change for the
// lifetime of a session.
type Playfield struct {
	Width  int
	Height int
}

// GridPos is a board-relative cell position. The active piece carries its
// origin; every locked block carries its own cell.
type GridPos struct {
	X, Y int
}

// ActivePiece marks the one falling piece.
type ActivePiece struct {
	Kind PieceKind
	Rot  int
}

// Fall drives timed gravity for the active piece. Landed is set when a timed
// descent is blocked; the piece locks on the same tick.
type Fall struct {
	Interval    float64
	Accumulator float64
	Landed      bool
}

// Block is one locked cell on the board.
type Block struct {
	Color color.RGBA
}

// Phase is the session state machine.
type Phase int

const (
	PhaseRunning Phase = iota
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	}
	return "unknown"
}

// Session is the score/level singleton, including the piece bag and the
// next-piece preview.
type Session struct {
	Score int
	Lines int
	Level int
	Phase Phase

	Bag     []PieceKind
	Next    PieceKind
	HasNext bool
}

// reset restores the session to its start-of-game state. The board entities
// are cleared separately.
func (s *Session) reset() {
	*s = Session{Level: 1}
}

// drawPiece returns the next piece to play and advances the preview.
func (s *Session) drawPiece() PieceKind {
	if !s.HasNext {
		s.Next = s.drawFromBag()
		s.HasNext = true
	}
	kind := s.Next
	s.Next = s.drawFromBag()
	return kind
}

// Intent is the per-tick input singleton. An input system (keyboard or a
// headless driver) writes it; the control and movement systems consume it, so
// at most one horizontal move, one rotation and one drop change apply per
// tick.
type Intent struct {
	MoveX       int // -1 left, +1 right
	Rotate      int // +1 clockwise, -1 counter-clockwise
	SoftDrop    bool
	HardDrop    bool
	TogglePause bool
	Restart     bool
}

// fallInterval returns the gravity step duration in seconds for a level.
func fallInterval(level int) float64 {
	ms := 500 - 40*(level-1)
	if ms < 50 {
		ms = 50
	}
	return float64(ms) / 1000
}
