package game

import (
	"image/color"
	"math/rand/v2"
)

//go:generate go run github.com/plus3/blockfall/cmd/piecegen -out pieces_gen.go

// PieceKind identifies one of the seven tetromino shapes.
type PieceKind int

const (
	PieceI PieceKind = iota
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL

	pieceKinds = 7
)

var pieceNames = [pieceKinds]string{"I", "O", "T", "S", "Z", "J", "L"}

func (k PieceKind) String() string {
	if k < 0 || k >= pieceKinds {
		return "?"
	}
	return pieceNames[k]
}

var pieceColors = [pieceKinds]color.RGBA{
	{0, 255, 255, 255}, // I
	{255, 255, 0, 255}, // O
	{128, 0, 128, 255}, // T
	{0, 255, 0, 255},   // S
	{255, 0, 0, 255},   // Z
	{0, 0, 255, 255},   // J
	{255, 165, 0, 255}, // L
}

// Color returns the fill color used for this kind's cells.
func (k PieceKind) Color() color.RGBA {
	return pieceColors[k]
}

// Cells returns the four cell offsets of this kind at the given rotation
// state, relative to the piece origin. Offsets live in a 4x4 box.
func (k PieceKind) Cells(rot int) [4][2]int {
	return pieceCells[k][((rot%4)+4)%4]
}

// drawFromBag deals the next kind from a shuffled seven-piece bag, refilling
// the bag when it runs out. Every kind appears exactly once per bag.
func (s *Session) drawFromBag() PieceKind {
	if len(s.Bag) == 0 {
		s.Bag = make([]PieceKind, pieceKinds)
		for i := range s.Bag {
			s.Bag[i] = PieceKind(i)
		}
		rand.Shuffle(len(s.Bag), func(i, j int) {
			s.Bag[i], s.Bag[j] = s.Bag[j], s.Bag[i]
		})
	}
	kind := s.Bag[0]
	s.Bag = s.Bag[1:]
	return kind
}
