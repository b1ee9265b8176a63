package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/blockfall/ecs"
)

const (
	boardOffsetX = 40
	boardOffsetY = 50

	panelX = boardOffsetX + BoardWidth*CellSize + 30
)

// Screen is the render-target singleton. The game loop points it at the
// frame's screen image before running the render scheduler.
type Screen struct {
	*ebiten.Image
}

var (
	backgroundColor = color.RGBA{18, 18, 28, 255}
	borderColor     = color.RGBA{200, 200, 200, 255}
	gridLineColor   = color.RGBA{40, 40, 55, 255}
	ghostColor      = color.RGBA{110, 110, 120, 255}
)

// RenderSystem draws the whole frame: board frame, locked blocks, ghost,
// active piece, next-piece preview and the HUD.
type RenderSystem struct {
	Screen    ecs.Singleton[Screen]
	Session   ecs.Singleton[Session]
	Field     ecs.Singleton[Playfield]
	Occupancy ecs.Singleton[Occupancy]

	Active ecs.Query[struct {
		*GridPos
		*ActivePiece
	}]
	Blocks ecs.Query[struct {
		*GridPos
		*Block
	}]
}

func (s *RenderSystem) Execute(frame *ecs.Frame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}

	session := s.Session.Get()
	field := s.Field.Get()

	screen.Fill(backgroundColor)
	s.drawBoard(screen.Image, field)

	for _, item := range s.Blocks.Iter() {
		drawCell(screen.Image, item.GridPos.X, item.GridPos.Y, item.Block.Color)
	}

	occ := s.Occupancy.Get()
	for _, item := range s.Active.Iter() {
		ghostY := dropY(item.ActivePiece.Kind, item.ActivePiece.Rot, *item.GridPos, field, occ)
		for _, c := range item.ActivePiece.Kind.Cells(item.ActivePiece.Rot) {
			x, y := item.GridPos.X+c[0], ghostY+c[1]
			if y >= 0 {
				drawGhostCell(screen.Image, x, y)
			}
		}
		for _, c := range item.ActivePiece.Kind.Cells(item.ActivePiece.Rot) {
			x, y := item.GridPos.X+c[0], item.GridPos.Y+c[1]
			if y >= 0 {
				drawCell(screen.Image, x, y, item.ActivePiece.Kind.Color())
			}
		}
	}

	s.drawPanel(screen.Image, session)

	switch session.Phase {
	case PhasePaused:
		ebitenutil.DebugPrintAt(screen.Image, "PAUSED\n\nP to resume", panelX, 340)
	case PhaseGameOver:
		ebitenutil.DebugPrintAt(screen.Image, "GAME OVER\n\nR to restart", panelX, 340)
	}
}

func (s *RenderSystem) drawBoard(dst *ebiten.Image, field *Playfield) {
	w := float32(field.Width * CellSize)
	h := float32(field.Height * CellSize)

	for x := 1; x < field.Width; x++ {
		fx := float32(boardOffsetX + x*CellSize)
		vector.StrokeLine(dst, fx, boardOffsetY, fx, boardOffsetY+h, 1, gridLineColor, false)
	}
	for y := 1; y < field.Height; y++ {
		fy := float32(boardOffsetY + y*CellSize)
		vector.StrokeLine(dst, boardOffsetX, fy, boardOffsetX+w, fy, 1, gridLineColor, false)
	}

	vector.StrokeRect(dst, boardOffsetX-1, boardOffsetY-1, w+2, h+2, 2, borderColor, false)
}

func (s *RenderSystem) drawPanel(dst *ebiten.Image, session *Session) {
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("SCORE\n%d", session.Score), panelX, boardOffsetY)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("LINES\n%d", session.Lines), panelX, boardOffsetY+60)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("LEVEL\n%d", session.Level), panelX, boardOffsetY+120)

	if session.HasNext {
		ebitenutil.DebugPrintAt(dst, "NEXT", panelX, boardOffsetY+190)
		previewCell := CellSize / 2
		for _, c := range session.Next.Cells(0) {
			px := float32(panelX + c[0]*previewCell)
			py := float32(boardOffsetY + 210 + c[1]*previewCell)
			vector.DrawFilledRect(dst, px, py, float32(previewCell-1), float32(previewCell-1), session.Next.Color(), false)
		}
	}
}

func drawCell(dst *ebiten.Image, x, y int, clr color.RGBA) {
	px := float32(boardOffsetX + x*CellSize)
	py := float32(boardOffsetY + y*CellSize)
	vector.DrawFilledRect(dst, px+1, py+1, CellSize-2, CellSize-2, clr, false)
}

func drawGhostCell(dst *ebiten.Image, x, y int) {
	px := float32(boardOffsetX + x*CellSize)
	py := float32(boardOffsetY + y*CellSize)
	vector.StrokeRect(dst, px+2, py+2, CellSize-4, CellSize-4, 1, ghostColor, false)
}
