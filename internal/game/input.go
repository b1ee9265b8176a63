package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/internal/debugui"
)

const (
	repeatDelay  = 0.2
	repeatRate   = 0.05
	softDropRate = 0.05
)

// KeyboardSystem translates key state into the Intent singleton. Horizontal
// movement and soft drop auto-repeat while held; rotation, hard drop, pause
// and restart fire on the initial press only. While an overlay widget has
// keyboard focus, key handling is suspended and the repeat timers reset.
type KeyboardSystem struct {
	Intent  ecs.Singleton[Intent]
	Capture ecs.Singleton[debugui.InputCapture]

	leftHeld  float64
	rightHeld float64
	downHeld  float64
}

func (s *KeyboardSystem) Execute(frame *ecs.Frame) {
	in := s.Intent.Get()
	*in = Intent{}

	if capture := s.Capture.Get(); capture != nil && capture.WantCaptureKeyboard {
		s.leftHeld = 0
		s.rightHeld = 0
		s.downHeld = 0
		return
	}

	s.leftHeld = repeatAxis(frame.DeltaTime, ebiten.KeyLeft, s.leftHeld, func() { in.MoveX = -1 })
	s.rightHeld = repeatAxis(frame.DeltaTime, ebiten.KeyRight, s.rightHeld, func() { in.MoveX = 1 })

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		s.downHeld = 0
		in.SoftDrop = true
	case ebiten.IsKeyPressed(ebiten.KeyDown):
		s.downHeld += frame.DeltaTime
		if s.downHeld >= softDropRate {
			s.downHeld = 0
			in.SoftDrop = true
		}
	default:
		s.downHeld = 0
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		in.Rotate = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		in.Rotate = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		in.HardDrop = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		in.TogglePause = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		in.Restart = true
	}
}

// repeatAxis implements delayed auto-repeat for a held key. It returns the
// updated hold timer and invokes fire on the press and on every repeat.
func repeatAxis(dt float64, key ebiten.Key, held float64, fire func()) float64 {
	switch {
	case inpututil.IsKeyJustPressed(key):
		fire()
		return 0
	case ebiten.IsKeyPressed(key):
		held += dt
		if held >= repeatDelay {
			held -= repeatRate
			fire()
		}
		return held
	}
	return 0
}
