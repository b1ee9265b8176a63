package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
)

// Backend wraps the Ebiten-specific Dear ImGui backend. The game loop calls
// BeginFrame/EndFrame around the simulation tick and Draw from the render
// path.
type Backend struct {
	*ebitenbackend.EbitenBackend
}
