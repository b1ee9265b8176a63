// Package debugui renders the Dear ImGui debug overlay through ECS entities.
// Each overlay window is an entity holding a render function; the system
// defers them so they run inside the ImGui frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/ecs"
)

// Item holds a Dear ImGui render function. Spawn one entity per overlay
// window.
type Item struct {
	Render func()
}

// InputCapture is a singleton mirroring ImGui's input capture state, so game
// input can back off while an overlay widget is focused.
type InputCapture struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// System defers every Item's render function to the end of the tick and
// refreshes the InputCapture singleton.
type System struct {
	Items ecs.Query[struct {
		*Item
	}]
	Capture ecs.Singleton[InputCapture]
}

func (s *System) Execute(frame *ecs.Frame) {
	capture := s.Capture.Get()
	capture.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	capture.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, item := range s.Items.Iter() {
		frame.Commands.Defer(item.Item.Render)
	}
}
