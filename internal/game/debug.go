package game

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/internal/debugui"
)

// DebugState gates the ImGui overlay. Toggled with F3.
type DebugState struct {
	Enabled bool
}

func debugEnabled(world *ecs.World) bool {
	var debug *DebugState
	return world.ReadSingleton(&debug) && debug.Enabled
}

// spawnDebugOverlay creates the overlay windows as render-item entities.
func spawnDebugOverlay(world *ecs.World, sim *ecs.Scheduler) {
	spawnSessionWindow(world)
	spawnBoardWindow(world)
	spawnSystemStatsWindow(world, sim)
}

func spawnSessionWindow(world *ecs.World) {
	world.Spawn(debugui.Item{
		Render: func() {
			if !debugEnabled(world) {
				return
			}
			var session *Session
			if !world.ReadSingleton(&session) {
				return
			}

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(220, 180), imgui.CondOnce)

			if imgui.BeginV("Session", nil, 0) {
				imgui.Text(fmt.Sprintf("Phase: %s", session.Phase))
				imgui.Text(fmt.Sprintf("Score: %d", session.Score))
				imgui.Text(fmt.Sprintf("Lines: %d", session.Lines))
				imgui.Text(fmt.Sprintf("Level: %d", session.Level))
				imgui.Separator()
				imgui.Text(fmt.Sprintf("Gravity: %.0f ms", fallInterval(session.Level)*1000))
				if session.HasNext {
					imgui.Text(fmt.Sprintf("Next: %s", session.Next))
				}
				imgui.Text(fmt.Sprintf("Bag: %d left", len(session.Bag)))
				imgui.End()
			}
		},
	})
}

func spawnBoardWindow(world *ecs.World) {
	world.Spawn(debugui.Item{
		Render: func() {
			if !debugEnabled(world) {
				return
			}
			var field *Playfield
			var occ *Occupancy
			if !world.ReadSingleton(&field) || !world.ReadSingleton(&occ) {
				return
			}

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 200), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(220, 240), imgui.CondOnce)

			if imgui.BeginV("Board", nil, 0) {
				imgui.Text(fmt.Sprintf("Occupied: %d / %d", occ.Cells.Len(), field.Width*field.Height))
				imgui.Separator()
				for y := 0; y < field.Height; y++ {
					n := 0
					for x := 0; x < field.Width; x++ {
						if occ.occupied(field.Width, x, y) {
							n++
						}
					}
					if n > 0 {
						imgui.Text(fmt.Sprintf("row %2d: %d", y, n))
					}
				}
				imgui.End()
			}
		},
	})
}

func spawnSystemStatsWindow(world *ecs.World, sim *ecs.Scheduler) {
	world.Spawn(debugui.Item{
		Render: func() {
			if !debugEnabled(world) {
				return
			}

			stats := sim.Stats()

			imgui.SetNextWindowPosV(imgui.NewVec2(240, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(250, 300), imgui.CondOnce)

			if imgui.BeginV("Systems", nil, 0) {
				imgui.Text(fmt.Sprintf("Entities: %d", world.EntityCount()))
				imgui.Text(fmt.Sprintf("Archetypes: %d", world.ArchetypeCount()))
				imgui.Separator()

				const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
				if imgui.BeginTableV("systems", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
					imgui.TableSetupColumn("Name")
					imgui.TableSetupColumn("Avg (ms)")
					imgui.TableHeadersRow()

					for _, sys := range stats.Systems {
						imgui.TableNextRow()
						imgui.TableNextColumn()
						imgui.Text(sys.Name)
						imgui.TableNextColumn()
						imgui.Text(fmt.Sprintf("%.3f", float64(sys.AvgDuration.Microseconds())/1000.0))
					}
					imgui.EndTable()
				}
				imgui.End()
			}
		},
	})
}
