package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/internal/debugui"
)

// RegisterComponents registers every component the game spawns.
func RegisterComponents(registry *ecs.Registry) {
	ecs.RegisterComponent[GridPos](registry)
	ecs.RegisterComponent[ActivePiece](registry)
	ecs.RegisterComponent[Fall](registry)
	ecs.RegisterComponent[Block](registry)
	ecs.RegisterComponent[debugui.Item](registry)
}

// NewWorld builds a world with the game components registered and all
// singletons in place.
func NewWorld() *ecs.World {
	registry := ecs.NewRegistry()
	RegisterComponents(registry)

	world := ecs.NewWorld(registry)
	ecs.NewSingleton[Playfield](world, Playfield{Width: BoardWidth, Height: BoardHeight})
	ecs.NewSingleton[Session](world, Session{Level: 1})
	ecs.NewSingleton[Intent](world)
	ecs.NewSingleton[Screen](world)
	ecs.NewSingleton[DebugState](world)
	ecs.NewSingleton[debugui.InputCapture](world)
	world.AddSingleton(NewOccupancy())

	return world
}

// NewSimScheduler builds the simulation scheduler. Input systems run first
// so the rest of the tick sees this tick's intents.
func NewSimScheduler(world *ecs.World, input ...ecs.System) *ecs.Scheduler {
	scheduler := ecs.NewScheduler(world)
	for _, sys := range input {
		scheduler.Register(sys)
	}
	scheduler.Register(&ControlSystem{})
	scheduler.Register(&OccupancySystem{})
	scheduler.Register(&MoveSystem{})
	scheduler.Register(&GravitySystem{})
	scheduler.Register(&LockSystem{})
	scheduler.Register(&LineClearSystem{})
	scheduler.Register(&SpawnSystem{})
	return scheduler
}

// Game is the ebiten.Game implementation. Simulation systems run from
// Update at a fixed step; the render scheduler runs from Draw against the
// Screen singleton.
type Game struct {
	world   *ecs.World
	sim     *ecs.Scheduler
	render  *ecs.Scheduler
	screen  *ecs.Singleton[Screen]
	debug   *ecs.Singleton[DebugState]
	backend *debugui.Backend
}

// New assembles the full game. backend may be nil to run without the debug
// overlay.
func New(backend *debugui.Backend) *Game {
	world := NewWorld()

	sim := NewSimScheduler(world, &KeyboardSystem{})
	if backend != nil {
		sim.Register(&debugui.System{})
	}

	render := ecs.NewScheduler(world)
	render.Register(&RenderSystem{})

	if backend != nil {
		spawnDebugOverlay(world, sim)
	}

	return &Game{
		world:   world,
		sim:     sim,
		render:  render,
		screen:  ecs.NewSingleton[Screen](world),
		debug:   ecs.NewSingleton[DebugState](world),
		backend: backend,
	}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		debug := g.debug.Get()
		debug.Enabled = !debug.Enabled
	}

	if g.backend != nil {
		g.backend.BeginFrame()
	}
	g.sim.Once(1.0 / 60.0)
	if g.backend != nil {
		g.backend.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Get().Image = screen
	g.render.Once(0)

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
