package ecs

// Frame carries per-tick context into systems: the elapsed time, the world,
// and the command buffer flushed at the end of the tick.
type Frame struct {
	DeltaTime float64
	Commands  *Commands
	World     *World
}

func newFrame(dt float64, world *World) *Frame {
	return &Frame{
		DeltaTime: dt,
		Commands:  newCommands(),
		World:     world,
	}
}
