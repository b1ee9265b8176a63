package ecs

// Commands buffers structural changes so they apply between frames instead of
// while systems are iterating storage.
type Commands struct {
	spawns  [][]any
	deletes []Entity
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion.
func (c *Commands) Delete(e Entity) {
	c.deletes = append(c.deletes, e)
}

// Defer queues an arbitrary function to run at flush time, after all queued
// deletions and spawns have been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies all queued operations to the world and resets the buffer.
// Deletions run before spawns so freed slots can be reused immediately.
func (c *Commands) Flush(world *World) {
	for _, e := range c.deletes {
		world.Delete(e)
	}
	for _, components := range c.spawns {
		world.Spawn(components...)
	}
	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
}
