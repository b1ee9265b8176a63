package ecs

import (
	"iter"
	"unsafe"
)

// Query wraps a View with per-frame caching for systems. The Scheduler binds
// Query fields at registration and synchronizes every bound query before the
// frame's systems run, so all systems observe the same entity snapshot.
type Query[T any] struct {
	view  *View[T]
	world *World

	matching       []*Archetype
	archetypeCount int

	entities   []Entity
	components []T
	synced     bool
}

// NewQuery creates a standalone query. Code outside a Scheduler must call
// Sync before iterating.
func NewQuery[T any](world *World) *Query[T] {
	q := &Query[T]{}
	q.bind(world)
	return q
}

// bind attaches the query to a world. Called by the Scheduler for Query
// fields of registered systems.
func (q *Query[T]) bind(world *World) {
	q.view = NewView[T](world)
	q.world = world
	q.matching = nil
	q.archetypeCount = -1
	q.synced = false
}

// Sync rebuilds the entity and component snapshot for this frame.
func (q *Query[T]) Sync() {
	if len(q.world.archetypes) != q.archetypeCount {
		q.matching = nil
		q.archetypeCount = len(q.world.archetypes)
	}
	if q.matching == nil {
		q.matching = make([]*Archetype, 0)
		for _, archetype := range q.world.archetypes {
			if q.view.matches(archetype) {
				q.matching = append(q.matching, archetype)
			}
		}
	}

	q.entities = q.entities[:0]
	q.components = q.components[:0]

	for _, archetype := range q.matching {
		if len(archetype.columns) == 0 {
			continue
		}
		indices := q.view.columnIndices(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)
		for slot := range archetype.columns[0].Slots() {
			if !q.view.fillFromColumns(resultPtr, archetype, slot, indices) {
				continue
			}
			q.entities = append(q.entities, NewEntity(archetype.id, uint32(slot)))
			q.components = append(q.components, result)
		}
	}

	q.synced = true
}

// Iter iterates over the synchronized snapshot, yielding entities and their
// view structs. Panics if the query has not been synchronized this frame.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	if !q.synced {
		panic("ecs: Query.Iter() called before Query.Sync()")
	}
	return func(yield func(Entity, T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.components[i]) {
				return
			}
		}
	}
}

// Values iterates over the view structs only.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.synced {
		panic("ecs: Query.Values() called before Query.Sync()")
	}
	return func(yield func(T) bool) {
		for i := range q.components {
			if !yield(q.components[i]) {
				return
			}
		}
	}
}
