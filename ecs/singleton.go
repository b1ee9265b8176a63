package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton is a typed accessor for a world-level singleton value. Use it for
// global state that belongs to no particular entity.
type Singleton[T any] struct {
	world *World
	ptr   unsafe.Pointer
	typ   reflect.Type
}

// NewSingleton returns an accessor for the singleton of type T, creating the
// singleton with the initializer (or a zero value) if it does not exist yet.
func NewSingleton[T any](world *World, initializer ...T) *Singleton[T] {
	typ := reflect.TypeFor[T]()

	entry := world.singleton(typ)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		world.AddSingleton(value)
		entry = world.singleton(typ)
	}

	return &Singleton[T]{
		world: world,
		ptr:   entry.ptr,
		typ:   typ,
	}
}

// bind attaches the accessor to a world. Called by the Scheduler for
// Singleton fields of registered systems.
func (s *Singleton[T]) bind(world *World) {
	s.world = world
	s.typ = reflect.TypeFor[T]()
	s.refresh()
}

// Get returns a pointer to the singleton, or nil if it was never added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	if s.ptr == nil {
		return nil
	}
	return (*T)(s.ptr)
}

// Exists reports whether the singleton has been added to the world.
func (s *Singleton[T]) Exists() bool {
	if s.ptr == nil {
		s.refresh()
	}
	return s.ptr != nil
}

func (s *Singleton[T]) refresh() {
	if s.world == nil {
		return
	}
	if entry := s.world.singleton(s.typ); entry != nil {
		s.ptr = entry.ptr
	} else {
		s.ptr = nil
	}
}
