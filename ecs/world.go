package ecs

import (
	"reflect"
	"unsafe"
)

// World owns all entity and singleton storage for one ECS instance.
type World struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *Registry
}

type singletonEntry struct {
	boxed any            // *T, keeps the value alive
	ptr   unsafe.Pointer // points at the T itself
}

// NewWorld creates an empty world backed by the given component registry.
func NewWorld(registry *Registry) *World {
	return &World{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Spawn creates a new entity holding the provided components. Components may
// be passed by value or by pointer; either way the world stores a copy.
func (w *World) Spawn(components ...any) Entity {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	types := componentTypes(components)
	archetypeId := hashTypes(types)

	archetype, ok := w.archetypes[archetypeId]
	if !ok {
		archetype = newArchetype(archetypeId, types, w.registry)
		w.archetypes[archetypeId] = archetype
	}

	slot := archetype.spawn(components)
	return NewEntity(archetypeId, slot)
}

// Delete removes the entity and all of its components.
func (w *World) Delete(e Entity) {
	if archetype, ok := w.archetypes[e.ArchetypeID()]; ok {
		archetype.delete(e.Slot())
	}
}

// Get returns a pointer (boxed as any) to the entity's component of the given
// type, or nil if the entity does not exist or lacks the component.
func (w *World) Get(e Entity, compType reflect.Type) any {
	archetype, ok := w.archetypes[e.ArchetypeID()]
	if !ok {
		return nil
	}
	return archetype.component(e.Slot(), compType)
}

// Has reports whether the entity's archetype carries the given component type.
func (w *World) Has(e Entity, compType reflect.Type) bool {
	archetype, ok := w.archetypes[e.ArchetypeID()]
	if !ok {
		return false
	}
	return archetype.HasType(compType)
}

// Component returns a typed pointer to the entity's component of type T, or
// nil if the entity does not carry one.
func Component[T any](w *World, e Entity) *T {
	comp := w.Get(e, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}

// EntityCount returns the number of live entities across all archetypes.
func (w *World) EntityCount() int {
	n := 0
	for _, archetype := range w.archetypes {
		n += archetype.Len()
	}
	return n
}

// ArchetypeCount returns the number of distinct archetypes seen so far.
func (w *World) ArchetypeCount() int {
	return len(w.archetypes)
}

// AddSingleton stores a world-level singleton value. There is at most one
// singleton per type; storing again replaces the previous value.
func (w *World) AddSingleton(value any) {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	boxed := reflect.New(rv.Type())
	boxed.Elem().Set(rv)
	w.singletons[rv.Type()] = &singletonEntry{
		boxed: boxed.Interface(),
		ptr:   boxed.UnsafePointer(),
	}
}

// ReadSingleton fills out, which must be a pointer to a component pointer
// (**T), with the singleton of type T. Reports whether the singleton exists.
func (w *World) ReadSingleton(out any) bool {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Ptr {
		panic("ecs: ReadSingleton expects a pointer to a component pointer")
	}
	entry := w.singletons[rv.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	rv.Elem().Set(reflect.ValueOf(entry.boxed))
	return true
}

func (w *World) singleton(t reflect.Type) *singletonEntry {
	return w.singletons[t]
}

// componentTypes extracts and canonically sorts the component types of a
// spawn argument list.
func componentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		// Components are value types: structs or primitives. Pointers, maps,
		// channels and functions are not storable as components themselves.
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("ecs: components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sortTypes(types)
	return types
}

// hashTypes generates a uint32 FNV-1a hash over a sorted slice of types,
// using each type's runtime descriptor pointer as its identity.
func hashTypes(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := (*iface)(unsafe.Pointer(&t)).data
		val := uint32(uintptr(ptr))
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uintptr(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}
	return h
}
