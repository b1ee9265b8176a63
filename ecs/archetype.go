package ecs

import (
	"reflect"
	"slices"
	"sort"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that carries exactly one combination of
// component types. Each component type has its own column; an entity's slot
// is the same across all columns of its archetype.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
}

// newArchetype creates an archetype for a sorted set of component types.
func newArchetype(id uint32, types []reflect.Type, registry *Registry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, typ := range types {
		factory := registry.factory(typ)
		if factory == nil {
			panic("ecs: component type " + typ.String() + " not registered")
		}
		a.columns[i] = factory()
	}
	return a
}

// spawn stores the components into this archetype's columns and returns the
// shared slot.
func (a *Archetype) spawn(components []any) uint32 {
	var slot int
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}
		for i, typ := range a.types {
			if typ == compType {
				slot = a.columns[i].Append(comp)
			}
		}
	}
	return uint32(slot)
}

// component returns a pointer (boxed as any) to the entity's component of the
// given type, or nil if this archetype lacks the type or the slot is empty.
func (a *Archetype) component(slot uint32, compType reflect.Type) any {
	for i, typ := range a.types {
		if typ == compType {
			return a.columns[i].Get(int(slot))
		}
	}
	return nil
}

// delete clears an entity's slot in every column. Slots stay stable; the
// freed slot is recycled by later spawns.
func (a *Archetype) delete(slot uint32) {
	for _, col := range a.columns {
		col.Delete(int(slot))
	}
}

// HasType reports whether this archetype carries the given component type.
func (a *Archetype) HasType(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types of this archetype.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in this archetype.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// Entities iterates over all live entities in this archetype.
func (a *Archetype) Entities() func(yield func(Entity) bool) {
	return func(yield func(Entity) bool) {
		if len(a.columns) == 0 {
			return
		}
		for slot := range a.columns[0].Slots() {
			if !yield(NewEntity(a.id, uint32(slot))) {
				return
			}
		}
	}
}

// sortTypes sorts component types into the canonical archetype order.
func sortTypes(types []reflect.Type) {
	sort.Sort(byTypeName(types))
}
