package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View is an ad-hoc query over entities carrying a specific combination of
// components. The type T must be a struct whose fields are pointers to
// component types. Named fields may be tagged `ecs:"optional"`; embedded
// fields are always required.
type View[T any] struct {
	world    *World
	types    []reflect.Type
	optional []bool
	offsets  []uintptr

	// Archetype id for the exact set of required types, cached for Spawn.
	spawnArchetype *uint32
}

// NewView builds a view for the struct type T against the given world.
func NewView[T any](world *World) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	v := &View[T]{
		world:    world,
		types:    make([]reflect.Type, 0, structType.NumField()),
		optional: make([]bool, 0, structType.NumField()),
		offsets:  make([]uintptr, 0, structType.NumField()),
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: View struct fields must be pointer types")
		}

		v.types = append(v.types, field.Type.Elem())
		v.offsets = append(v.offsets, field.Offset)

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("ecs: invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}
		v.optional = append(v.optional, isOptional)
	}

	return v
}

// Fill populates the provided struct pointer with component pointers for the
// given entity. Reports false if a required component is missing; optional
// components are left nil.
func (v *View[T]) Fill(e Entity, ptr *T) bool {
	archetype, ok := v.world.archetypes[e.ArchetypeID()]
	if !ok {
		return false
	}

	// Write component pointers straight into the struct's memory using the
	// pre-computed field offsets, skipping reflection in the hot path.
	structPtr := unsafe.Pointer(ptr)
	for i, componentType := range v.types {
		component := archetype.component(e.Slot(), componentType)
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.offsets[i])

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Get returns a populated view struct for the entity, or nil if the entity is
// missing a required component.
func (v *View[T]) Get(e Entity) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// matches reports whether an archetype carries every required component type.
func (v *View[T]) matches(archetype *Archetype) bool {
	for i, required := range v.types {
		if v.optional[i] {
			continue
		}
		if !archetype.HasType(required) {
			return false
		}
	}
	return true
}

// columnIndices maps each view field to its column index within the
// archetype, -1 where the archetype lacks the (optional) type.
func (v *View[T]) columnIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, componentType := range v.types {
		indices[i] = -1
		for idx, archetypeType := range archetype.types {
			if archetypeType == componentType {
				indices[i] = idx
				break
			}
		}
	}
	return indices
}

func (v *View[T]) fillFromColumns(resultPtr unsafe.Pointer, archetype *Archetype, slot int, indices []int) bool {
	for i, colIdx := range indices {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.offsets[i])

		if colIdx == -1 {
			if v.optional[i] {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}

		component := archetype.columns[colIdx].Get(slot)
		if component == nil {
			if v.optional[i] {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Iter iterates over every entity carrying all required components, yielding
// the entity and the populated view struct.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		for archetypeId, archetype := range v.world.archetypes {
			if !v.matches(archetype) || len(archetype.columns) == 0 {
				continue
			}

			indices := v.columnIndices(archetype)
			var result T
			resultPtr := unsafe.Pointer(&result)

			for slot := range archetype.columns[0].Slots() {
				if !v.fillFromColumns(resultPtr, archetype, slot, indices) {
					continue
				}
				if !yield(NewEntity(archetypeId, uint32(slot)), result) {
					return
				}
			}
		}
	}
}

// Values iterates over just the populated view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates an entity from the components the view struct points at.
// Optional nil fields are skipped; required nil fields panic.
func (v *View[T]) Spawn(data T) Entity {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	types := make([]reflect.Type, 0, len(v.types))
	for i, componentType := range v.types {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.offsets[i])
		componentPtr := *(*unsafe.Pointer)(fieldPtr)

		if componentPtr == nil {
			if !v.optional[i] {
				panic("ecs: required component is nil in View.Spawn")
			}
			continue
		}

		components = append(components, reflect.NewAt(componentType, componentPtr).Elem().Interface())
		types = append(types, componentType)
	}

	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	order := make([]int, len(types))
	for i := range order {
		order[i] = i
	}
	for i := range order {
		for j := i + 1; j < len(order); j++ {
			if types[order[i]].String() > types[order[j]].String() {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	sortedComponents := make([]any, len(components))
	sortedTypes := make([]reflect.Type, len(types))
	for i, idx := range order {
		sortedComponents[i] = components[idx]
		sortedTypes[i] = types[idx]
	}

	full := len(sortedTypes) == len(v.requiredTypes())

	var archetypeId uint32
	if v.spawnArchetype != nil && full {
		archetypeId = *v.spawnArchetype
	} else {
		archetypeId = hashTypes(sortedTypes)
		if full {
			v.spawnArchetype = &archetypeId
		}
	}

	archetype, ok := v.world.archetypes[archetypeId]
	if !ok {
		archetype = newArchetype(archetypeId, sortedTypes, v.world.registry)
		v.world.archetypes[archetypeId] = archetype
	}

	slot := archetype.spawn(sortedComponents)
	return NewEntity(archetypeId, slot)
}

func (v *View[T]) requiredTypes() []reflect.Type {
	required := make([]reflect.Type, 0, len(v.types))
	for i, typ := range v.types {
		if !v.optional[i] {
			required = append(required, typ)
		}
	}
	return required
}
