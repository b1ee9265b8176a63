package ecs

import (
	"iter"
	"reflect"
)

// Registry maps component types to their storage factories. Each World owns
// its own Registry, so independent worlds never interfere with each other.
type Registry struct {
	factories map[reflect.Type]func() column
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers component type T with the registry. Every
// component type must be registered before an entity carrying it is spawned.
func RegisterComponent[T any](r *Registry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() column {
		return &pagedColumn[T]{}
	}
}

// factory returns the storage factory for a component type, or nil if the
// type was never registered.
func (r *Registry) factory(t reflect.Type) func() column {
	return r.factories[t]
}

// column is a type-erased slot store for one component type.
type column interface {
	Append(item any) int
	Delete(slot int)
	Get(slot int) any
	Has(slot int) bool
	Len() int
	Slots() iter.Seq[int]
}

const pageSize = 64

// pagedColumn stores components of type T in fixed-size pages. Slots are
// stable for the lifetime of a component; freed slots are recycled.
type pagedColumn[T any] struct {
	pages []*[pageSize]T
	used  []*[pageSize]bool
	free  []int
	next  int
}

func (c *pagedColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	slot := c.next
	if n := len(c.free); n > 0 {
		slot = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		c.next++
	}

	page, idx := slot/pageSize, slot%pageSize
	if page >= len(c.pages) {
		c.pages = append(c.pages, new([pageSize]T))
		c.used = append(c.used, new([pageSize]bool))
	}
	c.pages[page][idx] = value
	c.used[page][idx] = true
	return slot
}

func (c *pagedColumn[T]) Get(slot int) any {
	if !c.Has(slot) {
		return nil
	}
	return &c.pages[slot/pageSize][slot%pageSize]
}

func (c *pagedColumn[T]) Delete(slot int) {
	if !c.Has(slot) {
		return
	}
	page, idx := slot/pageSize, slot%pageSize
	var zero T
	c.pages[page][idx] = zero
	c.used[page][idx] = false
	c.free = append(c.free, slot)
}

func (c *pagedColumn[T]) Has(slot int) bool {
	if slot < 0 || slot >= c.next {
		return false
	}
	page, idx := slot/pageSize, slot%pageSize
	return page < len(c.used) && c.used[page][idx]
}

func (c *pagedColumn[T]) Len() int {
	return c.next - len(c.free)
}

func (c *pagedColumn[T]) Slots() iter.Seq[int] {
	return func(yield func(int) bool) {
		for slot := 0; slot < c.next; slot++ {
			if c.used[slot/pageSize][slot%pageSize] {
				if !yield(slot) {
					return
				}
			}
		}
	}
}
