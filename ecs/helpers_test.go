package ecs_test

import "github.com/plus3/blockfall/ecs"

// Shared test component types.
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Tagged struct{}

// Primitive component types.
type Score int32
type Label string

func newTestRegistry() *ecs.Registry {
	registry := ecs.NewRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Tagged](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Label](registry)
	return registry
}
