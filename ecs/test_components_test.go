package ecs_test

import "github.com/plus3/keepalive/ecs"

// Common test component types
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

type PlayerController struct{}

type AI struct {
	State int
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string
type Temperature float64

// Components that carry references internally
type Inventory struct {
	Items []string
}
type Stats struct {
	Attributes map[string]int
}
type Target struct {
	Enemy *Name
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[PlayerController](registry)
	ecs.RegisterComponent[AI](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[Temperature](registry)
	ecs.RegisterComponent[int32](registry)
	ecs.RegisterComponent[float64](registry)
	ecs.RegisterComponent[string](registry)
	ecs.RegisterComponent[Inventory](registry)
	ecs.RegisterComponent[Stats](registry)
	ecs.RegisterComponent[Target](registry)
	return registry
}
