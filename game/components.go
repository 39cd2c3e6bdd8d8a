package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/keepalive/ecs"
)

// Position is an entity's location in arena pixels, origin top-left, Y down.
type Position struct {
	X, Y float32
}

func (p Position) Vec() mgl32.Vec2 {
	return mgl32.Vec2{p.X, p.Y}
}

func (p *Position) Set(v mgl32.Vec2) {
	p.X, p.Y = v.X(), v.Y()
}

type Velocity struct {
	X, Y float32
}

func (v Velocity) Vec() mgl32.Vec2 {
	return mgl32.Vec2{v.X, v.Y}
}

func (v *Velocity) Set(to mgl32.Vec2) {
	v.X, v.Y = to.X(), to.Y()
}

// Acceleration accumulates every force applied to an entity during a frame.
// Only KinematicsSystem reads and clears it.
type Acceleration struct {
	X, Y float32
}

func (a *Acceleration) Add(force mgl32.Vec2) {
	a.X += force.X()
	a.Y += force.Y()
}

func (a *Acceleration) Reset() {
	a.X, a.Y = 0, 0
}

// Drag overrides the configured ground drag magnitude when Coefficient > 0.
type Drag struct {
	Coefficient float32
}

type Width float32

// Height is the extent from an entity's Position down to its lowest point.
type Height float32

type Radius float32

// Tag components.
type (
	HasGravity struct{}
	Floor      struct{}
	Flyer      struct{}
	Player     struct{}
	Bullet     struct{}
)

// OnGround is recomputed every frame by GroundCollisionSystem.
type OnGround bool

// KeepAlive marks the objective. Protected starts true and is only ever cleared.
type KeepAlive struct {
	Protected bool
}

func (k *KeepAlive) Breach() {
	k.Protected = false
}

// BulletState is the lifecycle of a pooled bullet.
type BulletState uint8

const (
	BulletReady BulletState = iota
	BulletFiring
	BulletHit
)

var bulletTransitions = map[BulletState][]BulletState{
	BulletReady:  {BulletFiring},
	BulletFiring: {BulletReady, BulletHit},
	BulletHit:    {BulletReady},
}

func (s BulletState) String() string {
	switch s {
	case BulletReady:
		return "ready"
	case BulletFiring:
		return "firing"
	case BulletHit:
		return "hit"
	default:
		return "unknown"
	}
}

// CanTransition reports whether moving to next is a legal lifecycle step.
func (s BulletState) CanTransition(next BulletState) bool {
	for _, allowed := range bulletTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition moves the bullet to next if legal and reports whether it did.
func (s *BulletState) Transition(next BulletState) bool {
	if !s.CanTransition(next) {
		return false
	}
	*s = next
	return true
}

// Shape tells a renderer how to draw a Visual.
type Shape uint8

const (
	ShapeEgg Shape = iota
	ShapePerson
	ShapeFloor
	ShapeFlyer
	ShapeBullet
)

// Visual is the opaque render handle of an entity. The simulation never reads it.
type Visual struct {
	Shape  Shape
	Width  float32
	Height float32
}

// RegisterComponents adds every component kind used by the simulation to a registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Acceleration](registry)
	ecs.RegisterComponent[Drag](registry)
	ecs.RegisterComponent[Width](registry)
	ecs.RegisterComponent[Height](registry)
	ecs.RegisterComponent[Radius](registry)
	ecs.RegisterComponent[HasGravity](registry)
	ecs.RegisterComponent[Floor](registry)
	ecs.RegisterComponent[Flyer](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Bullet](registry)
	ecs.RegisterComponent[OnGround](registry)
	ecs.RegisterComponent[KeepAlive](registry)
	ecs.RegisterComponent[BulletState](registry)
	ecs.RegisterComponent[Visual](registry)
}
