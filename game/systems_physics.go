package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/keepalive/ecs"
)

// unit returns v scaled to length 1. A zero vector has no direction and
// reports false instead of producing NaN.
func unit(v mgl32.Vec2) (mgl32.Vec2, bool) {
	length := v.Len()
	if length == 0 {
		return mgl32.Vec2{}, false
	}
	return v.Mul(1 / length), true
}

// GravitySystem pulls airborne bodies down. Bodies without an OnGround
// component are always airborne.
type GravitySystem struct {
	Bodies ecs.Query[struct {
		*Acceleration
		*HasGravity
		Grounded *OnGround `ecs:"optional"`
	}]
	Tuning ecs.Singleton[Config]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	gravity := s.Tuning.Get().Physics.Gravity
	for body := range s.Bodies.Values() {
		if body.Grounded != nil && bool(*body.Grounded) {
			continue
		}
		body.Acceleration.Y += gravity
	}
}

// GroundCollisionSystem clamps falling bodies to the arena floor and
// recomputes OnGround from last frame's movement. A body resting exactly on
// the floor counts as grounded, so repeated passes are a fixed point.
type GroundCollisionSystem struct {
	Bodies ecs.Query[struct {
		*Position
		*Height
		*HasGravity
		Grounded *OnGround `ecs:"optional"`
	}]
	Arena ecs.Singleton[Arena]
}

func (s *GroundCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	floor := s.Arena.Get().Height
	for body := range s.Bodies.Values() {
		height := float32(*body.Height)
		landed := body.Position.Y+height >= floor
		if landed {
			body.Position.Y = floor - height
		}
		if body.Grounded != nil {
			*body.Grounded = OnGround(landed)
		}
	}
}

// PlayerInputSystem turns the pressed symbols into forces on the player.
type PlayerInputSystem struct {
	Players ecs.Query[struct {
		*Player
		*Acceleration
		Grounded *OnGround `ecs:"optional"`
	}]
	Input  ecs.Singleton[InputState]
	Tuning ecs.Singleton[Config]
}

func (s *PlayerInputSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.Get().Input
	if in.Pressed == 0 {
		return
	}
	physics := s.Tuning.Get().Physics

	for player := range s.Players.Values() {
		if in.movingLeft() {
			player.Acceleration.X -= physics.WalkForce
		} else if in.movingRight() {
			player.Acceleration.X += physics.WalkForce
		}

		if in.Has(SymbolJump) && player.Grounded != nil && bool(*player.Grounded) {
			player.Acceleration.Y -= physics.JumpImpulse
		}
	}
}

// KinematicsSystem integrates accumulated forces into velocity and velocity
// into position, then drains the accumulator. Motion freezes once the round is over.
type KinematicsSystem struct {
	Bodies ecs.Query[struct {
		*Position
		*Velocity
		Acceleration *Acceleration `ecs:"optional"`
	}]
	StillAlive ecs.Singleton[StillAlive]
}

func (s *KinematicsSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.StillAlive.Get().Alive {
		return
	}

	dt := float32(frame.DeltaTime)
	for body := range s.Bodies.Values() {
		if body.Acceleration != nil {
			body.Velocity.X += body.Acceleration.X
			body.Velocity.Y += body.Acceleration.Y
			body.Acceleration.Reset()
		}
		body.Position.X += body.Velocity.X * dt
		body.Position.Y += body.Velocity.Y * dt
	}
}

// DragSystem adds a horizontal force opposing the current velocity of
// ground-capable bodies.
type DragSystem struct {
	Bodies ecs.Query[struct {
		*Velocity
		*Acceleration
		*OnGround
		Drag *Drag `ecs:"optional"`
	}]
	Tuning ecs.Singleton[Config]
}

func (s *DragSystem) Execute(frame *ecs.UpdateFrame) {
	fallback := s.Tuning.Get().Physics.Drag
	for body := range s.Bodies.Values() {
		dir, ok := unit(body.Velocity.Vec())
		if !ok {
			continue
		}

		magnitude := fallback
		if body.Drag != nil && body.Drag.Coefficient > 0 {
			magnitude = body.Drag.Coefficient
		}
		body.Acceleration.X -= dir.X() * magnitude
	}
}
