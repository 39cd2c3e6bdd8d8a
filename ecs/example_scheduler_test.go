package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/keepalive/ecs"
)

type Body struct {
	X, Y float32
}

type Fall struct {
	Speed float32
}

type Fuel struct {
	Left int
}

type FallSystem struct {
	Bodies ecs.Query[struct {
		*Body
		*Fall
	}]
}

func (s *FallSystem) Execute(frame *ecs.UpdateFrame) {
	for body := range s.Bodies.Values() {
		body.Body.Y += body.Fall.Speed * float32(frame.DeltaTime)
	}
}

// BurnSystem retires bodies that run out of fuel at the end of the frame.
type BurnSystem struct {
	Bodies ecs.Query[struct {
		Id ecs.EntityId
		*Fuel
	}]
}

func (s *BurnSystem) Execute(frame *ecs.UpdateFrame) {
	for body := range s.Bodies.Values() {
		body.Fuel.Left--
		if body.Fuel.Left <= 0 {
			frame.Commands.Delete(body.Id)
		}
	}
}

// ExampleScheduler demonstrates a frame loop with multiple systems. Systems run
// in registration order; each system's queries are refreshed just before it
// runs and queued commands are applied after the last one.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Fall](registry)
	ecs.RegisterComponent[Fuel](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Body{X: 0, Y: 0}, Fall{Speed: 10}, Fuel{Left: 3})
	storage.Spawn(Body{X: 5, Y: 0}, Fall{Speed: 20}, Fuel{Left: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&FallSystem{})
	scheduler.Register(&BurnSystem{})

	scheduler.Once(0.5)
	scheduler.Once(0.5)

	view := ecs.NewView[struct {
		*Body
		*Fuel
	}](storage)

	fmt.Println("After two frames:")
	for item := range view.Values() {
		fmt.Printf("Body at (%.0f, %.0f), fuel %d\n", item.Body.X, item.Body.Y, item.Fuel.Left)
	}

	// Output:
	// After two frames:
	// Body at (0, 10), fuel 1
}

// ExampleScheduler_Run demonstrates running a continuous loop until the
// context is cancelled.
func ExampleScheduler_Run() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Fall](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Body{}, Fall{Speed: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&FallSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped after", scheduler.GetStats().Frames > 0)
	// Output:
	// Scheduler stopped after true
}

type RoundClock struct {
	Frames  int
	Elapsed float64
}

type Tally struct {
	Points int
}

type ClockSystem struct {
	Clock ecs.Singleton[RoundClock]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	clock.Frames++
	clock.Elapsed += frame.DeltaTime
}

type TallySystem struct {
	Bodies ecs.Query[struct{ *Body }]
	Tally  ecs.Singleton[Tally]
}

func (s *TallySystem) Execute(frame *ecs.UpdateFrame) {
	s.Tally.Get().Points += s.Bodies.Len() * 10
}

// ExampleScheduler_withSingletons demonstrates singleton fields in systems.
// The Scheduler binds them on registration, just like Query fields.
func ExampleScheduler_withSingletons() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Body](registry)
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton(storage, RoundClock{})
	ecs.NewSingleton(storage, Tally{})

	storage.Spawn(Body{X: 0})
	storage.Spawn(Body{X: 10})
	storage.Spawn(Body{X: 20})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ClockSystem{})
	scheduler.Register(&TallySystem{})

	for range 3 {
		scheduler.Once(0.016)
	}

	var clock *RoundClock
	storage.ReadSingleton(&clock)
	fmt.Printf("Frames: %d, Time: %.3f\n", clock.Frames, clock.Elapsed)

	var tally *Tally
	storage.ReadSingleton(&tally)
	fmt.Printf("Tally: %d points\n", tally.Points)

	// Output:
	// Frames: 3, Time: 0.048
	// Tally: 90 points
}
