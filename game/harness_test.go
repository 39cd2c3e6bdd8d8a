package game

import (
	"testing"
	"time"

	"github.com/plus3/keepalive/ecs"
)

// harness runs a hand-picked subset of systems against a storage seeded with
// the round resources.
type harness struct {
	t         *testing.T
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
}

func newHarness(t *testing.T, cfg Config, systems ...ecs.System) *harness {
	t.Helper()

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	addResources(storage, cfg)

	scheduler := ecs.NewScheduler(storage)
	for _, system := range systems {
		scheduler.Register(system)
	}
	return &harness{t: t, storage: storage, scheduler: scheduler}
}

// step runs one frame at the given round time with the given input.
func (h *harness) step(in Input, now time.Duration) {
	*resource[FrameClock](h) = FrameClock{Now: now, Delta: 1.0 / 60}
	resource[InputState](h).Input = in
	h.scheduler.Once(1.0 / 60)
}

func resource[T any](h *harness) *T {
	return ecs.NewSingleton[T](h.storage).Get()
}

func component[T any](h *harness, id ecs.EntityId) *T {
	return ecs.ReadComponent[T](h.storage, id)
}

func (h *harness) spawnBullets(cfg Config) []ecs.EntityId {
	ids := make([]ecs.EntityId, cfg.Bullets.Pool)
	for i := range ids {
		ids[i] = h.storage.Spawn(cfg.Bullets.Park, Velocity{}, Bullet{}, BulletReady)
	}
	return ids
}

func (h *harness) spawnFlyer(x, y float32) ecs.EntityId {
	return h.storage.Spawn(Position{X: x, Y: y}, Velocity{}, Acceleration{}, Width(25), Height(10), Flyer{})
}

// fire aims at target with only the fire symbol held.
func fire(target Position) Input {
	return Input{Pressed: SymbolFire, Target: target}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Arena = ArenaConfig{Width: 800, Height: 600}
	cfg.Spawner.Enabled = false
	return cfg
}
