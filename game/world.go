package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/plus3/keepalive/ecs"
	"go.uber.org/zap"
)

// WorldOption configures a World.
type WorldOption func(*World)

// WithLogger sets the logger used by the world and its systems.
func WithLogger(log *zap.Logger) WorldOption {
	return func(w *World) {
		w.log = log
	}
}

// WithoutSpawner disables the built-in flyer waves regardless of configuration.
// Flyers then only appear through SpawnFlyer.
func WithoutSpawner() WorldOption {
	return func(w *World) {
		w.spawnerDisabled = true
	}
}

// World owns one round of the simulation: its storage, the ordered systems and
// the round-scoped resources. It is not safe for concurrent use.
type World struct {
	cfg             Config
	log             *zap.Logger
	spawnerDisabled bool

	round     uuid.UUID
	registry  *ecs.ComponentRegistry
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	spawner   *Spawner

	stillAlive *ecs.Singleton[StillAlive]
	score      *ecs.Singleton[Score]
	clock      *ecs.Singleton[FrameClock]
	input      *ecs.Singleton[InputState]
	drawList   *ecs.Singleton[DrawList]
}

// NewWorld creates a world and starts its first round.
func NewWorld(cfg Config, opts ...WorldOption) *World {
	w := &World{
		cfg: cfg,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.registry = ecs.NewComponentRegistry()
	RegisterComponents(w.registry)

	w.Reset()
	return w
}

// Reset discards the current round and starts a new one with fresh entities and resources.
func (w *World) Reset() {
	w.round = uuid.New()
	w.storage = ecs.NewStorage(w.registry)
	w.scheduler = ecs.NewScheduler(w.storage)
	w.spawner = nil
	if w.cfg.Spawner.Enabled && !w.spawnerDisabled {
		w.spawner = NewSpawner(w.cfg)
	}

	w.addResources()
	w.spawnLevel()
	w.registerSystems()

	w.log.Info("round started",
		zap.Stringer("round", w.round),
		zap.Float32("arena_width", w.cfg.Arena.Width),
		zap.Float32("arena_height", w.cfg.Arena.Height),
	)
}

func (w *World) addResources() {
	addResources(w.storage, w.cfg)

	w.stillAlive = ecs.NewSingleton[StillAlive](w.storage)
	w.score = ecs.NewSingleton[Score](w.storage)
	w.clock = ecs.NewSingleton[FrameClock](w.storage)
	w.input = ecs.NewSingleton[InputState](w.storage)
	w.drawList = ecs.NewSingleton[DrawList](w.storage)
}

// addResources publishes the round-scoped resources every system reads.
func addResources(storage *ecs.Storage, cfg Config) {
	storage.AddSingleton(cfg)
	storage.AddSingleton(Arena{Width: cfg.Arena.Width, Height: cfg.Arena.Height})
	storage.AddSingleton(StillAlive{Alive: true})
	storage.AddSingleton(Score{})
	storage.AddSingleton(BulletSize{Radius: cfg.Bullets.Size})
	storage.AddSingleton(FireCooldown{})
	storage.AddSingleton(SurvivalTimer{Next: cfg.Scoring.SurvivalInterval})
	storage.AddSingleton(FrameClock{})
	storage.AddSingleton(InputState{})
	storage.AddSingleton(DrawList{})
}

func (w *World) spawnLevel() {
	cfg := w.cfg
	arena := cfg.Arena

	w.storage.Spawn(
		Position{X: arena.Width / 2, Y: arena.Height - cfg.Objective.FloorOffset},
		Width(cfg.Objective.Width),
		Height(cfg.Objective.Height),
		KeepAlive{Protected: true},
		Visual{Shape: ShapeEgg, Width: cfg.Objective.Width, Height: cfg.Objective.Height},
	)

	w.storage.Spawn(
		Position{X: cfg.Player.StartX, Y: arena.Height - cfg.Player.StartDrop},
		Velocity{},
		Acceleration{},
		Width(cfg.Player.Width),
		Height(cfg.Player.Height/2),
		HasGravity{},
		OnGround(false),
		Player{},
		Visual{Shape: ShapePerson, Width: cfg.Player.Width, Height: cfg.Player.Height},
	)

	w.storage.Spawn(
		Position{X: 0, Y: arena.Height - 5},
		Floor{},
		Visual{Shape: ShapeFloor, Width: arena.Width, Height: 5},
	)

	for range cfg.Bullets.Pool {
		w.storage.Spawn(
			cfg.Bullets.Park,
			Velocity{},
			Radius(cfg.Bullets.Size),
			Bullet{},
			BulletReady,
			Visual{Shape: ShapeBullet, Width: cfg.Bullets.Size, Height: cfg.Bullets.Size},
		)
	}
}

func (w *World) registerSystems() {
	w.scheduler.Register(&GravitySystem{})
	w.scheduler.Register(&GroundCollisionSystem{})
	w.scheduler.Register(&PlayerInputSystem{})
	w.scheduler.Register(&KinematicsSystem{})
	w.scheduler.Register(&DragSystem{})
	w.scheduler.Register(&ObjectiveProximitySystem{log: w.log})
	w.scheduler.Register(&FlyerHomingSystem{})
	w.scheduler.Register(&FlyerLandingSystem{})
	w.scheduler.Register(&BulletFiringSystem{log: w.log})
	w.scheduler.Register(&BulletBoundsSystem{})
	w.scheduler.Register(&BulletImpactSystem{log: w.log})
	w.scheduler.Register(&BulletRecycleSystem{})
	w.scheduler.Register(&SurvivalScoringSystem{})
	w.scheduler.Register(&RenderSystem{})
}

// Step advances the round by one frame. delta is in seconds and is floored to
// the configured minimum; now is the time since the round started. No flyer
// waves are released once the round is over.
func (w *World) Step(in Input, delta float64, now time.Duration) {
	delta = max(delta, w.cfg.Physics.MinDelta)

	*w.clock.Get() = FrameClock{Now: now, Delta: delta}
	w.input.Get().Input = in

	if w.spawner != nil && w.Alive() {
		if positions := w.spawner.Tick(now); len(positions) > 0 {
			for _, p := range positions {
				w.SpawnFlyer(p.X, p.Y)
			}
			w.log.Debug("flyer wave",
				zap.Int("wave", w.spawner.Waves()),
				zap.Int("count", len(positions)),
			)
		}
	}

	w.scheduler.Once(delta)
}

// SpawnFlyer adds a flyer at (x, y) and returns its id.
func (w *World) SpawnFlyer(x, y float32) ecs.EntityId {
	flyer := w.cfg.Flyer
	return w.storage.Spawn(
		Position{X: x, Y: y},
		Velocity{},
		Acceleration{},
		Width(flyer.Width),
		Height(flyer.Height),
		Flyer{},
		Visual{Shape: ShapeFlyer, Width: flyer.Width, Height: flyer.Height},
	)
}

// Render replays the last frame's draw list to r.
func (w *World) Render(r Renderer) {
	w.drawList.Get().Replay(r)
}

// Alive reports whether the objective is still protected.
func (w *World) Alive() bool {
	return w.stillAlive.Get().Alive
}

func (w *World) Score() int {
	return w.score.Get().Points
}

// Round returns the id of the current round.
func (w *World) Round() uuid.UUID {
	return w.round
}

func (w *World) Config() Config {
	return w.cfg
}

// Storage exposes the round's entity storage.
func (w *World) Storage() *ecs.Storage {
	return w.storage
}

func (w *World) Stats() *ecs.StorageStats {
	return w.storage.CollectStats()
}

func (w *World) SchedulerStats() *ecs.SchedulerStats {
	return w.scheduler.GetStats()
}
