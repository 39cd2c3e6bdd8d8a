package game

import (
	"math/rand/v2"
	"time"
)

// Spawner drops waves of flyers above the arena. Waves come every interval,
// starting at round time zero, and each wave is one flyer larger than the last
// up to the configured maximum.
type Spawner struct {
	cfg   SpawnerConfig
	flyer FlyerConfig
	arena ArenaConfig
	rng   *rand.Rand

	next  time.Duration
	count int
	waves int
}

// NewSpawner creates a spawner. A zero seed picks a random one.
func NewSpawner(cfg Config) *Spawner {
	seed := cfg.Spawner.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Spawner{
		cfg:   cfg.Spawner,
		flyer: cfg.Flyer,
		arena: cfg.Arena,
		rng:   rand.New(rand.NewPCG(seed, seed>>1|1)),
		count: cfg.Spawner.InitialCount,
	}
}

// Tick returns the spawn positions of the wave due at now, or nil if no wave is due.
func (s *Spawner) Tick(now time.Duration) []Position {
	if now < s.next {
		return nil
	}

	positions := make([]Position, s.count)
	for i := range positions {
		positions[i] = s.position()
	}

	s.waves++
	s.next = now + s.cfg.Interval
	if s.count < s.cfg.MaxCount {
		s.count++
	}
	return positions
}

// Waves returns the number of waves released so far.
func (s *Spawner) Waves() int {
	return s.waves
}

func (s *Spawner) position() Position {
	span := s.arena.Width + 2*s.flyer.Width
	return Position{
		X: s.rng.Float32()*span - s.flyer.Width,
		Y: -s.flyer.Height - 10,
	}
}
