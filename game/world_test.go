package game

import (
	"testing"
	"time"

	"github.com/plus3/keepalive/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func countFlyers(w *World) int {
	return ecs.NewView[struct{ *Flyer }](w.Storage()).Count()
}

func TestNewWorld(t *testing.T) {
	cfg := testConfig()
	w := NewWorld(cfg, WithLogger(zaptest.NewLogger(t)))

	assert.True(t, w.Alive())
	assert.Zero(t, w.Score())
	assert.Zero(t, countFlyers(w))

	stats := w.Stats()
	assert.Equal(t, 1+1+1+cfg.Bullets.Pool, stats.TotalEntityCount)
	assert.Equal(t, 10, stats.SingletonCount)

	names := make([]string, 0, 14)
	for _, system := range w.SchedulerStats().Systems {
		names = append(names, system.Name)
	}
	assert.Equal(t, []string{
		"GravitySystem",
		"GroundCollisionSystem",
		"PlayerInputSystem",
		"KinematicsSystem",
		"DragSystem",
		"ObjectiveProximitySystem",
		"FlyerHomingSystem",
		"FlyerLandingSystem",
		"BulletFiringSystem",
		"BulletBoundsSystem",
		"BulletImpactSystem",
		"BulletRecycleSystem",
		"SurvivalScoringSystem",
		"RenderSystem",
	}, names)
}

func TestWorldStep(t *testing.T) {
	t.Run("delta is floored", func(t *testing.T) {
		w := NewWorld(testConfig(), WithoutSpawner())
		w.Step(Input{}, 0.001, 0)
		assert.Equal(t, 1.0/60, w.clock.Get().Delta)

		w.Step(Input{}, 0.5, time.Second)
		assert.Equal(t, 0.5, w.clock.Get().Delta)
		assert.Equal(t, time.Second, w.clock.Get().Now)
		assert.EqualValues(t, 2, w.SchedulerStats().Frames)
	})

	t.Run("spawner releases waves", func(t *testing.T) {
		cfg := testConfig()
		cfg.Spawner.Enabled = true
		cfg.Spawner.Seed = 42
		w := NewWorld(cfg, WithLogger(zaptest.NewLogger(t)))

		w.Step(Input{}, 1.0/60, 0)
		assert.Equal(t, 1, countFlyers(w))

		w.Step(Input{}, 1.0/60, time.Second)
		assert.Equal(t, 1, countFlyers(w))

		w.Step(Input{}, 1.0/60, cfg.Spawner.Interval)
		assert.Equal(t, 3, countFlyers(w))
	})

	t.Run("spawner stops once the round is over", func(t *testing.T) {
		cfg := testConfig()
		cfg.Spawner.Enabled = true
		cfg.Spawner.Seed = 42
		w := NewWorld(cfg, WithLogger(zaptest.NewLogger(t)))

		w.SpawnFlyer(402, 575)
		w.Step(Input{}, 1.0/60, 0)
		require.False(t, w.Alive())
		assert.Equal(t, 2, countFlyers(w))

		for wave := 1; wave <= 5; wave++ {
			w.Step(Input{}, 1.0/60, time.Duration(wave)*cfg.Spawner.Interval)
		}
		assert.Equal(t, 2, countFlyers(w))
	})

	t.Run("spawner can be disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.Spawner.Enabled = true
		w := NewWorld(cfg, WithoutSpawner())
		w.Step(Input{}, 1.0/60, 0)
		assert.Zero(t, countFlyers(w))
	})
}

func TestWorldReset(t *testing.T) {
	w := NewWorld(testConfig(), WithoutSpawner(), WithLogger(zaptest.NewLogger(t)))
	round := w.Round()

	w.SpawnFlyer(402, 575)
	w.Step(Input{}, 1.0/60, 0)
	require.False(t, w.Alive())

	w.Reset()
	assert.True(t, w.Alive())
	assert.Zero(t, w.Score())
	assert.Zero(t, countFlyers(w))
	assert.NotEqual(t, round, w.Round())
}

func TestStaleFlyerIds(t *testing.T) {
	w := NewWorld(testConfig(), WithoutSpawner())
	storage := w.Storage()

	stale := w.SpawnFlyer(10, 10)
	require.True(t, storage.Delete(stale))
	assert.False(t, storage.Delete(stale))

	fresh := w.SpawnFlyer(20, 20)
	assert.Equal(t, stale.Index(), fresh.Index())
	assert.NotEqual(t, stale, fresh)
	assert.False(t, storage.Delete(stale))
	assert.True(t, storage.Alive(fresh))
	assert.Nil(t, ecs.ReadComponent[Position](storage, stale))
	assert.Equal(t, Position{X: 20, Y: 20}, *ecs.ReadComponent[Position](storage, fresh))
}

func TestTerminalRound(t *testing.T) {
	w := NewWorld(testConfig(), WithoutSpawner(), WithLogger(zaptest.NewLogger(t)))
	w.SpawnFlyer(402, 575)
	w.Step(Input{}, 1.0/60, 0)
	require.False(t, w.Alive())

	// bullets are repositioned by firing, not by motion
	positions := ecs.NewView[struct {
		Id ecs.EntityId
		*Position
		Bullet *Bullet `ecs:"exclude"`
	}](w.Storage())
	before := map[ecs.EntityId]Position{}
	for p := range positions.Values() {
		before[p.Id] = *p.Position
	}

	for frame := 1; frame < 120; frame++ {
		in := Input{Pressed: SymbolRight | SymbolJump | SymbolFire, Target: Position{X: 700, Y: 100}}
		w.Step(in, 1.0/60, time.Duration(frame)*time.Second/60)
		require.False(t, w.Alive())
	}

	for p := range positions.Values() {
		if prev, ok := before[p.Id]; ok {
			assert.Equal(t, prev, *p.Position, "entity %d moved after the round ended", p.Id)
		}
	}
}
