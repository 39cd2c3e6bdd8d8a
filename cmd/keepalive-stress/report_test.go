package main

import (
	"strings"
	"testing"
	"time"

	"github.com/plus3/keepalive/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestAutopilotAimsAtNearestFlyer(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Spawner.Enabled = false
	w := game.NewWorld(cfg)
	pilot := newAutopilot(w.Storage())

	assert.Equal(t, game.Input{}, pilot.Input(), "no flyers means no shot")

	w.SpawnFlyer(900, 10)
	w.SpawnFlyer(150, 100)

	in := pilot.Input()
	assert.True(t, in.Has(game.SymbolFire))
	assert.Equal(t, game.Position{X: 150, Y: 100}, in.Target)
}

func TestReportAcrossRounds(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Spawner.Enabled = false
	w := game.NewWorld(cfg)
	report := &Report{Duration: time.Second, ArenaWidth: 1024, ArenaHeight: 768, BulletPool: 3}

	for range 2 {
		for i := range 10 {
			w.Step(game.Input{}, 1.0/60, time.Duration(i)*time.Second/60)
		}
		report.finishRound(w, 10*time.Second/60)
		w.Reset()
	}

	require.Len(t, report.Rounds, 2)
	assert.NotEqual(t, report.Rounds[0].Round, report.Rounds[1].Round)
	assert.False(t, report.Rounds[0].Completed)

	require.Len(t, report.Systems, len(w.SchedulerStats().Systems))
	for _, sys := range report.Systems {
		assert.Equal(t, int64(20), sys.ExecutionCount, sys.Name)
	}

	var out strings.Builder
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "## Rounds (2, best score 0)")
	assert.Contains(t, out.String(), "(cut short)")
}
