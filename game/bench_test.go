package game

import (
	"testing"
	"time"
)

func BenchmarkWorldStep(b *testing.B) {
	cfg := DefaultConfig()
	cfg.Spawner.Enabled = false
	w := NewWorld(cfg)

	spawn := func() {
		for i := range 50 {
			w.SpawnFlyer(float32(i*20), -200)
		}
	}
	spawn()

	const delta = time.Second / 60
	var now time.Duration
	in := fire(Position{X: 512, Y: 0})

	for b.Loop() {
		w.Step(in, delta.Seconds(), now)
		now += delta
		if !w.Alive() {
			w.Reset()
			spawn()
			now = 0
		}
	}
}
