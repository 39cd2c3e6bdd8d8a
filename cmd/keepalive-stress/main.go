package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/plus3/keepalive/game"
	"go.uber.org/zap"
)

const frameDelta = time.Second / 60

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total wall-clock duration the test should run for.")
	configPath := flag.String("config", "", "Path to a YAML config file.")
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error).")
	maxRound := flag.Duration("max-round", 10*time.Minute, "Simulated time after which a round is cut short.")
	seed := flag.Uint64("seed", 0, "Spawner seed; overrides the config seed when non-zero.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.Spawner.Enabled = true
	if *seed != 0 {
		cfg.Spawner.Seed = *seed
	}

	log, err := game.NewLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting stress test", zap.Duration("duration", *duration), zap.Duration("max_round", *maxRound))

	world := game.NewWorld(cfg, game.WithLogger(log))
	report := &Report{
		Duration:       *duration,
		MaxRound:       *maxRound,
		ArenaWidth:     cfg.Arena.Width,
		ArenaHeight:    cfg.Arena.Height,
		BulletPool:     cfg.Bullets.Pool,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	pilot := newAutopilot(world.Storage())
	var now time.Duration

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		updateStart := time.Now()
		world.Step(pilot.Input(), frameDelta.Seconds(), now)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalUpdates++
		now += frameDelta

		if !world.Alive() || now >= *maxRound {
			report.finishRound(world, now)
			world.Reset()
			pilot = newAutopilot(world.Storage())
			now = 0
		}
	}
	if now > 0 {
		report.finishRound(world, now)
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("stress test finished", zap.Int("rounds", len(report.Rounds)), zap.Int64("updates", report.TotalUpdates))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Error("failed to generate report", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")
}
