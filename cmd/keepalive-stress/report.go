package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/keepalive/ecs"
	"github.com/plus3/keepalive/game"
)

type Report struct {
	// Configuration
	Duration    time.Duration
	MaxRound    time.Duration
	ArenaWidth  float32
	ArenaHeight float32
	BulletPool  int

	// Results
	Rounds         []RoundResult
	Systems        []ecs.SystemStats
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type RoundResult struct {
	Round     string
	Score     int
	Survived  time.Duration
	Entities  int
	Completed bool
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// finishRound records the round's outcome and folds its per-system timings
// into the running totals.
func (r *Report) finishRound(w *game.World, survived time.Duration) {
	r.Rounds = append(r.Rounds, RoundResult{
		Round:     w.Round().String(),
		Score:     w.Score(),
		Survived:  survived,
		Entities:  w.Stats().TotalEntityCount,
		Completed: !w.Alive(),
	})

	for i, sys := range w.SchedulerStats().Systems {
		if i >= len(r.Systems) {
			r.Systems = append(r.Systems, ecs.SystemStats{Name: sys.Name, MinDuration: sys.MinDuration})
		}
		agg := &r.Systems[i]
		agg.ExecutionCount += sys.ExecutionCount
		agg.TotalDuration += sys.TotalDuration
		agg.MinDuration = min(agg.MinDuration, sys.MinDuration)
		agg.MaxDuration = max(agg.MaxDuration, sys.MaxDuration)
		agg.LastDuration = sys.LastDuration
		if agg.ExecutionCount > 0 {
			agg.AvgDuration = agg.TotalDuration / time.Duration(agg.ExecutionCount)
		}
	}
}

func (r *Report) BestScore() int {
	best := 0
	for _, round := range r.Rounds {
		best = max(best, round.Score)
	}
	return best
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Keep-Alive Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Round Cap (simulated):** {{.MaxRound}}
- **Arena:** {{.ArenaWidth}}x{{.ArenaHeight}}
- **Bullet Pool:** {{.BulletPool}}

## Rounds ({{len .Rounds}}, best score {{.BestScore}})
{{range .Rounds}}- {{.Round}}: score {{.Score}}, survived {{.Survived}}, {{.Entities}} entities{{if not .Completed}} (cut short){{end}}
{{end}}
## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems
{{range .Systems}}- {{printf "%-26s" .Name}} runs {{.ExecutionCount}}, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
