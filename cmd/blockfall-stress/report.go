package main

import (
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Duration    time.Duration
	Columns     int
	Rows        int
	LockMode    string
	AttractRate float64
	MaxFrames   int

	// Results
	Games          []GameResult
	TotalTime      time.Duration
	FrameTime      Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
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
	for _, sample := range s.Samples {
		total += sample
	}
	s.Min = slices.Min(s.Samples)
	s.Max = slices.Max(s.Samples)
	s.Avg = total / time.Duration(len(s.Samples))
}

// TotalFrames returns the frames run across all games.
func (r *Report) TotalFrames() int {
	total := 0
	for _, g := range r.Games {
		total += g.Frames
	}
	return total
}

// Finished returns the number of games that reached game over.
func (r *Report) Finished() int {
	n := 0
	for _, g := range r.Games {
		if g.Finished {
			n++
		}
	}
	return n
}

// AvgLocks returns the mean number of locks per game.
func (r *Report) AvgLocks() float64 {
	if len(r.Games) == 0 {
		return 0
	}
	total := 0
	for _, g := range r.Games {
		total += g.Locks
	}
	return float64(total) / float64(len(r.Games))
}

// Longest returns the game with the most locks.
func (r *Report) Longest() GameResult {
	if len(r.Games) == 0 {
		return GameResult{}
	}
	return slices.MaxFunc(r.Games, func(a, b GameResult) int { return a.Locks - b.Locks })
}

const reportTemplate = `
# Blockfall Stress Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Grid:** {{.Columns}}x{{.Rows}}
- **Lock Mode:** {{.LockMode}}
- **Attract Rate:** {{printf "%.2f" .AttractRate}}
- **Frame Cap Per Game:** {{.MaxFrames}}

## Games
- **Played:** {{len .Games}} ({{.Finished}} reached game over)
- **Total Frames:** {{.TotalFrames}}
- **Avg Locks Per Game:** {{printf "%.1f" .AvgLocks}}
{{with .Longest}}- **Longest Game:** seed {{.Seed}}, {{.Locks}} locks, {{.Frames}} frames, {{.Landed}} landed cells, {{.Stats.ArchetypeCount}} archetypes
{{end}}
## Frame Time
- **Total Test Time:** {{.TotalTime}}
- **Avg:** {{.FrameTime.Avg}}
- **Min:** {{.FrameTime.Min}}
- **Max:** {{.FrameTime.Max}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
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
