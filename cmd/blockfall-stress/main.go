package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/internal/profiling"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	games := flag.Int("games", 0, "Stop after this many games. 0 runs until the duration expires.")
	maxFrames := flag.Int("max-frames", 100_000, "Frame cap for a single game.")
	columns := flag.Int("columns", 20, "Grid width in cells.")
	rows := flag.Int("rows", 40, "Grid height in cells.")
	seed := flag.Uint64("seed", 1, "Seed of the first game; each later game uses the next seed.")
	rate := flag.Float64("rate", 0.3, "Chance per frame that the attract input presses a key.")
	overshoot := flag.Bool("lock-overshoot", false, "Lock pieces one row past their resting place.")
	profileMode := flag.String("profile", "", fmt.Sprintf("Write a profile to the working directory, one of %v.", profiling.Modes()))
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.SetPrefix("blockfall-stress: ")

	cfg := game.DefaultConfig()
	cfg.Columns, cfg.Rows = *columns, *rows
	if *overshoot {
		cfg.LockMode = game.LockAtOvershoot
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	stop, err := profiling.Start(*profileMode, ".")
	if err != nil {
		log.Fatal(err)
	}
	defer stop()

	report := &Report{
		Duration:       *duration,
		Columns:        cfg.Columns,
		Rows:           cfg.Rows,
		LockMode:       cfg.LockMode.String(),
		AttractRate:    *rate,
		MaxFrames:      *maxFrames,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Playing games for %s...", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for n := uint64(0); *games == 0 || len(report.Games) < *games; n++ {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		cfg.Seed = *seed + n
		result, err := playGame(cfg, *rate, *maxFrames, &report.FrameTime)
		if err != nil {
			log.Fatal(err)
		}
		report.Games = append(report.Games, result)
	}

	report.TotalTime = time.Since(startTime)
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Printf("Played %d games.", len(report.Games))

	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
}
