package main

import (
	"time"

	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/game"
)

// stepper is a FrameRequester that holds the requested frame until step.
type stepper struct {
	next func()
}

func (s *stepper) RequestFrame(callback func()) {
	s.next = callback
}

func (s *stepper) step() bool {
	next := s.next
	if next == nil {
		return false
	}
	s.next = nil
	next()
	return true
}

// GameResult summarizes one headless game.
type GameResult struct {
	Seed     uint64
	Frames   int
	Locks    int
	Landed   int
	Finished bool
	Stats    ecs.StorageStats
}

// playGame runs one game with attract input until it ends or maxFrames
// frames have run, recording each frame's duration into frameTimes.
func playGame(cfg game.Config, rate float64, maxFrames int, frameTimes *Stats) (GameResult, error) {
	frames := &stepper{}
	loop, err := game.NewLoop(game.NewStorage(), cfg, nil, frames, nil)
	if err != nil {
		return GameResult{}, err
	}
	attract := game.NewAttractInput(cfg.Seed, rate)

	start := time.Now()
	loop.Start()
	frameTimes.Samples = append(frameTimes.Samples, time.Since(start))

	for n := 1; n < maxFrames; n++ {
		if key, ok := attract.Next(); ok {
			loop.HandleKey(key)
		}
		start = time.Now()
		if !frames.step() {
			break
		}
		frameTimes.Samples = append(frameTimes.Samples, time.Since(start))
	}

	session := loop.Session()
	return GameResult{
		Seed:     cfg.Seed,
		Frames:   session.Frames,
		Locks:    session.Locks,
		Landed:   loop.LandedCells(),
		Finished: session.State == game.GameOver,
		Stats:    loop.Storage().CollectStats(),
	}, nil
}
