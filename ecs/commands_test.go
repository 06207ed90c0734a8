package ecs_test

import (
	"testing"

	"github.com/plus3/blockfall/ecs"
	"github.com/stretchr/testify/assert"
)

type commandSystem struct {
	run func(frame *ecs.UpdateFrame)
}

func (s *commandSystem) Execute(frame *ecs.UpdateFrame) { s.run(frame) }

func TestCommandsApplyAfterSystems(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	victim := storage.Spawn(Name{Value: "victim"})

	var countDuringFrame int
	var countInDefer int

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&commandSystem{run: func(frame *ecs.UpdateFrame) {
		frame.Commands.Spawn(Name{Value: "a"})
		frame.Commands.Spawn(Name{Value: "b"})
		frame.Commands.Delete(victim)
		frame.Commands.Defer(func() { countInDefer = frame.Storage.Count() })
	}})
	scheduler.Register(&commandSystem{run: func(frame *ecs.UpdateFrame) {
		countDuringFrame = frame.Storage.Count()
	}})

	scheduler.Once(0)

	assert.Equal(t, 1, countDuringFrame, "nothing is applied while systems run")
	assert.Equal(t, 2, countInDefer, "defers run after spawns and deletes")
	assert.Equal(t, &Name{Value: "a"}, ecs.ReadComponent[Name](storage, victim),
		"deletes apply before spawns, so the first spawn reuses the freed slot")
}

func TestDeletedIdAliasesNextSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	old := storage.Spawn(Name{Value: "old"})
	storage.Delete(old)
	assert.Nil(t, ecs.ReadComponent[Name](storage, old))

	reused := storage.Spawn(Name{Value: "new"})
	assert.Equal(t, old, reused)
	assert.Equal(t, "new", ecs.ReadComponent[Name](storage, old).Value)
}

func TestCommandsResetAfterFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	calls := 0

	scheduler := ecs.NewScheduler(storage)
	first := true
	scheduler.Register(&commandSystem{run: func(frame *ecs.UpdateFrame) {
		if first {
			frame.Commands.Spawn(Score(1))
			frame.Commands.Defer(func() { calls++ })
			first = false
		}
	}})

	scheduler.Once(0)
	scheduler.Once(0)

	assert.Equal(t, 1, storage.Count())
	assert.Equal(t, 1, calls)
}
