package ecs_test

import (
	"testing"

	"github.com/plus3/blockfall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStatsEmpty(t *testing.T) {
	stats := ecs.NewStorage(newTestRegistry()).CollectStats()

	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)
	assert.Empty(t, stats.ArchetypeBreakdown)
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{})
	storage.Spawn(Position{})
	deleted := storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{}, Velocity{})
	storage.Delete(deleted)
	storage.AddSingleton(Settings{})
	storage.AddSingleton(Score(0))

	stats := storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Score", "ecs_test.Settings"}, stats.SingletonTypes)

	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Less(t, stats.ArchetypeBreakdown[0].ID, stats.ArchetypeBreakdown[1].ID)

	counts := map[int][]string{}
	for _, arch := range stats.ArchetypeBreakdown {
		counts[arch.EntityCount] = arch.ComponentTypes
	}
	assert.Equal(t, []string{"ecs_test.Position"}, counts[2])
	assert.Equal(t, []string{"ecs_test.Position", "ecs_test.Velocity"}, counts[1])
}
