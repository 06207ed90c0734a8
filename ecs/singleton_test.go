package ecs_test

import (
	"testing"

	"github.com/plus3/blockfall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSingletonInitializes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	settings := ecs.NewSingleton(storage, Settings{Gravity: 9})
	require.True(t, settings.Exists())
	assert.Equal(t, 9, settings.Get().Gravity)

	again := ecs.NewSingleton(storage, Settings{Gravity: 1})
	assert.Equal(t, 9, again.Get().Gravity, "an existing singleton is not replaced")
	assert.Same(t, settings.Get(), again.Get())
}

func TestNewSingletonZeroValue(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	settings := ecs.NewSingleton[Settings](storage)
	require.NotNil(t, settings.Get())
	assert.Zero(t, settings.Get().Gravity)
}

func TestSingletonResolvesLazily(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var settings ecs.Singleton[Settings]
	settings.Init(storage)
	assert.False(t, settings.Exists())
	assert.Nil(t, settings.Get())

	storage.AddSingleton(Settings{Gravity: 3})
	require.True(t, settings.Exists())
	assert.Equal(t, 3, settings.Get().Gravity)
}

func TestSingletonSharesState(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := ecs.NewSingleton(storage, Settings{})
	b := ecs.NewSingleton[Settings](storage)

	a.Get().Gravity = 5
	assert.Equal(t, 5, b.Get().Gravity)
}
