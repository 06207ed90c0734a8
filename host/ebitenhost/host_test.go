package ebitenhost

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		key      ebiten.Key
		expected game.Key
		ok       bool
	}{
		{ebiten.KeyArrowLeft, game.KeyLeft, true},
		{ebiten.KeyArrowRight, game.KeyRight, true},
		{ebiten.KeyArrowDown, game.KeyDown, true},
		{ebiten.KeyArrowUp, game.KeyUp, true},
		{ebiten.KeySpace, game.KeySpace, true},
		{ebiten.KeyEnter, game.KeyNone, false},
		{ebiten.KeyA, game.KeyNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			key, ok := TranslateKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestHostKeys(t *testing.T) {
	assert.True(t, isQuitKey(ebiten.KeyEscape))
	assert.False(t, isQuitKey(ebiten.KeySpace))

	assert.True(t, isAcknowledgeKey(ebiten.KeyEnter))
	assert.True(t, isAcknowledgeKey(ebiten.KeySpace))
	assert.False(t, isAcknowledgeKey(ebiten.KeyArrowLeft))
}

type nopFrames struct{}

func (nopFrames) RequestFrame(func()) {}

func TestInspectorLines(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Seed = 9
	loop, err := game.NewLoop(game.NewStorage(), cfg, nil, nopFrames{}, nil)
	require.NoError(t, err)
	loop.Start()

	assert.Equal(t, []string{
		"running after 1 frames, 0 locks",
		"grid 20x40, lock at rest",
		"piece 0 at (3, 1)",
		"##",
		"##",
		"landed cells: 0",
	}, inspectorLines(loop))
}
