package main

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsDefaults(t *testing.T) {
	cfg, opts, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, game.DefaultConfig(), cfg)
	assert.Equal(t, options{ui: "ebiten"}, opts)
}

func TestParseFlags(t *testing.T) {
	cfg, opts, err := parseFlags([]string{
		"-columns", "10", "-rows", "22", "-block", "16",
		"-drop-interval", "500ms", "-seed", "7", "-lock-overshoot",
		"-ui", "term", "-attract", "-profile", "cpu",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Columns)
	assert.Equal(t, 22, cfg.Rows)
	assert.Equal(t, 16, cfg.BlockSize)
	assert.Equal(t, 500*time.Millisecond, cfg.DropInterval)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, game.LockAtOvershoot, cfg.LockMode)
	assert.Equal(t, options{ui: "term", attract: true, profile: "cpu"}, opts)
}

func TestParseFlagsErrors(t *testing.T) {
	_, _, err := parseFlags([]string{"-ui", "web"}, io.Discard)
	assert.ErrorContains(t, err, `unknown -ui "web"`)

	_, _, err = parseFlags([]string{"-columns", "0"}, io.Discard)
	assert.ErrorIs(t, err, game.ErrInvalidConfig)

	_, _, err = parseFlags([]string{"-help"}, io.Discard)
	assert.ErrorIs(t, err, flag.ErrHelp)
}
