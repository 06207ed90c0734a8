package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartDisabled(t *testing.T) {
	stop, err := Start("", t.TempDir())
	require.NoError(t, err)
	assert.NotPanics(t, stop)
}

func TestStartUnknownMode(t *testing.T) {
	stop, err := Start("gpu", t.TempDir())
	assert.Nil(t, stop)
	assert.ErrorContains(t, err, `unknown profile mode "gpu"`)
}

func TestModes(t *testing.T) {
	assert.Equal(t, []string{"allocs", "block", "cpu", "mem", "mutex", "trace"}, Modes())
}
