package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/formatter"
)

func TestCountSinkKeepsLinesInOrder(t *testing.T) {
	s := NewCountSink()
	s.SetFormatter(formatter.MustPatternFormatter("%v"))

	require.NoError(t, s.Log(record(core.LevelInfo, "first")))
	require.NoError(t, s.Log(record(core.LevelWarn, "second")))

	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []string{"first", "second"}, s.Lines())
}

func TestCountSinkHonorsLevel(t *testing.T) {
	s := NewCountSink()
	s.SetLevel(core.LevelError)

	require.NoError(t, s.Log(record(core.LevelInfo, "dropped")))
	assert.Zero(t, s.Count())
}

func TestCountSinkCountsFlushes(t *testing.T) {
	s := NewCountSink()
	require.NoError(t, s.Flush())
	require.NoError(t, s.Flush())
	assert.Equal(t, 2, s.FlushCount())
}
