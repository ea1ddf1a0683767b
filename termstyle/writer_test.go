package termstyle

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-basin/basin/core"
)

func TestWriterAutoSuppressesForNonTerminal(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, ModeAuto)
	assert.False(t, w.Colored(), "a plain buffer is not a terminal")

	line := []byte("[info] hello")
	require.NoError(t, w.WriteStyled(core.LevelInfo, line, 1, 5))
	assert.Equal(t, "[info] hello", out.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestWriterNever(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, ModeNever)
	require.NoError(t, w.WriteStyled(core.LevelError, []byte("boom"), 0, 4))
	assert.Equal(t, "boom", out.String())
}

func TestWriterAlwaysStylesRange(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, ModeAlways)
	require.True(t, w.Colored())

	line := []byte("[info] hello")
	require.NoError(t, w.WriteStyled(core.LevelInfo, line, 1, 5))
	assert.Equal(t, "["+string(Green)+"info"+styleReset+"] hello", out.String())
}

func TestWriterAlwaysWithoutRange(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, ModeAlways)

	require.NoError(t, w.WriteStyled(core.LevelInfo, []byte("plain"), 0, 0))
	assert.Equal(t, "plain", out.String(), "an empty range means no styling")
}

func TestWriterInvalidRange(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, ModeAlways)

	require.NoError(t, w.WriteStyled(core.LevelInfo, []byte("abc"), 2, 99))
	assert.Equal(t, "abc", out.String())
}

func TestWriterSetStyle(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, ModeAlways)
	w.SetStyle(core.LevelInfo, Magenta)

	require.NoError(t, w.WriteStyled(core.LevelInfo, []byte("xy"), 0, 2))
	assert.Equal(t, string(Magenta)+"xy"+styleReset, out.String())

	out.Reset()
	w.SetStyle(core.LevelInfo, "")
	require.NoError(t, w.WriteStyled(core.LevelInfo, []byte("xy"), 0, 2))
	assert.Equal(t, "xy", out.String(), "empty style leaves the level unstyled")
}

func TestWriterUnknownLevelUnstyled(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, ModeAlways)

	require.NoError(t, w.WriteStyled(core.LevelOff, []byte("z"), 0, 1))
	assert.Equal(t, "z", out.String())
}

func TestDefaultStylesCoverEmittableLevels(t *testing.T) {
	for l := core.LevelTrace; l <= core.LevelCritical; l++ {
		assert.NotEmpty(t, defaultStyles[l], "level %v needs a default style", l)
	}
}
