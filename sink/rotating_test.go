package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/formatter"
)

func TestRotatingFileSinkValidation(t *testing.T) {
	_, err := NewRotatingFileSink(RotatingConfig{})
	require.Error(t, err, "an empty path must be rejected")

	_, err = NewRotatingFileSink(RotatingConfig{Path: "x.log", MaxSizeMB: -1})
	require.Error(t, err, "negative sizes must be rejected")
}

func TestRotatingFileSinkWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	s, err := NewRotatingFileSink(RotatingConfig{Path: path, MaxSizeMB: 1})
	require.NoError(t, err)

	s.SetFormatter(formatter.MustPatternFormatter("%v"))
	require.NoError(t, s.Log(record(core.LevelInfo, "one")))
	require.NoError(t, s.Flush())
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one"+eol, string(data))
}

func TestRotatingFileSinkManualRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	s, err := NewRotatingFileSink(RotatingConfig{Path: path, MaxSizeMB: 1, MaxBackups: 3})
	require.NoError(t, err)
	defer s.Close()

	s.SetFormatter(formatter.MustPatternFormatter("%v"))
	require.NoError(t, s.Log(record(core.LevelInfo, "before")))
	require.NoError(t, s.Rotate())
	require.NoError(t, s.Log(record(core.LevelInfo, "after")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "after"+eol, string(data), "the active file should only hold post-rotation records")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "rotation should leave the active file plus one backup")
}

func TestRotatingFileSinkUseAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	s, err := NewRotatingFileSink(RotatingConfig{Path: path})
	require.NoError(t, err)

	require.NoError(t, s.Log(record(core.LevelInfo, "x")))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Log(record(core.LevelInfo, "late")), core.ErrClosed)
	assert.ErrorIs(t, s.Rotate(), core.ErrClosed)
}

func TestRotatingFileSinkLevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	s, err := NewRotatingFileSink(RotatingConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()

	s.SetLevel(core.LevelOff)
	require.NoError(t, s.Log(record(core.LevelCritical, "silenced")))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no record means lumberjack never opens the file")
}
