package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-basin/basin/core"
)

// resetEnvRules keeps parsed directives from leaking into later tests.
func resetEnvRules(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { envLevels.Store(nil) })
}

func TestInitEnvLevelUnset(t *testing.T) {
	resetEnvRules(t)
	found, err := InitEnvLevelFrom("BASIN_LEVEL_TEST_UNSET")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInitEnvLevelDirectives(t *testing.T) {
	resetEnvRules(t)
	t.Setenv(EnvLevelVar, "debug,server=trace,=warn,*=error")

	found, err := InitEnvLevel()
	require.NoError(t, err)
	require.True(t, found)

	named := NewBuilder().WithName("server").MustBuild()
	assert.Equal(t, LevelTrace, named.Level())

	unnamed := NewBuilder().MustBuild()
	assert.Equal(t, LevelWarn, unnamed.Level())

	other := NewBuilder().WithName("db").MustBuild()
	assert.Equal(t, LevelError, other.Level(), "unmatched names take the catch-all")

	level, ok := envLevelForDefault()
	require.True(t, ok)
	assert.Equal(t, LevelDebug, level, "a bare level applies to the default logger")
}

func TestInitEnvLevelExplicitLevelWins(t *testing.T) {
	resetEnvRules(t)
	t.Setenv(EnvLevelVar, "server=trace")
	_, err := InitEnvLevel()
	require.NoError(t, err)

	l := NewBuilder().WithName("server").WithLevel(LevelCritical).MustBuild()
	assert.Equal(t, LevelCritical, l.Level())
}

func TestInitEnvLevelAliases(t *testing.T) {
	resetEnvRules(t)
	t.Setenv(EnvLevelVar, "noisy=all,quiet=off")
	_, err := InitEnvLevel()
	require.NoError(t, err)

	noisy := NewBuilder().WithName("noisy").MustBuild()
	assert.Equal(t, LevelTrace, noisy.Level())

	quiet := NewBuilder().WithName("quiet").MustBuild()
	assert.Equal(t, LevelOff, quiet.Level())
	assert.False(t, quiet.Enabled(LevelCritical))
}

func TestInitEnvLevelTrimsSpaces(t *testing.T) {
	resetEnvRules(t)
	t.Setenv(EnvLevelVar, " server = debug , INFO ")
	_, err := InitEnvLevel()
	require.NoError(t, err)

	l := NewBuilder().WithName("server").MustBuild()
	assert.Equal(t, LevelDebug, l.Level())

	level, ok := envLevelForDefault()
	require.True(t, ok)
	assert.Equal(t, LevelInfo, level)
}

func TestInitEnvLevelErrors(t *testing.T) {
	for name, value := range map[string]string{
		"unknown level":       "nope",
		"unknown named level": "server=nope",
		"empty directive":     "info,",
		"duplicate default":   "info,warn",
		"duplicate named":     "a=info,a=warn",
		"duplicate unnamed":   "=info,=warn",
		"duplicate catch-all": "*=info,*=warn",
	} {
		t.Run(name, func(t *testing.T) {
			resetEnvRules(t)
			t.Setenv(EnvLevelVar, value)
			_, err := InitEnvLevel()
			require.Error(t, err)
		})
	}
}

func TestInitEnvLevelErrorWrapsUnknownLevel(t *testing.T) {
	resetEnvRules(t)
	t.Setenv(EnvLevelVar, "verbose")
	_, err := InitEnvLevel()
	assert.ErrorIs(t, err, core.ErrUnknownLevel)
}

func TestEnvLevelForWithoutRules(t *testing.T) {
	resetEnvRules(t)
	envLevels.Store(nil)

	_, ok := envLevelFor("anything")
	assert.False(t, ok)
	_, ok = envLevelForDefault()
	assert.False(t, ok)
}
