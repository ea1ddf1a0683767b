package logger

import "github.com/go-basin/basin/core"

// Level is re-exported from core so callers configuring a Logger rarely
// need a second import.
type Level = core.Level

const (
	LevelTrace    = core.LevelTrace
	LevelDebug    = core.LevelDebug
	LevelInfo     = core.LevelInfo
	LevelWarn     = core.LevelWarn
	LevelError    = core.LevelError
	LevelCritical = core.LevelCritical
	LevelOff      = core.LevelOff
)

// ParseLevel converts a level name such as "info" or "WARN" into a Level.
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
