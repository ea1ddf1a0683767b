package core

import (
	"fmt"
	"strings"

	"go.uber.org/atomic"
)

// Level is the severity of a log record. Levels are totally ordered from
// LevelTrace (most verbose) to LevelCritical (most severe). LevelOff is a
// sentinel used only as a filter threshold: no record passes it.
type Level int32

const (
	// LevelTrace is for very fine-grained diagnostic messages.
	LevelTrace Level = iota
	// LevelDebug is for messages useful while debugging.
	LevelDebug
	// LevelInfo is for routine operational messages (the default threshold).
	LevelInfo
	// LevelWarn is for conditions that deserve attention but are not errors.
	LevelWarn
	// LevelError is for failures the application can continue past.
	LevelError
	// LevelCritical is for failures that likely require intervention.
	LevelCritical
	// LevelOff disables all logging when used as a threshold. Records
	// cannot be emitted at LevelOff.
	LevelOff

	numLevels = int(LevelOff) + 1
)

var levelNames = [numLevels]string{
	"trace", "debug", "info", "warn", "error", "critical", "off",
}

var levelShortNames = [numLevels]string{
	"T", "D", "I", "W", "E", "C", "O",
}

// String returns the lowercase name of the level ("trace" ... "critical",
// "off"). Unknown values render as "unknown".
func (l Level) String() string {
	if l < 0 || int(l) >= numLevels {
		return "unknown"
	}
	return levelNames[l]
}

// ShortName returns the single-letter form of the level used by the %L
// pattern flag.
func (l Level) ShortName() string {
	if l < 0 || int(l) >= numLevels {
		return "?"
	}
	return levelShortNames[l]
}

// AtLeast reports whether l is at least as severe as threshold. LevelOff is
// never "at least as severe" as anything: it is not an emittable severity.
func (l Level) AtLeast(threshold Level) bool {
	return l >= threshold && l != LevelOff
}

// MarshalText implements encoding.TextMarshaler so levels round-trip through
// text-based configuration.
func (l Level) MarshalText() ([]byte, error) {
	if l < 0 || int(l) >= numLevels {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int32(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel converts a string to a Level. Matching is case-insensitive and
// ignores surrounding whitespace; "warning" is accepted as an alias for
// "warn" and "all" as an alias for "trace".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "all":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "critical", "crit":
		return LevelCritical, nil
	case "off":
		return LevelOff, nil
	default:
		return LevelOff, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// A LevelFilter holds an atomically readable and writable severity
// threshold. The zero value passes everything (threshold LevelTrace).
//
// Enabled is a single atomic load plus a comparison: it never locks,
// blocks, or allocates. SetLevel is a single atomic store; it takes effect
// for subsequent checks with no ordering guarantee relative to checks
// already in flight on other goroutines.
type LevelFilter struct {
	threshold atomic.Int32
}

// NewLevelFilter returns a filter with the given initial threshold.
func NewLevelFilter(threshold Level) *LevelFilter {
	f := &LevelFilter{}
	f.threshold.Store(int32(threshold))
	return f
}

// Enabled reports whether a record at level l passes the filter, i.e. l is
// at least as severe as the current threshold.
func (f *LevelFilter) Enabled(l Level) bool {
	return l.AtLeast(Level(f.threshold.Load()))
}

// Level returns the current threshold.
func (f *LevelFilter) Level() Level {
	return Level(f.threshold.Load())
}

// SetLevel replaces the threshold.
func (f *LevelFilter) SetLevel(threshold Level) {
	f.threshold.Store(int32(threshold))
}
