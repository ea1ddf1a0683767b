package logger

import (
	"fmt"

	"go.uber.org/atomic"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/sink"
	"github.com/go-basin/basin/termstyle"
)

var defaultLogger atomic.Pointer[Logger]

// Default returns the process-wide default logger, building it on first
// use: an unnamed synchronous logger writing to stderr with automatic
// styling, at info level unless the level environment variable says
// otherwise.
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := newDefault()
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	return defaultLogger.Load()
}

func newDefault() *Logger {
	b := NewBuilder().WithSink(sink.NewStderrSink(termstyle.ModeAuto))
	if level, ok := envLevelForDefault(); ok {
		b.WithLevel(level)
	}
	return b.MustBuild()
}

// SetDefault replaces the default logger. Passing nil resets it, so the
// next Default call builds a fresh one.
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
}

// SwapDefault replaces the default logger and returns the previous one,
// nil when none had been created yet. The caller decides when to close
// the returned logger; records may still be in flight on it.
func SwapDefault(l *Logger) *Logger {
	return defaultLogger.Swap(l)
}

// Shutdown flushes and closes the default logger if one was created, and
// resets it. Call it once at process exit.
func Shutdown() error {
	l := defaultLogger.Swap(nil)
	if l == nil {
		return nil
	}
	return l.Close()
}

func pkgLog(level core.Level, msg string) {
	l := Default()
	if !l.Enabled(level) {
		return
	}
	l.report(l.logAt(level, msg, 1))
}

func pkgLogf(level core.Level, format string, args ...any) {
	l := Default()
	if !l.Enabled(level) {
		return
	}
	l.report(l.logAt(level, fmt.Sprintf(format, args...), 1))
}

// Trace emits msg at trace level on the default logger.
func Trace(msg string) { pkgLog(core.LevelTrace, msg) }

// Debug emits msg at debug level on the default logger.
func Debug(msg string) { pkgLog(core.LevelDebug, msg) }

// Info emits msg at info level on the default logger.
func Info(msg string) { pkgLog(core.LevelInfo, msg) }

// Warn emits msg at warn level on the default logger.
func Warn(msg string) { pkgLog(core.LevelWarn, msg) }

// Error emits msg at error level on the default logger.
func Error(msg string) { pkgLog(core.LevelError, msg) }

// Critical emits msg at critical level on the default logger.
func Critical(msg string) { pkgLog(core.LevelCritical, msg) }

// Tracef emits a formatted message at trace level on the default logger.
func Tracef(format string, args ...any) { pkgLogf(core.LevelTrace, format, args...) }

// Debugf emits a formatted message at debug level on the default logger.
func Debugf(format string, args ...any) { pkgLogf(core.LevelDebug, format, args...) }

// Infof emits a formatted message at info level on the default logger.
func Infof(format string, args ...any) { pkgLogf(core.LevelInfo, format, args...) }

// Warnf emits a formatted message at warn level on the default logger.
func Warnf(format string, args ...any) { pkgLogf(core.LevelWarn, format, args...) }

// Errorf emits a formatted message at error level on the default logger.
func Errorf(format string, args ...any) { pkgLogf(core.LevelError, format, args...) }

// Criticalf emits a formatted message at critical level on the default logger.
func Criticalf(format string, args ...any) { pkgLogf(core.LevelCritical, format, args...) }
