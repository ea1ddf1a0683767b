package logger

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/sink"
)

// Logger is the engine's front end. It stamps records, filters them by
// severity, and hands the survivors to its sinks either inline or through
// an async dispatcher.
//
// A Logger is safe for concurrent use from any number of goroutines. The
// hot path takes no locks: the level check is one atomic load, the sink
// list is an atomically swapped snapshot, and reconfiguration (SetLevel,
// SetSinks, SetErrorHandler) never blocks in-flight Log calls. Construct
// loggers with a Builder.
type Logger struct {
	name          string
	minLevel      core.Level
	level         core.LevelFilter
	sinks         atomic.Pointer[[]sink.Sink]
	errHandler    atomic.Pointer[core.ErrorHandler]
	dispatcher    *AsyncDispatcher
	ownDispatcher bool
	clock         func() time.Time
	captureSource bool
	callerSkip    int
}

// Builder assembles a Logger. The zero Builder is not ready to use; start
// from NewBuilder.
type Builder struct {
	name          string
	level         core.Level
	levelSet      bool
	minLevel      core.Level
	sinks         []sink.Sink
	errHandler    core.ErrorHandler
	dispatcher    *AsyncDispatcher
	asyncCfg      *AsyncConfig
	coarseClock   bool
	captureSource bool
	callerSkip    int
}

// NewBuilder returns a Builder with the defaults: level info, synchronous
// dispatch, no sinks, no source capture.
func NewBuilder() *Builder {
	return &Builder{level: core.LevelInfo}
}

// WithName sets the logger's name, rendered by the %n pattern flag and
// matched by name=level rules in the level environment variable.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithLevel sets the logger's threshold explicitly. Loggers built without
// an explicit level take theirs from the environment variable when set,
// and default to info otherwise.
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	b.levelSet = true
	return b
}

// WithMinLevel sets a floor below which records are rejected for the life
// of the logger, regardless of later SetLevel calls. It replaces a
// compile-time minimum: build-specific wiring can pass a different floor
// for debug and release configurations.
func (b *Builder) WithMinLevel(level core.Level) *Builder {
	b.minLevel = level
	return b
}

// WithSinks replaces the logger's initial sink list.
func (b *Builder) WithSinks(sinks ...sink.Sink) *Builder {
	b.sinks = append(b.sinks[:0], sinks...)
	return b
}

// WithSink appends one sink to the logger's initial sink list.
func (b *Builder) WithSink(s sink.Sink) *Builder {
	b.sinks = append(b.sinks, s)
	return b
}

// WithErrorHandler sets the handler invoked with sink and dispatch
// errors. A nil handler selects core.DefaultErrorHandler.
func (b *Builder) WithErrorHandler(h core.ErrorHandler) *Builder {
	b.errHandler = h
	return b
}

// WithSourceLocation enables capturing the file, line and function of each
// logging call site, for the %@, %s, %g, %# and %! pattern flags.
func (b *Builder) WithSourceLocation(enabled bool) *Builder {
	b.captureSource = enabled
	return b
}

// WithCallerSkip adds extra stack frames to skip during source capture,
// for wrappers that forward to this logger.
func (b *Builder) WithCallerSkip(skip int) *Builder {
	b.callerSkip = skip
	return b
}

// WithCoarseClock stamps records from the shared coarse clock instead of
// calling time.Now per record. Timestamps may lag the wall clock by up to
// half a millisecond.
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarseClock = enabled
	return b
}

// WithAsync gives the logger its own async dispatcher built from cfg. The
// dispatcher is closed by Logger.Close.
func (b *Builder) WithAsync(cfg AsyncConfig) *Builder {
	b.asyncCfg = &cfg
	b.dispatcher = nil
	return b
}

// WithDispatcher attaches a shared async dispatcher. The caller keeps
// ownership: Logger.Close drains it but does not close it.
func (b *Builder) WithDispatcher(d *AsyncDispatcher) *Builder {
	b.dispatcher = d
	b.asyncCfg = nil
	return b
}

// Build assembles the Logger. It fails only when the async configuration
// is invalid.
func (b *Builder) Build() (*Logger, error) {
	l := &Logger{
		name:          b.name,
		minLevel:      b.minLevel,
		captureSource: b.captureSource,
		callerSkip:    b.callerSkip,
		clock:         time.Now,
	}

	level := b.level
	if !b.levelSet {
		if envLevel, ok := envLevelFor(b.name); ok {
			level = envLevel
		}
	}
	l.level.SetLevel(level)
	l.SetSinks(b.sinks...)
	l.SetErrorHandler(b.errHandler)

	if b.coarseClock {
		core.StartCoarseClock()
		l.clock = core.CoarseNow
	}

	switch {
	case b.dispatcher != nil:
		l.dispatcher = b.dispatcher
	case b.asyncCfg != nil:
		d, err := NewAsyncDispatcher(*b.asyncCfg)
		if err != nil {
			return nil, err
		}
		l.dispatcher = d
		l.ownDispatcher = true
	}
	return l, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Logger {
	l, err := b.Build()
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the logger's name, empty for unnamed loggers.
func (l *Logger) Name() string { return l.name }

// Level returns the logger's current threshold.
func (l *Logger) Level() core.Level { return l.level.Level() }

// SetLevel replaces the logger's threshold. Records already past their
// level check are delivered at the old threshold.
func (l *Logger) SetLevel(level core.Level) { l.level.SetLevel(level) }

// Enabled reports whether a record at level would be dispatched. Callers
// can gate expensive argument construction on it.
func (l *Logger) Enabled(level core.Level) bool {
	return level.AtLeast(l.minLevel) && l.level.Enabled(level)
}

// Sinks returns a copy of the current sink list.
func (l *Logger) Sinks() []sink.Sink {
	snap := l.snapshot()
	out := make([]sink.Sink, len(snap))
	copy(out, snap)
	return out
}

// SetSinks replaces the sink list wholesale. Records mid-dispatch finish
// against the snapshot they started with; records logged afterwards see
// the new list.
func (l *Logger) SetSinks(sinks ...sink.Sink) {
	snap := make([]sink.Sink, len(sinks))
	copy(snap, sinks)
	l.sinks.Store(&snap)
}

// SetErrorHandler replaces the error handler. A nil handler selects
// core.DefaultErrorHandler.
func (l *Logger) SetErrorHandler(h core.ErrorHandler) {
	if h == nil {
		h = core.DefaultErrorHandler
	}
	l.errHandler.Store(&h)
}

func (l *Logger) snapshot() []sink.Sink {
	if p := l.sinks.Load(); p != nil {
		return *p
	}
	return nil
}

// Log emits msg at level. It returns a *core.OverflowError when an async
// queue rejects the record; every other failure mode is routed to the
// error handler instead, so callers normally ignore the result.
func (l *Logger) Log(level core.Level, msg string) error {
	if !l.Enabled(level) {
		return nil
	}
	return l.logAt(level, msg, 0)
}

// Logf is Log with fmt formatting. The format arguments are not evaluated
// when level is filtered out.
func (l *Logger) Logf(level core.Level, format string, args ...any) error {
	if !l.Enabled(level) {
		return nil
	}
	return l.logAt(level, fmt.Sprintf(format, args...), 0)
}

// Trace emits msg at trace level.
func (l *Logger) Trace(msg string) {
	if !l.Enabled(core.LevelTrace) {
		return
	}
	l.report(l.logAt(core.LevelTrace, msg, 0))
}

// Debug emits msg at debug level.
func (l *Logger) Debug(msg string) {
	if !l.Enabled(core.LevelDebug) {
		return
	}
	l.report(l.logAt(core.LevelDebug, msg, 0))
}

// Info emits msg at info level.
func (l *Logger) Info(msg string) {
	if !l.Enabled(core.LevelInfo) {
		return
	}
	l.report(l.logAt(core.LevelInfo, msg, 0))
}

// Warn emits msg at warn level.
func (l *Logger) Warn(msg string) {
	if !l.Enabled(core.LevelWarn) {
		return
	}
	l.report(l.logAt(core.LevelWarn, msg, 0))
}

// Error emits msg at error level.
func (l *Logger) Error(msg string) {
	if !l.Enabled(core.LevelError) {
		return
	}
	l.report(l.logAt(core.LevelError, msg, 0))
}

// Critical emits msg at critical level.
func (l *Logger) Critical(msg string) {
	if !l.Enabled(core.LevelCritical) {
		return
	}
	l.report(l.logAt(core.LevelCritical, msg, 0))
}

// Tracef emits a formatted message at trace level.
func (l *Logger) Tracef(format string, args ...any) {
	if !l.Enabled(core.LevelTrace) {
		return
	}
	l.report(l.logAt(core.LevelTrace, fmt.Sprintf(format, args...), 0))
}

// Debugf emits a formatted message at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.Enabled(core.LevelDebug) {
		return
	}
	l.report(l.logAt(core.LevelDebug, fmt.Sprintf(format, args...), 0))
}

// Infof emits a formatted message at info level.
func (l *Logger) Infof(format string, args ...any) {
	if !l.Enabled(core.LevelInfo) {
		return
	}
	l.report(l.logAt(core.LevelInfo, fmt.Sprintf(format, args...), 0))
}

// Warnf emits a formatted message at warn level.
func (l *Logger) Warnf(format string, args ...any) {
	if !l.Enabled(core.LevelWarn) {
		return
	}
	l.report(l.logAt(core.LevelWarn, fmt.Sprintf(format, args...), 0))
}

// Errorf emits a formatted message at error level.
func (l *Logger) Errorf(format string, args ...any) {
	if !l.Enabled(core.LevelError) {
		return
	}
	l.report(l.logAt(core.LevelError, fmt.Sprintf(format, args...), 0))
}

// Criticalf emits a formatted message at critical level.
func (l *Logger) Criticalf(format string, args ...any) {
	if !l.Enabled(core.LevelCritical) {
		return
	}
	l.report(l.logAt(core.LevelCritical, fmt.Sprintf(format, args...), 0))
}

// logAt builds the record and dispatches it. Callers have already passed
// the level check. extraSkip counts stack frames between logAt's direct
// callers and the user's call site beyond the usual method depth.
func (l *Logger) logAt(level core.Level, msg string, extraSkip int) error {
	r := core.GetRecord()
	r.Time = l.clock()
	r.Level = level
	r.LoggerName = l.name
	r.Payload = msg
	r.ThreadID = core.GoroutineID()
	if l.captureSource {
		r.Source = core.CaptureSource(2 + l.callerSkip + extraSkip)
	}

	if d := l.dispatcher; d != nil {
		return d.enqueue(l, r)
	}
	l.dispatch(r, l.snapshot())
	core.PutRecord(r)
	return nil
}

// dispatch hands r to every sink in sinks. Sink failures and panics are
// contained per sink: one broken destination never stops delivery to the
// others.
func (l *Logger) dispatch(r *core.Record, sinks []sink.Sink) {
	for _, s := range sinks {
		l.sinkLog(s, r)
	}
}

func (l *Logger) sinkLog(s sink.Sink, r *core.Record) {
	defer func() {
		if p := recover(); p != nil {
			l.report(fmt.Errorf("sink panic: %v", p))
		}
	}()
	l.report(s.Log(r))
}

func (l *Logger) report(err error) {
	if err == nil {
		return
	}
	(*l.errHandler.Load())(err)
}

// Flush pushes every pending record down to stable destinations: with an
// async dispatcher it first waits until records already enqueued have been
// written, then flushes each sink in the current snapshot. Sink flush
// failures are combined into the returned error.
func (l *Logger) Flush() error {
	if d := l.dispatcher; d != nil {
		d.drain()
	}
	return l.flushSinks()
}

func (l *Logger) flushSinks() error {
	var errs error
	for _, s := range l.snapshot() {
		errs = multierr.Append(errs, l.safeFlush(s))
	}
	return errs
}

func (l *Logger) safeFlush(s sink.Sink) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("sink panic: %v", p)
		}
	}()
	return s.Flush()
}

// Close flushes the logger and releases what it owns: a dispatcher built
// by WithAsync is drained and closed (a shared one only drained), and
// every sink implementing io.Closer is closed. Records logged after Close
// are delivered synchronously and closed sinks reject them.
func (l *Logger) Close() error {
	var errs error
	if d := l.dispatcher; d != nil {
		if l.ownDispatcher {
			errs = multierr.Append(errs, d.Close())
		} else {
			d.drain()
		}
	}
	errs = multierr.Append(errs, l.flushSinks())
	for _, s := range l.snapshot() {
		if c, ok := s.(io.Closer); ok {
			errs = multierr.Append(errs, c.Close())
		}
	}
	return errs
}
