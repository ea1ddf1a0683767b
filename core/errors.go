package core

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for matching with errors.Is.
var (
	// ErrUnknownLevel is returned when a level name cannot be parsed.
	ErrUnknownLevel = errors.New("unknown log level")

	// ErrQueueFull is wrapped by OverflowError when a bounded async queue
	// rejects a record.
	ErrQueueFull = errors.New("async queue full")

	// ErrClosed is wrapped by InvalidStateError when a sink, dispatcher or
	// logger is used after Close.
	ErrClosed = errors.New("already closed")
)

// PatternError reports a malformed formatting pattern. It is returned at
// construction time only; a formatter that compiled never fails on render
// for pattern reasons.
type PatternError struct {
	Pattern string // the full pattern text
	Pos     int    // byte offset of the offending token
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q at offset %d: %s", e.Pattern, e.Pos, e.Reason)
}

// SinkError wraps an I/O failure from a sink operation. Op names the
// operation ("write", "flush", "open", "rotate", ...) and Sink identifies
// the failing sink so operators can tell destinations apart.
type SinkError struct {
	Sink string
	Op   string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %s: %s: %v", e.Sink, e.Op, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// NewSinkError wraps err with the sink name and operation. It returns nil
// when err is nil.
func NewSinkError(sink, op string, err error) error {
	if err == nil {
		return nil
	}
	return &SinkError{Sink: sink, Op: op, Err: err}
}

// OverflowError reports that a record was rejected because the async queue
// was full. It is surfaced to callers only under the error overflow policy
// or when a bounded blocking wait expires.
type OverflowError struct {
	Capacity int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v (capacity %d)", ErrQueueFull, e.Capacity)
}

func (e *OverflowError) Unwrap() error { return ErrQueueFull }

// InvalidStateError reports use of a component after it was closed or after
// an earlier failure left it unusable.
type InvalidStateError struct {
	Component string
	Reason    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Component, ErrClosed, e.Reason)
}

func (e *InvalidStateError) Unwrap() error { return ErrClosed }

// An ErrorHandler receives errors that occur while dispatching records,
// such as sink write failures. Handlers must not log through the engine
// that invoked them.
type ErrorHandler func(error)

// DefaultErrorHandler writes a timestamped line describing err to stderr.
// It is installed on every logger that has no explicit handler so that
// write failures are never silently discarded.
func DefaultErrorHandler(err error) {
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(os.Stderr, "[*** LOG ERROR ***] [%s] %v\n", ts, err)
}
