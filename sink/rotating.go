package sink

import (
	"io"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/formatter"
)

// RotatingConfig configures a RotatingFileSink.
type RotatingConfig struct {
	// Path of the active log file. Required.
	Path string `validate:"required"`
	// MaxSizeMB rotates the file once it exceeds this many megabytes.
	// 0 keeps lumberjack's default of 100.
	MaxSizeMB int `validate:"gte=0"`
	// MaxBackups caps how many rotated files are kept. 0 keeps all.
	MaxBackups int `validate:"gte=0"`
	// MaxAgeDays removes rotated files older than this many days. 0 keeps
	// them indefinitely.
	MaxAgeDays int `validate:"gte=0"`
	// LocalTime stamps rotated file names in local time instead of UTC.
	LocalTime bool
	// Compress gzips rotated files.
	Compress bool
}

// RotatingFileSink appends records to a size-rotated file set managed by
// lumberjack: the active file is rotated once it exceeds MaxSizeMB, and
// old rotations are pruned by count and age.
type RotatingFileSink struct {
	base
	mu     sync.Mutex
	out    *lumberjack.Logger
	closed bool
}

var (
	_ Sink      = (*RotatingFileSink)(nil)
	_ io.Closer = (*RotatingFileSink)(nil)
)

// NewRotatingFileSink returns a sink rotating at cfg.Path. The file is
// opened lazily on the first record.
func NewRotatingFileSink(cfg RotatingConfig) (*RotatingFileSink, error) {
	if err := core.ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	s := &RotatingFileSink{
		out: &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  cfg.LocalTime,
			Compress:   cfg.Compress,
		},
	}
	s.init("rotating:" + cfg.Path)
	return s, nil
}

// Log renders r and appends it to the active file, rotating first when the
// write would exceed the size limit.
func (s *RotatingFileSink) Log(r *core.Record) error {
	if !s.shouldLog(r.Level) {
		return nil
	}
	buf, err := s.render(r)
	if err != nil {
		return err
	}
	defer formatter.PutBuffer(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &core.InvalidStateError{Component: s.name, Reason: "logged after Close"}
	}
	_, err = s.out.Write(buf.Bytes())
	return core.NewSinkError(s.name, "write", err)
}

// Flush is a no-op: lumberjack writes straight through to the file and
// does not expose a sync hook.
func (s *RotatingFileSink) Flush() error { return nil }

// Rotate closes the active file and starts a new one regardless of size.
func (s *RotatingFileSink) Rotate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &core.InvalidStateError{Component: s.name, Reason: "rotated after Close"}
	}
	return core.NewSinkError(s.name, "rotate", s.out.Rotate())
}

// Close closes the active file. Close is idempotent.
func (s *RotatingFileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return core.NewSinkError(s.name, "close", s.out.Close())
}
