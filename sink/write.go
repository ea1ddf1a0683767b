package sink

import (
	"io"
	"os"
	"sync"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/formatter"
)

// WriteConfig configures a WriteSink.
type WriteConfig struct {
	// Target receives the rendered records. Required.
	Target io.Writer `validate:"required"`
	// Name identifies the sink in error reports. Defaults to "write".
	Name string
}

// WriteSink delivers records to an arbitrary io.Writer. The target is
// shared with the caller: the sink serializes its own writes but never
// closes the writer.
type WriteSink struct {
	base
	mu sync.Mutex
	w  io.Writer
}

var _ Sink = (*WriteSink)(nil)

// NewWriteSink returns a sink writing to cfg.Target.
func NewWriteSink(cfg WriteConfig) (*WriteSink, error) {
	if err := core.ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = "write"
	}
	s := &WriteSink{w: cfg.Target}
	s.init(cfg.Name)
	return s, nil
}

// Log renders r and writes it to the target.
func (s *WriteSink) Log(r *core.Record) error {
	if !s.shouldLog(r.Level) {
		return nil
	}
	buf, err := s.render(r)
	if err != nil {
		return err
	}
	defer formatter.PutBuffer(buf)

	s.mu.Lock()
	_, err = s.w.Write(buf.Bytes())
	s.mu.Unlock()
	return core.NewSinkError(s.name, "write", err)
}

// Flush forwards to the target when it can flush: writers with a
// Flush() error method (such as bufio.Writer) are flushed, files are
// synced, everything else is a no-op.
func (s *WriteSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch w := s.w.(type) {
	case interface{ Flush() error }:
		return core.NewSinkError(s.name, "flush", w.Flush())
	case *os.File:
		return core.NewSinkError(s.name, "flush", w.Sync())
	default:
		return nil
	}
}
