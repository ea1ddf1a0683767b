package sink

import (
	"os"
	"sync"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/formatter"
	"github.com/go-basin/basin/termstyle"
)

// StreamSink writes records to a standard stream, coloring the styled span
// of each record when the stream is an interactive terminal. Output to
// files and pipes stays free of escape codes.
type StreamSink struct {
	base
	mu  sync.Mutex
	out *termstyle.Writer
}

var _ Sink = (*StreamSink)(nil)

// NewStdoutSink returns a sink on os.Stdout.
func NewStdoutSink(mode termstyle.Mode) *StreamSink {
	return NewStreamSink(os.Stdout, mode)
}

// NewStderrSink returns a sink on os.Stderr.
func NewStderrSink(mode termstyle.Mode) *StreamSink {
	return NewStreamSink(os.Stderr, mode)
}

// NewStreamSink returns a sink on an arbitrary open file or pipe. Terminal
// detection runs once here, against f.
func NewStreamSink(f *os.File, mode termstyle.Mode) *StreamSink {
	s := &StreamSink{out: termstyle.NewWriter(f, mode)}
	s.init("stream:" + f.Name())
	return s
}

// Log renders r and writes it to the stream.
func (s *StreamSink) Log(r *core.Record) error {
	if !s.shouldLog(r.Level) {
		return nil
	}
	buf, err := s.render(r)
	if err != nil {
		return err
	}
	defer formatter.PutBuffer(buf)

	start, end, _ := buf.StyleRange()
	s.mu.Lock()
	err = s.out.WriteStyled(r.Level, buf.Bytes(), start, end)
	s.mu.Unlock()
	return core.NewSinkError(s.name, "write", err)
}

// Flush is a no-op: Go writes standard streams unbuffered, so there is
// nothing to push.
func (s *StreamSink) Flush() error { return nil }

// SetStyle replaces the style used for level on this stream.
func (s *StreamSink) SetStyle(level core.Level, style termstyle.Style) {
	s.mu.Lock()
	s.out.SetStyle(level, style)
	s.mu.Unlock()
}

// Colored reports whether the stream accepts styles.
func (s *StreamSink) Colored() bool { return s.out.Colored() }
