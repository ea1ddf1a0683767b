package sink

import (
	"strings"
	"sync"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/formatter"
)

// CountSink keeps rendered lines in memory and counts flushes. It backs
// tests that need to observe exactly what reached a sink, and in what
// order.
type CountSink struct {
	base
	mu      sync.Mutex
	lines   []string
	flushes int
}

var _ Sink = (*CountSink)(nil)

// NewCountSink returns a CountSink accepting every level.
func NewCountSink() *CountSink {
	s := &CountSink{}
	s.init("count")
	return s
}

// Log renders r and appends the line, without its terminator, to memory.
func (s *CountSink) Log(r *core.Record) error {
	if !s.shouldLog(r.Level) {
		return nil
	}
	buf, err := s.render(r)
	if err != nil {
		return err
	}
	line := strings.TrimRight(buf.String(), "\r\n")
	formatter.PutBuffer(buf)

	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()
	return nil
}

// Flush counts the call.
func (s *CountSink) Flush() error {
	s.mu.Lock()
	s.flushes++
	s.mu.Unlock()
	return nil
}

// Count returns how many records the sink has accepted.
func (s *CountSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// FlushCount returns how many times Flush has been called.
func (s *CountSink) FlushCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

// Lines returns a copy of the accepted lines in arrival order.
func (s *CountSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}
