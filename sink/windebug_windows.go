//go:build windows

package sink

import (
	"golang.org/x/sys/windows"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/formatter"
)

// WinDebugSink forwards records to the debugger attached to the process
// via OutputDebugStringW. Without a debugger the calls vanish into the
// void, so the sink is harmless to leave configured.
type WinDebugSink struct {
	base
}

var _ Sink = (*WinDebugSink)(nil)

// NewWinDebugSink returns a debugger sink.
func NewWinDebugSink() *WinDebugSink {
	s := &WinDebugSink{}
	s.init("windebug")
	return s
}

// Log renders r and hands it to the debugger.
func (s *WinDebugSink) Log(r *core.Record) error {
	if !s.shouldLog(r.Level) {
		return nil
	}
	buf, err := s.render(r)
	if err != nil {
		return err
	}
	defer formatter.PutBuffer(buf)

	msg, err := windows.UTF16PtrFromString(buf.String())
	if err != nil {
		return core.NewSinkError(s.name, "encode", err)
	}
	windows.OutputDebugString(msg)
	return nil
}

// Flush is a no-op; OutputDebugStringW delivers synchronously.
func (s *WinDebugSink) Flush() error { return nil }
