package sink

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/formatter"
)

// FileConfig configures a FileSink.
type FileConfig struct {
	// Path of the log file. Required; parent directories are created.
	Path string `validate:"required"`
	// Truncate discards existing contents on open instead of appending.
	Truncate bool
}

// FileSink appends records to one file. Close releases the file handle;
// records arriving after Close are rejected with *core.InvalidStateError.
type FileSink struct {
	base
	mu     sync.Mutex
	file   *os.File
	closed bool
}

var (
	_ Sink      = (*FileSink)(nil)
	_ io.Closer = (*FileSink)(nil)
)

// NewFileSink opens cfg.Path and returns the sink. Open failures are
// reported as *core.SinkError.
func NewFileSink(cfg FileConfig) (*FileSink, error) {
	if err := core.ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	name := "file:" + cfg.Path

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, core.NewSinkError(name, "mkdir", err)
		}
	}
	flags := os.O_CREATE | os.O_WRONLY
	if cfg.Truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(cfg.Path, flags, 0o644)
	if err != nil {
		return nil, core.NewSinkError(name, "open", err)
	}

	s := &FileSink{file: f}
	s.init(name)
	return s, nil
}

// Log renders r and appends it to the file.
func (s *FileSink) Log(r *core.Record) error {
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
	_, err = s.file.Write(buf.Bytes())
	return core.NewSinkError(s.name, "write", err)
}

// Flush syncs the file to stable storage.
func (s *FileSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &core.InvalidStateError{Component: s.name, Reason: "flushed after Close"}
	}
	return core.NewSinkError(s.name, "flush", s.file.Sync())
}

// Close syncs and closes the file. Close is idempotent.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return multierr.Combine(
		core.NewSinkError(s.name, "flush", s.file.Sync()),
		core.NewSinkError(s.name, "close", s.file.Close()),
	)
}
