package sink

import (
	"go.uber.org/atomic"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/formatter"
)

// A Sink delivers records to one destination.
//
// Log applies the sink's own level filter before any other work, so a
// record below the sink's threshold costs one atomic load. Every method is
// safe for concurrent use; Log and Flush may be called from any goroutine,
// including an async dispatch worker.
//
// Sinks that hold OS resources additionally implement io.Closer. A closed
// sink rejects further records with *core.InvalidStateError.
type Sink interface {
	// Log renders r and writes it to the destination. Records below the
	// sink's threshold are discarded without being formatted.
	Log(r *core.Record) error
	// Flush pushes buffered data down to the destination.
	Flush() error
	// Level returns the sink's threshold.
	Level() core.Level
	// SetLevel replaces the sink's threshold. It takes effect for records
	// dispatched afterwards.
	SetLevel(core.Level)
	// SetFormatter replaces the sink's formatter. Records being rendered
	// concurrently finish with the formatter they started with.
	SetFormatter(formatter.Formatter)
}

// base carries the state every sink shares: a lock-free level filter, the
// swappable formatter, and the name used in error reports. Both mutable
// fields are replaced by atomic pointer or integer stores, so readers never
// block behind a reconfiguration.
type base struct {
	name  string
	level core.LevelFilter
	fmtr  atomic.Pointer[formatter.Formatter]
}

func (b *base) init(name string) {
	b.name = name
	var f formatter.Formatter = formatter.NewFullFormatter()
	b.fmtr.Store(&f)
}

// Level returns the sink's threshold.
func (b *base) Level() core.Level { return b.level.Level() }

// SetLevel replaces the sink's threshold.
func (b *base) SetLevel(l core.Level) { b.level.SetLevel(l) }

// SetFormatter replaces the sink's formatter.
func (b *base) SetFormatter(f formatter.Formatter) {
	if f == nil {
		f = formatter.NewFullFormatter()
	}
	b.fmtr.Store(&f)
}

func (b *base) shouldLog(l core.Level) bool { return b.level.Enabled(l) }

// render formats r into a pooled buffer with the line terminator appended.
// The caller returns the buffer with formatter.PutBuffer.
func (b *base) render(r *core.Record) (*formatter.Buffer, error) {
	buf := formatter.GetBuffer()
	if err := (*b.fmtr.Load()).Format(r, buf); err != nil {
		formatter.PutBuffer(buf)
		return nil, core.NewSinkError(b.name, "format", err)
	}
	buf.WriteString(eol)
	return buf, nil
}
