package formatter

import (
	"github.com/go-basin/basin/core"
)

// A Formatter renders one record into a buffer. Format must be a pure
// function of the record and the formatter's own immutable configuration:
// no I/O, no mutation of the record, safe for concurrent use from any
// number of sinks.
//
// Formatters do not append a line terminator; sinks own the end-of-line
// convention of their target.
type Formatter interface {
	Format(r *core.Record, buf *Buffer) error
}
