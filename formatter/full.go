package formatter

import (
	"github.com/go-basin/basin/core"
)

// FullFormatter is the formatter sinks use when none is configured. It
// renders
//
//	[2024-01-01 00:00:00.000] [connector] [info] connection established
//
// with the logger-name bracket omitted for unnamed loggers and the level
// name marked as the styled range.
type FullFormatter struct {
	head []patternOp
	tail []patternOp
}

var _ Formatter = (*FullFormatter)(nil)

// NewFullFormatter returns the default formatter.
func NewFullFormatter() *FullFormatter {
	return &FullFormatter{
		head: MustPatternFormatter("[%Y-%m-%d %H:%M:%S.%e] ").ops,
		tail: MustPatternFormatter("[%^%l%$] %v").ops,
	}
}

// Format renders r into buf.
func (f *FullFormatter) Format(r *core.Record, buf *Buffer) error {
	for _, op := range f.head {
		op(r, buf)
	}
	if r.LoggerName != "" {
		buf.WriteByte('[')
		buf.WriteString(r.LoggerName)
		buf.WriteString("] ")
	}
	for _, op := range f.tail {
		op(r, buf)
	}
	return nil
}
