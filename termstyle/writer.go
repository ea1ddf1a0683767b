package termstyle

import (
	"io"
	"sync"

	"golang.org/x/term"

	"github.com/go-basin/basin/core"
)

// A Writer writes rendered records to a terminal-like target, wrapping the
// styled span of each record in the style of its level.
//
// Whether styles are emitted is decided once at construction: under
// ModeAuto the target must be an interactive terminal (and on Windows the
// console must accept virtual terminal sequences). Non-terminal targets
// receive the plain bytes with no escape codes.
//
// Write calls are not serialized here; callers that share a Writer must
// hold their own lock, and SetStyle must not race with WriteStyled.
type Writer struct {
	out     io.Writer
	colored bool
	styles  [len(defaultStyles)]Style
}

// NewWriter wraps out. With ModeAuto, styling is enabled only when out is
// an interactive terminal.
func NewWriter(out io.Writer, mode Mode) *Writer {
	w := &Writer{out: out, styles: defaultStyles}
	switch mode {
	case ModeAlways:
		w.colored = true
	case ModeNever:
		w.colored = false
	default:
		w.colored = isTerminal(out) && enableVirtualTerminal(out)
	}
	return w
}

// Colored reports whether the writer emits styles.
func (w *Writer) Colored() bool { return w.colored }

// SetStyle replaces the style used for level. An empty style leaves that
// level unstyled.
func (w *Writer) SetStyle(level core.Level, s Style) {
	if i := int(level); i >= 0 && i < len(w.styles) {
		w.styles[i] = s
	}
}

// WriteStyled writes p, wrapping p[start:end] in the style for level. The
// bytes pass through unchanged when styling is off, the level has no
// style, or the range is empty. The styled form is assembled into one
// buffer so the target sees a single Write.
func (w *Writer) WriteStyled(level core.Level, p []byte, start, end int) error {
	style := w.styleFor(level)
	if !w.colored || style == "" || start < 0 || end > len(p) || start >= end {
		_, err := w.out.Write(p)
		return err
	}

	bp := scratchPool.Get().(*[]byte)
	buf := (*bp)[:0]
	buf = append(buf, p[:start]...)
	buf = append(buf, style...)
	buf = append(buf, p[start:end]...)
	buf = append(buf, styleReset...)
	buf = append(buf, p[end:]...)
	_, err := w.out.Write(buf)
	*bp = buf[:0]
	scratchPool.Put(bp)
	return err
}

func (w *Writer) styleFor(level core.Level) Style {
	if i := int(level); i >= 0 && i < len(w.styles) {
		return w.styles[i]
	}
	return ""
}

var scratchPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, 512)
		return &buf
	},
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
