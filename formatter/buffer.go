package formatter

import (
	"bytes"
	"sync"
)

// A Buffer accumulates the rendered form of one record. On top of
// bytes.Buffer it records an optional style range: the half-open byte span
// a color-capable sink should wrap in the level's style. Formatters mark
// the range; plain sinks ignore it.
type Buffer struct {
	bytes.Buffer

	styleSet   bool
	styleStart int
	styleEnd   int
}

// Reset truncates the buffer and clears the style range.
func (b *Buffer) Reset() {
	b.Buffer.Reset()
	b.styleSet = false
	b.styleStart = 0
	b.styleEnd = 0
}

// MarkStyleStart records the current length as the start of the styled
// span.
func (b *Buffer) MarkStyleStart() {
	b.styleSet = true
	b.styleStart = b.Len()
	b.styleEnd = b.Len()
}

// MarkStyleEnd records the current length as the end of the styled span.
func (b *Buffer) MarkStyleEnd() {
	b.styleEnd = b.Len()
}

// StyleRange returns the marked span. ok is false when no range was marked,
// in which case the whole buffer is unstyled.
func (b *Buffer) StyleRange() (start, end int, ok bool) {
	if !b.styleSet || b.styleEnd < b.styleStart {
		return 0, 0, false
	}
	return b.styleStart, b.styleEnd, true
}

// bufferPool keeps rendered-record buffers out of the garbage collector.
// Buffers above 64KiB are dropped on return so one oversized record does
// not pin memory for the life of the process.
var bufferPool = &sync.Pool{
	New: func() any {
		b := new(Buffer)
		b.Grow(256)
		return b
	},
}

// GetBuffer returns an empty Buffer from the pool.
func GetBuffer() *Buffer {
	buf := bufferPool.Get().(*Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns buf to the pool.
func PutBuffer(buf *Buffer) {
	if buf.Cap() > 64*1024 {
		return
	}
	bufferPool.Put(buf)
}
