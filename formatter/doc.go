// Package formatter renders records into text.
//
// The central type is PatternFormatter, which compiles a %-flag pattern
// into a sequence of append operations once at construction. Compilation
// rejects unknown flags and malformed style ranges with *core.PatternError;
// a formatter that compiled cannot fail on render.
//
// Rendering is pure: a formatter reads the record, appends bytes to a
// Buffer, and performs no I/O. It relies on Go's Append-style functions
// (strconv.AppendInt into Buffer.AvailableBuffer) and a hand-rolled
// zero-padding append so that the hot path does not go through fmt.
// Buffers come from a pool pre-grown to 256 bytes; buffers larger than
// 64 KiB are not returned to the pool to prevent a single large log line
// from permanently inflating memory usage.
//
// A pattern may mark one styled span with %^ and %$. The span is carried
// as byte offsets on the Buffer; color-capable sinks wrap exactly that
// span in the level's style and every other sink ignores it, keeping
// escape codes out of files and pipes.
package formatter
