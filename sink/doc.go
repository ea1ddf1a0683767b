// Package sink implements record destinations.
//
// Every sink owns a level filter and a formatter, both replaceable at
// runtime without locking the write path: the threshold is an atomic
// integer and the formatter an atomically swapped pointer. A record below
// the sink's threshold is rejected before any formatting work.
//
// Built-in sinks:
//
//   - StreamSink: stdout/stderr (or any open file), with the styled span
//     colored when the stream is an interactive terminal
//   - WriteSink: any io.Writer the caller hands in
//   - FileSink: a single append-mode (or truncated) log file
//   - RotatingFileSink: a size-rotated file set managed by lumberjack
//   - WinDebugSink: OutputDebugStringW, Windows only
//
// Write failures come back as *core.SinkError naming the sink and the
// operation; loggers route them to their error handler rather than
// propagating them to logging call sites. Sinks holding OS resources also
// implement io.Closer and reject records after Close with
// *core.InvalidStateError.
package sink
