package core

import (
	"runtime"
	"strings"
)

// SourceLocation identifies the call site that produced a record. The zero
// value (Defined == false) means the location was not captured; formatters
// render nothing for it.
type SourceLocation struct {
	Defined  bool
	File     string
	Line     int
	Function string
}

// ShortFile returns the final path element of File.
func (s SourceLocation) ShortFile() string {
	if i := strings.LastIndexByte(s.File, '/'); i >= 0 {
		return s.File[i+1:]
	}
	return s.File
}

// ShortFunction returns Function without its package path prefix.
func (s SourceLocation) ShortFunction() string {
	fn := s.Function
	if i := strings.LastIndexByte(fn, '/'); i >= 0 {
		fn = fn[i+1:]
	}
	if i := strings.IndexByte(fn, '.'); i >= 0 {
		fn = fn[i+1:]
	}
	return fn
}

// CaptureSource records the file, line and function skip frames above the
// caller. It returns the zero SourceLocation when the stack cannot be
// resolved.
func CaptureSource(skip int) SourceLocation {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return SourceLocation{}
	}
	loc := SourceLocation{
		Defined: true,
		File:    file,
		Line:    line,
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = fn.Name()
	}
	return loc
}
