//go:build windows

package termstyle

import (
	"io"

	"golang.org/x/sys/windows"
)

// enableVirtualTerminal switches the console into virtual terminal mode so
// it interprets SGR sequences. It reports false when the console rejects
// the mode, in which case output stays plain.
func enableVirtualTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	handle := windows.Handle(f.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
