//go:build !windows

package termstyle

import "io"

// Unix terminals interpret SGR sequences natively.
func enableVirtualTerminal(io.Writer) bool { return true }
