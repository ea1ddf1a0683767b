package termstyle

import (
	"github.com/go-basin/basin/core"
)

// Mode controls whether a Writer emits styles.
type Mode int

const (
	// ModeAuto styles output only when the target is an interactive
	// terminal.
	ModeAuto Mode = iota
	// ModeAlways styles output unconditionally.
	ModeAlways
	// ModeNever leaves output unstyled.
	ModeNever
)

// A Style is an ANSI SGR escape sequence applied to the styled span of a
// rendered record. Styles compose by concatenation.
type Style string

// Basic SGR styles.
const (
	Bold Style = "\x1b[1m"

	Black   Style = "\x1b[30m"
	Red     Style = "\x1b[31m"
	Green   Style = "\x1b[32m"
	Yellow  Style = "\x1b[33m"
	Blue    Style = "\x1b[34m"
	Magenta Style = "\x1b[35m"
	Cyan    Style = "\x1b[36m"
	White   Style = "\x1b[37m"

	OnRed Style = "\x1b[41m"
)

const styleReset = "\x1b[0m"

// defaultStyles maps each emittable level to its terminal style.
var defaultStyles = [...]Style{
	core.LevelTrace:    White,
	core.LevelDebug:    Cyan,
	core.LevelInfo:     Green,
	core.LevelWarn:     Bold + Yellow,
	core.LevelError:    Bold + Red,
	core.LevelCritical: Bold + OnRed,
}
