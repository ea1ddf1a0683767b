package formatter

import (
	"fmt"
	"strconv"

	"github.com/go-basin/basin/core"
)

// PatternFormatter renders records according to a %-flag pattern compiled
// once at construction. Rendering never fails for pattern reasons: every
// malformed pattern is rejected by NewPatternFormatter.
//
// Time flags:
//
//	%Y  four-digit year          %H  hour, 00-23
//	%m  month, 01-12             %M  minute, 00-59
//	%d  day of month, 01-31      %S  second, 00-59
//	%C  two-digit year           %T  equivalent to %H:%M:%S
//	%D  equivalent to %m/%d/%C   %X  equivalent to %T
//	%x  equivalent to %D         %R  equivalent to %H:%M
//	%b  month name ("Jul")       %e  millisecond, 000-999
//	%B  full month name          %f  microsecond, 000000-999999
//	%a  weekday name ("Tue")     %F  nanosecond, 000000000-999999999
//	%A  full weekday name        %p  AM or PM
//	%c  date and time            %r  12-hour clock time
//	%z  UTC offset ("+02:00")    %E  seconds since the Unix epoch
//
// Record flags:
//
//	%l  level name ("info")      %n  logger name
//	%L  short level name ("I")   %t  goroutine id
//	%v  payload
//
// Source location flags (render nothing when the location was not
// captured):
//
//	%@  basename:line            %g  full file path
//	%s  file basename            %#  line number
//	%!  function name
//
// Style flags:
//
//	%^  start of the styled range
//	%$  end of the styled range
//	%%  literal '%'
type PatternFormatter struct {
	pattern string
	ops     []patternOp
}

// Compile-time check that the interface is satisfied.
var _ Formatter = (*PatternFormatter)(nil)

type patternOp func(r *core.Record, buf *Buffer)

// NewPatternFormatter compiles pattern. It returns a *core.PatternError
// when the pattern contains an unknown flag, a dangling '%', or a
// malformed style range.
func NewPatternFormatter(pattern string) (*PatternFormatter, error) {
	ops, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &PatternFormatter{pattern: pattern, ops: ops}, nil
}

// MustPatternFormatter is like NewPatternFormatter but panics on a
// malformed pattern. Use it for patterns known at compile time.
func MustPatternFormatter(pattern string) *PatternFormatter {
	f, err := NewPatternFormatter(pattern)
	if err != nil {
		panic(err)
	}
	return f
}

// Pattern returns the source pattern the formatter was compiled from.
func (f *PatternFormatter) Pattern() string { return f.pattern }

// Format renders r into buf by running the compiled op sequence.
func (f *PatternFormatter) Format(r *core.Record, buf *Buffer) error {
	for _, op := range f.ops {
		op(r, buf)
	}
	return nil
}

func compilePattern(pattern string) ([]patternOp, error) {
	var (
		ops       []patternOp
		literal   []byte
		styleOpen bool
		styleDone bool
		stylePos  int
	)

	flushLiteral := func() {
		if len(literal) == 0 {
			return
		}
		ops = append(ops, literalOp(string(literal)))
		literal = literal[:0]
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			literal = append(literal, c)
			continue
		}
		i++
		if i == len(pattern) {
			return nil, &core.PatternError{Pattern: pattern, Pos: i - 1, Reason: "dangling '%' at end of pattern"}
		}
		flag := pattern[i]
		if flag == '%' {
			literal = append(literal, '%')
			continue
		}

		flushLiteral()
		switch flag {
		case 'Y':
			ops = append(ops, appendYear)
		case 'C':
			ops = append(ops, appendShortYear)
		case 'm':
			ops = append(ops, appendMonth)
		case 'b':
			ops = append(ops, appendMonthName)
		case 'B':
			ops = append(ops, appendFullMonthName)
		case 'd':
			ops = append(ops, appendDay)
		case 'a':
			ops = append(ops, appendWeekdayName)
		case 'A':
			ops = append(ops, appendFullWeekdayName)
		case 'D', 'x':
			ops = append(ops, appendShortDate)
		case 'c':
			ops = append(ops, appendDateTime)
		case 'H':
			ops = append(ops, appendHour)
		case 'M':
			ops = append(ops, appendMinute)
		case 'S':
			ops = append(ops, appendSecond)
		case 'T', 'X':
			ops = append(ops, appendClock)
		case 'R':
			ops = append(ops, appendShortClock)
		case 'z':
			ops = append(ops, appendZoneOffset)
		case 'e':
			ops = append(ops, appendMillis)
		case 'f':
			ops = append(ops, appendMicros)
		case 'F':
			ops = append(ops, appendNanos)
		case 'E':
			ops = append(ops, appendEpoch)
		case 'p':
			ops = append(ops, appendAMPM)
		case 'r':
			ops = append(ops, appendClock12)
		case 'l':
			ops = append(ops, appendLevel)
		case 'L':
			ops = append(ops, appendShortLevel)
		case 'n':
			ops = append(ops, appendLoggerName)
		case 't':
			ops = append(ops, appendThreadID)
		case 'v':
			ops = append(ops, appendPayload)
		case '@':
			ops = append(ops, appendSourceFileLine)
		case 's':
			ops = append(ops, appendSourceFile)
		case 'g':
			ops = append(ops, appendSourcePath)
		case '#':
			ops = append(ops, appendSourceLine)
		case '!':
			ops = append(ops, appendSourceFunc)
		case '^':
			if styleOpen || styleDone {
				return nil, &core.PatternError{Pattern: pattern, Pos: i - 1, Reason: "style range already set"}
			}
			styleOpen = true
			stylePos = i - 1
			ops = append(ops, markStyleStart)
		case '$':
			if !styleOpen {
				return nil, &core.PatternError{Pattern: pattern, Pos: i - 1, Reason: "'%$' without a preceding '%^'"}
			}
			styleOpen = false
			styleDone = true
			ops = append(ops, markStyleEnd)
		default:
			return nil, &core.PatternError{Pattern: pattern, Pos: i - 1, Reason: fmt.Sprintf("unknown flag %q", string(flag))}
		}
	}
	if styleOpen {
		return nil, &core.PatternError{Pattern: pattern, Pos: stylePos, Reason: "unterminated style range: missing '%$'"}
	}
	flushLiteral()
	return ops, nil
}

func literalOp(s string) patternOp {
	return func(_ *core.Record, buf *Buffer) {
		buf.WriteString(s)
	}
}

func markStyleStart(_ *core.Record, buf *Buffer) { buf.MarkStyleStart() }
func markStyleEnd(_ *core.Record, buf *Buffer)   { buf.MarkStyleEnd() }

func appendYear(r *core.Record, buf *Buffer) { appendPadded(buf, r.Time.Year(), 4) }

func appendShortYear(r *core.Record, buf *Buffer) { appendPadded(buf, r.Time.Year()%100, 2) }

func appendMonth(r *core.Record, buf *Buffer) { appendPadded(buf, int(r.Time.Month()), 2) }

func appendMonthName(r *core.Record, buf *Buffer) {
	buf.WriteString(r.Time.Month().String()[:3])
}

func appendFullMonthName(r *core.Record, buf *Buffer) {
	buf.WriteString(r.Time.Month().String())
}

func appendDay(r *core.Record, buf *Buffer) { appendPadded(buf, r.Time.Day(), 2) }

func appendWeekdayName(r *core.Record, buf *Buffer) {
	buf.WriteString(r.Time.Weekday().String()[:3])
}

func appendFullWeekdayName(r *core.Record, buf *Buffer) {
	buf.WriteString(r.Time.Weekday().String())
}

func appendShortDate(r *core.Record, buf *Buffer) {
	appendMonth(r, buf)
	buf.WriteByte('/')
	appendDay(r, buf)
	buf.WriteByte('/')
	appendShortYear(r, buf)
}

// appendDateTime renders "Tue Jul 9 15:04:05 2024", the day unpadded.
func appendDateTime(r *core.Record, buf *Buffer) {
	appendWeekdayName(r, buf)
	buf.WriteByte(' ')
	appendMonthName(r, buf)
	buf.WriteByte(' ')
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(r.Time.Day()), 10))
	buf.WriteByte(' ')
	appendClock(r, buf)
	buf.WriteByte(' ')
	appendYear(r, buf)
}

func appendHour(r *core.Record, buf *Buffer) { appendPadded(buf, r.Time.Hour(), 2) }

func appendMinute(r *core.Record, buf *Buffer) { appendPadded(buf, r.Time.Minute(), 2) }

func appendSecond(r *core.Record, buf *Buffer) { appendPadded(buf, r.Time.Second(), 2) }

func appendClock(r *core.Record, buf *Buffer) {
	appendHour(r, buf)
	buf.WriteByte(':')
	appendMinute(r, buf)
	buf.WriteByte(':')
	appendSecond(r, buf)
}

func appendShortClock(r *core.Record, buf *Buffer) {
	appendHour(r, buf)
	buf.WriteByte(':')
	appendMinute(r, buf)
}

func appendZoneOffset(r *core.Record, buf *Buffer) {
	_, offset := r.Time.Zone()
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	buf.WriteByte(sign)
	appendPadded(buf, offset/3600, 2)
	buf.WriteByte(':')
	appendPadded(buf, offset%3600/60, 2)
}

func appendMillis(r *core.Record, buf *Buffer) {
	appendPadded(buf, r.Time.Nanosecond()/int(1e6), 3)
}

func appendMicros(r *core.Record, buf *Buffer) {
	appendPadded(buf, r.Time.Nanosecond()/int(1e3), 6)
}

func appendNanos(r *core.Record, buf *Buffer) {
	appendPadded(buf, r.Time.Nanosecond(), 9)
}

func appendEpoch(r *core.Record, buf *Buffer) {
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), r.Time.Unix(), 10))
}

func appendAMPM(r *core.Record, buf *Buffer) {
	if r.Time.Hour() < 12 {
		buf.WriteString("AM")
	} else {
		buf.WriteString("PM")
	}
}

func appendClock12(r *core.Record, buf *Buffer) {
	hour := r.Time.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	appendPadded(buf, hour, 2)
	buf.WriteByte(':')
	appendMinute(r, buf)
	buf.WriteByte(':')
	appendSecond(r, buf)
	buf.WriteByte(' ')
	appendAMPM(r, buf)
}

func appendLevel(r *core.Record, buf *Buffer) { buf.WriteString(r.Level.String()) }

func appendShortLevel(r *core.Record, buf *Buffer) { buf.WriteString(r.Level.ShortName()) }

func appendLoggerName(r *core.Record, buf *Buffer) { buf.WriteString(r.LoggerName) }

func appendThreadID(r *core.Record, buf *Buffer) {
	buf.Write(strconv.AppendUint(buf.AvailableBuffer(), r.ThreadID, 10))
}

func appendPayload(r *core.Record, buf *Buffer) { buf.WriteString(r.Payload) }

func appendSourceFileLine(r *core.Record, buf *Buffer) {
	if !r.Source.Defined {
		return
	}
	buf.WriteString(r.Source.ShortFile())
	buf.WriteByte(':')
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(r.Source.Line), 10))
}

func appendSourceFile(r *core.Record, buf *Buffer) {
	if !r.Source.Defined {
		return
	}
	buf.WriteString(r.Source.ShortFile())
}

func appendSourcePath(r *core.Record, buf *Buffer) {
	if !r.Source.Defined {
		return
	}
	buf.WriteString(r.Source.File)
}

func appendSourceLine(r *core.Record, buf *Buffer) {
	if !r.Source.Defined {
		return
	}
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(r.Source.Line), 10))
}

func appendSourceFunc(r *core.Record, buf *Buffer) {
	if !r.Source.Defined {
		return
	}
	buf.WriteString(r.Source.ShortFunction())
}

// appendPadded writes v zero-padded to at least width digits without going
// through fmt.
func appendPadded(buf *Buffer, v, width int) {
	var digits [20]byte
	n := len(digits)
	u := uint(v)
	for {
		n--
		digits[n] = byte('0' + u%10)
		u /= 10
		if u == 0 {
			break
		}
	}
	dst := buf.AvailableBuffer()
	for pad := width - (len(digits) - n); pad > 0; pad-- {
		dst = append(dst, '0')
	}
	buf.Write(append(dst, digits[n:]...))
}
