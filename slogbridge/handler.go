package slogbridge

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/logger"
)

// Handler implements slog.Handler on top of a basin Logger. Attributes and
// groups are flattened into the record payload as dotted key=value text, so
// any sink and pattern works unchanged:
//
//	sl := slog.New(slogbridge.New(log))
//	sl.Info("request served", "path", "/api", "ms", 12)
//
// renders the payload "request served path=/api ms=12".
//
// The record is stamped by the Logger, so the slog record's own time and
// source are not carried over. Build bridge loggers without source capture;
// a captured location would name this package, not the slog call site.
type Handler struct {
	log *logger.Logger
	// prefix is the dotted path of open groups, with a trailing dot.
	prefix string
	// preface holds attrs from WithAttrs, rendered once.
	preface string
}

var _ slog.Handler = (*Handler)(nil)

// New returns a Handler emitting through log.
func New(log *logger.Logger) *Handler {
	return &Handler{log: log}
}

// Enabled reports whether the underlying logger would dispatch a record at
// the mapped level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.log.Enabled(toLevel(level))
}

// Handle renders the record and its attributes into one payload and logs
// it. Queue overflow errors from an async logger are returned to slog.
func (h *Handler) Handle(_ context.Context, rec slog.Record) error {
	level := toLevel(rec.Level)
	if !h.log.Enabled(level) {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(rec.Message)
	sb.WriteString(h.preface)
	rec.Attrs(func(a slog.Attr) bool {
		appendAttr(&sb, h.prefix, a)
		return true
	})
	return h.log.Log(level, sb.String())
}

// WithAttrs returns a Handler that prepends the given attributes, qualified
// by the groups opened so far, to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var sb strings.Builder
	sb.WriteString(h.preface)
	for _, a := range attrs {
		appendAttr(&sb, h.prefix, a)
	}
	nh := *h
	nh.preface = sb.String()
	return &nh
}

// WithGroup returns a Handler qualifying subsequent attribute keys with
// name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.prefix = h.prefix + name + "."
	return &nh
}

// appendAttr writes " key=value" with the group prefix applied, flattening
// group values into their members.
func appendAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		members := a.Value.Group()
		if len(members) == 0 {
			return
		}
		if a.Key != "" {
			prefix = prefix + a.Key + "."
		}
		for _, member := range members {
			appendAttr(sb, prefix, member)
		}
		return
	}
	if a.Key == "" && a.Value.Any() == nil {
		return
	}
	sb.WriteByte(' ')
	sb.WriteString(prefix)
	sb.WriteString(a.Key)
	sb.WriteByte('=')
	sb.WriteString(a.Value.String())
}

// toLevel maps slog levels onto basin levels. Levels four or more above
// slog.LevelError map to critical, levels below slog.LevelDebug to trace.
func toLevel(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError+4:
		return core.LevelCritical
	case level >= slog.LevelError:
		return core.LevelError
	case level >= slog.LevelWarn:
		return core.LevelWarn
	case level >= slog.LevelInfo:
		return core.LevelInfo
	case level >= slog.LevelDebug:
		return core.LevelDebug
	default:
		return core.LevelTrace
	}
}
