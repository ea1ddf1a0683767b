// Package slogbridge connects the standard library's log/slog front end
// to basin loggers, so code written against slog can emit through basin
// sinks without changes.
package slogbridge
