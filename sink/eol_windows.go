//go:build windows

package sink

const eol = "\r\n"
