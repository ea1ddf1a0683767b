//go:build !windows

package sink

const eol = "\n"
