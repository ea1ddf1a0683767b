package core

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

var goidBufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 64)
		return &buf
	},
}

// GoroutineID returns the runtime id of the calling goroutine, the value
// rendered by the %t pattern flag. The id is parsed from the first line of
// the goroutine's stack trace ("goroutine N [running]:"), the only form the
// runtime exposes it in.
func GoroutineID() uint64 {
	bp := goidBufPool.Get().(*[]byte)
	defer goidBufPool.Put(bp)

	buf := (*bp)[:runtime.Stack(*bp, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}
	id, err := strconv.ParseUint(string(buf), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
