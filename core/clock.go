package core

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// coarseResolution is how often the coarse clock refreshes its cached time.
const coarseResolution = 500 * time.Microsecond

var (
	coarseOnce sync.Once
	coarseTime atomic.Pointer[time.Time]
)

// StartCoarseClock starts the background goroutine that refreshes the
// coarse clock. The goroutine runs for the remaining life of the process;
// calling StartCoarseClock again is a no-op.
//
// Loggers built with the coarse clock stamp records from this cache instead
// of calling time.Now on every record, trading up to coarseResolution of
// timestamp accuracy for a cheaper hot path.
func StartCoarseClock() {
	coarseOnce.Do(func() {
		now := time.Now()
		coarseTime.Store(&now)
		go coarseLoop()
	})
}

func coarseLoop() {
	ticker := time.NewTicker(coarseResolution)
	for t := range ticker.C {
		coarseTime.Store(&t)
	}
}

// CoarseNow returns the cached wall-clock time. It falls back to time.Now
// when the coarse clock has not been started.
func CoarseNow() time.Time {
	if p := coarseTime.Load(); p != nil {
		return *p
	}
	return time.Now()
}
