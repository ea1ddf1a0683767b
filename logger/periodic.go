package logger

import (
	"errors"
	"sync"
	"time"
)

// PeriodicWorker runs a callback at a fixed interval on its own goroutine
// until Stop is called or the callback returns false.
type PeriodicWorker struct {
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewPeriodicWorker starts a worker invoking callback every interval.
func NewPeriodicWorker(callback func() bool, interval time.Duration) (*PeriodicWorker, error) {
	if callback == nil {
		return nil, errors.New("periodic worker: nil callback")
	}
	if interval <= 0 {
		return nil, errors.New("periodic worker: interval must be positive")
	}
	w := &PeriodicWorker{stop: make(chan struct{})}
	w.wg.Add(1)
	go w.loop(callback, interval)
	return w, nil
}

func (w *PeriodicWorker) loop(callback func() bool, interval time.Duration) {
	defer w.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			if !callback() {
				return
			}
		}
	}
}

// Stop terminates the worker and waits for a callback in progress to
// finish. Stop is idempotent.
func (w *PeriodicWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
}

// FlushEvery starts a worker flushing the logger at the given interval.
// Flush errors go to the logger's error handler. Stop the worker before
// closing the logger.
func (l *Logger) FlushEvery(interval time.Duration) (*PeriodicWorker, error) {
	return NewPeriodicWorker(func() bool {
		l.report(l.Flush())
		return true
	}, interval)
}

// StartPeriodicFlush is FlushEvery as a package function.
func StartPeriodicFlush(l *Logger, interval time.Duration) (*PeriodicWorker, error) {
	return l.FlushEvery(interval)
}
