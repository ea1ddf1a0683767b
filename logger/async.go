package logger

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/sink"
)

// OverflowPolicy decides what happens to a record when the async queue is
// full.
type OverflowPolicy int

const (
	// Block waits for queue space, bounded by AsyncConfig.BlockWait when
	// that is non-zero. The default policy.
	Block OverflowPolicy = iota
	// DropOldest evicts the oldest queued record to make room.
	DropOldest
	// DropIncoming discards the new record.
	DropIncoming
	// Reject discards the new record and returns a *core.OverflowError to
	// the logging call site.
	Reject
)

// String returns the policy's name.
func (p OverflowPolicy) String() string {
	switch p {
	case Block:
		return "Block"
	case DropOldest:
		return "DropOldest"
	case DropIncoming:
		return "DropIncoming"
	case Reject:
		return "Reject"
	default:
		return "Unknown"
	}
}

// AsyncConfig configures an AsyncDispatcher.
type AsyncConfig struct {
	// QueueCapacity bounds the record queue. 0 selects the default of
	// 8192.
	QueueCapacity int `validate:"gte=0"`
	// Policy selects the overflow behavior. Defaults to Block.
	Policy OverflowPolicy `validate:"gte=0,lte=3"`
	// BlockWait bounds how long Block waits for space before giving up
	// with a *core.OverflowError. 0 waits indefinitely.
	BlockWait time.Duration `validate:"gte=0"`
}

const defaultQueueCapacity = 8192

func applyAsyncDefaults(cfg AsyncConfig) AsyncConfig {
	if cfg.QueueCapacity == 0 {
		cfg.QueueCapacity = defaultQueueCapacity
	}
	return cfg
}

// queued is one unit of dispatcher work: a record bound to the sink-list
// snapshot and logger it was produced under.
type queued struct {
	rec   *core.Record
	sinks []sink.Sink
	owner *Logger
}

// AsyncDispatcher moves record delivery off logging call sites onto one
// background worker. Enqueueing copies nothing and takes no locks: the
// record pointer, the owner, and the owner's current sink snapshot travel
// through a bounded channel.
//
// The single worker preserves per-logger FIFO order at the sinks. A
// dispatcher may be shared by several loggers; records then interleave in
// global enqueue order.
type AsyncDispatcher struct {
	cfg     AsyncConfig
	queue   chan queued
	flushCh chan chan struct{}
	stop    chan struct{}
	wg      sync.WaitGroup
	closed  atomic.Bool
	stats   dispatcherStats
}

type dispatcherStats struct {
	enqueued atomic.Uint64
	written  atomic.Uint64
	dropped  atomic.Uint64
	blocked  atomic.Uint64
	rejected atomic.Uint64
}

// StatsSnapshot is a point-in-time copy of a dispatcher's counters.
type StatsSnapshot struct {
	// Enqueued counts records accepted into the queue.
	Enqueued uint64
	// Written counts records the worker delivered to sinks.
	Written uint64
	// Dropped counts records discarded by DropOldest or DropIncoming.
	Dropped uint64
	// Blocked counts enqueues that had to wait for space.
	Blocked uint64
	// Rejected counts records refused with an OverflowError.
	Rejected uint64
}

// NewAsyncDispatcher starts a dispatcher with one worker goroutine. Close
// it to drain the queue and join the worker.
func NewAsyncDispatcher(cfg AsyncConfig) (*AsyncDispatcher, error) {
	cfg = applyAsyncDefaults(cfg)
	if err := core.ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	d := &AsyncDispatcher{
		cfg:     cfg,
		queue:   make(chan queued, cfg.QueueCapacity),
		flushCh: make(chan chan struct{}),
		stop:    make(chan struct{}),
	}
	d.wg.Add(1)
	go d.worker()
	return d, nil
}

// Stats returns a snapshot of the dispatcher's counters.
func (d *AsyncDispatcher) Stats() StatsSnapshot {
	return StatsSnapshot{
		Enqueued: d.stats.enqueued.Load(),
		Written:  d.stats.written.Load(),
		Dropped:  d.stats.dropped.Load(),
		Blocked:  d.stats.blocked.Load(),
		Rejected: d.stats.rejected.Load(),
	}
}

// enqueue hands r to the worker, applying the overflow policy when the
// queue is full. After Close, records are delivered synchronously so
// nothing logged during teardown is lost.
func (d *AsyncDispatcher) enqueue(owner *Logger, r *core.Record) error {
	if d.closed.Load() {
		d.deliver(queued{rec: r, sinks: owner.snapshot(), owner: owner})
		return nil
	}

	q := queued{rec: r, sinks: owner.snapshot(), owner: owner}
	select {
	case d.queue <- q:
		d.stats.enqueued.Inc()
		return nil
	default:
	}

	switch d.cfg.Policy {
	case DropOldest:
		select {
		case old := <-d.queue:
			d.drop(old)
		default:
		}
		select {
		case d.queue <- q:
			d.stats.enqueued.Inc()
			return nil
		default:
			d.drop(q)
			return nil
		}

	case DropIncoming:
		d.drop(q)
		return nil

	case Reject:
		core.PutRecord(q.rec)
		d.stats.rejected.Inc()
		return &core.OverflowError{Capacity: d.cfg.QueueCapacity}

	default: // Block
		d.stats.blocked.Inc()
		if d.cfg.BlockWait <= 0 {
			select {
			case d.queue <- q:
				d.stats.enqueued.Inc()
				return nil
			case <-d.stop:
				d.deliver(q)
				return nil
			}
		}
		timer := time.NewTimer(d.cfg.BlockWait)
		defer timer.Stop()
		select {
		case d.queue <- q:
			d.stats.enqueued.Inc()
			return nil
		case <-timer.C:
			core.PutRecord(q.rec)
			d.stats.rejected.Inc()
			return &core.OverflowError{Capacity: d.cfg.QueueCapacity}
		case <-d.stop:
			d.deliver(q)
			return nil
		}
	}
}

// drain blocks until every record enqueued before the call has been
// delivered to its sinks. It returns immediately on a closed dispatcher,
// whose Close already emptied the queue.
func (d *AsyncDispatcher) drain() {
	if d.closed.Load() {
		return
	}
	ack := make(chan struct{})
	select {
	case d.flushCh <- ack:
	case <-d.stop:
		return
	}
	select {
	case <-ack:
	case <-d.stop:
	}
}

func (d *AsyncDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case q := <-d.queue:
			d.deliver(q)
			// Opportunistically empty the queue before the next select.
		batch:
			for {
				select {
				case q := <-d.queue:
					d.deliver(q)
				default:
					break batch
				}
			}
		case ack := <-d.flushCh:
			d.drainQueued()
			close(ack)
		case <-d.stop:
			d.drainQueued()
			return
		}
	}
}

func (d *AsyncDispatcher) drainQueued() {
	for {
		select {
		case q := <-d.queue:
			d.deliver(q)
		default:
			return
		}
	}
}

func (d *AsyncDispatcher) deliver(q queued) {
	q.owner.dispatch(q.rec, q.sinks)
	core.PutRecord(q.rec)
	d.stats.written.Inc()
}

func (d *AsyncDispatcher) drop(q queued) {
	core.PutRecord(q.rec)
	d.stats.dropped.Inc()
}

// Close drains the queue to empty, joins the worker, and marks the
// dispatcher closed. Close is idempotent. Records logged after Close fall
// back to synchronous delivery.
func (d *AsyncDispatcher) Close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(d.stop)
	d.wg.Wait()
	// Catch records that slipped into the buffer while the worker was
	// exiting.
	d.drainQueued()
	return nil
}
