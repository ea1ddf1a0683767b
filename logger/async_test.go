package logger

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-basin/basin/core"
	"github.com/go-basin/basin/formatter"
	"github.com/go-basin/basin/sink"
)

// gateSink blocks the dispatch worker inside its first Log call until the
// test releases it, so tests can fill the queue deterministically.
type gateSink struct {
	*sink.CountSink
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGateSink() *gateSink {
	g := &gateSink{
		CountSink: sink.NewCountSink(),
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	g.SetFormatter(formatter.MustPatternFormatter("%v"))
	return g
}

func (g *gateSink) Log(r *core.Record) error {
	g.once.Do(func() {
		g.entered <- struct{}{}
		<-g.release
	})
	return g.CountSink.Log(r)
}

// stall logs one record and waits until the worker is wedged inside the
// sink with an empty queue.
func (g *gateSink) stall(l *Logger) {
	l.Info("m0")
	<-g.entered
}

type slowSink struct {
	*sink.CountSink
	delay time.Duration
}

func (s *slowSink) Log(r *core.Record) error {
	time.Sleep(s.delay)
	return s.CountSink.Log(r)
}

func TestAsyncDeliversInOrder(t *testing.T) {
	s := payloadSink()
	l := NewBuilder().WithSink(s).WithAsync(AsyncConfig{}).MustBuild()
	defer l.Close()

	want := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		msg := fmt.Sprintf("m%d", i)
		want = append(want, msg)
		l.Info(msg)
	}
	require.NoError(t, l.Flush())
	assert.Equal(t, want, s.Lines(), "one worker keeps enqueue order")
}

func TestAsyncDropOldest(t *testing.T) {
	g := newGateSink()
	l := NewBuilder().WithSink(g).
		WithAsync(AsyncConfig{QueueCapacity: 4, Policy: DropOldest}).
		MustBuild()
	defer l.Close()

	g.stall(l)
	for i := 1; i <= 4; i++ {
		l.Infof("m%d", i)
	}
	l.Info("m5") // full queue, m1 is evicted
	close(g.release)

	require.NoError(t, l.Flush())
	assert.Equal(t, []string{"m0", "m2", "m3", "m4", "m5"}, g.Lines())

	stats := l.dispatcher.Stats()
	assert.Equal(t, uint64(1), stats.Dropped)
	assert.Equal(t, uint64(5), stats.Written)
}

func TestAsyncDropIncoming(t *testing.T) {
	g := newGateSink()
	l := NewBuilder().WithSink(g).
		WithAsync(AsyncConfig{QueueCapacity: 2, Policy: DropIncoming}).
		MustBuild()
	defer l.Close()

	g.stall(l)
	l.Info("m1")
	l.Info("m2")
	l.Info("m3") // full queue, discarded
	close(g.release)

	require.NoError(t, l.Flush())
	assert.Equal(t, []string{"m0", "m1", "m2"}, g.Lines())
	assert.Equal(t, uint64(1), l.dispatcher.Stats().Dropped)
}

func TestAsyncReject(t *testing.T) {
	g := newGateSink()
	l := NewBuilder().WithSink(g).
		WithAsync(AsyncConfig{QueueCapacity: 1, Policy: Reject}).
		MustBuild()
	defer l.Close()

	g.stall(l)
	require.NoError(t, l.Log(core.LevelInfo, "m1"))

	err := l.Log(core.LevelInfo, "m2")
	require.ErrorIs(t, err, core.ErrQueueFull)
	var overflow *core.OverflowError
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, 1, overflow.Capacity)

	close(g.release)
	require.NoError(t, l.Flush())
	assert.Equal(t, []string{"m0", "m1"}, g.Lines())
	assert.Equal(t, uint64(1), l.dispatcher.Stats().Rejected)
}

func TestAsyncBlockWaitTimesOut(t *testing.T) {
	const wait = 30 * time.Millisecond
	g := newGateSink()
	l := NewBuilder().WithSink(g).
		WithAsync(AsyncConfig{QueueCapacity: 1, Policy: Block, BlockWait: wait}).
		MustBuild()
	defer l.Close()

	g.stall(l)
	require.NoError(t, l.Log(core.LevelInfo, "m1"))

	start := time.Now()
	err := l.Log(core.LevelInfo, "m2")
	require.ErrorIs(t, err, core.ErrQueueFull)
	assert.GreaterOrEqual(t, time.Since(start), wait)
	assert.GreaterOrEqual(t, l.dispatcher.Stats().Blocked, uint64(1))

	close(g.release)
	require.NoError(t, l.Flush())
}

func TestAsyncFlushWaitsForQueue(t *testing.T) {
	s := &slowSink{CountSink: sink.NewCountSink(), delay: time.Millisecond}
	s.SetFormatter(formatter.MustPatternFormatter("%v"))
	l := NewBuilder().WithSink(s).WithAsync(AsyncConfig{}).MustBuild()
	defer l.Close()

	for i := 0; i < 50; i++ {
		l.Infof("m%d", i)
	}
	require.NoError(t, l.Flush())
	assert.Equal(t, 50, s.Count(), "Flush must not return before queued records are written")
	assert.Equal(t, 1, s.FlushCount())
}

func TestAsyncCloseDrainsQueue(t *testing.T) {
	s := &slowSink{CountSink: sink.NewCountSink(), delay: time.Millisecond}
	s.SetFormatter(formatter.MustPatternFormatter("%v"))
	l := NewBuilder().WithSink(s).WithAsync(AsyncConfig{}).MustBuild()

	for i := 0; i < 20; i++ {
		l.Infof("m%d", i)
	}
	require.NoError(t, l.Close())
	assert.Equal(t, 20, s.Count())
}

func TestAsyncLogAfterCloseFallsBackToSync(t *testing.T) {
	s := payloadSink()
	l := NewBuilder().WithSink(s).WithAsync(AsyncConfig{}).MustBuild()
	require.NoError(t, l.Close())

	l.Info("straggler")
	assert.Contains(t, s.Lines(), "straggler")
}

func TestAsyncSharedDispatcher(t *testing.T) {
	d, err := NewAsyncDispatcher(AsyncConfig{})
	require.NoError(t, err)
	defer d.Close()

	sa, sb := payloadSink(), payloadSink()
	la := NewBuilder().WithName("a").WithSink(sa).WithDispatcher(d).MustBuild()
	lb := NewBuilder().WithName("b").WithSink(sb).WithDispatcher(d).MustBuild()

	la.Info("from a")
	require.NoError(t, la.Close(), "closing a logger must not close a shared dispatcher")

	lb.Info("from b")
	require.NoError(t, lb.Flush())
	assert.Equal(t, []string{"from a"}, sa.Lines())
	assert.Equal(t, []string{"from b"}, sb.Lines())
}

func TestAsyncDispatcherCloseIdempotent(t *testing.T) {
	d, err := NewAsyncDispatcher(AsyncConfig{})
	require.NoError(t, err)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
}

func TestAsyncConfigValidation(t *testing.T) {
	for name, cfg := range map[string]AsyncConfig{
		"negative capacity": {QueueCapacity: -1},
		"unknown policy":    {Policy: OverflowPolicy(7)},
		"negative wait":     {BlockWait: -time.Second},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewAsyncDispatcher(cfg)
			assert.Error(t, err)

			_, err = NewBuilder().WithAsync(cfg).Build()
			assert.Error(t, err, "Build must surface dispatcher config errors")
		})
	}
}

func TestOverflowPolicyString(t *testing.T) {
	assert.Equal(t, "Block", Block.String())
	assert.Equal(t, "DropOldest", DropOldest.String())
	assert.Equal(t, "DropIncoming", DropIncoming.String())
	assert.Equal(t, "Reject", Reject.String())
	assert.Equal(t, "Unknown", OverflowPolicy(42).String())
}
