package handler

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/ventoux/partita/common"
	"github.com/ventoux/partita/message"
)

// DefaultQueueCapacity is the per-worker queue capacity used by
// Parallel unless WithQueueCapacity says otherwise.
const DefaultQueueCapacity = 128

// ErrPoolClosed is returned by Pool.Handle once Close has been
// called.
var ErrPoolClosed = errors.New("pool is closed")

// PoolOption configures a Pool.
type PoolOption func(*poolOptions)

type poolOptions struct {
	capacity int
	reporter Reporter
	logger   common.StdLogger
}

// WithQueueCapacity sets the capacity of each worker queue.
func WithQueueCapacity(n int) PoolOption {
	return func(o *poolOptions) { o.capacity = n }
}

// WithReporter makes the pool report its events to r.
func WithReporter(r Reporter) PoolOption {
	return func(o *poolOptions) { o.reporter = r }
}

// WithLogger sets the logger the workers use to report handler
// failures.
func WithLogger(l common.StdLogger) PoolOption {
	return func(o *poolOptions) { o.logger = l }
}

// A Pool is a handler that spreads records over a fixed set of worker
// goroutines while preserving the relative order of records sharing a
// partition. It must be closed after use.
type Pool[K, V any] struct {
	h        Handler[K, V]
	topics   []string
	reporter Reporter
	logger   common.StdLogger

	queues []chan task[K, V]
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

type task[K, V any] struct {
	ctx context.Context
	rec *message.Record[K, V]
}

// Parallel returns a pool of n workers all running h. Records are
// assigned to workers by partition (partition mod n), so records of
// the same partition are always handled by the same worker, in
// submission order. Records of different partitions may be handled
// concurrently, in any order.
//
// Each worker owns a bounded queue, sized by WithQueueCapacity. The
// workers are running by the time Parallel returns.
func Parallel[K, V any](h Handler[K, V], n int, opts ...PoolOption) (*Pool[K, V], error) {
	if n < 1 {
		return nil, errors.Errorf("pool needs at least one worker, got %d", n)
	}

	o := poolOptions{
		capacity: DefaultQueueCapacity,
		reporter: nopReporter{},
		logger:   common.Discard,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity < 1 {
		return nil, errors.Errorf("worker queues need room for at least one record, got %d", o.capacity)
	}

	p := &Pool[K, V]{
		h:        h,
		topics:   h.Topics(),
		reporter: o.reporter,
		logger:   o.logger,
		queues:   make([]chan task[K, V], n),
	}
	for i := range p.queues {
		p.queues[i] = make(chan task[K, V], o.capacity)
		p.wg.Add(1)
		go p.work(i, p.queues[i])
	}
	return p, nil
}

// Topics returns the topics of the wrapped handler.
func (p *Pool[K, V]) Topics() []string {
	return copyTopics(p.topics)
}

// Handle enqueues rec for the worker owning its partition and returns
// without waiting for the record to be processed: a nil error means
// accepted, not handled. When the worker queue is full, Handle blocks
// until there is room or ctx is done. After Close it returns
// ErrPoolClosed.
//
// Failures of the wrapped handler never surface here. Workers log and
// report them and move on; wrap h with the retry package when
// failures must not be dropped.
func (p *Pool[K, V]) Handle(ctx context.Context, rec *message.Record[K, V]) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	p.reporter.Report(SubmittingRecord{Topic: rec.Topic, Partition: rec.Partition})

	q := p.queues[int(uint32(rec.Partition)%uint32(len(p.queues)))]
	select {
	case q <- task[K, V]{ctx: ctx, rec: rec}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts the pool down. It stops accepting new records, lets the
// workers drain everything that was already accepted and returns once
// all of them have exited. Closing an already closed pool is a no-op.
func (p *Pool[K, V]) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	for i, q := range p.queues {
		p.reporter.Report(StoppingWorker{Worker: i})
		close(q)
	}
	p.wg.Wait()
	return nil
}

func (p *Pool[K, V]) work(i int, q <-chan task[K, V]) {
	defer p.wg.Done()

	p.reporter.Report(StartingWorker{Worker: i})
	for t := range q {
		p.reporter.Report(HandlingRecord{Worker: i, Topic: t.rec.Topic, Partition: t.rec.Partition})
		if err := p.h.Handle(t.ctx, t.rec); err != nil {
			p.logger.Printf("worker %d: record handling failed. topic=%q partition=%d offset=%d: %v", i, t.rec.Topic, t.rec.Partition, t.rec.Offset, err)
		}
	}
}
