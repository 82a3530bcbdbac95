package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
)

// DefaultQueueSize is the default capacity of a Queue.
const DefaultQueueSize = 256

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithQueueSize sets the task buffer capacity.
func WithQueueSize(size int) QueueOption {
	return func(q *Queue) {
		if size > 0 {
			q.size = size
		}
	}
}

// WithPanicHandler sets the handler called when a queued handler panics.
func WithPanicHandler(h PanicHandler) QueueOption {
	return func(q *Queue) {
		q.onPanic = h
	}
}

// task is one unit of queued work. A task without a handler is a flush
// barrier and only closes done.
type task struct {
	ctx     context.Context
	event   any
	handler Handler
	done    chan struct{}
}

// QueueStats holds queue counters.
type QueueStats struct {
	Enqueued uint64
	Executed uint64
	Failed   uint64
	Panics   uint64
	Dropped  uint64
}

// Queue runs handlers on a single worker goroutine in enqueue order.
type Queue struct {
	size    int
	onPanic PanicHandler

	mu      sync.RWMutex
	tasks   chan task
	running bool
	done    chan struct{}

	enqueued atomic.Uint64
	executed atomic.Uint64
	failed   atomic.Uint64
	panics   atomic.Uint64
	dropped  atomic.Uint64
}

// NewQueue creates a stopped queue.
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{size: DefaultQueueSize}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Start launches the worker.
func (q *Queue) Start() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running {
		return ErrAlreadyRunning
	}
	q.tasks = make(chan task, q.size)
	q.done = make(chan struct{})
	q.running = true

	go q.work(q.tasks, q.done)
	return nil
}

// Stop stops accepting tasks and waits for the worker to drain what was
// already queued, or for ctx to be done.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return ErrNotRunning
	}
	q.running = false
	close(q.tasks)
	done := q.done
	q.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the worker is running.
func (q *Queue) IsRunning() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.running
}

// Enqueue adds a handler call to the queue. It never blocks: a full
// queue returns ErrQueueFull.
func (q *Queue) Enqueue(ctx context.Context, event any, handler Handler) error {
	return q.push(task{ctx: ctx, event: event, handler: handler})
}

// Flush blocks until every task enqueued before the call has run.
func (q *Queue) Flush(ctx context.Context) error {
	done := make(chan struct{})
	if err := q.push(task{ctx: ctx, done: done}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.tasks == nil {
		return 0
	}
	return len(q.tasks)
}

// Stats returns a snapshot of the queue counters.
func (q *Queue) Stats() QueueStats {
	return QueueStats{
		Enqueued: q.enqueued.Load(),
		Executed: q.executed.Load(),
		Failed:   q.failed.Load(),
		Panics:   q.panics.Load(),
		Dropped:  q.dropped.Load(),
	}
}

func (q *Queue) push(t task) error {
	// The read lock keeps Stop from closing the channel mid-send.
	q.mu.RLock()
	defer q.mu.RUnlock()

	if !q.running {
		return ErrNotRunning
	}
	select {
	case q.tasks <- t:
		if t.handler != nil {
			q.enqueued.Add(1)
		}
		return nil
	default:
		q.dropped.Add(1)
		return ErrQueueFull
	}
}

func (q *Queue) work(tasks <-chan task, done chan<- struct{}) {
	defer close(done)
	for t := range tasks {
		if t.handler == nil {
			close(t.done)
			continue
		}
		r := Execute(t.ctx, t.event, t.handler, q.onPanic)
		q.executed.Add(1)
		switch {
		case r.Panicked:
			q.panics.Add(1)
		case r.Error != nil:
			q.failed.Add(1)
		}
	}
}
