// Package dispatch runs event handlers for the event bus.
//
// Execute runs one handler in the caller's goroutine and recovers from
// panics, so a misbehaving listener cannot take the editor down. Queue
// runs handlers later, one at a time, in the order they were enqueued.
// The bus uses it for lazy listeners: they observe an event only after
// the call that published it has returned.
//
// # Usage
//
//	q := dispatch.NewQueue(dispatch.WithQueueSize(64))
//	_ = q.Start()
//	defer q.Stop(context.Background())
//
//	_ = q.Enqueue(ctx, event, handler)
//	_ = q.Flush(ctx) // wait until everything enqueued so far has run
//
// # Result Handling
//
// The Result type captures the outcome of a handler: the error it
// returned, whether it panicked and how long it took.
package dispatch
