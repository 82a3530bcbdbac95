package dispatch

import (
	"context"
	"runtime/debug"
	"time"
)

// Execute runs handler with event and returns the result. It recovers
// from panics and reports them to onPanic, which may be nil.
func Execute(ctx context.Context, event any, handler Handler, onPanic PanicHandler) (result Result) {
	select {
	case <-ctx.Done():
		return Result{Error: ctx.Err(), Skipped: true}
	default:
	}

	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)

		if r := recover(); r != nil {
			stack := debug.Stack()
			result.Panicked = true
			result.PanicValue = r

			if onPanic != nil {
				func() {
					// A failing panic handler must not crash the caller.
					defer func() { _ = recover() }()
					onPanic(event, r, stack)
				}()
			}
		}
	}()

	result.Error = handler.Handle(ctx, event)
	return result
}
