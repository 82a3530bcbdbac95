// Package event provides the per-editor event bus.
//
// Every editor owns its own bus; nothing is shared between editors.
// Components publish typed events and other components subscribe to
// topic patterns.
//
// # Delivery
//
// Sync subscriptions run in the publisher's goroutine, in the order they
// subscribed, before Publish returns. Errors and panics of one handler do
// not stop the others; they are joined into the error Publish returns.
//
// Lazy subscriptions run on the bus worker after the publishing call has
// returned. They keep publish order and are used for notifications that
// must not run in the middle of an edit, such as selection changes.
//
//	bus := event.NewBus()
//	_ = bus.Start()
//	defer bus.Stop(context.Background())
//
//	sub, _ := bus.SubscribeFunc(events.TopicFormat, func(ctx context.Context, e any) error {
//	    f, _ := event.Payload[events.Format](e)
//	    log.Println("formatted", f.Tag)
//	    return nil
//	})
//	defer bus.Unsubscribe(sub)
//
// # Listener Limit
//
// The bus logs a warning when more than DefaultMaxListeners subscribe to
// the same topic pattern, which usually means a listener leak. Adding
// listeners is never refused. SetMaxListeners changes the threshold.
package event
