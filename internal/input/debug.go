package input

import (
	"context"
	"log/slog"
)

// DebugFilter logs every key event at debug level.
type DebugFilter struct {
	Logger *slog.Logger
}

// Process implements Filter.
func (f DebugFilter) Process(ctx context.Context, ev *Event) error {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.DebugContext(ctx, "key event",
		"key", ev.Key.String(),
		"command", ev.Key.Command(),
		"platform", string(ev.Key.Platform))
	return nil
}
