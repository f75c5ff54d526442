package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"freight-core/internal/domain/event"
	"freight-core/internal/pkg/errs"
	"freight-core/internal/usecase/shared"
)

// Bus fans an event out to every subscribed handler.
type Bus struct {
	mu       sync.RWMutex
	handlers []shared.EventHandler
	logger   *slog.Logger
}

func NewBus(logger *slog.Logger, handlers ...shared.EventHandler) *Bus {
	return &Bus{handlers: handlers, logger: logger}
}

func (b *Bus) Subscribe(h shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Dispatch runs every handler even when an earlier one fails, so a single
// broken consumer does not starve the others. The event counts as delivered
// only when all handlers succeed.
func (b *Bus) Dispatch(ctx context.Context, e event.Event) error {
	b.mu.RLock()
	handlers := append([]shared.EventHandler(nil), b.handlers...)
	b.mu.RUnlock()

	var failures []error
	for _, h := range handlers {
		if err := h.Handle(ctx, e); err != nil {
			b.logger.Warn("event handler failed",
				"handler", h.Name(),
				"event_id", e.ID,
				"event_type", e.Type,
				"error", err.Error())
			failures = append(failures, errs.Wrapf(err, "handler %s", h.Name()))
		}
	}
	return errors.Join(failures...)
}
