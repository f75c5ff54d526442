package components

import (
	"context"
	"log/slog"

	"freight-core/internal/infra/eventbus"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/pkg/config"
	"freight-core/internal/usecase/consumers"
	"freight-core/internal/usecase/shared"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		consumers.NewAnalytics,
		consumers.NewNotification,
		func(logger *slog.Logger, analytics *consumers.Analytics, notification *consumers.Notification) *eventbus.Bus {
			return eventbus.NewBus(logger, analytics, notification)
		},
		func(uow shared.UnitOfWork, bus *eventbus.Bus, clk clock.Clock, cfg config.Config, logger *slog.Logger) *eventbus.Relay {
			return eventbus.NewRelay(uow, bus, clk, cfg.Outbox, logger)
		},
	),
	fx.Invoke(startRelay),
)

func startRelay(lc fx.Lifecycle, relay *eventbus.Relay) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				relay.Start(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
