package consumers

import (
	"context"
	"log/slog"

	"freight-core/internal/domain/event"
	"freight-core/internal/domain/utilization"
	"freight-core/internal/infra"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/usecase/shared"
)

const AnalyticsConsumerName = "analytics"

// Analytics feeds completed trips into the route utilization records.
type Analytics struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewAnalytics(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) *Analytics {
	return &Analytics{uow: uow, clock: clk, logger: logger}
}

func (a *Analytics) Name() string { return AnalyticsConsumerName }

func (a *Analytics) Handle(ctx context.Context, e event.Event) error {
	completed, ok := asBookingCompleted(e.Payload)
	if !ok {
		return nil
	}

	trip := utilization.CompletedTrip{
		OriginCity:      completed.OriginCity,
		DestinationCity: completed.DestinationCity,
		TripKm:          completed.TripKm,
		CompletedAt:     completed.CompletedAt,
	}
	if trip.CompletedAt.IsZero() {
		trip.CompletedAt = e.OccurredAt
	}

	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := a.clock.Now()
		fresh, err := tx.Inbox().MarkProcessed(ctx, AnalyticsConsumerName, e.ID, now)
		if err != nil {
			return err
		}
		if !fresh {
			a.logger.Debug("skipping already processed event", "consumer", AnalyticsConsumerName, "event_id", e.ID)
			return nil
		}

		period := utilization.MonthOf(trip.CompletedAt)
		var forward, reverse *utilization.Route
		if !trip.IntraCity() {
			if reverse, err = findRoute(ctx, tx, trip.DestinationCity, trip.OriginCity, period); err != nil {
				return err
			}
		}
		if reverse == nil {
			if forward, err = findRoute(ctx, tx, trip.OriginCity, trip.DestinationCity, period); err != nil {
				return err
			}
		}

		route, updated, err := utilization.Track(trip, forward, reverse, now)
		if err != nil {
			return err
		}
		if err := tx.Routes().Save(ctx, route); err != nil {
			return err
		}
		return tx.Outbox().Append(ctx, updated)
	})
}

func findRoute(ctx context.Context, tx shared.Tx, origin, destination string, period utilization.Period) (*utilization.Route, error) {
	r, err := tx.Routes().FindForUpdate(ctx, origin, destination, period.Start)
	if infra.IsKind(err, infra.KindNotFound) {
		return nil, nil
	}
	return r, err
}

func asBookingCompleted(p event.Payload) (*event.BookingCompleted, bool) {
	switch v := p.(type) {
	case *event.BookingCompleted:
		return v, true
	case event.BookingCompleted:
		return &v, true
	default:
		return nil, false
	}
}
