//go:build unit

package consumers_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"freight-core/internal/domain/event"
	"freight-core/internal/domain/utilization"
	"freight-core/internal/infra/memory"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/usecase/consumers"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newStore() *memory.Store {
	return memory.NewStore(slog.New(slog.DiscardHandler))
}

func completed(origin, destination string, at time.Time) event.Event {
	id := uuid.New()
	return event.New(event.AggregateBooking, id, at, &event.BookingCompleted{
		BookingID:       id,
		CustomerID:      uuid.New(),
		DriverID:        uuid.New(),
		TotalFare:       500,
		OriginCity:      origin,
		DestinationCity: destination,
		TripKm:          845.1,
		CompletedAt:     at,
	})
}

func routes(t *testing.T, store *memory.Store, at time.Time) []*utilization.Route {
	t.Helper()
	var out []*utilization.Route
	require.NoError(t, store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		out, err = tx.Routes().ListByPeriod(ctx, utilization.MonthOf(at).Start)
		return err
	}))
	return out
}

// =============================================================================
// Analytics Consumer Tests
// =============================================================================

func TestAnalyticsConsumer(t *testing.T) {
	ctx := context.Background()

	t.Run("success: first trip opens an outbound record", func(t *testing.T) {
		store := newStore()
		c := consumers.NewAnalytics(store, clock.NewMockClock(now), slog.New(slog.DiscardHandler))

		require.NoError(t, c.Handle(ctx, completed("Riyadh", "Jeddah", now)))

		got := routes(t, store, now)
		require.Len(t, got, 1)
		assert.Equal(t, "Riyadh", got[0].OriginCity())
		assert.Equal(t, 1, got[0].OutboundCount())
		assert.Equal(t, 1, store.PendingEvents(), "utilization update is queued")
	})

	t.Run("success: trip back on the reverse pair counts as a return", func(t *testing.T) {
		store := newStore()
		c := consumers.NewAnalytics(store, clock.NewMockClock(now), slog.New(slog.DiscardHandler))

		require.NoError(t, c.Handle(ctx, completed("Riyadh", "Jeddah", now)))
		require.NoError(t, c.Handle(ctx, completed("Riyadh", "Jeddah", now)))
		require.NoError(t, c.Handle(ctx, completed("jeddah", "riyadh", now.Add(time.Hour))))

		got := routes(t, store, now)
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].OutboundCount())
		assert.Equal(t, 1, got[0].ReturnCount())
		assert.Equal(t, 50.0, got[0].UtilizationPercent())
	})

	t.Run("success: trips within one city never count as returns", func(t *testing.T) {
		store := newStore()
		c := consumers.NewAnalytics(store, clock.NewMockClock(now), slog.New(slog.DiscardHandler))

		for i := range 4 {
			require.NoError(t, c.Handle(ctx, completed("Riyadh", "Riyadh", now.Add(time.Duration(i)*time.Hour))))
		}

		got := routes(t, store, now)
		require.Len(t, got, 1)
		assert.Equal(t, 4, got[0].OutboundCount())
		assert.Zero(t, got[0].ReturnCount())
		assert.Zero(t, got[0].UtilizationPercent())
	})

	t.Run("success: redelivered event is applied once", func(t *testing.T) {
		store := newStore()
		c := consumers.NewAnalytics(store, clock.NewMockClock(now), slog.New(slog.DiscardHandler))
		e := completed("Riyadh", "Dammam", now)

		require.NoError(t, c.Handle(ctx, e))
		require.NoError(t, c.Handle(ctx, e))

		got := routes(t, store, now)
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].OutboundCount())
		assert.Equal(t, 1, store.PendingEvents())
	})

	t.Run("success: value payloads are accepted too", func(t *testing.T) {
		store := newStore()
		c := consumers.NewAnalytics(store, clock.NewMockClock(now), slog.New(slog.DiscardHandler))
		e := completed("Riyadh", "Jeddah", now)
		e.Payload = *e.Payload.(*event.BookingCompleted)

		require.NoError(t, c.Handle(ctx, e))
		assert.Len(t, routes(t, store, now), 1)
	})

	t.Run("success: trips are bucketed by completion month", func(t *testing.T) {
		store := newStore()
		c := consumers.NewAnalytics(store, clock.NewMockClock(now), slog.New(slog.DiscardHandler))
		april := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

		require.NoError(t, c.Handle(ctx, completed("Riyadh", "Jeddah", now)))
		require.NoError(t, c.Handle(ctx, completed("Jeddah", "Riyadh", april)))

		assert.Len(t, routes(t, store, now), 1)
		aprilRoutes := routes(t, store, april)
		require.Len(t, aprilRoutes, 1)
		assert.Equal(t, "Jeddah", aprilRoutes[0].OriginCity())
		assert.Equal(t, 1, aprilRoutes[0].OutboundCount())
	})

	t.Run("other events are ignored", func(t *testing.T) {
		store := newStore()
		c := consumers.NewAnalytics(store, clock.NewMockClock(now), slog.New(slog.DiscardHandler))
		id := uuid.New()

		require.NoError(t, c.Handle(ctx, event.New(event.AggregateBooking, id, now, event.BookingAccepted{BookingID: id})))
		assert.Empty(t, routes(t, store, now))
		assert.Zero(t, store.PendingEvents())
	})
}

// =============================================================================
// Notification Consumer Tests
// =============================================================================

func TestNotificationConsumer(t *testing.T) {
	ctx := context.Background()
	assignedEvent := func() event.Event {
		id := uuid.New()
		return event.New(event.AggregateBooking, id, now, &event.BookingAssigned{
			BookingID: id, CustomerID: uuid.New(), VehicleID: uuid.New(), DriverID: uuid.New(),
		})
	}

	t.Run("success: one job per audience", func(t *testing.T) {
		store := newStore()
		c := consumers.NewNotification(store, clock.NewMockClock(now), slog.New(slog.DiscardHandler))
		e := assignedEvent()

		require.NoError(t, c.Handle(ctx, e))

		jobs := store.NotificationJobs()
		require.Len(t, jobs, 2)
		assert.Equal(t, "customer", jobs[0].Kind)
		assert.Equal(t, "driver", jobs[1].Kind)
		for _, j := range jobs {
			assert.Equal(t, string(event.TypeBookingAssigned), j.Topic)
			assert.Equal(t, now, j.RunAt)

			var body map[string]any
			require.NoError(t, json.Unmarshal(j.Payload, &body))
			assert.Equal(t, e.ID.String(), body["eventId"])
			assert.Equal(t, j.Kind, body["audience"])
			data, ok := body["data"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, e.AggregateID.String(), data["bookingId"])
		}
	})

	t.Run("success: redelivery does not queue duplicates", func(t *testing.T) {
		store := newStore()
		c := consumers.NewNotification(store, clock.NewMockClock(now), slog.New(slog.DiscardHandler))
		e := assignedEvent()

		require.NoError(t, c.Handle(ctx, e))
		require.NoError(t, c.Handle(ctx, e))
		assert.Len(t, store.NotificationJobs(), 2)
	})

	t.Run("success: consumers keep separate inboxes", func(t *testing.T) {
		store := newStore()
		clk := clock.NewMockClock(now)
		e := completed("Riyadh", "Jeddah", now)

		require.NoError(t, consumers.NewAnalytics(store, clk, slog.New(slog.DiscardHandler)).Handle(ctx, e))
		require.NoError(t, consumers.NewNotification(store, clk, slog.New(slog.DiscardHandler)).Handle(ctx, e))

		assert.Len(t, routes(t, store, now), 1)
		assert.Len(t, store.NotificationJobs(), 2)
	})

	t.Run("events nobody is told about are skipped", func(t *testing.T) {
		store := newStore()
		c := consumers.NewNotification(store, clock.NewMockClock(now), slog.New(slog.DiscardHandler))
		id := uuid.New()

		require.NoError(t, c.Handle(ctx, event.New(event.AggregateBooking, id, now, event.LoadingStarted{BookingID: id})))
		assert.Empty(t, store.NotificationJobs())
	})

	t.Run("operators hear about full pools", func(t *testing.T) {
		store := newStore()
		c := consumers.NewNotification(store, clock.NewMockClock(now), slog.New(slog.DiscardHandler))
		poolID := uuid.New()

		require.NoError(t, c.Handle(ctx, event.New(event.AggregatePool, poolID, now, event.SharedLoadPoolFull{PoolID: poolID})))
		jobs := store.NotificationJobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, "operator", jobs[0].Kind)
	})
}
