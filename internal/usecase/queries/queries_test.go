//go:build unit

package queries_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/sharedload"
	"freight-core/internal/domain/utilization"
	"freight-core/internal/infra/memory"
	"freight-core/internal/usecase/queries"
	"freight-core/internal/usecase/shared"
	"freight-core/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *memory.Store {
	return memory.NewStore(slog.New(slog.DiscardHandler))
}

func seed(t *testing.T, store *memory.Store, fn func(ctx context.Context, tx shared.Tx) error) {
	t.Helper()
	require.NoError(t, store.Within(context.Background(), fn))
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)
	_, err = b.ApplyDiscount(booking.MoneyFromAmount(50), builder.FixedNow)
	require.NoError(t, err)
	seed(t, store, func(ctx context.Context, tx shared.Tx) error { return tx.Bookings().Create(ctx, b) })

	q := queries.NewBookingQueries(store)

	t.Run("success: view mirrors the aggregate", func(t *testing.T) {
		view, err := q.GetBooking(ctx, b.ID())
		require.NoError(t, err)

		assert.Equal(t, b.Number(), view.Number)
		assert.Equal(t, "pending", view.Status)
		assert.Equal(t, "one_way", view.Type)
		assert.Equal(t, "Riyadh", view.Origin.City)
		assert.Equal(t, builder.JeddahLat, view.Destination.Lat)
		assert.Equal(t, 500.0, view.TotalFare)
		require.NotNil(t, view.Discount)
		assert.Equal(t, 50.0, *view.Discount)
		assert.Equal(t, 450.0, view.FinalFare)
		assert.Equal(t, 1, view.Version)
		assert.Nil(t, view.DriverID)
		assert.Nil(t, view.AssignedAt)
	})

	t.Run("error: unknown booking", func(t *testing.T) {
		_, err := q.GetBooking(ctx, uuid.New())
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestGetPool(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	sl := builder.NewSharedLoadBuilder()
	pool, err := sl.BuildPool(builder.FixedNow)
	require.NoError(t, err)
	load, err := sharedload.NewLoad(2500, nil)
	require.NoError(t, err)
	memberID := uuid.New()
	_, err = pool.Add(memberID, load, builder.FixedNow)
	require.NoError(t, err)
	seed(t, store, func(ctx context.Context, tx shared.Tx) error { return tx.Pools().Create(ctx, pool) })

	q := queries.NewPoolQueries(store)

	view, err := q.GetPool(ctx, pool.ID())
	require.NoError(t, err)
	assert.Equal(t, "Riyadh", view.OriginCity)
	assert.Equal(t, sharedload.DateOf(sl.Booking.PickupAt), view.PickupDate)
	assert.Equal(t, 7500.0, view.AvailableKg)
	assert.Equal(t, 25.0, view.UtilizationPercent)
	assert.Equal(t, "open", view.Status)
	assert.Equal(t, []uuid.UUID{memberID}, view.BookingIDs)

	_, err = q.GetPool(ctx, uuid.New())
	assert.ErrorIs(t, err, queries.ErrPoolNotFound)
}

func routeRecord(origin, destination string, period utilization.Period, outbound, returns int) *utilization.Route {
	return utilization.Reconstruct(utilization.Snapshot{
		ID:              uuid.New(),
		OriginCity:      origin,
		DestinationCity: destination,
		Period:          period,
		OutboundCount:   outbound,
		ReturnCount:     returns,
		UpdatedAt:       builder.FixedNow,
	})
}

func TestAnalyticsQueries(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	march := utilization.MonthOf(builder.FixedNow)
	february := utilization.MonthOf(builder.FixedNow.AddDate(0, -1, 0))

	seed(t, store, func(ctx context.Context, tx shared.Tx) error {
		for _, r := range []*utilization.Route{
			routeRecord("Riyadh", "Jeddah", march, 10, 7),  // 30%
			routeRecord("Riyadh", "Dammam", march, 20, 2),  // 90%
			routeRecord("Jeddah", "Medina", march, 4, 6),   // 50%
			routeRecord("Dammam", "Jubail", march, 0, 3),   // no outbound
			routeRecord("Tabuk", "Riyadh", february, 9, 0), // other month
		} {
			if err := tx.Routes().Save(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})

	q := queries.NewAnalyticsQueries(store, 0)

	t.Run("heatmap lists the month busiest first", func(t *testing.T) {
		views, err := q.GetRouteHeatmap(ctx, builder.FixedNow.Add(10*24*time.Hour))
		require.NoError(t, err)
		require.Len(t, views, 4)
		assert.Equal(t, "Dammam", views[0].DestinationCity)
		assert.Equal(t, 22, views[0].OutboundCount+views[0].ReturnCount)
		assert.Equal(t, "Jubail", views[3].DestinationCity)
		for _, v := range views {
			assert.Equal(t, march.Start, v.PeriodStart)
		}
	})

	t.Run("imbalanced routes use the default threshold", func(t *testing.T) {
		views, err := q.GetImbalancedRoutes(ctx, 0, builder.FixedNow)
		require.NoError(t, err)
		require.Len(t, views, 2)

		assert.Equal(t, "Dammam", views[0].DestinationCity)
		assert.Equal(t, 90.0, views[0].ImbalancePercent)
		assert.Equal(t, "OUTBOUND_HEAVY", views[0].FlowDirection)
		assert.Equal(t, "promote opportunities from Dammam to Riyadh", views[0].RecommendedAction)

		assert.Equal(t, "Medina", views[1].DestinationCity)
		assert.Equal(t, "RETURN_HEAVY", views[1].FlowDirection)
	})

	t.Run("explicit threshold", func(t *testing.T) {
		views, err := q.GetImbalancedRoutes(ctx, 25, builder.FixedNow)
		require.NoError(t, err)
		assert.Len(t, views, 3)

		views, err = q.GetImbalancedRoutes(ctx, 95, builder.FixedNow)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("empty month", func(t *testing.T) {
		views, err := q.GetRouteHeatmap(ctx, builder.FixedNow.AddDate(1, 0, 0))
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}
