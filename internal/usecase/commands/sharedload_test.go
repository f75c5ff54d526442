//go:build unit

package commands_test

import (
	"context"
	"testing"

	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/event"
	"freight-core/internal/domain/sharedload"
	"freight-core/internal/pkg/errs"
	"freight-core/internal/usecase/commands"
	"freight-core/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSharedLoadBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success: first request opens a pool and pays its share", func(t *testing.T) {
		f := newFixture(t)
		req, err := builder.NewSharedLoadBuilder().WithWeight(2000).BuildCommand()
		require.NoError(t, err)

		res, err := f.sharedLoads().CreateSharedLoadBooking(ctx, req)
		require.NoError(t, err)

		assert.True(t, res.IsNewPool)
		assert.Equal(t, 20.0, res.UtilizationPercent)
		assert.Equal(t, 100.0, res.Fare) // 500 * 2000 / 10000

		b := f.booking(t, res.BookingID)
		assert.Equal(t, booking.TypeSharedLoad, b.Type())
		require.NotNil(t, b.SharedPoolID())
		assert.Equal(t, res.PoolID, *b.SharedPoolID())
		assert.Equal(t, []event.Type{event.TypeBookingCreated, event.TypeSharedLoadCapacityUpdated}, f.outboxTypes(t))
	})

	t.Run("success: matching requests share a pool until it is full", func(t *testing.T) {
		f := newFixture(t)
		sl := builder.NewSharedLoadBuilder()

		var results []*commands.CreateSharedLoadResult
		for _, kg := range []float64{4000, 5500, 2000} {
			req, err := sl.WithWeight(kg).BuildCommand()
			require.NoError(t, err)
			res, err := f.sharedLoads().CreateSharedLoadBooking(ctx, req)
			require.NoError(t, err)
			results = append(results, res)
		}

		assert.True(t, results[0].IsNewPool)
		assert.False(t, results[1].IsNewPool)
		assert.Equal(t, results[0].PoolID, results[1].PoolID)
		assert.Equal(t, 95.0, results[1].UtilizationPercent)

		// the first pool is full, so the third request starts another
		assert.True(t, results[2].IsNewPool)
		assert.NotEqual(t, results[0].PoolID, results[2].PoolID)

		full := f.pool(t, results[0].PoolID)
		assert.Equal(t, sharedload.StatusFull, full.Status())
		assert.ElementsMatch(t, []uuid.UUID{results[0].BookingID, results[1].BookingID}, full.MemberIDs())

		poolFull := 0
		for _, typ := range f.outboxTypes(t) {
			if typ == event.TypeSharedLoadPoolFull {
				poolFull++
			}
		}
		assert.Equal(t, 1, poolFull)
	})

	t.Run("success: other vehicle types get their own pool", func(t *testing.T) {
		f := newFixture(t)
		first, err := builder.NewSharedLoadBuilder().BuildCommand()
		require.NoError(t, err)
		second, err := builder.NewSharedLoadBuilder().BuildCommand()
		require.NoError(t, err)

		a, err := f.sharedLoads().CreateSharedLoadBooking(ctx, first)
		require.NoError(t, err)
		b, err := f.sharedLoads().CreateSharedLoadBooking(ctx, second)
		require.NoError(t, err)
		assert.NotEqual(t, a.PoolID, b.PoolID)
	})

	t.Run("error: load heavier than the vehicle", func(t *testing.T) {
		f := newFixture(t)
		req, err := builder.NewSharedLoadBuilder().WithWeight(12000).BuildCommand()
		require.NoError(t, err)

		_, err = f.sharedLoads().CreateSharedLoadBooking(ctx, req)
		assert.ErrorIs(t, err, sharedload.ErrExceedsCapacity)
		assert.Empty(t, f.outbox(t))
	})

	t.Run("error: vehicle capacity missing", func(t *testing.T) {
		f := newFixture(t)
		req, err := builder.NewSharedLoadBuilder().With(func(s *builder.SharedLoadBuilder) { s.VehicleCapacity = 0 }).BuildCommand()
		require.NoError(t, err)

		_, err = f.sharedLoads().CreateSharedLoadBooking(ctx, req)
		assert.ErrorIs(t, err, sharedload.ErrInvalidCapacity)
	})
}

func TestClosePool(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	req, err := builder.NewSharedLoadBuilder().BuildCommand()
	require.NoError(t, err)
	res, err := f.sharedLoads().CreateSharedLoadBooking(ctx, req)
	require.NoError(t, err)

	require.NoError(t, f.sharedLoads().ClosePool(ctx, res.PoolID))
	assert.Equal(t, sharedload.StatusClosed, f.pool(t, res.PoolID).Status())

	types := f.outboxTypes(t)
	assert.Equal(t, event.TypeSharedLoadPoolClosed, types[len(types)-1])

	t.Run("error: closing twice", func(t *testing.T) {
		assert.ErrorIs(t, f.sharedLoads().ClosePool(ctx, res.PoolID), sharedload.ErrPoolAlreadyClosed)
	})

	t.Run("error: unknown pool", func(t *testing.T) {
		assert.True(t, errs.Is(f.sharedLoads().ClosePool(ctx, uuid.New()), commands.ErrPoolNotFound))
	})

	t.Run("closed pools are not reused", func(t *testing.T) {
		again, err := builder.NewSharedLoadBuilder().With(func(s *builder.SharedLoadBuilder) {
			s.Booking.VehicleTypeID = req.VehicleTypeID
		}).BuildCommand()
		require.NoError(t, err)
		next, err := f.sharedLoads().CreateSharedLoadBooking(ctx, again)
		require.NoError(t, err)
		assert.True(t, next.IsNewPool)
	})
}
