//go:build unit

package sharedload_test

import (
	"testing"
	"time"

	"freight-core/internal/domain/event"
	"freight-core/internal/domain/sharedload"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now         = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	vehicleType = uuid.MustParse("6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f")
)

func newRoute(t *testing.T) sharedload.Route {
	t.Helper()
	r, err := sharedload.NewRoute("Riyadh", "Jeddah", now.Add(26*time.Hour), vehicleType)
	require.NoError(t, err)
	return r
}

func newPool(t *testing.T, capacity float64) *sharedload.Pool {
	t.Helper()
	p, err := sharedload.NewPool(newRoute(t), capacity, nil, now)
	require.NoError(t, err)
	return p
}

func load(t *testing.T, kg float64) sharedload.Load {
	t.Helper()
	l, err := sharedload.NewLoad(kg, nil)
	require.NoError(t, err)
	return l
}

func eventTypes(events []event.Event) []event.Type {
	types := make([]event.Type, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func TestRoute(t *testing.T) {
	t.Run("pickup is truncated to the calendar day", func(t *testing.T) {
		r := newRoute(t)
		assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), r.PickupDate)
	})

	t.Run("matches ignore case and time of day", func(t *testing.T) {
		other, err := sharedload.NewRoute(" riyadh ", "JEDDAH", now.Add(40*time.Hour), vehicleType)
		require.NoError(t, err)
		assert.True(t, newRoute(t).Matches(other))
	})

	t.Run("different vehicle type or date does not match", func(t *testing.T) {
		otherType, err := sharedload.NewRoute("Riyadh", "Jeddah", now.Add(26*time.Hour), uuid.New())
		require.NoError(t, err)
		otherDay, err := sharedload.NewRoute("Riyadh", "Jeddah", now.Add(50*time.Hour), vehicleType)
		require.NoError(t, err)
		assert.False(t, newRoute(t).Matches(otherType))
		assert.False(t, newRoute(t).Matches(otherDay))
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := sharedload.NewRoute("", "Jeddah", now, vehicleType)
		assert.ErrorIs(t, err, sharedload.ErrMissingRouteFields)
		_, err = sharedload.NewRoute("Riyadh", "Jeddah", now, uuid.Nil)
		assert.ErrorIs(t, err, sharedload.ErrMissingRouteFields)
	})
}

func TestNewLoadAndPoolValidation(t *testing.T) {
	_, err := sharedload.NewLoad(0, nil)
	assert.ErrorIs(t, err, sharedload.ErrInvalidLoad)
	negative := -1.0
	_, err = sharedload.NewLoad(10, &negative)
	assert.ErrorIs(t, err, sharedload.ErrInvalidLoad)

	_, err = sharedload.NewPool(newRoute(t), 0, nil, now)
	assert.ErrorIs(t, err, sharedload.ErrInvalidCapacity)
	zero := 0.0
	_, err = sharedload.NewPool(newRoute(t), 1000, &zero, now)
	assert.ErrorIs(t, err, sharedload.ErrInvalidCapacity)
}

func TestPoolAdd(t *testing.T) {
	t.Run("updates capacity and emits a capacity event", func(t *testing.T) {
		p := newPool(t, 10000)
		id := uuid.New()

		events, err := p.Add(id, load(t, 3000), now)
		require.NoError(t, err)

		assert.Equal(t, 3000.0, p.UsedWeight())
		assert.Equal(t, 7000.0, p.AvailableWeight())
		assert.Equal(t, 30.0, p.UtilizationPercent())
		assert.Equal(t, sharedload.StatusOpen, p.Status())
		assert.Equal(t, []uuid.UUID{id}, p.MemberIDs())
		require.Equal(t, []event.Type{event.TypeSharedLoadCapacityUpdated}, eventTypes(events))

		payload := events[0].Payload.(event.SharedLoadCapacityUpdated)
		assert.Equal(t, p.ID(), payload.PoolID)
		assert.Equal(t, 7000.0, payload.AvailableCapacity)
		assert.Equal(t, "open", payload.Status)
	})

	t.Run("rejects a duplicate member", func(t *testing.T) {
		p := newPool(t, 10000)
		id := uuid.New()
		_, err := p.Add(id, load(t, 100), now)
		require.NoError(t, err)
		_, err = p.Add(id, load(t, 100), now)
		assert.ErrorIs(t, err, sharedload.ErrBookingAlreadyIn)
	})

	t.Run("rejects a load larger than what is left", func(t *testing.T) {
		p := newPool(t, 10000)
		_, err := p.Add(uuid.New(), load(t, 8000), now)
		require.NoError(t, err)
		_, err = p.Add(uuid.New(), load(t, 2500), now)
		assert.ErrorIs(t, err, sharedload.ErrExceedsCapacity)
		assert.Equal(t, 8000.0, p.UsedWeight())
	})

	t.Run("volume is checked when both sides declare it", func(t *testing.T) {
		volume := 20.0
		p, err := sharedload.NewPool(newRoute(t), 10000, &volume, now)
		require.NoError(t, err)
		big := 25.0
		l, err := sharedload.NewLoad(100, &big)
		require.NoError(t, err)
		assert.False(t, p.Fits(l))
		assert.True(t, p.Fits(load(t, 100)))
	})
}

func TestPoolFullThreshold(t *testing.T) {
	cases := []struct {
		name   string
		loads  []float64
		status sharedload.Status
	}{
		{name: "exactly ten percent left stays open", loads: []float64{9000}, status: sharedload.StatusOpen},
		{name: "less than ten percent left is full", loads: []float64{9001}, status: sharedload.StatusFull},
		{name: "filled in steps", loads: []float64{5000, 4500}, status: sharedload.StatusFull},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newPool(t, 10000)
			for _, kg := range tc.loads {
				_, err := p.Add(uuid.New(), load(t, kg), now)
				require.NoError(t, err)
			}
			assert.Equal(t, tc.status, p.Status())
		})
	}
}

func TestPoolCapacityDoesNotDrift(t *testing.T) {
	t.Run("fractional loads fill the pool to exactly its capacity", func(t *testing.T) {
		p := newPool(t, 1000)
		for range 3 {
			_, err := p.Add(uuid.New(), load(t, 333.3), now)
			require.NoError(t, err)
		}
		require.True(t, p.Fits(load(t, 0.1)))

		_, err := p.Add(uuid.New(), load(t, 0.1), now)
		require.NoError(t, err)

		assert.Equal(t, 1000.0, p.UsedWeight())
		assert.Equal(t, 0.0, p.AvailableWeight())
		assert.Equal(t, 100.0, p.UtilizationPercent())
		assert.Equal(t, sharedload.StatusFull, p.Status())
		assert.False(t, p.Fits(load(t, 0.001)))
	})

	t.Run("removing every member returns to zero", func(t *testing.T) {
		p := newPool(t, 1000)
		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
		for _, id := range ids {
			_, err := p.Add(id, load(t, 0.1), now)
			require.NoError(t, err)
		}
		for _, id := range ids {
			_, err := p.Remove(id, now)
			require.NoError(t, err)
		}
		assert.Zero(t, p.UsedWeight())
		assert.Equal(t, 1000.0, p.AvailableWeight())
	})

	t.Run("a load that fills the vehicle exactly is packed", func(t *testing.T) {
		res, err := sharedload.Pack(nil, sharedload.PackRequest{
			BookingID: uuid.New(), Route: newRoute(t), Load: load(t, 10000), VehicleCapacity: 10000,
		}, now)
		require.NoError(t, err)
		assert.Equal(t, 100.0, res.Pool.UtilizationPercent())
		assert.Equal(t, sharedload.StatusFull, res.Pool.Status())
	})

	t.Run("weights below one gram are rejected", func(t *testing.T) {
		_, err := sharedload.NewLoad(0.0001, nil)
		assert.ErrorIs(t, err, sharedload.ErrInvalidLoad)
	})
}

func TestPoolAssignVehicle(t *testing.T) {
	p := newPool(t, 10000)
	vehicleID, driverID := uuid.New(), uuid.New()

	require.NoError(t, p.AssignVehicle(vehicleID, driverID, now.Add(time.Hour)))
	require.NotNil(t, p.VehicleID())
	require.NotNil(t, p.DriverID())
	assert.Equal(t, vehicleID, *p.VehicleID())
	assert.Equal(t, driverID, *p.DriverID())
	assert.Equal(t, now.Add(time.Hour), p.UpdatedAt())

	assert.ErrorIs(t, p.AssignVehicle(uuid.Nil, driverID, now), sharedload.ErrInvalidAssignment)

	_, err := p.Close(now)
	require.NoError(t, err)
	assert.ErrorIs(t, p.AssignVehicle(vehicleID, driverID, now), sharedload.ErrPoolClosed)
}

func TestPoolFullIsAnnouncedOnce(t *testing.T) {
	p := newPool(t, 10000)

	events, err := p.Add(uuid.New(), load(t, 9500), now)
	require.NoError(t, err)
	assert.Equal(t, []event.Type{event.TypeSharedLoadCapacityUpdated, event.TypeSharedLoadPoolFull}, eventTypes(events))
	assert.True(t, p.FullNotified())

	// a full pool still takes a load that fits what is left
	events, err = p.Add(uuid.New(), load(t, 400), now)
	require.NoError(t, err)
	assert.Equal(t, []event.Type{event.TypeSharedLoadCapacityUpdated}, eventTypes(events))
	assert.Equal(t, sharedload.StatusFull, p.Status())
}

func TestPoolRemove(t *testing.T) {
	p := newPool(t, 10000)
	a, b := uuid.New(), uuid.New()
	_, err := p.Add(a, load(t, 6000), now)
	require.NoError(t, err)
	_, err = p.Add(b, load(t, 3500), now)
	require.NoError(t, err)
	require.Equal(t, sharedload.StatusFull, p.Status())

	events, err := p.Remove(a, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []event.Type{event.TypeSharedLoadCapacityUpdated}, eventTypes(events))
	assert.Equal(t, sharedload.StatusOpen, p.Status())
	assert.Equal(t, 3500.0, p.UsedWeight())
	assert.Equal(t, []uuid.UUID{b}, p.MemberIDs())

	_, err = p.Remove(a, now)
	assert.ErrorIs(t, err, sharedload.ErrBookingNotInPool)
}

func TestPoolClose(t *testing.T) {
	p := newPool(t, 10000)
	_, err := p.Add(uuid.New(), load(t, 2000), now)
	require.NoError(t, err)

	events, err := p.Close(now)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.SharedLoadPoolClosed{PoolID: p.ID(), TotalBookings: 1, TotalWeight: 2000}, events[0].Payload)
	assert.Equal(t, sharedload.StatusClosed, p.Status())

	_, err = p.Close(now)
	assert.ErrorIs(t, err, sharedload.ErrPoolAlreadyClosed)
	_, err = p.Add(uuid.New(), load(t, 100), now)
	assert.ErrorIs(t, err, sharedload.ErrPoolClosed)

	// removing from a closed pool never reopens it
	_, err = p.Remove(p.MemberIDs()[0], now)
	require.NoError(t, err)
	assert.Equal(t, sharedload.StatusClosed, p.Status())
}

func TestPack(t *testing.T) {
	t.Run("opens a new pool when none exists", func(t *testing.T) {
		id := uuid.New()
		res, err := sharedload.Pack(nil, sharedload.PackRequest{
			BookingID: id, Route: newRoute(t), Load: load(t, 2000), VehicleCapacity: 10000,
		}, now)
		require.NoError(t, err)
		assert.True(t, res.IsNew)
		assert.Equal(t, 10000.0, res.Pool.TotalWeight())
		assert.Equal(t, []uuid.UUID{id}, res.Pool.MemberIDs())
		assert.NotEmpty(t, res.Events)
	})

	t.Run("first fit picks the oldest pool with room", func(t *testing.T) {
		older, err := sharedload.NewPool(newRoute(t), 10000, nil, now.Add(-2*time.Hour))
		require.NoError(t, err)
		_, err = older.Add(uuid.New(), load(t, 8500), now)
		require.NoError(t, err)
		middle, err := sharedload.NewPool(newRoute(t), 10000, nil, now.Add(-time.Hour))
		require.NoError(t, err)
		newest, err := sharedload.NewPool(newRoute(t), 10000, nil, now)
		require.NoError(t, err)

		res, err := sharedload.Pack([]*sharedload.Pool{newest, older, middle}, sharedload.PackRequest{
			BookingID: uuid.New(), Route: newRoute(t), Load: load(t, 2000), VehicleCapacity: 10000,
		}, now)
		require.NoError(t, err)
		assert.False(t, res.IsNew)
		assert.Equal(t, middle.ID(), res.Pool.ID())
	})

	t.Run("pools on another route are skipped", func(t *testing.T) {
		other, err := sharedload.NewRoute("Riyadh", "Dammam", now, vehicleType)
		require.NoError(t, err)
		p, err := sharedload.NewPool(other, 10000, nil, now)
		require.NoError(t, err)

		res, err := sharedload.Pack([]*sharedload.Pool{p}, sharedload.PackRequest{
			BookingID: uuid.New(), Route: newRoute(t), Load: load(t, 500), VehicleCapacity: 10000,
		}, now)
		require.NoError(t, err)
		assert.True(t, res.IsNew)
		assert.NotEqual(t, p.ID(), res.Pool.ID())
	})

	t.Run("load larger than the vehicle", func(t *testing.T) {
		_, err := sharedload.Pack(nil, sharedload.PackRequest{
			BookingID: uuid.New(), Route: newRoute(t), Load: load(t, 12000), VehicleCapacity: 10000,
		}, now)
		assert.ErrorIs(t, err, sharedload.ErrExceedsCapacity)
	})

	t.Run("non-positive vehicle capacity", func(t *testing.T) {
		_, err := sharedload.Pack(nil, sharedload.PackRequest{
			BookingID: uuid.New(), Route: newRoute(t), Load: load(t, 10),
		}, now)
		assert.ErrorIs(t, err, sharedload.ErrInvalidCapacity)
	})
}

func TestPoolSnapshotRoundTrip(t *testing.T) {
	p := newPool(t, 10000)
	_, err := p.Add(uuid.New(), load(t, 9500), now)
	require.NoError(t, err)

	restored := sharedload.Reconstruct(p.Snapshot())
	assert.Equal(t, p.Snapshot(), restored.Snapshot())

	// the full notification is not repeated after a reload
	events, err := restored.Add(uuid.New(), load(t, 100), now)
	require.NoError(t, err)
	assert.Equal(t, []event.Type{event.TypeSharedLoadCapacityUpdated}, eventTypes(events))
}
