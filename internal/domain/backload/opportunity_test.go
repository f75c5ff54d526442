//go:build unit

package backload_test

import (
	"testing"
	"time"

	"freight-core/internal/domain/backload"
	"freight-core/internal/domain/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func window(t *testing.T, from, to time.Duration) backload.Window {
	t.Helper()
	w, err := backload.NewWindow(now.Add(from), now.Add(to))
	require.NoError(t, err)
	return w
}

func offerParams(t *testing.T) backload.OfferParams {
	t.Helper()
	return backload.OfferParams{
		DriverID:        uuid.New(),
		VehicleID:       uuid.New(),
		VehicleTypeID:   uuid.New(),
		OriginCity:      "Jeddah",
		DestinationCity: "Riyadh",
		Window:          window(t, 0, 12*time.Hour),
		CapacityKg:      5000,
	}
}

func TestNewWindow(t *testing.T) {
	_, err := backload.NewWindow(now, now)
	assert.ErrorIs(t, err, backload.ErrInvalidWindow)
	_, err = backload.NewWindow(now, now.Add(-time.Minute))
	assert.ErrorIs(t, err, backload.ErrInvalidWindow)
	_, err = backload.NewWindow(time.Time{}, now)
	assert.ErrorIs(t, err, backload.ErrInvalidWindow)

	w := window(t, time.Hour, 2*time.Hour)
	assert.True(t, w.OpenAt(now), "a window starting later is still usable")
	assert.True(t, w.OpenAt(now.Add(2*time.Hour)))
	assert.False(t, w.OpenAt(now.Add(2*time.Hour+time.Second)))
}

func TestOffer(t *testing.T) {
	t.Run("opens an available opportunity", func(t *testing.T) {
		p := offerParams(t)
		o, events, err := backload.Offer(p, now)
		require.NoError(t, err)

		assert.True(t, o.IsAvailable())
		assert.Equal(t, p.DriverID, o.DriverID())
		require.Len(t, events, 1)
		assert.Equal(t, event.AggregateOpportunity, events[0].AggregateType)
		payload := events[0].Payload.(event.BackloadAvailabilityToggled)
		assert.True(t, payload.IsAvailable)
		require.NotNil(t, payload.OpportunityID)
		assert.Equal(t, o.ID(), *payload.OpportunityID)
		assert.Equal(t, p.Window.From, payload.AvailableFrom)
	})

	cases := []struct {
		name   string
		mutate func(*backload.OfferParams)
		err    error
	}{
		{name: "missing driver", mutate: func(p *backload.OfferParams) { p.DriverID = uuid.Nil }, err: backload.ErrMissingDriver},
		{name: "missing vehicle", mutate: func(p *backload.OfferParams) { p.VehicleID = uuid.Nil }, err: backload.ErrMissingDriver},
		{name: "blank origin", mutate: func(p *backload.OfferParams) { p.OriginCity = "  " }, err: backload.ErrMissingRoute},
		{name: "zero capacity", mutate: func(p *backload.OfferParams) { p.CapacityKg = 0 }, err: backload.ErrInvalidCapacity},
		{name: "empty window", mutate: func(p *backload.OfferParams) { p.Window = backload.Window{} }, err: backload.ErrInvalidWindow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := offerParams(t)
			tc.mutate(&p)
			_, _, err := backload.Offer(p, now)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestWithdrawAndClose(t *testing.T) {
	o, _, err := backload.Offer(offerParams(t), now)
	require.NoError(t, err)

	events, err := o.Withdraw(now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Payload.(event.BackloadAvailabilityToggled).IsAvailable)
	assert.Equal(t, backload.StatusUnavailable, o.Status())

	_, err = o.Withdraw(now)
	assert.ErrorIs(t, err, backload.ErrNotAvailable)

	require.NoError(t, o.Close(now))
	assert.Equal(t, backload.StatusClosed, o.Status())
	assert.ErrorIs(t, o.Close(now), backload.ErrOpportunityClosed)
}

func TestWithdrawnWithoutOffer(t *testing.T) {
	driverID, vehicleID := uuid.New(), uuid.New()
	e := backload.WithdrawnWithoutOffer(driverID, vehicleID, now)

	assert.Equal(t, event.AggregateDriver, e.AggregateType)
	assert.Equal(t, driverID, e.AggregateID)
	payload := e.Payload.(event.BackloadAvailabilityToggled)
	assert.Nil(t, payload.OpportunityID)
	assert.False(t, payload.IsAvailable)
	assert.Equal(t, vehicleID, payload.VehicleID)
}

func TestOpportunitySnapshotRoundTrip(t *testing.T) {
	o, _, err := backload.Offer(offerParams(t), now)
	require.NoError(t, err)
	assert.Equal(t, o.Snapshot(), backload.Reconstruct(o.Snapshot()).Snapshot())
}
