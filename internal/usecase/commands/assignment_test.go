//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/event"
	"freight-core/internal/domain/geo"
	"freight-core/internal/pkg/errs"
	"freight-core/internal/usecase/commands"
	"freight-core/internal/usecase/shared"
	"freight-core/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// AssignDriver Tests
// =============================================================================

func TestAssignDriver(t *testing.T) {
	ctx := context.Background()

	t.Run("success: compliant driver is assigned", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		driverID, vehicleID := uuid.New(), uuid.New()
		f.gate.EXPECT().Check(gomock.Any(), driverID, vehicleID).Return(shared.ComplianceResult{Compliant: true}, nil)

		res, err := f.assignments(time.Second).AssignDriver(ctx, commands.AssignDriverRequest{
			BookingID: id, DriverID: driverID, VehicleID: vehicleID,
		})
		require.NoError(t, err)
		assert.True(t, res.Success)

		b := f.booking(t, id)
		assert.Equal(t, booking.StatusDriverAssigned, b.Status())
		assert.True(t, b.IsDrivenBy(driverID))
		assert.Equal(t, vehicleID, *b.VehicleID())
		assert.Equal(t, []event.Type{event.TypeBookingCreated, event.TypeBookingAssigned}, f.outboxTypes(t))
	})

	t.Run("success: pooled booking records the truck on its pool", func(t *testing.T) {
		f := newFixture(t)
		req, err := builder.NewSharedLoadBuilder().WithWeight(2000).BuildCommand()
		require.NoError(t, err)
		created, err := f.sharedLoads().CreateSharedLoadBooking(ctx, req)
		require.NoError(t, err)
		require.Nil(t, f.pool(t, created.PoolID).DriverID())

		driverID, vehicleID := uuid.New(), uuid.New()
		f.gate.EXPECT().Check(gomock.Any(), driverID, vehicleID).Return(shared.ComplianceResult{Compliant: true}, nil)

		res, err := f.assignments(time.Second).AssignDriver(ctx, commands.AssignDriverRequest{
			BookingID: created.BookingID, DriverID: driverID, VehicleID: vehicleID,
		})
		require.NoError(t, err)
		require.True(t, res.Success)

		pool := f.pool(t, created.PoolID)
		require.NotNil(t, pool.DriverID())
		require.NotNil(t, pool.VehicleID())
		assert.Equal(t, driverID, *pool.DriverID())
		assert.Equal(t, vehicleID, *pool.VehicleID())
		assert.Equal(t, 2000.0, pool.UsedWeight())
	})

	t.Run("rejected: expired documents keep the booking pending", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		driverID, vehicleID := uuid.New(), uuid.New()
		f.gate.EXPECT().Check(gomock.Any(), driverID, vehicleID).Return(shared.ComplianceResult{
			Compliant:        false,
			ExpiredDocuments: []string{"driving_license"},
			Reason:           "driving license expired",
		}, nil)

		res, err := f.assignments(time.Second).AssignDriver(ctx, commands.AssignDriverRequest{
			BookingID: id, DriverID: driverID, VehicleID: vehicleID,
		})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "driver is not compliant: driving license expired", res.Message)
		assert.Equal(t, []string{"driving_license"}, res.Compliance.ExpiredDocuments)

		b := f.booking(t, id)
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Nil(t, b.DriverID())
		assert.Equal(t, 1, b.Version())

		events := f.outbox(t)
		require.Len(t, events, 2)
		failed, ok := events[1].Payload.(*event.ComplianceCheckFailed)
		require.True(t, ok)
		assert.Equal(t, id, events[1].AggregateID)
		assert.Equal(t, driverID, failed.DriverID)
		assert.Equal(t, []string{}, failed.MissingDocuments)
		assert.Equal(t, "driving license expired", failed.Reason)
	})

	t.Run("rejected: gate error fails closed", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		f.gate.EXPECT().Check(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(shared.ComplianceResult{Compliant: true}, errors.New("connection refused"))

		res, err := f.assignments(time.Second).AssignDriver(ctx, commands.AssignDriverRequest{
			BookingID: id, DriverID: uuid.New(), VehicleID: uuid.New(),
		})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "driver is not compliant: compliance check unavailable: connection refused", res.Message)
		assert.Equal(t, booking.StatusPending, f.booking(t, id).Status())
	})

	t.Run("rejected: slow gate times out and fails closed", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		f.gate.EXPECT().Check(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _, _ uuid.UUID) (shared.ComplianceResult, error) {
				<-ctx.Done()
				return shared.ComplianceResult{}, ctx.Err()
			})

		start := time.Now()
		res, err := f.assignments(20*time.Millisecond).AssignDriver(ctx, commands.AssignDriverRequest{
			BookingID: id, DriverID: uuid.New(), VehicleID: uuid.New(),
		})
		require.NoError(t, err)
		assert.Less(t, time.Since(start), 2*time.Second)
		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "compliance check unavailable")
		assert.Contains(t, res.Message, context.DeadlineExceeded.Error())
		assert.Equal(t, []event.Type{event.TypeBookingCreated, event.TypeComplianceCheckFailed}, f.outboxTypes(t))
	})

	t.Run("error: rejected check on an unknown booking", func(t *testing.T) {
		f := newFixture(t)
		f.gate.EXPECT().Check(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(shared.ComplianceResult{Compliant: false, Reason: "vehicle registration missing"}, nil)

		_, err := f.assignments(time.Second).AssignDriver(ctx, commands.AssignDriverRequest{
			BookingID: uuid.New(), DriverID: uuid.New(), VehicleID: uuid.New(),
		})
		assert.True(t, errs.Is(err, commands.ErrBookingNotFound))
		assert.Empty(t, f.outbox(t))
	})

	t.Run("error: booking already assigned", func(t *testing.T) {
		f := newFixture(t)
		id := f.assigned(t, uuid.New())
		f.gate.EXPECT().Check(gomock.Any(), gomock.Any(), gomock.Any()).Return(shared.ComplianceResult{Compliant: true}, nil)

		_, err := f.assignments(time.Second).AssignDriver(ctx, commands.AssignDriverRequest{
			BookingID: id, DriverID: uuid.New(), VehicleID: uuid.New(),
		})
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}

// =============================================================================
// MarkDriverReached Tests
// =============================================================================

func TestMarkDriverReached(t *testing.T) {
	ctx := context.Background()

	accepted := func(t *testing.T, f *fixture, driverID uuid.UUID) uuid.UUID {
		t.Helper()
		id := f.assigned(t, driverID)
		require.NoError(t, f.bookings().AcceptBooking(ctx, id, driverID))
		return id
	}

	t.Run("success: driver inside the geofence", func(t *testing.T) {
		f := newFixture(t)
		driverID := uuid.New()
		id := accepted(t, f, driverID)

		res, err := f.assignments(time.Second).MarkDriverReached(ctx, commands.MarkReachedRequest{
			BookingID: id, DriverID: driverID, Lat: builder.RiyadhLat + 0.004, Lng: builder.RiyadhLng, PhotoRef: " photos/pickup.jpg ",
		})
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "driver is 0.44 km from pickup location", res.Message)
		assert.InDelta(t, 0.445, res.DistanceKm, 0.01)

		b := f.booking(t, id)
		assert.Equal(t, booking.StatusDriverReached, b.Status())
		require.NotNil(t, b.PickupPhotoRef())
		assert.Equal(t, "photos/pickup.jpg", *b.PickupPhotoRef())
		assert.Equal(t, geo.Coordinates{Lat: builder.RiyadhLat + 0.004, Lng: builder.RiyadhLng}, *b.ReachedCoordinates())
	})

	t.Run("rejected: driver outside the geofence", func(t *testing.T) {
		f := newFixture(t)
		driverID := uuid.New()
		id := accepted(t, f, driverID)
		before := len(f.outbox(t))

		res, err := f.assignments(time.Second).MarkDriverReached(ctx, commands.MarkReachedRequest{
			BookingID: id, DriverID: driverID, Lat: builder.RiyadhLat + 0.005, Lng: builder.RiyadhLng,
		})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "driver is 0.56 km from pickup location (max 0.50 km)", res.Message)
		assert.Equal(t, booking.StatusDriverAccepted, f.booking(t, id).Status())
		assert.Len(t, f.outbox(t), before)
	})

	t.Run("rejected: someone else's booking", func(t *testing.T) {
		f := newFixture(t)
		id := accepted(t, f, uuid.New())

		res, err := f.assignments(time.Second).MarkDriverReached(ctx, commands.MarkReachedRequest{
			BookingID: id, DriverID: uuid.New(), Lat: builder.RiyadhLat, Lng: builder.RiyadhLng,
		})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, booking.ErrDriverNotAssigned.Error(), res.Message)
	})

	t.Run("error: coordinates out of range", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.assignments(time.Second).MarkDriverReached(ctx, commands.MarkReachedRequest{
			BookingID: uuid.New(), DriverID: uuid.New(), Lat: 91, Lng: 0,
		})
		assert.ErrorIs(t, err, geo.ErrInvalidCoordinates)
	})

	t.Run("error: booking not accepted yet", func(t *testing.T) {
		f := newFixture(t)
		driverID := uuid.New()
		id := f.assigned(t, driverID)

		_, err := f.assignments(time.Second).MarkDriverReached(ctx, commands.MarkReachedRequest{
			BookingID: id, DriverID: driverID, Lat: builder.RiyadhLat, Lng: builder.RiyadhLng,
		})
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}
