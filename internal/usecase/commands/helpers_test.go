//go:build unit

package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"freight-core/internal/domain/backload"
	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/event"
	"freight-core/internal/domain/geo"
	"freight-core/internal/domain/sharedload"
	"freight-core/internal/infra/memory"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/usecase/commands"
	"freight-core/internal/usecase/shared"
	"freight-core/tests/common/builder"
	sharedmock "freight-core/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const quotedFare = 500.0

type fixture struct {
	store   *memory.Store
	clock   *clock.MockClock
	numbers *builder.SequenceNumbers
	gate    *sharedmock.MockComplianceGate
	quoter  *sharedmock.MockFareQuoter
	logger  *slog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.DiscardHandler)
	f := &fixture{
		store:   memory.NewStore(logger),
		clock:   clock.NewMockClock(builder.FixedNow),
		numbers: builder.NewSequenceNumbers("BKCMD"),
		gate:    sharedmock.NewMockComplianceGate(ctrl),
		quoter:  sharedmock.NewMockFareQuoter(ctrl),
		logger:  logger,
	}
	f.quoter.EXPECT().
		Quote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(shared.FareQuote{Total: quotedFare, DistanceKm: 845.1}, nil).
		AnyTimes()
	return f
}

func (f *fixture) bookings() commands.BookingCommands {
	return commands.NewBookingUseCase(f.store, f.quoter, f.numbers, f.clock, f.logger)
}

func (f *fixture) assignments(timeout time.Duration) commands.AssignmentCommands {
	return commands.NewAssignmentUseCase(f.store, f.gate, geo.NewGeofence(geo.DefaultGeofenceRadiusKm), timeout, f.clock, f.logger)
}

func (f *fixture) sharedLoads() commands.SharedLoadCommands {
	return commands.NewSharedLoadUseCase(f.store, f.quoter, f.numbers, f.clock, f.logger)
}

func (f *fixture) backloads() commands.BackloadCommands {
	engine := backload.NewEngine(geo.NewDefaultCityDirectory(), backload.DefaultRatePerKm)
	return commands.NewBackloadUseCase(f.store, engine, f.clock, f.logger)
}

func (f *fixture) createBooking(t *testing.T) uuid.UUID {
	t.Helper()
	req, err := builder.NewBookingBuilder().BuildCommand()
	require.NoError(t, err)
	res, err := f.bookings().CreateBooking(context.Background(), req)
	require.NoError(t, err)
	return res.BookingID
}

// assigned creates a booking and assigns a compliant driver to it.
func (f *fixture) assigned(t *testing.T, driverID uuid.UUID) uuid.UUID {
	t.Helper()
	id := f.createBooking(t)
	f.gate.EXPECT().Check(gomock.Any(), driverID, gomock.Any()).Return(shared.ComplianceResult{Compliant: true}, nil)
	res, err := f.assignments(time.Second).AssignDriver(context.Background(), commands.AssignDriverRequest{
		BookingID: id, DriverID: driverID, VehicleID: uuid.New(),
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	return id
}

func (f *fixture) booking(t *testing.T, id uuid.UUID) *booking.Booking {
	t.Helper()
	var b *booking.Booking
	err := f.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		b, err = tx.Bookings().FindByID(ctx, id)
		return err
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) pool(t *testing.T, id uuid.UUID) *sharedload.Pool {
	t.Helper()
	var p *sharedload.Pool
	err := f.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		p, err = tx.Pools().FindByID(ctx, id)
		return err
	})
	require.NoError(t, err)
	return p
}

// outbox returns every unpublished event in append order.
func (f *fixture) outbox(t *testing.T) []event.Event {
	t.Helper()
	var events []event.Event
	err := f.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		records, err := tx.Outbox().ClaimPending(ctx, shared.ClaimOptions{Now: f.clock.Now(), Lease: time.Minute})
		if err != nil {
			return err
		}
		for _, r := range records {
			e, err := r.Event()
			if err != nil {
				return err
			}
			events = append(events, e)
		}
		return nil
	})
	require.NoError(t, err)
	return events
}

func (f *fixture) outboxTypes(t *testing.T) []event.Type {
	t.Helper()
	events := f.outbox(t)
	types := make([]event.Type, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}
