package commands

import (
	"context"
	"log/slog"
	"time"

	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/event"
	"freight-core/internal/domain/geo"
	"freight-core/internal/infra"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/pkg/errs"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxNumberAttempts = 3

type CreateBookingRequest struct {
	CustomerID    uuid.UUID
	VehicleTypeID uuid.UUID
	Origin        geo.Location
	Destination   geo.Location
	PickupAt      time.Time
	Cargo         booking.Cargo
	Shipper       booking.Contact
	Receiver      booking.Contact
	Type          booking.Type
}

type CreateBookingResult struct {
	BookingID     uuid.UUID
	BookingNumber string
	TotalFare     float64
}

type CompleteBookingResult struct {
	Success bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error)
	AcceptBooking(ctx context.Context, bookingID, driverID uuid.UUID) error
	StartLoading(ctx context.Context, bookingID, driverID uuid.UUID) error
	StartTransit(ctx context.Context, bookingID, driverID uuid.UUID) error
	MarkDelivered(ctx context.Context, bookingID, driverID uuid.UUID) error
	CompleteBooking(ctx context.Context, bookingID, driverID uuid.UUID, completedAt time.Time) (*CompleteBookingResult, error)
	// CancelBooking checks ownership when customerID is set; a nil customerID
	// is an operator cancelling on the platform's behalf.
	CancelBooking(ctx context.Context, bookingID uuid.UUID, customerID *uuid.UUID, reason string) error
	ApplyDiscount(ctx context.Context, bookingID uuid.UUID, amount float64) error
}

type bookingUseCaseImpl struct {
	uow      shared.UnitOfWork
	quoter   shared.FareQuoter
	services *booking.Services
	clock    clock.Clock
	logger   *slog.Logger
}

func NewBookingUseCase(uow shared.UnitOfWork, quoter shared.FareQuoter, numbers booking.NumberGenerator, clk clock.Clock, logger *slog.Logger) BookingCommands {
	return &bookingUseCaseImpl{
		uow:      uow,
		quoter:   quoter,
		services: &booking.Services{Clock: clk, Numbers: numbers},
		clock:    clk,
		logger:   logger,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error) {
	quote, err := uc.quoter.Quote(ctx, req.Origin, req.Destination, req.VehicleTypeID)
	if err != nil {
		return nil, errs.Mark(err, ErrFareUnavailable)
	}

	params := booking.NewParams{
		CustomerID:    req.CustomerID,
		VehicleTypeID: req.VehicleTypeID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		PickupAt:      req.PickupAt,
		Cargo:         req.Cargo,
		Shipper:       req.Shipper,
		Receiver:      req.Receiver,
		Type:          req.Type,
		TotalFare:     booking.MoneyFromAmount(quote.Total),
	}

	b, err := createWithUniqueNumber(ctx, uc.uow, uc.services, uc.logger, params, nil)
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{
		BookingID:     b.ID(),
		BookingNumber: b.Number(),
		TotalFare:     b.Fare().Total().Amount(),
	}, nil
}

// createWithUniqueNumber persists a new booking, rebuilding it with a fresh
// number when the unique index rejects the generated one. extra runs inside
// the same transaction before the booking row is written.
func createWithUniqueNumber(
	ctx context.Context,
	uow shared.UnitOfWork,
	services *booking.Services,
	logger *slog.Logger,
	params booking.NewParams,
	extra func(ctx context.Context, tx shared.Tx, b *booking.Booking) ([]event.Event, error),
) (*booking.Booking, error) {
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		b, events, err := booking.NewBooking(services, params)
		if err != nil {
			return nil, err
		}

		err = uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			pending := events
			if extra != nil {
				more, xerr := extra(ctx, tx, b)
				if xerr != nil {
					return xerr
				}
				pending = append(pending, more...)
			}
			if cerr := tx.Bookings().Create(ctx, b); cerr != nil {
				return cerr
			}
			return tx.Outbox().Append(ctx, pending...)
		})
		if err == nil {
			return b, nil
		}
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, err
		}
		logger.Warn("booking number collision, regenerating",
			"attempt", attempt,
			"booking_number", b.Number())
	}
	return nil, ErrBookingNumberExhausted
}

func (uc *bookingUseCaseImpl) AcceptBooking(ctx context.Context, bookingID, driverID uuid.UUID) error {
	return uc.mutateAsDriver(ctx, bookingID, driverID, func(_ shared.Tx, b *booking.Booking, now time.Time) ([]event.Event, error) {
		return b.AcceptByDriver(now)
	})
}

func (uc *bookingUseCaseImpl) StartLoading(ctx context.Context, bookingID, driverID uuid.UUID) error {
	return uc.mutateAsDriver(ctx, bookingID, driverID, func(_ shared.Tx, b *booking.Booking, now time.Time) ([]event.Event, error) {
		return b.StartLoading(now)
	})
}

func (uc *bookingUseCaseImpl) StartTransit(ctx context.Context, bookingID, driverID uuid.UUID) error {
	return uc.mutateAsDriver(ctx, bookingID, driverID, func(_ shared.Tx, b *booking.Booking, now time.Time) ([]event.Event, error) {
		return b.StartTransit(now)
	})
}

func (uc *bookingUseCaseImpl) MarkDelivered(ctx context.Context, bookingID, driverID uuid.UUID) error {
	return uc.mutateAsDriver(ctx, bookingID, driverID, func(_ shared.Tx, b *booking.Booking, now time.Time) ([]event.Event, error) {
		return b.MarkDelivered(now)
	})
}

func (uc *bookingUseCaseImpl) CompleteBooking(ctx context.Context, bookingID, driverID uuid.UUID, completedAt time.Time) (*CompleteBookingResult, error) {
	err := uc.mutateAsDriver(ctx, bookingID, driverID, func(_ shared.Tx, b *booking.Booking, now time.Time) ([]event.Event, error) {
		if completedAt.IsZero() {
			completedAt = now
		}
		return b.Complete(completedAt)
	})
	if err != nil {
		return nil, err
	}
	return &CompleteBookingResult{Success: true}, nil
}

func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, customerID *uuid.UUID, reason string) error {
	return uc.mutate(ctx, bookingID, func(tx shared.Tx, b *booking.Booking, now time.Time) ([]event.Event, error) {
		if customerID != nil && !b.IsOwnedBy(*customerID) {
			return nil, errs.Wrapf(booking.ErrNotBookingCustomer, "booking %s", b.Number())
		}
		events, err := b.Cancel(reason, now)
		if err != nil {
			return nil, err
		}
		if b.SharedPoolID() == nil {
			return events, nil
		}

		// free the cancelled booking's share of its pool
		pool, err := tx.Pools().FindByIDForUpdate(ctx, *b.SharedPoolID())
		if err != nil {
			return nil, translate(err, ErrPoolNotFound)
		}
		poolEvents, err := pool.Remove(b.ID(), now)
		if err != nil {
			return nil, err
		}
		if err := tx.Pools().Update(ctx, pool); err != nil {
			return nil, translate(err, ErrPoolNotFound)
		}
		return append(events, poolEvents...), nil
	})
}

func (uc *bookingUseCaseImpl) ApplyDiscount(ctx context.Context, bookingID uuid.UUID, amount float64) error {
	return uc.mutate(ctx, bookingID, func(_ shared.Tx, b *booking.Booking, now time.Time) ([]event.Event, error) {
		return b.ApplyDiscount(booking.MoneyFromAmount(amount), now)
	})
}

type bookingMutation func(tx shared.Tx, b *booking.Booking, now time.Time) ([]event.Event, error)

func (uc *bookingUseCaseImpl) mutate(ctx context.Context, bookingID uuid.UUID, fn bookingMutation) error {
	return mutateBooking(ctx, uc.uow, uc.clock, bookingID, fn)
}

// mutateAsDriver applies fn only when driverID is the booking's assigned driver.
func (uc *bookingUseCaseImpl) mutateAsDriver(ctx context.Context, bookingID, driverID uuid.UUID, fn bookingMutation) error {
	return uc.mutate(ctx, bookingID, func(tx shared.Tx, b *booking.Booking, now time.Time) ([]event.Event, error) {
		if !b.IsDrivenBy(driverID) {
			return nil, errs.Wrapf(booking.ErrDriverNotAssigned, "booking %s", b.Number())
		}
		return fn(tx, b, now)
	})
}

// mutateBooking loads the booking under a row lock, applies fn and writes the
// aggregate together with the events it raised.
func mutateBooking(ctx context.Context, uow shared.UnitOfWork, clk clock.Clock, bookingID uuid.UUID, fn bookingMutation) error {
	return uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return translate(err, ErrBookingNotFound)
		}
		events, err := fn(tx, b, clk.Now())
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return translate(err, ErrBookingNotFound)
		}
		return tx.Outbox().Append(ctx, events...)
	})
}
