package commands

import (
	"context"
	"log/slog"
	"time"

	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/event"
	"freight-core/internal/domain/geo"
	"freight-core/internal/domain/sharedload"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/pkg/errs"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateSharedLoadRequest struct {
	CustomerID      uuid.UUID
	Origin          geo.Location
	Destination     geo.Location
	PickupAt        time.Time
	Cargo           booking.Cargo
	Shipper         booking.Contact
	Receiver        booking.Contact
	VehicleTypeID   uuid.UUID
	VehicleCapacity float64
	VehicleVolume   *float64
}

type CreateSharedLoadResult struct {
	BookingID          uuid.UUID
	BookingNumber      string
	PoolID             uuid.UUID
	IsNewPool          bool
	UtilizationPercent float64
	Fare               float64
}

type SharedLoadCommands interface {
	CreateSharedLoadBooking(ctx context.Context, req CreateSharedLoadRequest) (*CreateSharedLoadResult, error)
	ClosePool(ctx context.Context, poolID uuid.UUID) error
}

type sharedLoadUseCaseImpl struct {
	uow      shared.UnitOfWork
	quoter   shared.FareQuoter
	services *booking.Services
	clock    clock.Clock
	logger   *slog.Logger
}

func NewSharedLoadUseCase(uow shared.UnitOfWork, quoter shared.FareQuoter, numbers booking.NumberGenerator, clk clock.Clock, logger *slog.Logger) SharedLoadCommands {
	return &sharedLoadUseCaseImpl{
		uow:      uow,
		quoter:   quoter,
		services: &booking.Services{Clock: clk, Numbers: numbers},
		clock:    clk,
		logger:   logger,
	}
}

func (uc *sharedLoadUseCaseImpl) CreateSharedLoadBooking(ctx context.Context, req CreateSharedLoadRequest) (*CreateSharedLoadResult, error) {
	route, err := sharedload.NewRoute(req.Origin.City(), req.Destination.City(), req.PickupAt, req.VehicleTypeID)
	if err != nil {
		return nil, err
	}
	load, err := sharedload.NewLoad(req.Cargo.WeightKg(), req.Cargo.VolumeM3())
	if err != nil {
		return nil, err
	}
	if req.VehicleCapacity <= 0 {
		return nil, sharedload.ErrInvalidCapacity
	}
	if load.WeightKg > req.VehicleCapacity {
		return nil, errs.Wrapf(sharedload.ErrExceedsCapacity, "requested %.2f kg, vehicle capacity %.2f kg", load.WeightKg, req.VehicleCapacity)
	}

	quote, err := uc.quoter.Quote(ctx, req.Origin, req.Destination, req.VehicleTypeID)
	if err != nil {
		return nil, errs.Mark(err, ErrFareUnavailable)
	}
	// each shipper pays for its share of the vehicle
	fare := booking.MoneyFromAmount(quote.Total * load.WeightKg / req.VehicleCapacity)

	params := booking.NewParams{
		CustomerID:    req.CustomerID,
		VehicleTypeID: req.VehicleTypeID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		PickupAt:      req.PickupAt,
		Cargo:         req.Cargo,
		Shipper:       req.Shipper,
		Receiver:      req.Receiver,
		Type:          booking.TypeSharedLoad,
		TotalFare:     fare,
	}

	var packed sharedload.PackResult
	pack := func(ctx context.Context, tx shared.Tx, b *booking.Booking) ([]event.Event, error) {
		candidates, err := tx.Pools().FindOpenForRouteForUpdate(ctx, route)
		if err != nil {
			return nil, err
		}
		packed, err = sharedload.Pack(candidates, sharedload.PackRequest{
			BookingID:       b.ID(),
			Route:           route,
			Load:            load,
			VehicleCapacity: req.VehicleCapacity,
			VehicleVolume:   req.VehicleVolume,
		}, uc.clock.Now())
		if err != nil {
			return nil, err
		}
		if packed.IsNew {
			err = tx.Pools().Create(ctx, packed.Pool)
		} else {
			err = tx.Pools().Update(ctx, packed.Pool)
		}
		if err != nil {
			return nil, translate(err, ErrPoolNotFound)
		}
		if err := b.AttachToPool(packed.Pool.ID()); err != nil {
			return nil, err
		}
		return packed.Events, nil
	}

	b, err := createWithUniqueNumber(ctx, uc.uow, uc.services, uc.logger, params, pack)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("shared load booking packed",
		"booking_id", b.ID(),
		"pool_id", packed.Pool.ID(),
		"new_pool", packed.IsNew,
		"utilization_pct", packed.Pool.UtilizationPercent())

	return &CreateSharedLoadResult{
		BookingID:          b.ID(),
		BookingNumber:      b.Number(),
		PoolID:             packed.Pool.ID(),
		IsNewPool:          packed.IsNew,
		UtilizationPercent: packed.Pool.UtilizationPercent(),
		Fare:               b.Fare().Total().Amount(),
	}, nil
}

func (uc *sharedLoadUseCaseImpl) ClosePool(ctx context.Context, poolID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pool, err := tx.Pools().FindByIDForUpdate(ctx, poolID)
		if err != nil {
			return translate(err, ErrPoolNotFound)
		}
		events, err := pool.Close(uc.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Pools().Update(ctx, pool); err != nil {
			return translate(err, ErrPoolNotFound)
		}
		return tx.Outbox().Append(ctx, events...)
	})
}
