package commands

import (
	"context"
	"log/slog"
	"time"

	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/event"
	"freight-core/internal/domain/geo"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
)

const DefaultComplianceTimeout = 3 * time.Second

type AssignDriverRequest struct {
	BookingID uuid.UUID
	DriverID  uuid.UUID
	VehicleID uuid.UUID
}

// AssignDriverResult carries a rejected compliance check as a value; only
// infrastructure problems come back as errors.
type AssignDriverResult struct {
	Success    bool
	Message    string
	Compliance shared.ComplianceResult
}

type MarkReachedRequest struct {
	BookingID uuid.UUID
	DriverID  uuid.UUID
	Lat       float64
	Lng       float64
	PhotoRef  string
}

type MarkReachedResult struct {
	Success    bool
	Message    string
	DistanceKm float64
}

type AssignmentCommands interface {
	AssignDriver(ctx context.Context, req AssignDriverRequest) (*AssignDriverResult, error)
	MarkDriverReached(ctx context.Context, req MarkReachedRequest) (*MarkReachedResult, error)
}

type assignmentUseCaseImpl struct {
	uow               shared.UnitOfWork
	gate              shared.ComplianceGate
	geofence          *geo.Geofence
	complianceTimeout time.Duration
	clock             clock.Clock
	logger            *slog.Logger
}

func NewAssignmentUseCase(
	uow shared.UnitOfWork,
	gate shared.ComplianceGate,
	geofence *geo.Geofence,
	complianceTimeout time.Duration,
	clk clock.Clock,
	logger *slog.Logger,
) AssignmentCommands {
	if complianceTimeout <= 0 {
		complianceTimeout = DefaultComplianceTimeout
	}
	return &assignmentUseCaseImpl{
		uow:               uow,
		gate:              gate,
		geofence:          geofence,
		complianceTimeout: complianceTimeout,
		clock:             clk,
		logger:            logger,
	}
}

func (uc *assignmentUseCaseImpl) AssignDriver(ctx context.Context, req AssignDriverRequest) (*AssignDriverResult, error) {
	compliance := uc.checkCompliance(ctx, req.DriverID, req.VehicleID)

	if !compliance.Compliant {
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			// existence check only; the booking itself is left as is
			if _, err := tx.Bookings().FindByID(ctx, req.BookingID); err != nil {
				return translate(err, ErrBookingNotFound)
			}
			failed := event.New(event.AggregateBooking, req.BookingID, uc.clock.Now(), event.ComplianceCheckFailed{
				BookingID:        req.BookingID,
				DriverID:         req.DriverID,
				VehicleID:        req.VehicleID,
				ExpiredDocuments: nonNil(compliance.ExpiredDocuments),
				MissingDocuments: nonNil(compliance.MissingDocuments),
				Reason:           compliance.Reason,
			})
			return tx.Outbox().Append(ctx, failed)
		})
		if err != nil {
			return nil, err
		}
		uc.logger.Info("driver assignment rejected by compliance",
			"booking_id", req.BookingID,
			"driver_id", req.DriverID,
			"vehicle_id", req.VehicleID,
			"reason", compliance.Reason)
		return &AssignDriverResult{
			Success:    false,
			Message:    "driver is not compliant: " + compliance.Reason,
			Compliance: compliance,
		}, nil
	}

	err := mutateBooking(ctx, uc.uow, uc.clock, req.BookingID, func(tx shared.Tx, b *booking.Booking, now time.Time) ([]event.Event, error) {
		events, err := b.AssignDriver(req.VehicleID, req.DriverID, now)
		if err != nil {
			return nil, err
		}
		if b.SharedPoolID() == nil {
			return events, nil
		}

		// the pool travels on whichever truck its members are assigned to
		pool, err := tx.Pools().FindByIDForUpdate(ctx, *b.SharedPoolID())
		if err != nil {
			return nil, translate(err, ErrPoolNotFound)
		}
		if err := pool.AssignVehicle(req.VehicleID, req.DriverID, now); err != nil {
			return nil, err
		}
		if err := tx.Pools().Update(ctx, pool); err != nil {
			return nil, translate(err, ErrPoolNotFound)
		}
		return events, nil
	})
	if err != nil {
		return nil, err
	}
	return &AssignDriverResult{
		Success:    true,
		Message:    "driver assigned",
		Compliance: compliance,
	}, nil
}

// checkCompliance bounds the gate call and fails closed on any error.
func (uc *assignmentUseCaseImpl) checkCompliance(ctx context.Context, driverID, vehicleID uuid.UUID) shared.ComplianceResult {
	ctx, cancel := context.WithTimeout(ctx, uc.complianceTimeout)
	defer cancel()

	result, err := uc.gate.Check(ctx, driverID, vehicleID)
	if err != nil {
		uc.logger.Warn("compliance check failed",
			"driver_id", driverID,
			"vehicle_id", vehicleID,
			"error", err.Error())
		return shared.ComplianceResult{
			Compliant: false,
			Reason:    "compliance check unavailable: " + err.Error(),
		}
	}
	return result
}

func (uc *assignmentUseCaseImpl) MarkDriverReached(ctx context.Context, req MarkReachedRequest) (*MarkReachedResult, error) {
	reported, err := geo.NewCoordinates(req.Lat, req.Lng)
	if err != nil {
		return nil, err
	}

	var result *MarkReachedResult
	err = mutateBooking(ctx, uc.uow, uc.clock, req.BookingID, func(_ shared.Tx, b *booking.Booking, now time.Time) ([]event.Event, error) {
		if !b.IsDrivenBy(req.DriverID) {
			result = &MarkReachedResult{Success: false, Message: booking.ErrDriverNotAssigned.Error()}
			return nil, nil
		}
		check := uc.geofence.Validate(b.Origin().Coordinates(), reported)
		if !check.Within {
			result = &MarkReachedResult{Success: false, Message: check.Message(), DistanceKm: check.DistanceKm}
			return nil, nil
		}
		events, err := b.MarkDriverReached(reported, req.PhotoRef, now)
		if err != nil {
			return nil, err
		}
		result = &MarkReachedResult{Success: true, Message: check.Message(), DistanceKm: check.DistanceKm}
		return events, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
