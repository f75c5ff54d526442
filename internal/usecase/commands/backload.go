package commands

import (
	"context"
	"log/slog"
	"time"

	"freight-core/internal/domain/backload"
	"freight-core/internal/domain/utilization"
	"freight-core/internal/infra"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type ToggleAvailabilityRequest struct {
	DriverID        uuid.UUID
	VehicleID       uuid.UUID
	IsAvailable     bool
	OriginCity      string
	DestinationCity string
	AvailableFrom   time.Time
	AvailableTo     time.Time
	CapacityKg      float64
	VehicleTypeID   uuid.UUID
}

type ToggleAvailabilityResult struct {
	Success       bool
	OpportunityID *uuid.UUID
}

type BackloadCommands interface {
	ToggleDriverAvailability(ctx context.Context, req ToggleAvailabilityRequest) (*ToggleAvailabilityResult, error)
	GenerateLoadRecommendations(ctx context.Context, req backload.RecommendationRequest) ([]backload.Recommendation, error)
}

type backloadUseCaseImpl struct {
	uow    shared.UnitOfWork
	engine *backload.Engine
	clock  clock.Clock
	logger *slog.Logger
}

func NewBackloadUseCase(uow shared.UnitOfWork, engine *backload.Engine, clk clock.Clock, logger *slog.Logger) BackloadCommands {
	return &backloadUseCaseImpl{uow: uow, engine: engine, clock: clk, logger: logger}
}

func (uc *backloadUseCaseImpl) ToggleDriverAvailability(ctx context.Context, req ToggleAvailabilityRequest) (*ToggleAvailabilityResult, error) {
	if req.IsAvailable {
		return uc.offer(ctx, req)
	}
	return uc.withdraw(ctx, req)
}

func (uc *backloadUseCaseImpl) offer(ctx context.Context, req ToggleAvailabilityRequest) (*ToggleAvailabilityResult, error) {
	window, err := backload.NewWindow(req.AvailableFrom, req.AvailableTo)
	if err != nil {
		return nil, err
	}

	var opportunityID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		// one active opportunity per driver
		current, err := tx.Opportunities().FindAvailableByDriverForUpdate(ctx, req.DriverID)
		switch {
		case err == nil:
			if cerr := current.Close(now); cerr != nil {
				return cerr
			}
			if uerr := tx.Opportunities().Update(ctx, current); uerr != nil {
				return uerr
			}
		case !infra.IsKind(err, infra.KindNotFound):
			return err
		}

		opp, events, err := backload.Offer(backload.OfferParams{
			DriverID:        req.DriverID,
			VehicleID:       req.VehicleID,
			VehicleTypeID:   req.VehicleTypeID,
			OriginCity:      req.OriginCity,
			DestinationCity: req.DestinationCity,
			Window:          window,
			CapacityKg:      req.CapacityKg,
		}, now)
		if err != nil {
			return err
		}
		if err := tx.Opportunities().Create(ctx, opp); err != nil {
			return err
		}
		opportunityID = opp.ID()
		return tx.Outbox().Append(ctx, events...)
	})
	if err != nil {
		return nil, err
	}
	return &ToggleAvailabilityResult{Success: true, OpportunityID: &opportunityID}, nil
}

func (uc *backloadUseCaseImpl) withdraw(ctx context.Context, req ToggleAvailabilityRequest) (*ToggleAvailabilityResult, error) {
	var opportunityID *uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		current, err := tx.Opportunities().FindAvailableByDriverForUpdate(ctx, req.DriverID)
		if infra.IsKind(err, infra.KindNotFound) {
			return tx.Outbox().Append(ctx, backload.WithdrawnWithoutOffer(req.DriverID, req.VehicleID, now))
		}
		if err != nil {
			return err
		}

		events, err := current.Withdraw(now)
		if err != nil {
			return err
		}
		if err := tx.Opportunities().Update(ctx, current); err != nil {
			return err
		}
		id := current.ID()
		opportunityID = &id
		return tx.Outbox().Append(ctx, events...)
	})
	if err != nil {
		return nil, err
	}
	return &ToggleAvailabilityResult{Success: true, OpportunityID: opportunityID}, nil
}

func (uc *backloadUseCaseImpl) GenerateLoadRecommendations(ctx context.Context, req backload.RecommendationRequest) ([]backload.Recommendation, error) {
	if req.CompletionTime.IsZero() {
		req.CompletionTime = uc.clock.Now()
	}

	var (
		opportunities []*backload.Opportunity
		history       []*utilization.Route
	)
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if opportunities, err = tx.Opportunities().ListAvailable(ctx); err != nil {
			return err
		}
		history, err = tx.Routes().ListByPeriod(ctx, utilization.MonthOf(req.CompletionTime).Start)
		return err
	})
	if err != nil {
		return nil, err
	}

	recs := uc.engine.Recommend(req, opportunities, history)
	if len(recs) == 0 {
		return recs, nil
	}

	generated := backload.GeneratedEvent(req, recs, uc.clock.Now())
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Outbox().Append(ctx, generated)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("load recommendations generated",
		"driver_id", req.DriverID,
		"count", len(recs))
	return recs, nil
}
