package repository

import (
	"context"
	"log/slog"

	"freight-core/internal/domain/backload"
	"freight-core/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const opportunityColumns = `id, driver_id, vehicle_id, vehicle_type_id, origin_city, destination_city,
	available_from, available_to, capacity_kg, status, version, created_at, updated_at`

type OpportunityRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewOpportunityRepository(db DBTX, logger *slog.Logger) *OpportunityRepository {
	return &OpportunityRepository{db: db, logger: logger}
}

func (r *OpportunityRepository) Create(ctx context.Context, o *backload.Opportunity) error {
	s := o.Snapshot()
	_, err := r.db.Exec(ctx, `INSERT INTO backload_opportunities (`+opportunityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, $11, $12)`,
		s.ID, s.DriverID, s.VehicleID, s.VehicleTypeID, s.OriginCity, s.DestinationCity,
		s.Window.From, s.Window.To, s.CapacityKg, string(s.Status), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to create opportunity", err)
	}
	return nil
}

func (r *OpportunityRepository) Update(ctx context.Context, o *backload.Opportunity) error {
	s := o.Snapshot()
	tag, err := r.db.Exec(ctx, `UPDATE backload_opportunities
		SET status = $3, updated_at = $4, version = version + 1
		WHERE id = $1 AND version = $2`,
		s.ID, s.Version, string(s.Status), s.UpdatedAt,
	)
	if err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to update opportunity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "opportunity version changed", nil)
	}
	return nil
}

func (r *OpportunityRepository) FindAvailableByDriverForUpdate(ctx context.Context, driverID uuid.UUID) (*backload.Opportunity, error) {
	s, err := scanOpportunity(r.db.QueryRow(ctx, `SELECT `+opportunityColumns+`
		FROM backload_opportunities
		WHERE driver_id = $1 AND status = 'available'
		FOR UPDATE`, driverID))
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to find available opportunity", err)
	}
	return backload.Reconstruct(s), nil
}

func (r *OpportunityRepository) ListAvailable(ctx context.Context) ([]*backload.Opportunity, error) {
	rows, err := r.db.Query(ctx, `SELECT `+opportunityColumns+`
		FROM backload_opportunities
		WHERE status = 'available'
		ORDER BY created_at`)
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to list opportunities", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*backload.Opportunity, error) {
		s, err := scanOpportunity(row)
		if err != nil {
			return nil, err
		}
		return backload.Reconstruct(s), nil
	})
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to scan opportunities", err)
	}
	return out, nil
}

func scanOpportunity(row pgx.Row) (backload.Snapshot, error) {
	var (
		s      backload.Snapshot
		status string
	)
	err := row.Scan(
		&s.ID, &s.DriverID, &s.VehicleID, &s.VehicleTypeID, &s.OriginCity, &s.DestinationCity,
		&s.Window.From, &s.Window.To, &s.CapacityKg, &status, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return s, err
	}
	s.Status = backload.Status(status)
	s.Window.From = s.Window.From.UTC()
	s.Window.To = s.Window.To.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
