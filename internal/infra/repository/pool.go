package repository

import (
	"context"
	"log/slog"

	"freight-core/internal/domain/sharedload"
	"freight-core/internal/infra"
	"freight-core/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const poolColumns = `id, origin_city, destination_city, pickup_date, vehicle_type_id, vehicle_id, driver_id,
	total_weight_kg, used_weight_kg, total_volume_m3, used_volume_m3, status, full_notified,
	version, created_at, updated_at`

type PoolRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewPoolRepository(db DBTX, logger *slog.Logger) *PoolRepository {
	return &PoolRepository{db: db, logger: logger}
}

func (r *PoolRepository) Create(ctx context.Context, p *sharedload.Pool) error {
	s := p.Snapshot()
	_, err := r.db.Exec(ctx, `INSERT INTO shared_load_pools (`+poolColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1, $14, $15)`,
		s.ID, s.Route.OriginCity, s.Route.DestinationCity, s.Route.PickupDate, s.Route.VehicleTypeID,
		pgconv.UUIDPtrToPgtype(s.VehicleID), pgconv.UUIDPtrToPgtype(s.DriverID),
		s.TotalWeight, s.UsedWeight, pgconv.Float64PtrToPgtype(s.TotalVolume), s.UsedVolume,
		string(s.Status), s.FullNotified, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to create pool", err)
	}
	return r.writeMembers(ctx, s)
}

func (r *PoolRepository) Update(ctx context.Context, p *sharedload.Pool) error {
	s := p.Snapshot()
	tag, err := r.db.Exec(ctx, `UPDATE shared_load_pools SET
			vehicle_id = $3, driver_id = $4, used_weight_kg = $5, used_volume_m3 = $6,
			status = $7, full_notified = $8, updated_at = $9, version = version + 1
		WHERE id = $1 AND version = $2`,
		s.ID, s.Version,
		pgconv.UUIDPtrToPgtype(s.VehicleID), pgconv.UUIDPtrToPgtype(s.DriverID),
		s.UsedWeight, s.UsedVolume, string(s.Status), s.FullNotified, s.UpdatedAt,
	)
	if err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to update pool", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "pool version changed", nil)
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM pool_members WHERE pool_id = $1`, s.ID); err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to clear pool members", err)
	}
	return r.writeMembers(ctx, s)
}

func (r *PoolRepository) FindByID(ctx context.Context, id uuid.UUID) (*sharedload.Pool, error) {
	return r.findOne(ctx, `SELECT `+poolColumns+` FROM shared_load_pools WHERE id = $1`, id)
}

func (r *PoolRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sharedload.Pool, error) {
	return r.findOne(ctx, `SELECT `+poolColumns+` FROM shared_load_pools WHERE id = $1 FOR UPDATE`, id)
}

// FindOpenForRouteForUpdate takes a transaction-scoped advisory lock on the
// route before locking its open pools, so two packers on a route with no open
// pool yet cannot both create one.
func (r *PoolRepository) FindOpenForRouteForUpdate(ctx context.Context, route sharedload.Route) ([]*sharedload.Pool, error) {
	args := []any{route.OriginCity, route.DestinationCity, sharedload.DateOf(route.PickupDate), route.VehicleTypeID}
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended(
			lower(trim($1)) || '|' || lower(trim($2)) || '|' || $3::date::text || '|' || $4::uuid::text, 0))`,
		args...,
	); err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to lock pool route", err)
	}

	rows, err := r.db.Query(ctx, `SELECT `+poolColumns+` FROM shared_load_pools
		WHERE status = 'open'
			AND lower(origin_city) = lower($1)
			AND lower(destination_city) = lower($2)
			AND pickup_date = $3
			AND vehicle_type_id = $4
		ORDER BY created_at
		FOR UPDATE`,
		args...,
	)
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to list open pools", err)
	}
	snaps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (sharedload.Snapshot, error) {
		return scanPool(row)
	})
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to scan open pools", err)
	}

	pools := make([]*sharedload.Pool, 0, len(snaps))
	for _, s := range snaps {
		if s.Members, err = r.members(ctx, s.ID); err != nil {
			return nil, err
		}
		pools = append(pools, sharedload.Reconstruct(s))
	}
	return pools, nil
}

func (r *PoolRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*sharedload.Pool, error) {
	s, err := scanPool(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to find pool", err)
	}
	if s.Members, err = r.members(ctx, s.ID); err != nil {
		return nil, err
	}
	return sharedload.Reconstruct(s), nil
}

func (r *PoolRepository) members(ctx context.Context, poolID uuid.UUID) ([]sharedload.Member, error) {
	rows, err := r.db.Query(ctx, `SELECT booking_id, weight_kg, volume_m3 FROM pool_members
		WHERE pool_id = $1 ORDER BY position`, poolID)
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to load pool members", err)
	}
	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (sharedload.Member, error) {
		var (
			m      sharedload.Member
			volume pgtype.Float8
		)
		if err := row.Scan(&m.BookingID, &m.Load.WeightKg, &volume); err != nil {
			return m, err
		}
		v, err := pgconv.Float64PtrFromPgtype(volume)
		m.Load.VolumeM3 = v
		return m, err
	})
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to scan pool members", err)
	}
	return members, nil
}

func (r *PoolRepository) writeMembers(ctx context.Context, s sharedload.Snapshot) error {
	if len(s.Members) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, m := range s.Members {
		batch.Queue(`INSERT INTO pool_members (pool_id, booking_id, weight_kg, volume_m3, position)
			VALUES ($1, $2, $3, $4, $5)`,
			s.ID, m.BookingID, m.Load.WeightKg, pgconv.Float64PtrToPgtype(m.Load.VolumeM3), i)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to write pool members", err)
	}
	return nil
}

func scanPool(row pgx.Row) (sharedload.Snapshot, error) {
	var (
		s                   sharedload.Snapshot
		vehicleID, driverID pgtype.UUID
		totalVolume         pgtype.Float8
		status              string
	)
	err := row.Scan(
		&s.ID, &s.Route.OriginCity, &s.Route.DestinationCity, &s.Route.PickupDate, &s.Route.VehicleTypeID,
		&vehicleID, &driverID, &s.TotalWeight, &s.UsedWeight, &totalVolume, &s.UsedVolume,
		&status, &s.FullNotified, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return s, err
	}
	if s.TotalVolume, err = pgconv.Float64PtrFromPgtype(totalVolume); err != nil {
		return s, err
	}
	s.VehicleID = pgconv.UUIDPtrFromPgtype(vehicleID)
	s.DriverID = pgconv.UUIDPtrFromPgtype(driverID)
	s.Status = sharedload.Status(status)
	s.Route.PickupDate = sharedload.DateOf(s.Route.PickupDate)
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
