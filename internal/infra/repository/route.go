package repository

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"freight-core/internal/domain/utilization"
	"freight-core/internal/infra"

	"github.com/jackc/pgx/v5"
)

const routeColumns = `id, origin_city, destination_city, period_start, period_end,
	outbound_count, return_count, empty_km_total, empty_km_saved, updated_at`

type RouteRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewRouteRepository(db DBTX, logger *slog.Logger) *RouteRepository {
	return &RouteRepository{db: db, logger: logger}
}

// Save upserts by id. A different row on the same city pair and period
// surfaces as a duplicate key.
func (r *RouteRepository) Save(ctx context.Context, route *utilization.Route) error {
	s := route.Snapshot()
	_, err := r.db.Exec(ctx, `INSERT INTO route_utilization (
			id, origin_city, destination_city, origin_key, destination_key, period_start, period_end,
			outbound_count, return_count, empty_km_total, empty_km_saved, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			outbound_count = EXCLUDED.outbound_count,
			return_count = EXCLUDED.return_count,
			empty_km_total = EXCLUDED.empty_km_total,
			empty_km_saved = EXCLUDED.empty_km_saved,
			updated_at = EXCLUDED.updated_at`,
		s.ID, s.OriginCity, s.DestinationCity, cityKey(s.OriginCity), cityKey(s.DestinationCity),
		s.Period.Start, s.Period.End, s.OutboundCount, s.ReturnCount, s.EmptyKmTotal, s.EmptyKmSaved, s.UpdatedAt,
	)
	if err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to save route utilization", err)
	}
	return nil
}

func (r *RouteRepository) FindForUpdate(ctx context.Context, origin, destination string, periodStart time.Time) (*utilization.Route, error) {
	s, err := scanRoute(r.db.QueryRow(ctx, `SELECT `+routeColumns+` FROM route_utilization
		WHERE origin_key = $1 AND destination_key = $2 AND period_start = $3
		FOR UPDATE`, cityKey(origin), cityKey(destination), periodStart.UTC()))
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to find route utilization", err)
	}
	return utilization.Reconstruct(s), nil
}

func (r *RouteRepository) ListByPeriod(ctx context.Context, periodStart time.Time) ([]*utilization.Route, error) {
	rows, err := r.db.Query(ctx, `SELECT `+routeColumns+` FROM route_utilization
		WHERE period_start = $1
		ORDER BY origin_city, destination_city`, periodStart.UTC())
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to list route utilization", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*utilization.Route, error) {
		s, err := scanRoute(row)
		if err != nil {
			return nil, err
		}
		return utilization.Reconstruct(s), nil
	})
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to scan route utilization", err)
	}
	return out, nil
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

func scanRoute(row pgx.Row) (utilization.Snapshot, error) {
	var s utilization.Snapshot
	err := row.Scan(
		&s.ID, &s.OriginCity, &s.DestinationCity, &s.Period.Start, &s.Period.End,
		&s.OutboundCount, &s.ReturnCount, &s.EmptyKmTotal, &s.EmptyKmSaved, &s.UpdatedAt,
	)
	if err != nil {
		return s, err
	}
	s.Period.Start = s.Period.Start.UTC()
	s.Period.End = s.Period.End.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
