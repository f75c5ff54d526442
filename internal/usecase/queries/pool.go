package queries

import (
	"context"
	"time"

	"freight-core/internal/domain/sharedload"
	"freight-core/internal/infra"
	"freight-core/internal/pkg/errs"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrPoolNotFound = errs.New("shared load pool not found")

type PoolView struct {
	ID                 uuid.UUID   `json:"id"`
	OriginCity         string      `json:"origin_city"`
	DestinationCity    string      `json:"destination_city"`
	PickupDate         time.Time   `json:"pickup_date"`
	VehicleTypeID      uuid.UUID   `json:"vehicle_type_id"`
	TotalCapacityKg    float64     `json:"total_capacity_kg"`
	UsedCapacityKg     float64     `json:"used_capacity_kg"`
	AvailableKg        float64     `json:"available_capacity_kg"`
	TotalVolumeM3      *float64    `json:"total_volume_m3,omitempty"`
	UsedVolumeM3       float64     `json:"used_volume_m3"`
	UtilizationPercent float64     `json:"utilization_percent"`
	Status             string      `json:"status"`
	BookingIDs         []uuid.UUID `json:"booking_ids"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

type PoolQueries interface {
	GetPool(ctx context.Context, id uuid.UUID) (*PoolView, error)
}

type poolQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewPoolQueries(uow shared.UnitOfWork) PoolQueries {
	return &poolQueriesImpl{uow: uow}
}

func (q *poolQueriesImpl) GetPool(ctx context.Context, id uuid.UUID) (*PoolView, error) {
	var view *PoolView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Pools().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view = toPoolView(p)
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPoolNotFound
		}
		return nil, err
	}
	return view, nil
}

func toPoolView(p *sharedload.Pool) *PoolView {
	return &PoolView{
		ID:                 p.ID(),
		OriginCity:         p.Route().OriginCity,
		DestinationCity:    p.Route().DestinationCity,
		PickupDate:         p.Route().PickupDate,
		VehicleTypeID:      p.Route().VehicleTypeID,
		TotalCapacityKg:    p.TotalWeight(),
		UsedCapacityKg:     p.UsedWeight(),
		AvailableKg:        p.AvailableWeight(),
		TotalVolumeM3:      p.TotalVolume(),
		UsedVolumeM3:       p.UsedVolume(),
		UtilizationPercent: p.UtilizationPercent(),
		Status:             p.Status().String(),
		BookingIDs:         p.MemberIDs(),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
}
