package response

import (
	"time"

	"freight-core/internal/usecase/commands"
	"freight-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CreateSharedLoadResponse struct {
	BookingID          uuid.UUID `json:"booking_id"`
	BookingNumber      string    `json:"booking_number"`
	PoolID             uuid.UUID `json:"pool_id"`
	IsNewPool          bool      `json:"is_new_pool"`
	UtilizationPercent float64   `json:"utilization_percent"`
	Fare               float64   `json:"fare"`
}

func FromCreateSharedLoadResult(r *commands.CreateSharedLoadResult) *CreateSharedLoadResponse {
	return &CreateSharedLoadResponse{
		BookingID:          r.BookingID,
		BookingNumber:      r.BookingNumber,
		PoolID:             r.PoolID,
		IsNewPool:          r.IsNewPool,
		UtilizationPercent: r.UtilizationPercent,
		Fare:               r.Fare,
	}
}

type PoolResponse struct {
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

func FromPoolView(v *queries.PoolView) (*PoolResponse, error) {
	var res PoolResponse
	if err := copier.CopyWithOption(&res, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if res.BookingIDs == nil {
		res.BookingIDs = []uuid.UUID{}
	}
	return &res, nil
}
