package request

import (
	"time"

	"freight-core/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateSharedLoadRequest struct {
	CustomerID      *uuid.UUID      `json:"customer_id,omitempty"`
	VehicleTypeID   uuid.UUID       `json:"vehicle_type_id" binding:"required"`
	Origin          LocationRequest `json:"origin"`
	Destination     LocationRequest `json:"destination"`
	PickupAt        time.Time       `json:"pickup_at" binding:"required"`
	Cargo           CargoRequest    `json:"cargo"`
	Shipper         ContactRequest  `json:"shipper"`
	Receiver        ContactRequest  `json:"receiver"`
	VehicleCapacity float64         `json:"vehicle_capacity_kg" binding:"required,gt=0"`
	VehicleVolume   *float64        `json:"vehicle_volume_m3,omitempty" binding:"omitempty,gt=0"`
}

func (r CreateSharedLoadRequest) ToCommand(customerID uuid.UUID) (commands.CreateSharedLoadRequest, error) {
	s, err := toShipment(r.Origin, r.Destination, r.Cargo, r.Shipper, r.Receiver)
	if err != nil {
		return commands.CreateSharedLoadRequest{}, err
	}
	return commands.CreateSharedLoadRequest{
		CustomerID:      customerID,
		Origin:          s.origin,
		Destination:     s.destination,
		PickupAt:        r.PickupAt,
		Cargo:           s.cargo,
		Shipper:         s.shipper,
		Receiver:        s.receiver,
		VehicleTypeID:   r.VehicleTypeID,
		VehicleCapacity: r.VehicleCapacity,
		VehicleVolume:   r.VehicleVolume,
	}, nil
}
