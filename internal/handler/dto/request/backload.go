package request

import (
	"time"

	"freight-core/internal/domain/backload"
	"freight-core/internal/pkg/patch"
	"freight-core/internal/usecase/commands"

	"github.com/google/uuid"
)

type ToggleAvailabilityRequest struct {
	// DriverID is required when an operator toggles on the driver's behalf.
	DriverID        *uuid.UUID `json:"driver_id,omitempty"`
	VehicleID       uuid.UUID  `json:"vehicle_id" binding:"required"`
	IsAvailable     bool       `json:"is_available"`
	OriginCity      string     `json:"origin_city" binding:"required_if=IsAvailable true,max=100"`
	DestinationCity string     `json:"destination_city" binding:"required_if=IsAvailable true,max=100"`
	AvailableFrom   time.Time  `json:"available_from" binding:"required_if=IsAvailable true"`
	AvailableTo     time.Time  `json:"available_to" binding:"required_if=IsAvailable true"`
	CapacityKg      float64    `json:"capacity_kg" binding:"gte=0"`
	VehicleTypeID   uuid.UUID  `json:"vehicle_type_id"`
}

func (r ToggleAvailabilityRequest) ToCommand(driverID uuid.UUID) commands.ToggleAvailabilityRequest {
	return commands.ToggleAvailabilityRequest{
		DriverID:        driverID,
		VehicleID:       r.VehicleID,
		IsAvailable:     r.IsAvailable,
		OriginCity:      r.OriginCity,
		DestinationCity: r.DestinationCity,
		AvailableFrom:   r.AvailableFrom,
		AvailableTo:     r.AvailableTo,
		CapacityKg:      r.CapacityKg,
		VehicleTypeID:   r.VehicleTypeID,
	}
}

type RecommendationRequest struct {
	DriverID        *uuid.UUID `json:"driver_id,omitempty"`
	CurrentCity     string     `json:"current_city" binding:"required,max=100"`
	DestinationCity string     `json:"destination_city" binding:"max=100"`
	CompletionTime  *time.Time `json:"completion_time,omitempty"`
}

// ToDomain falls back to now when the driver did not say when the current trip ends.
func (r RecommendationRequest) ToDomain(driverID uuid.UUID, now time.Time) backload.RecommendationRequest {
	return backload.RecommendationRequest{
		DriverID:        driverID,
		CurrentCity:     r.CurrentCity,
		DestinationCity: r.DestinationCity,
		CompletionTime:  patch.Coalesce(r.CompletionTime, now),
	}
}
