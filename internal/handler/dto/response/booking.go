package response

import (
	"time"

	"freight-core/internal/usecase/commands"
	"freight-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LocationResponse struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type BookingResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Number             string           `json:"number"`
	CustomerID         uuid.UUID        `json:"customer_id"`
	VehicleTypeID      uuid.UUID        `json:"vehicle_type_id"`
	VehicleID          *uuid.UUID       `json:"vehicle_id,omitempty"`
	DriverID           *uuid.UUID       `json:"driver_id,omitempty"`
	Origin             LocationResponse `json:"origin"`
	Destination        LocationResponse `json:"destination"`
	PickupAt           time.Time        `json:"pickup_at"`
	CargoDescription   string           `json:"cargo_description"`
	CargoWeightKg      float64          `json:"cargo_weight_kg"`
	CargoVolumeM3      *float64         `json:"cargo_volume_m3,omitempty"`
	CargoCategory      string           `json:"cargo_category"`
	ShipperName        string           `json:"shipper_name"`
	ShipperPhone       string           `json:"shipper_phone"`
	ReceiverName       string           `json:"receiver_name"`
	ReceiverPhone      string           `json:"receiver_phone"`
	Type               string           `json:"type"`
	Status             string           `json:"status"`
	TotalFare          float64          `json:"total_fare"`
	Discount           *float64         `json:"discount,omitempty"`
	FinalFare          float64          `json:"final_fare"`
	SharedPoolID       *uuid.UUID       `json:"shared_pool_id,omitempty"`
	CancellationReason *string          `json:"cancellation_reason,omitempty"`
	PickupPhotoRef     *string          `json:"pickup_photo_ref,omitempty"`
	AssignedAt         *time.Time       `json:"assigned_at,omitempty"`
	AcceptedAt         *time.Time       `json:"accepted_at,omitempty"`
	ReachedAt          *time.Time       `json:"reached_at,omitempty"`
	LoadingStartedAt   *time.Time       `json:"loading_started_at,omitempty"`
	InTransitAt        *time.Time       `json:"in_transit_at,omitempty"`
	DeliveredAt        *time.Time       `json:"delivered_at,omitempty"`
	CompletedAt        *time.Time       `json:"completed_at,omitempty"`
	CancelledAt        *time.Time       `json:"cancelled_at,omitempty"`
	Version            int              `json:"version"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

type CreateBookingResponse struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	TotalFare     float64   `json:"total_fare"`
}

func FromCreateBookingResult(r *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingID:     r.BookingID,
		BookingNumber: r.BookingNumber,
		TotalFare:     r.TotalFare,
	}
}

type ComplianceResponse struct {
	Compliant        bool     `json:"compliant"`
	ExpiredDocuments []string `json:"expired_documents"`
	MissingDocuments []string `json:"missing_documents"`
	Reason           string   `json:"reason,omitempty"`
}

type AssignDriverResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Compliance ComplianceResponse `json:"compliance"`
}

func FromAssignDriverResult(r *commands.AssignDriverResult) (*AssignDriverResponse, error) {
	var res AssignDriverResponse
	if err := copier.CopyWithOption(&res, r, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if res.Compliance.ExpiredDocuments == nil {
		res.Compliance.ExpiredDocuments = []string{}
	}
	if res.Compliance.MissingDocuments == nil {
		res.Compliance.MissingDocuments = []string{}
	}
	return &res, nil
}

type MarkReachedResponse struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	DistanceKm float64 `json:"distance_km"`
}

func FromMarkReachedResult(r *commands.MarkReachedResult) *MarkReachedResponse {
	return &MarkReachedResponse{
		Success:    r.Success,
		Message:    r.Message,
		DistanceKm: r.DistanceKm,
	}
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
