package queries

import (
	"context"
	"time"

	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/geo"
	"freight-core/internal/infra"
	"freight-core/internal/pkg/errs"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.New("booking not found")

type LocationView struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type BookingView struct {
	ID                 uuid.UUID    `json:"id"`
	Number             string       `json:"number"`
	CustomerID         uuid.UUID    `json:"customer_id"`
	VehicleTypeID      uuid.UUID    `json:"vehicle_type_id"`
	VehicleID          *uuid.UUID   `json:"vehicle_id,omitempty"`
	DriverID           *uuid.UUID   `json:"driver_id,omitempty"`
	Origin             LocationView `json:"origin"`
	Destination        LocationView `json:"destination"`
	PickupAt           time.Time    `json:"pickup_at"`
	CargoDescription   string       `json:"cargo_description"`
	CargoWeightKg      float64      `json:"cargo_weight_kg"`
	CargoVolumeM3      *float64     `json:"cargo_volume_m3,omitempty"`
	CargoCategory      string       `json:"cargo_category"`
	ShipperName        string       `json:"shipper_name"`
	ShipperPhone       string       `json:"shipper_phone"`
	ReceiverName       string       `json:"receiver_name"`
	ReceiverPhone      string       `json:"receiver_phone"`
	Type               string       `json:"type"`
	Status             string       `json:"status"`
	TotalFare          float64      `json:"total_fare"`
	Discount           *float64     `json:"discount,omitempty"`
	FinalFare          float64      `json:"final_fare"`
	SharedPoolID       *uuid.UUID   `json:"shared_pool_id,omitempty"`
	CancellationReason *string      `json:"cancellation_reason,omitempty"`
	PickupPhotoRef     *string      `json:"pickup_photo_ref,omitempty"`
	AssignedAt         *time.Time   `json:"assigned_at,omitempty"`
	AcceptedAt         *time.Time   `json:"accepted_at,omitempty"`
	ReachedAt          *time.Time   `json:"reached_at,omitempty"`
	LoadingStartedAt   *time.Time   `json:"loading_started_at,omitempty"`
	InTransitAt        *time.Time   `json:"in_transit_at,omitempty"`
	DeliveredAt        *time.Time   `json:"delivered_at,omitempty"`
	CompletedAt        *time.Time   `json:"completed_at,omitempty"`
	CancelledAt        *time.Time   `json:"cancelled_at,omitempty"`
	Version            int          `json:"version"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

type BookingQueries interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*BookingView, error)
}

type bookingQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewBookingQueries(uow shared.UnitOfWork) BookingQueries {
	return &bookingQueriesImpl{uow: uow}
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	var view *BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view = ToBookingView(b)
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

func ToBookingView(b *booking.Booking) *BookingView {
	tl := b.Timeline()
	v := &BookingView{
		ID:                 b.ID(),
		Number:             b.Number(),
		CustomerID:         b.CustomerID(),
		VehicleTypeID:      b.VehicleTypeID(),
		VehicleID:          b.VehicleID(),
		DriverID:           b.DriverID(),
		Origin:             toLocationView(b.Origin()),
		Destination:        toLocationView(b.Destination()),
		PickupAt:           b.PickupAt(),
		CargoDescription:   b.Cargo().Description(),
		CargoWeightKg:      b.Cargo().WeightKg(),
		CargoVolumeM3:      b.Cargo().VolumeM3(),
		CargoCategory:      b.Cargo().Category(),
		ShipperName:        b.Shipper().Name(),
		ShipperPhone:       b.Shipper().Phone(),
		ReceiverName:       b.Receiver().Name(),
		ReceiverPhone:      b.Receiver().Phone(),
		Type:               b.Type().String(),
		Status:             b.Status().String(),
		TotalFare:          b.Fare().Total().Amount(),
		FinalFare:          b.Fare().Final().Amount(),
		SharedPoolID:       b.SharedPoolID(),
		CancellationReason: b.CancellationReason(),
		PickupPhotoRef:     b.PickupPhotoRef(),
		AssignedAt:         tl.AssignedAt,
		AcceptedAt:         tl.AcceptedAt,
		ReachedAt:          tl.ReachedAt,
		LoadingStartedAt:   tl.LoadingStartedAt,
		InTransitAt:        tl.InTransitAt,
		DeliveredAt:        tl.DeliveredAt,
		CompletedAt:        tl.CompletedAt,
		CancelledAt:        tl.CancelledAt,
		Version:            b.Version(),
		CreatedAt:          b.CreatedAt(),
		UpdatedAt:          b.UpdatedAt(),
	}
	if d := b.Fare().Discount(); d != nil {
		amount := d.Amount()
		v.Discount = &amount
	}
	return v
}

func toLocationView(l geo.Location) LocationView {
	return LocationView{
		Address: l.Address(),
		City:    l.City(),
		Lat:     l.Coordinates().Lat,
		Lng:     l.Coordinates().Lng,
	}
}
