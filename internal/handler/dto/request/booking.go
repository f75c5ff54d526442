package request

import (
	"time"

	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/geo"
	"freight-core/internal/pkg/patch"
	"freight-core/internal/usecase/commands"

	"github.com/google/uuid"
)

type LocationRequest struct {
	Address string  `json:"address" binding:"max=500"`
	City    string  `json:"city" binding:"required,max=100"`
	Lat     float64 `json:"lat" binding:"min=-90,max=90"`
	Lng     float64 `json:"lng" binding:"min=-180,max=180"`
}

func (r LocationRequest) ToDomain() (geo.Location, error) {
	coords, err := geo.NewCoordinates(r.Lat, r.Lng)
	if err != nil {
		return geo.Location{}, err
	}
	return geo.NewLocation(r.Address, r.City, coords)
}

type CargoRequest struct {
	Description string   `json:"description" binding:"max=1000"`
	WeightKg    float64  `json:"weight_kg" binding:"required,gt=0"`
	VolumeM3    *float64 `json:"volume_m3,omitempty" binding:"omitempty,gt=0"`
	Category    string   `json:"category" binding:"max=100"`
}

func (r CargoRequest) ToDomain() (booking.Cargo, error) {
	return booking.NewCargo(r.Description, r.WeightKg, r.VolumeM3, r.Category)
}

type ContactRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Phone string `json:"phone" binding:"required,max=50"`
}

func (r ContactRequest) ToDomain() (booking.Contact, error) {
	return booking.NewContact(r.Name, r.Phone)
}

// shipment is the part of a booking request shared by one-way and shared-load bookings.
type shipment struct {
	origin      geo.Location
	destination geo.Location
	cargo       booking.Cargo
	shipper     booking.Contact
	receiver    booking.Contact
}

func toShipment(origin, destination LocationRequest, cargo CargoRequest, shipper, receiver ContactRequest) (shipment, error) {
	var (
		s   shipment
		err error
	)
	if s.origin, err = origin.ToDomain(); err != nil {
		return shipment{}, err
	}
	if s.destination, err = destination.ToDomain(); err != nil {
		return shipment{}, err
	}
	if s.cargo, err = cargo.ToDomain(); err != nil {
		return shipment{}, err
	}
	if s.shipper, err = shipper.ToDomain(); err != nil {
		return shipment{}, err
	}
	if s.receiver, err = receiver.ToDomain(); err != nil {
		return shipment{}, err
	}
	return s, nil
}

type CreateBookingRequest struct {
	// CustomerID is honoured for operators booking on a customer's behalf.
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	VehicleTypeID uuid.UUID       `json:"vehicle_type_id" binding:"required"`
	Origin        LocationRequest `json:"origin"`
	Destination   LocationRequest `json:"destination"`
	PickupAt      time.Time       `json:"pickup_at" binding:"required"`
	Cargo         CargoRequest    `json:"cargo"`
	Shipper       ContactRequest  `json:"shipper"`
	Receiver      ContactRequest  `json:"receiver"`
	BookingType   *string         `json:"booking_type,omitempty" binding:"omitempty,oneof=one_way backload"`
}

func (r CreateBookingRequest) ToCommand(customerID uuid.UUID) (commands.CreateBookingRequest, error) {
	s, err := toShipment(r.Origin, r.Destination, r.Cargo, r.Shipper, r.Receiver)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	return commands.CreateBookingRequest{
		CustomerID:    customerID,
		VehicleTypeID: r.VehicleTypeID,
		Origin:        s.origin,
		Destination:   s.destination,
		PickupAt:      r.PickupAt,
		Cargo:         s.cargo,
		Shipper:       s.shipper,
		Receiver:      s.receiver,
		Type:          booking.Type(patch.Coalesce(r.BookingType, string(booking.TypeOneWay))),
	}, nil
}

type AssignDriverRequest struct {
	DriverID  uuid.UUID `json:"driver_id" binding:"required"`
	VehicleID uuid.UUID `json:"vehicle_id" binding:"required"`
}

func (r AssignDriverRequest) ToCommand(bookingID uuid.UUID) commands.AssignDriverRequest {
	return commands.AssignDriverRequest{
		BookingID: bookingID,
		DriverID:  r.DriverID,
		VehicleID: r.VehicleID,
	}
}

type MarkReachedRequest struct {
	// DriverID is required when an operator reports on the driver's behalf.
	DriverID *uuid.UUID `json:"driver_id,omitempty"`
	Lat      float64    `json:"lat" binding:"min=-90,max=90"`
	Lng      float64    `json:"lng" binding:"min=-180,max=180"`
	PhotoRef string     `json:"photo_ref" binding:"max=500"`
}

func (r MarkReachedRequest) ToCommand(bookingID, driverID uuid.UUID) commands.MarkReachedRequest {
	return commands.MarkReachedRequest{
		BookingID: bookingID,
		DriverID:  driverID,
		Lat:       r.Lat,
		Lng:       r.Lng,
		PhotoRef:  r.PhotoRef,
	}
}

// TransitionRequest is the optional body of the driver-side status steps.
type TransitionRequest struct {
	// DriverID is required when an operator moves the booking on the driver's behalf.
	DriverID *uuid.UUID `json:"driver_id,omitempty"`
}

type CompleteBookingRequest struct {
	DriverID    *uuid.UUID `json:"driver_id,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CompletedAtOrZero leaves the zero time for the command to replace with its clock.
func (r CompleteBookingRequest) CompletedAtOrZero() time.Time {
	return patch.Coalesce(r.CompletedAt, time.Time{})
}

type CancelBookingRequest struct {
	// CustomerID lets an operator cancel only if the booking belongs to that customer.
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	Reason     string     `json:"reason" binding:"required,max=500"`
}

type ApplyDiscountRequest struct {
	Amount float64 `json:"amount" binding:"gte=0"`
}
