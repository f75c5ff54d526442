//go:build unit || e2e

package builder

import (
	"fmt"
	"sync/atomic"
	"time"

	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/geo"
	reqdto "freight-core/internal/handler/dto/request"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/usecase/commands"
	"freight-core/internal/usecase/queries"

	"github.com/google/uuid"
)

// Riyadh and Jeddah city centres.
const (
	RiyadhLat = 24.7136
	RiyadhLng = 46.6753
	JeddahLat = 21.4858
	JeddahLng = 39.1925
)

var FixedNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	CustomerID       uuid.UUID
	VehicleTypeID    uuid.UUID
	OriginAddress    string
	OriginCity       string
	OriginLat        float64
	OriginLng        float64
	DestAddress      string
	DestCity         string
	DestLat          float64
	DestLng          float64
	PickupAt         time.Time
	CargoDescription string
	CargoWeightKg    float64
	CargoVolumeM3    *float64
	CargoCategory    string
	ShipperName      string
	ShipperPhone     string
	ReceiverName     string
	ReceiverPhone    string
	Type             booking.Type
	TotalFare        float64
	Now              time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		CustomerID:       uuid.New(),
		VehicleTypeID:    uuid.New(),
		OriginAddress:    "King Fahd Rd, Al Olaya",
		OriginCity:       "Riyadh",
		OriginLat:        RiyadhLat,
		OriginLng:        RiyadhLng,
		DestAddress:      "Tahlia St, Al Andalus",
		DestCity:         "Jeddah",
		DestLat:          JeddahLat,
		DestLng:          JeddahLng,
		PickupAt:         FixedNow.Add(24 * time.Hour),
		CargoDescription: "Palletised electronics",
		CargoWeightKg:    2000,
		CargoCategory:    "electronics",
		ShipperName:      "Ahmed Al-Harbi",
		ShipperPhone:     "+966500000001",
		ReceiverName:     "Sara Al-Qahtani",
		ReceiverPhone:    "+966500000002",
		Type:             booking.TypeOneWay,
		TotalFare:        500,
		Now:              FixedNow,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	params, err := b.BuildParams()
	if err != nil {
		return nil, err
	}
	clk := clock.NewMockClock(b.Now)
	services := &booking.Services{Clock: clk, Numbers: NewSequenceNumbers("BKTEST")}
	bk, _, err := booking.NewBooking(services, params)
	return bk, err
}

func (b *BookingBuilder) BuildParams() (booking.NewParams, error) {
	origin, err := b.origin()
	if err != nil {
		return booking.NewParams{}, err
	}
	destination, err := b.destination()
	if err != nil {
		return booking.NewParams{}, err
	}
	cargo, err := booking.NewCargo(b.CargoDescription, b.CargoWeightKg, b.CargoVolumeM3, b.CargoCategory)
	if err != nil {
		return booking.NewParams{}, err
	}
	shipper, err := booking.NewContact(b.ShipperName, b.ShipperPhone)
	if err != nil {
		return booking.NewParams{}, err
	}
	receiver, err := booking.NewContact(b.ReceiverName, b.ReceiverPhone)
	if err != nil {
		return booking.NewParams{}, err
	}
	return booking.NewParams{
		CustomerID:    b.CustomerID,
		VehicleTypeID: b.VehicleTypeID,
		Origin:        origin,
		Destination:   destination,
		PickupAt:      b.PickupAt,
		Cargo:         cargo,
		Shipper:       shipper,
		Receiver:      receiver,
		Type:          b.Type,
		TotalFare:     booking.MoneyFromAmount(b.TotalFare),
	}, nil
}

func (b *BookingBuilder) BuildCommand() (commands.CreateBookingRequest, error) {
	p, err := b.BuildParams()
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	return commands.CreateBookingRequest{
		CustomerID:    p.CustomerID,
		VehicleTypeID: p.VehicleTypeID,
		Origin:        p.Origin,
		Destination:   p.Destination,
		PickupAt:      p.PickupAt,
		Cargo:         p.Cargo,
		Shipper:       p.Shipper,
		Receiver:      p.Receiver,
		Type:          p.Type,
	}, nil
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	bookingType := b.Type.String()
	return reqdto.CreateBookingRequest{
		VehicleTypeID: b.VehicleTypeID,
		Origin:        reqdto.LocationRequest{Address: b.OriginAddress, City: b.OriginCity, Lat: b.OriginLat, Lng: b.OriginLng},
		Destination:   reqdto.LocationRequest{Address: b.DestAddress, City: b.DestCity, Lat: b.DestLat, Lng: b.DestLng},
		PickupAt:      b.PickupAt,
		Cargo: reqdto.CargoRequest{
			Description: b.CargoDescription,
			WeightKg:    b.CargoWeightKg,
			VolumeM3:    b.CargoVolumeM3,
			Category:    b.CargoCategory,
		},
		Shipper:     reqdto.ContactRequest{Name: b.ShipperName, Phone: b.ShipperPhone},
		Receiver:    reqdto.ContactRequest{Name: b.ReceiverName, Phone: b.ReceiverPhone},
		BookingType: &bookingType,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:               uuid.New(),
		Number:           "BK20250310080000ABCDEF",
		CustomerID:       b.CustomerID,
		VehicleTypeID:    b.VehicleTypeID,
		Origin:           queries.LocationView{Address: b.OriginAddress, City: b.OriginCity, Lat: b.OriginLat, Lng: b.OriginLng},
		Destination:      queries.LocationView{Address: b.DestAddress, City: b.DestCity, Lat: b.DestLat, Lng: b.DestLng},
		PickupAt:         b.PickupAt,
		CargoDescription: b.CargoDescription,
		CargoWeightKg:    b.CargoWeightKg,
		CargoVolumeM3:    b.CargoVolumeM3,
		CargoCategory:    b.CargoCategory,
		ShipperName:      b.ShipperName,
		ShipperPhone:     b.ShipperPhone,
		ReceiverName:     b.ReceiverName,
		ReceiverPhone:    b.ReceiverPhone,
		Type:             b.Type.String(),
		Status:           booking.StatusPending.String(),
		TotalFare:        b.TotalFare,
		FinalFare:        b.TotalFare,
		Version:          1,
		CreatedAt:        b.Now,
		UpdatedAt:        b.Now,
	}
}

func (b *BookingBuilder) origin() (geo.Location, error) {
	coords, err := geo.NewCoordinates(b.OriginLat, b.OriginLng)
	if err != nil {
		return geo.Location{}, err
	}
	return geo.NewLocation(b.OriginAddress, b.OriginCity, coords)
}

func (b *BookingBuilder) destination() (geo.Location, error) {
	coords, err := geo.NewCoordinates(b.DestLat, b.DestLng)
	if err != nil {
		return geo.Location{}, err
	}
	return geo.NewLocation(b.DestAddress, b.DestCity, coords)
}

// SequenceNumbers hands out predictable booking numbers.
type SequenceNumbers struct {
	prefix string
	n      atomic.Int64
}

func NewSequenceNumbers(prefix string) *SequenceNumbers {
	return &SequenceNumbers{prefix: prefix}
}

func (s *SequenceNumbers) Next() (string, error) {
	return fmt.Sprintf("%s%06d", s.prefix, s.n.Add(1)), nil
}

// RepeatingNumbers always returns the same number, forcing collisions.
type RepeatingNumbers struct{ Number string }

func (r RepeatingNumbers) Next() (string, error) { return r.Number, nil }
