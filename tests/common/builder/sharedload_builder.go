//go:build unit || e2e

package builder

import (
	"time"

	"freight-core/internal/domain/sharedload"
	reqdto "freight-core/internal/handler/dto/request"
	"freight-core/internal/usecase/commands"
	"freight-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type SharedLoadBuilder struct {
	Booking         *BookingBuilder
	VehicleCapacity float64
	VehicleVolume   *float64
}

func NewSharedLoadBuilder() *SharedLoadBuilder {
	return &SharedLoadBuilder{
		Booking:         NewBookingBuilder(),
		VehicleCapacity: 10000,
	}
}

func (s *SharedLoadBuilder) With(mutate func(*SharedLoadBuilder)) *SharedLoadBuilder {
	mutate(s)
	return s
}

func (s *SharedLoadBuilder) WithWeight(kg float64) *SharedLoadBuilder {
	s.Booking.CargoWeightKg = kg
	return s
}

// Build methods
func (s *SharedLoadBuilder) BuildRoute() (sharedload.Route, error) {
	b := s.Booking
	return sharedload.NewRoute(b.OriginCity, b.DestCity, b.PickupAt, b.VehicleTypeID)
}

func (s *SharedLoadBuilder) BuildPool(now time.Time) (*sharedload.Pool, error) {
	route, err := s.BuildRoute()
	if err != nil {
		return nil, err
	}
	return sharedload.NewPool(route, s.VehicleCapacity, s.VehicleVolume, now)
}

func (s *SharedLoadBuilder) BuildCommand() (commands.CreateSharedLoadRequest, error) {
	p, err := s.Booking.BuildParams()
	if err != nil {
		return commands.CreateSharedLoadRequest{}, err
	}
	return commands.CreateSharedLoadRequest{
		CustomerID:      p.CustomerID,
		Origin:          p.Origin,
		Destination:     p.Destination,
		PickupAt:        p.PickupAt,
		Cargo:           p.Cargo,
		Shipper:         p.Shipper,
		Receiver:        p.Receiver,
		VehicleTypeID:   p.VehicleTypeID,
		VehicleCapacity: s.VehicleCapacity,
		VehicleVolume:   s.VehicleVolume,
	}, nil
}

func (s *SharedLoadBuilder) BuildCreateRequestDTO() reqdto.CreateSharedLoadRequest {
	base := s.Booking.BuildCreateRequestDTO()
	return reqdto.CreateSharedLoadRequest{
		VehicleTypeID:   base.VehicleTypeID,
		Origin:          base.Origin,
		Destination:     base.Destination,
		PickupAt:        base.PickupAt,
		Cargo:           base.Cargo,
		Shipper:         base.Shipper,
		Receiver:        base.Receiver,
		VehicleCapacity: s.VehicleCapacity,
		VehicleVolume:   s.VehicleVolume,
	}
}

func (s *SharedLoadBuilder) BuildPoolView() *queries.PoolView {
	b := s.Booking
	used := b.CargoWeightKg
	return &queries.PoolView{
		ID:                 uuid.New(),
		OriginCity:         b.OriginCity,
		DestinationCity:    b.DestCity,
		PickupDate:         sharedload.DateOf(b.PickupAt),
		VehicleTypeID:      b.VehicleTypeID,
		TotalCapacityKg:    s.VehicleCapacity,
		UsedCapacityKg:     used,
		AvailableKg:        s.VehicleCapacity - used,
		TotalVolumeM3:      s.VehicleVolume,
		UtilizationPercent: used / s.VehicleCapacity * 100,
		Status:             sharedload.StatusOpen.String(),
		BookingIDs:         []uuid.UUID{uuid.New()},
		CreatedAt:          b.Now,
		UpdatedAt:          b.Now,
	}
}
