package booking

import (
	"time"

	"freight-core/internal/domain/geo"

	"github.com/google/uuid"
)

// Snapshot is the persisted shape of a Booking. Repositories read and write
// it; the aggregate itself never leaks its fields.
type Snapshot struct {
	ID                 uuid.UUID
	Number             string
	CustomerID         uuid.UUID
	VehicleTypeID      uuid.UUID
	VehicleID          *uuid.UUID
	DriverID           *uuid.UUID
	Origin             geo.Location
	Destination        geo.Location
	PickupAt           time.Time
	Cargo              Cargo
	Shipper            Contact
	Receiver           Contact
	Type               Type
	Status             Status
	Fare               Fare
	Timeline           Timeline
	CancellationReason *string
	SharedPoolID       *uuid.UUID
	ReachedCoordinates *geo.Coordinates
	PickupPhotoRef     *string
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func Reconstruct(s Snapshot) *Booking {
	return &Booking{
		id:                 s.ID,
		number:             s.Number,
		customerID:         s.CustomerID,
		vehicleTypeID:      s.VehicleTypeID,
		vehicleID:          s.VehicleID,
		driverID:           s.DriverID,
		origin:             s.Origin,
		destination:        s.Destination,
		pickupAt:           s.PickupAt,
		cargo:              s.Cargo,
		shipper:            s.Shipper,
		receiver:           s.Receiver,
		bookingType:        s.Type,
		status:             s.Status,
		fare:               s.Fare,
		timeline:           s.Timeline,
		cancellationReason: s.CancellationReason,
		sharedPoolID:       s.SharedPoolID,
		reachedCoordinates: s.ReachedCoordinates,
		pickupPhotoRef:     s.PickupPhotoRef,
		version:            s.Version,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
	}
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                 b.id,
		Number:             b.number,
		CustomerID:         b.customerID,
		VehicleTypeID:      b.vehicleTypeID,
		VehicleID:          b.vehicleID,
		DriverID:           b.driverID,
		Origin:             b.origin,
		Destination:        b.destination,
		PickupAt:           b.pickupAt,
		Cargo:              b.cargo,
		Shipper:            b.shipper,
		Receiver:           b.receiver,
		Type:               b.bookingType,
		Status:             b.status,
		Fare:               b.fare,
		Timeline:           b.timeline,
		CancellationReason: b.cancellationReason,
		SharedPoolID:       b.sharedPoolID,
		ReachedCoordinates: b.reachedCoordinates,
		PickupPhotoRef:     b.pickupPhotoRef,
		Version:            b.version,
		CreatedAt:          b.createdAt,
		UpdatedAt:          b.updatedAt,
	}
}

// ReconstructCargo and ReconstructContact rebuild value objects from storage
// without re-running input validation.
func ReconstructCargo(description string, weightKg float64, volumeM3 *float64, category string) Cargo {
	return Cargo{description: description, weightKg: weightKg, volumeM3: volumeM3, category: category}
}

func ReconstructContact(name, phone string) Contact {
	return Contact{name: name, phone: phone}
}
