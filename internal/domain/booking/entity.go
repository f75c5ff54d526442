package booking

import (
	"strings"
	"time"

	"freight-core/internal/domain/event"
	"freight-core/internal/domain/geo"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition   = errs.New("invalid booking status transition")
	ErrAlreadyTerminal     = errs.New("booking is already completed or cancelled")
	ErrInvalidDiscount     = errs.New("discount must be between zero and the total fare")
	ErrInvalidCargo        = errs.New("cargo weight must be positive")
	ErrInvalidContact      = errs.New("contact name and phone are required")
	ErrInvalidFare         = errs.New("fare cannot be negative")
	ErrInvalidBookingType  = errs.New("invalid booking type")
	ErrMissingParty        = errs.New("customer and vehicle type are required")
	ErrMissingPickupTime   = errs.New("pickup time is required")
	ErrDriverNotAssigned   = errs.New("driver is not assigned to this booking")
	ErrCancelReasonMissing = errs.New("cancellation reason is required")
	ErrNotBookingCustomer  = errs.New("booking belongs to another customer")
)

type Services struct {
	Clock   clock.Clock
	Numbers NumberGenerator
}

type NewParams struct {
	CustomerID    uuid.UUID
	VehicleTypeID uuid.UUID
	Origin        geo.Location
	Destination   geo.Location
	PickupAt      time.Time
	Cargo         Cargo
	Shipper       Contact
	Receiver      Contact
	Type          Type
	TotalFare     Money
}

type Booking struct {
	id                 uuid.UUID
	number             string
	customerID         uuid.UUID
	vehicleTypeID      uuid.UUID
	vehicleID          *uuid.UUID
	driverID           *uuid.UUID
	origin             geo.Location
	destination        geo.Location
	pickupAt           time.Time
	cargo              Cargo
	shipper            Contact
	receiver           Contact
	bookingType        Type
	status             Status
	fare               Fare
	timeline           Timeline
	cancellationReason *string
	sharedPoolID       *uuid.UUID
	reachedCoordinates *geo.Coordinates
	pickupPhotoRef     *string
	version            int
	createdAt          time.Time
	updatedAt          time.Time
}

func NewBooking(services *Services, p NewParams) (*Booking, []event.Event, error) {
	if p.CustomerID == uuid.Nil || p.VehicleTypeID == uuid.Nil {
		return nil, nil, ErrMissingParty
	}
	if p.PickupAt.IsZero() {
		return nil, nil, ErrMissingPickupTime
	}
	if !p.Type.IsValid() {
		return nil, nil, ErrInvalidBookingType
	}
	if p.TotalFare.IsNegative() {
		return nil, nil, ErrInvalidFare
	}

	number, err := services.Numbers.Next()
	if err != nil {
		return nil, nil, err
	}

	now := services.Clock.Now().UTC()
	b := &Booking{
		id:            uuid.New(),
		number:        number,
		customerID:    p.CustomerID,
		vehicleTypeID: p.VehicleTypeID,
		origin:        p.Origin,
		destination:   p.Destination,
		pickupAt:      p.PickupAt.UTC(),
		cargo:         p.Cargo,
		shipper:       p.Shipper,
		receiver:      p.Receiver,
		bookingType:   p.Type,
		status:        StatusPending,
		fare:          NewFare(p.TotalFare),
		createdAt:     now,
		updatedAt:     now,
	}

	created := event.BookingCreated{
		BookingID:     b.id,
		BookingNumber: b.number,
		BookingType:   b.bookingType.String(),
		CustomerID:    b.customerID,
		VehicleTypeID: b.vehicleTypeID,
		Origin:        place(b.origin),
		Destination:   place(b.destination),
		PickupAt:      b.pickupAt,
		TotalFare:     b.fare.Total().Amount(),
	}
	return b, []event.Event{b.raise(now, created)}, nil
}

// AttachToPool records the shared-load pool a pending booking was packed into.
func (b *Booking) AttachToPool(poolID uuid.UUID) error {
	if b.bookingType != TypeSharedLoad || b.status != StatusPending {
		return errs.Wrapf(ErrInvalidTransition, "booking %s cannot join a shared load pool", b.number)
	}
	b.sharedPoolID = &poolID
	return nil
}

func (b *Booking) AssignDriver(vehicleID, driverID uuid.UUID, now time.Time) ([]event.Event, error) {
	if err := b.advance(StatusDriverAssigned); err != nil {
		return nil, err
	}
	b.vehicleID = &vehicleID
	b.driverID = &driverID
	b.touch(now, &b.timeline.AssignedAt)

	return b.events(now, event.BookingAssigned{
		BookingID:  b.id,
		CustomerID: b.customerID,
		VehicleID:  vehicleID,
		DriverID:   driverID,
	}), nil
}

func (b *Booking) AcceptByDriver(now time.Time) ([]event.Event, error) {
	if err := b.advance(StatusDriverAccepted); err != nil {
		return nil, err
	}
	b.touch(now, &b.timeline.AcceptedAt)
	return b.events(now, event.BookingAccepted{BookingID: b.id, DriverID: b.assignedDriver()}), nil
}

// MarkDriverReached must only be called once the geofence check has passed.
func (b *Booking) MarkDriverReached(at geo.Coordinates, photoRef string, now time.Time) ([]event.Event, error) {
	if err := b.advance(StatusDriverReached); err != nil {
		return nil, err
	}
	coords := at
	ref := strings.TrimSpace(photoRef)
	b.reachedCoordinates = &coords
	b.pickupPhotoRef = &ref
	b.touch(now, &b.timeline.ReachedAt)

	return b.events(now, event.DriverReached{
		BookingID: b.id,
		DriverID:  b.assignedDriver(),
		Lat:       at.Lat,
		Lng:       at.Lng,
		PhotoRef:  ref,
	}), nil
}

func (b *Booking) StartLoading(now time.Time) ([]event.Event, error) {
	if err := b.advance(StatusLoadingStarted); err != nil {
		return nil, err
	}
	b.touch(now, &b.timeline.LoadingStartedAt)
	return b.events(now, event.LoadingStarted{BookingID: b.id, DriverID: b.assignedDriver()}), nil
}

func (b *Booking) StartTransit(now time.Time) ([]event.Event, error) {
	if err := b.advance(StatusInTransit); err != nil {
		return nil, err
	}
	b.touch(now, &b.timeline.InTransitAt)
	return b.events(now, event.TransitStarted{BookingID: b.id, DriverID: b.assignedDriver()}), nil
}

func (b *Booking) MarkDelivered(now time.Time) ([]event.Event, error) {
	if err := b.advance(StatusDelivered); err != nil {
		return nil, err
	}
	b.touch(now, &b.timeline.DeliveredAt)
	return b.events(now, event.BookingDelivered{
		BookingID:  b.id,
		CustomerID: b.customerID,
		DriverID:   b.assignedDriver(),
	}), nil
}

func (b *Booking) Complete(now time.Time) ([]event.Event, error) {
	if err := b.advance(StatusCompleted); err != nil {
		return nil, err
	}
	b.touch(now, &b.timeline.CompletedAt)

	return b.events(now, event.BookingCompleted{
		BookingID:       b.id,
		CustomerID:      b.customerID,
		DriverID:        b.assignedDriver(),
		TotalFare:       b.fare.Final().Amount(),
		OriginCity:      b.origin.City(),
		DestinationCity: b.destination.City(),
		TripKm:          b.TripKm(),
		CompletedAt:     now.UTC(),
	}), nil
}

func (b *Booking) Cancel(reason string, now time.Time) ([]event.Event, error) {
	if b.status.IsTerminal() {
		return nil, errs.Wrapf(ErrAlreadyTerminal, "booking %s is %s", b.number, b.status)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrCancelReasonMissing
	}

	previous := b.status
	b.status = StatusCancelled
	b.cancellationReason = &reason
	b.touch(now, &b.timeline.CancelledAt)

	return b.events(now, event.BookingCancelled{
		BookingID:      b.id,
		CustomerID:     b.customerID,
		DriverID:       b.driverID,
		PreviousStatus: previous.String(),
		Reason:         reason,
	}), nil
}

func (b *Booking) ApplyDiscount(amount Money, now time.Time) ([]event.Event, error) {
	if b.status.IsTerminal() {
		return nil, errs.Wrapf(ErrAlreadyTerminal, "booking %s is %s", b.number, b.status)
	}
	if amount.IsNegative() || amount.GreaterThan(b.fare.Total()) {
		return nil, ErrInvalidDiscount
	}

	discount := amount
	b.fare = Fare{
		total:    b.fare.Total(),
		discount: &discount,
		final:    b.fare.Total().Sub(discount),
	}
	b.updatedAt = now.UTC()

	return b.events(now, event.BookingFareAdjusted{
		BookingID: b.id,
		TotalFare: b.fare.Total().Amount(),
		Discount:  discount.Amount(),
		FinalFare: b.fare.Final().Amount(),
	}), nil
}

// IsDrivenBy reports whether driverID is the assigned driver.
func (b *Booking) IsDrivenBy(driverID uuid.UUID) bool {
	return b.driverID != nil && *b.driverID == driverID
}

func (b *Booking) IsOwnedBy(customerID uuid.UUID) bool {
	return b.customerID == customerID
}

// TripKm is the straight-line distance between pickup and drop-off.
func (b *Booking) TripKm() float64 {
	return geo.DistanceKm(b.origin.Coordinates(), b.destination.Coordinates())
}

// advance moves to next only when the booking sits exactly in next's predecessor.
func (b *Booking) advance(next Status) error {
	prev, ok := next.Predecessor()
	if !ok || b.status != prev {
		return errs.Wrapf(ErrInvalidTransition, "cannot move booking %s from %s to %s", b.number, b.status, next)
	}
	b.status = next
	return nil
}

func (b *Booking) touch(now time.Time, slot **time.Time) {
	t := now.UTC()
	*slot = &t
	b.updatedAt = t
}

func (b *Booking) assignedDriver() uuid.UUID {
	if b.driverID == nil {
		return uuid.Nil
	}
	return *b.driverID
}

func (b *Booking) events(now time.Time, payloads ...event.Payload) []event.Event {
	out := make([]event.Event, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, b.raise(now, p))
	}
	return out
}

func (b *Booking) raise(now time.Time, p event.Payload) event.Event {
	return event.New(event.AggregateBooking, b.id, now, p)
}

func place(l geo.Location) event.Place {
	return event.Place{
		Address: l.Address(),
		City:    l.City(),
		Lat:     l.Coordinates().Lat,
		Lng:     l.Coordinates().Lng,
	}
}

func (b *Booking) ID() uuid.UUID                        { return b.id }
func (b *Booking) Number() string                       { return b.number }
func (b *Booking) CustomerID() uuid.UUID                { return b.customerID }
func (b *Booking) VehicleTypeID() uuid.UUID             { return b.vehicleTypeID }
func (b *Booking) VehicleID() *uuid.UUID                { return b.vehicleID }
func (b *Booking) DriverID() *uuid.UUID                 { return b.driverID }
func (b *Booking) Origin() geo.Location                 { return b.origin }
func (b *Booking) Destination() geo.Location            { return b.destination }
func (b *Booking) PickupAt() time.Time                  { return b.pickupAt }
func (b *Booking) Cargo() Cargo                         { return b.cargo }
func (b *Booking) Shipper() Contact                     { return b.shipper }
func (b *Booking) Receiver() Contact                    { return b.receiver }
func (b *Booking) Type() Type                           { return b.bookingType }
func (b *Booking) Status() Status                       { return b.status }
func (b *Booking) Fare() Fare                           { return b.fare }
func (b *Booking) Timeline() Timeline                   { return b.timeline }
func (b *Booking) CancellationReason() *string          { return b.cancellationReason }
func (b *Booking) SharedPoolID() *uuid.UUID             { return b.sharedPoolID }
func (b *Booking) ReachedCoordinates() *geo.Coordinates { return b.reachedCoordinates }
func (b *Booking) PickupPhotoRef() *string              { return b.pickupPhotoRef }
func (b *Booking) Version() int                         { return b.version }
func (b *Booking) CreatedAt() time.Time                 { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time                 { return b.updatedAt }
