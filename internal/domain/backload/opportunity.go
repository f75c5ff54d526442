package backload

import (
	"math"
	"strings"
	"time"

	"freight-core/internal/domain/event"
	"freight-core/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindow     = errs.New("availability window must start before it ends")
	ErrInvalidCapacity   = errs.New("available capacity must be positive")
	ErrMissingRoute      = errs.New("origin and destination cities are required")
	ErrMissingDriver     = errs.New("driver and vehicle are required")
	ErrNotAvailable      = errs.New("opportunity is not available")
	ErrOpportunityClosed = errs.New("opportunity is already closed")
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusClosed      Status = "closed"
)

func (s Status) String() string { return string(s) }

type Window struct {
	From time.Time
	To   time.Time
}

func NewWindow(from, to time.Time) (Window, error) {
	if from.IsZero() || to.IsZero() || !from.Before(to) {
		return Window{}, ErrInvalidWindow
	}
	return Window{From: from.UTC(), To: to.UTC()}, nil
}

// OpenAt reports whether the window is still usable at t: it either contains
// t or starts later.
func (w Window) OpenAt(t time.Time) bool {
	return !w.To.Before(t)
}

type OfferParams struct {
	DriverID        uuid.UUID
	VehicleID       uuid.UUID
	VehicleTypeID   uuid.UUID
	OriginCity      string
	DestinationCity string
	Window          Window
	CapacityKg      float64
}

type Opportunity struct {
	id              uuid.UUID
	driverID        uuid.UUID
	vehicleID       uuid.UUID
	vehicleTypeID   uuid.UUID
	originCity      string
	destinationCity string
	window          Window
	capacityKg      float64
	status          Status
	version         int
	createdAt       time.Time
	updatedAt       time.Time
}

// Offer opens a new Available opportunity and raises the toggle-on event.
func Offer(p OfferParams, now time.Time) (*Opportunity, []event.Event, error) {
	if p.DriverID == uuid.Nil || p.VehicleID == uuid.Nil {
		return nil, nil, ErrMissingDriver
	}
	origin := strings.TrimSpace(p.OriginCity)
	destination := strings.TrimSpace(p.DestinationCity)
	if origin == "" || destination == "" {
		return nil, nil, ErrMissingRoute
	}
	if p.CapacityKg <= 0 || math.IsNaN(p.CapacityKg) {
		return nil, nil, ErrInvalidCapacity
	}
	if !p.Window.From.Before(p.Window.To) {
		return nil, nil, ErrInvalidWindow
	}

	now = now.UTC()
	o := &Opportunity{
		id:              uuid.New(),
		driverID:        p.DriverID,
		vehicleID:       p.VehicleID,
		vehicleTypeID:   p.VehicleTypeID,
		originCity:      origin,
		destinationCity: destination,
		window:          p.Window,
		capacityKg:      p.CapacityKg,
		status:          StatusAvailable,
		createdAt:       now,
		updatedAt:       now,
	}
	return o, []event.Event{o.toggled(now, true)}, nil
}

// Withdraw is the toggle-off transition.
func (o *Opportunity) Withdraw(now time.Time) ([]event.Event, error) {
	if o.status != StatusAvailable {
		return nil, errs.Wrapf(ErrNotAvailable, "opportunity %s is %s", o.id, o.status)
	}
	o.status = StatusUnavailable
	o.updatedAt = now.UTC()
	return []event.Event{o.toggled(now, false)}, nil
}

// Close retires the opportunity without announcing a toggle; used when a
// driver replaces an open offer with a new one.
func (o *Opportunity) Close(now time.Time) error {
	if o.status == StatusClosed {
		return ErrOpportunityClosed
	}
	o.status = StatusClosed
	o.updatedAt = now.UTC()
	return nil
}

func (o *Opportunity) IsAvailable() bool {
	return o.status == StatusAvailable
}

func (o *Opportunity) toggled(now time.Time, available bool) event.Event {
	id := o.id
	return event.New(event.AggregateOpportunity, o.id, now, event.BackloadAvailabilityToggled{
		OpportunityID:   &id,
		DriverID:        o.driverID,
		VehicleID:       o.vehicleID,
		IsAvailable:     available,
		OriginCity:      o.originCity,
		DestinationCity: o.destinationCity,
		AvailableFrom:   o.window.From,
		AvailableTo:     o.window.To,
	})
}

// WithdrawnWithoutOffer is the event raised when a driver toggles off with no
// open opportunity. It keys on the driver since there is no opportunity id.
func WithdrawnWithoutOffer(driverID, vehicleID uuid.UUID, now time.Time) event.Event {
	return event.New(event.AggregateDriver, driverID, now, event.BackloadAvailabilityToggled{
		DriverID:    driverID,
		VehicleID:   vehicleID,
		IsAvailable: false,
	})
}

func (o *Opportunity) ID() uuid.UUID            { return o.id }
func (o *Opportunity) DriverID() uuid.UUID      { return o.driverID }
func (o *Opportunity) VehicleID() uuid.UUID     { return o.vehicleID }
func (o *Opportunity) VehicleTypeID() uuid.UUID { return o.vehicleTypeID }
func (o *Opportunity) OriginCity() string       { return o.originCity }
func (o *Opportunity) DestinationCity() string  { return o.destinationCity }
func (o *Opportunity) Window() Window           { return o.window }
func (o *Opportunity) CapacityKg() float64      { return o.capacityKg }
func (o *Opportunity) Status() Status           { return o.status }
func (o *Opportunity) Version() int             { return o.version }
func (o *Opportunity) CreatedAt() time.Time     { return o.createdAt }
func (o *Opportunity) UpdatedAt() time.Time     { return o.updatedAt }

type Snapshot struct {
	ID              uuid.UUID
	DriverID        uuid.UUID
	VehicleID       uuid.UUID
	VehicleTypeID   uuid.UUID
	OriginCity      string
	DestinationCity string
	Window          Window
	CapacityKg      float64
	Status          Status
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func Reconstruct(s Snapshot) *Opportunity {
	return &Opportunity{
		id:              s.ID,
		driverID:        s.DriverID,
		vehicleID:       s.VehicleID,
		vehicleTypeID:   s.VehicleTypeID,
		originCity:      s.OriginCity,
		destinationCity: s.DestinationCity,
		window:          s.Window,
		capacityKg:      s.CapacityKg,
		status:          s.Status,
		version:         s.Version,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}
}

func (o *Opportunity) Snapshot() Snapshot {
	return Snapshot{
		ID:              o.id,
		DriverID:        o.driverID,
		VehicleID:       o.vehicleID,
		VehicleTypeID:   o.vehicleTypeID,
		OriginCity:      o.originCity,
		DestinationCity: o.destinationCity,
		Window:          o.window,
		CapacityKg:      o.capacityKg,
		Status:          o.status,
		Version:         o.version,
		CreatedAt:       o.createdAt,
		UpdatedAt:       o.updatedAt,
	}
}
