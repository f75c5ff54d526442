package sharedload

import (
	"math"
	"strings"
	"time"

	"freight-core/internal/domain/event"
	"freight-core/internal/domain/geo"
	"freight-core/internal/pkg/errs"

	"github.com/google/uuid"
)

// FullThreshold is the fraction of total capacity below which a pool stops
// being Open.
const FullThreshold = 0.10

// Capacity is tracked in grams and cubic centimetres so repeated adds and
// removes never drift away from the declared vehicle capacity.
const (
	gramsPerKg = 1000
	cm3PerM3   = 1_000_000
)

func toGrams(kg float64) int64 { return int64(math.Round(kg * gramsPerKg)) }
func toCm3(m3 float64) int64   { return int64(math.Round(m3 * cm3PerM3)) }
func toKg(g int64) float64     { return float64(g) / gramsPerKg }
func toM3(cm3 int64) float64   { return float64(cm3) / cm3PerM3 }

var (
	ErrExceedsCapacity    = errs.New("requested load exceeds available capacity")
	ErrInvalidCapacity    = errs.New("capacity must be positive")
	ErrInvalidLoad        = errs.New("load weight must be positive")
	ErrPoolClosed         = errs.New("shared load pool is closed")
	ErrBookingNotInPool   = errs.New("booking is not a member of this pool")
	ErrBookingAlreadyIn   = errs.New("booking is already a member of this pool")
	ErrPoolAlreadyClosed  = errs.New("shared load pool is already closed")
	ErrMissingRouteFields = errs.New("origin, destination and vehicle type are required")
	ErrInvalidAssignment  = errs.New("vehicle and driver are required")
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusFull   Status = "full"
	StatusClosed Status = "closed"
)

func (s Status) String() string { return string(s) }

// Route identifies the pools a request may be packed into.
type Route struct {
	OriginCity      string
	DestinationCity string
	PickupDate      time.Time
	VehicleTypeID   uuid.UUID
}

func NewRoute(origin, destination string, pickup time.Time, vehicleTypeID uuid.UUID) (Route, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" || vehicleTypeID == uuid.Nil {
		return Route{}, ErrMissingRouteFields
	}
	return Route{
		OriginCity:      origin,
		DestinationCity: destination,
		PickupDate:      DateOf(pickup),
		VehicleTypeID:   vehicleTypeID,
	}, nil
}

// Matches compares cities case-insensitively and dates by calendar day.
func (r Route) Matches(o Route) bool {
	return geo.SameCity(r.OriginCity, o.OriginCity) &&
		geo.SameCity(r.DestinationCity, o.DestinationCity) &&
		DateOf(r.PickupDate).Equal(DateOf(o.PickupDate)) &&
		r.VehicleTypeID == o.VehicleTypeID
}

// DateOf truncates t to midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Load is one booking's share of a pool.
type Load struct {
	WeightKg float64
	VolumeM3 *float64
}

func NewLoad(weightKg float64, volumeM3 *float64) (Load, error) {
	if math.IsNaN(weightKg) || toGrams(weightKg) <= 0 {
		return Load{}, ErrInvalidLoad
	}
	if volumeM3 != nil && (*volumeM3 < 0 || math.IsNaN(*volumeM3)) {
		return Load{}, ErrInvalidLoad
	}
	return Load{WeightKg: weightKg, VolumeM3: volumeM3}, nil
}

func (l Load) grams() int64 { return toGrams(l.WeightKg) }

func (l Load) cm3() int64 {
	if l.VolumeM3 == nil {
		return 0
	}
	return toCm3(*l.VolumeM3)
}

type Member struct {
	BookingID uuid.UUID
	Load      Load
}

type Pool struct {
	id           uuid.UUID
	route        Route
	vehicleID    *uuid.UUID
	driverID     *uuid.UUID
	totalGrams   int64
	usedGrams    int64
	totalCm3     *int64
	usedCm3      int64
	status       Status
	members      []Member
	fullNotified bool
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewPool(route Route, capacityKg float64, capacityM3 *float64, now time.Time) (*Pool, error) {
	if math.IsNaN(capacityKg) || toGrams(capacityKg) <= 0 {
		return nil, ErrInvalidCapacity
	}
	if capacityM3 != nil && (math.IsNaN(*capacityM3) || toCm3(*capacityM3) <= 0) {
		return nil, ErrInvalidCapacity
	}
	now = now.UTC()
	return &Pool{
		id:         uuid.New(),
		route:      route,
		totalGrams: toGrams(capacityKg),
		totalCm3:   cm3Ptr(capacityM3),
		status:     StatusOpen,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Fits reports whether load can be packed without exceeding either capacity.
func (p *Pool) Fits(load Load) bool {
	if p.status == StatusClosed {
		return false
	}
	if load.grams() > p.availableGrams() {
		return false
	}
	if p.totalCm3 != nil && load.VolumeM3 != nil && load.cm3() > *p.totalCm3-p.usedCm3 {
		return false
	}
	return true
}

// Add packs a booking into the pool. A Full pool can still take a load that
// fits the remaining capacity.
func (p *Pool) Add(bookingID uuid.UUID, load Load, now time.Time) ([]event.Event, error) {
	if p.status == StatusClosed {
		return nil, ErrPoolClosed
	}
	if p.indexOf(bookingID) >= 0 {
		return nil, ErrBookingAlreadyIn
	}
	if !p.Fits(load) {
		return nil, errs.Wrapf(ErrExceedsCapacity, "requested %.2f kg, available %.2f kg", load.WeightKg, p.AvailableWeight())
	}

	p.members = append(p.members, Member{BookingID: bookingID, Load: load})
	p.usedGrams += load.grams()
	p.usedCm3 += load.cm3()
	return p.reevaluate(now), nil
}

func (p *Pool) Remove(bookingID uuid.UUID, now time.Time) ([]event.Event, error) {
	i := p.indexOf(bookingID)
	if i < 0 {
		return nil, ErrBookingNotInPool
	}
	m := p.members[i]
	p.members = append(p.members[:i:i], p.members[i+1:]...)
	p.usedGrams = max(0, p.usedGrams-m.Load.grams())
	p.usedCm3 = max(0, p.usedCm3-m.Load.cm3())
	return p.reevaluate(now), nil
}

func (p *Pool) Close(now time.Time) ([]event.Event, error) {
	if p.status == StatusClosed {
		return nil, ErrPoolAlreadyClosed
	}
	p.status = StatusClosed
	p.updatedAt = now.UTC()
	return []event.Event{p.raise(now, event.SharedLoadPoolClosed{
		PoolID:        p.id,
		TotalBookings: len(p.members),
		TotalWeight:   p.UsedWeight(),
	})}, nil
}

// AssignVehicle records the vehicle and driver carrying the pooled loads.
// Every booking in a pool travels on the same truck, so a later assignment
// replaces the earlier one.
func (p *Pool) AssignVehicle(vehicleID, driverID uuid.UUID, now time.Time) error {
	if vehicleID == uuid.Nil || driverID == uuid.Nil {
		return ErrInvalidAssignment
	}
	if p.status == StatusClosed {
		return ErrPoolClosed
	}
	p.vehicleID = &vehicleID
	p.driverID = &driverID
	p.updatedAt = now.UTC()
	return nil
}

// reevaluate flips Open/Full around the threshold and emits the capacity
// events. Closed pools never reopen.
func (p *Pool) reevaluate(now time.Time) []event.Event {
	p.updatedAt = now.UTC()
	if p.status != StatusClosed {
		// available < total * FullThreshold, kept in integer grams
		if p.availableGrams()*10 < p.totalGrams {
			p.status = StatusFull
		} else {
			p.status = StatusOpen
		}
	}

	events := []event.Event{p.raise(now, event.SharedLoadCapacityUpdated{
		PoolID:             p.id,
		UsedCapacity:       p.UsedWeight(),
		AvailableCapacity:  p.AvailableWeight(),
		UtilizationPercent: p.UtilizationPercent(),
		Status:             p.status.String(),
	})}

	if p.status == StatusFull && !p.fullNotified {
		p.fullNotified = true
		events = append(events, p.raise(now, event.SharedLoadPoolFull{
			PoolID:          p.id,
			OriginCity:      p.route.OriginCity,
			DestinationCity: p.route.DestinationCity,
			TotalBookings:   len(p.members),
			TotalWeight:     p.UsedWeight(),
		}))
	}
	return events
}

func (p *Pool) raise(now time.Time, payload event.Payload) event.Event {
	return event.New(event.AggregatePool, p.id, now, payload)
}

func (p *Pool) indexOf(bookingID uuid.UUID) int {
	for i, m := range p.members {
		if m.BookingID == bookingID {
			return i
		}
	}
	return -1
}

func (p *Pool) availableGrams() int64 { return p.totalGrams - p.usedGrams }

func (p *Pool) AvailableWeight() float64 { return toKg(p.availableGrams()) }

func (p *Pool) UtilizationPercent() float64 {
	if p.totalGrams == 0 {
		return 0
	}
	return math.Round(float64(p.usedGrams)*10000/float64(p.totalGrams)) / 100
}

func (p *Pool) TotalVolume() *float64 {
	if p.totalCm3 == nil {
		return nil
	}
	v := toM3(*p.totalCm3)
	return &v
}

func cm3Ptr(m3 *float64) *int64 {
	if m3 == nil {
		return nil
	}
	v := toCm3(*m3)
	return &v
}

func (p *Pool) MemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(p.members))
	for i, m := range p.members {
		ids[i] = m.BookingID
	}
	return ids
}

func (p *Pool) ID() uuid.UUID         { return p.id }
func (p *Pool) Route() Route          { return p.route }
func (p *Pool) VehicleID() *uuid.UUID { return p.vehicleID }
func (p *Pool) DriverID() *uuid.UUID  { return p.driverID }
func (p *Pool) TotalWeight() float64  { return toKg(p.totalGrams) }
func (p *Pool) UsedWeight() float64   { return toKg(p.usedGrams) }
func (p *Pool) UsedVolume() float64   { return toM3(p.usedCm3) }
func (p *Pool) Status() Status        { return p.status }
func (p *Pool) Members() []Member     { return append([]Member(nil), p.members...) }
func (p *Pool) FullNotified() bool    { return p.fullNotified }
func (p *Pool) Version() int          { return p.version }
func (p *Pool) CreatedAt() time.Time  { return p.createdAt }
func (p *Pool) UpdatedAt() time.Time  { return p.updatedAt }

type Snapshot struct {
	ID           uuid.UUID
	Route        Route
	VehicleID    *uuid.UUID
	DriverID     *uuid.UUID
	TotalWeight  float64
	UsedWeight   float64
	TotalVolume  *float64
	UsedVolume   float64
	Status       Status
	Members      []Member
	FullNotified bool
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func Reconstruct(s Snapshot) *Pool {
	return &Pool{
		id:           s.ID,
		route:        s.Route,
		vehicleID:    s.VehicleID,
		driverID:     s.DriverID,
		totalGrams:   toGrams(s.TotalWeight),
		usedGrams:    toGrams(s.UsedWeight),
		totalCm3:     cm3Ptr(s.TotalVolume),
		usedCm3:      toCm3(s.UsedVolume),
		status:       s.Status,
		members:      append([]Member(nil), s.Members...),
		fullNotified: s.FullNotified,
		version:      s.Version,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
}

func (p *Pool) Snapshot() Snapshot {
	return Snapshot{
		ID:           p.id,
		Route:        p.route,
		VehicleID:    p.vehicleID,
		DriverID:     p.driverID,
		TotalWeight:  p.TotalWeight(),
		UsedWeight:   p.UsedWeight(),
		TotalVolume:  p.TotalVolume(),
		UsedVolume:   p.UsedVolume(),
		Status:       p.status,
		Members:      p.Members(),
		FullNotified: p.fullNotified,
		Version:      p.version,
		CreatedAt:    p.createdAt,
		UpdatedAt:    p.updatedAt,
	}
}
