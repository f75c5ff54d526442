package utilization

import (
	"fmt"
	"math"
	"strings"
	"time"

	"freight-core/internal/domain/event"
	"freight-core/internal/domain/geo"
	"freight-core/internal/pkg/errs"

	"github.com/google/uuid"
)

const DefaultImbalanceThresholdPct = 30.0

var ErrMissingCities = errs.New("origin and destination cities are required")

type FlowDirection string

const (
	FlowOutboundHeavy FlowDirection = "OUTBOUND_HEAVY"
	FlowReturnHeavy   FlowDirection = "RETURN_HEAVY"
	FlowBalanced      FlowDirection = "BALANCED"
)

// Period is a calendar month in UTC, [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

func MonthOf(t time.Time) Period {
	y, m, _ := t.UTC().Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Route holds trip counts for one city pair within one period.
type Route struct {
	id              uuid.UUID
	originCity      string
	destinationCity string
	period          Period
	outboundCount   int
	returnCount     int
	emptyKmTotal    float64
	emptyKmSaved    float64
	updatedAt       time.Time
}

func NewRoute(origin, destination string, period Period, now time.Time) (*Route, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return nil, ErrMissingCities
	}
	return &Route{
		id:              uuid.New(),
		originCity:      origin,
		destinationCity: destination,
		period:          period,
		updatedAt:       now.UTC(),
	}, nil
}

// IsReverseOf reports whether r runs from destination back to origin.
func (r *Route) IsReverseOf(origin, destination string) bool {
	return geo.SameCity(r.originCity, destination) && geo.SameCity(r.destinationCity, origin)
}

func (r *Route) RecordOutbound(tripKm float64, now time.Time) event.Event {
	r.outboundCount++
	r.emptyKmTotal += nonNegative(tripKm)
	r.updatedAt = now.UTC()
	return r.updated(now)
}

func (r *Route) RecordReturn(tripKm float64, now time.Time) event.Event {
	r.returnCount++
	r.emptyKmSaved += nonNegative(tripKm)
	r.updatedAt = now.UTC()
	return r.updated(now)
}

// UtilizationPercent is the share of outbound legs matched by a return leg.
func (r *Route) UtilizationPercent() float64 {
	if r.outboundCount == 0 {
		return 0
	}
	matched := math.Min(float64(r.returnCount), float64(r.outboundCount))
	return round2(matched / float64(r.outboundCount) * 100)
}

// Imbalance is |outbound - return| / outbound * 100. ok is false when there
// are no outbound trips.
func (r *Route) Imbalance() (pct float64, ok bool) {
	if r.outboundCount == 0 {
		return 0, false
	}
	diff := math.Abs(float64(r.outboundCount - r.returnCount))
	return round2(diff / float64(r.outboundCount) * 100), true
}

func (r *Route) FlowDirection() FlowDirection {
	switch {
	case r.outboundCount > r.returnCount:
		return FlowOutboundHeavy
	case r.returnCount > r.outboundCount:
		return FlowReturnHeavy
	default:
		return FlowBalanced
	}
}

// RecommendedAction names the under-served direction.
func (r *Route) RecommendedAction() string {
	switch r.FlowDirection() {
	case FlowOutboundHeavy:
		return fmt.Sprintf("promote opportunities from %s to %s", r.destinationCity, r.originCity)
	case FlowReturnHeavy:
		return fmt.Sprintf("promote opportunities from %s to %s", r.originCity, r.destinationCity)
	default:
		return "no action needed"
	}
}

// IsImbalanced applies the strict "above threshold" rule.
func (r *Route) IsImbalanced(thresholdPct float64) bool {
	pct, ok := r.Imbalance()
	return ok && pct > thresholdPct
}

func (r *Route) updated(now time.Time) event.Event {
	return event.New(event.AggregateRoute, r.id, now, event.RouteUtilizationUpdated{
		OriginCity:         r.originCity,
		DestinationCity:    r.destinationCity,
		OutboundCount:      r.outboundCount,
		ReturnCount:        r.returnCount,
		UtilizationPercent: r.UtilizationPercent(),
		PeriodStart:        r.period.Start,
		PeriodEnd:          r.period.End,
	})
}

func (r *Route) ID() uuid.UUID           { return r.id }
func (r *Route) OriginCity() string      { return r.originCity }
func (r *Route) DestinationCity() string { return r.destinationCity }
func (r *Route) Period() Period          { return r.period }
func (r *Route) OutboundCount() int      { return r.outboundCount }
func (r *Route) ReturnCount() int        { return r.returnCount }
func (r *Route) EmptyKmTotal() float64   { return r.emptyKmTotal }
func (r *Route) EmptyKmSaved() float64   { return r.emptyKmSaved }
func (r *Route) UpdatedAt() time.Time    { return r.updatedAt }

type Snapshot struct {
	ID              uuid.UUID
	OriginCity      string
	DestinationCity string
	Period          Period
	OutboundCount   int
	ReturnCount     int
	EmptyKmTotal    float64
	EmptyKmSaved    float64
	UpdatedAt       time.Time
}

func Reconstruct(s Snapshot) *Route {
	return &Route{
		id:              s.ID,
		originCity:      s.OriginCity,
		destinationCity: s.DestinationCity,
		period:          s.Period,
		outboundCount:   s.OutboundCount,
		returnCount:     s.ReturnCount,
		emptyKmTotal:    s.EmptyKmTotal,
		emptyKmSaved:    s.EmptyKmSaved,
		updatedAt:       s.UpdatedAt,
	}
}

func (r *Route) Snapshot() Snapshot {
	return Snapshot{
		ID:              r.id,
		OriginCity:      r.originCity,
		DestinationCity: r.destinationCity,
		Period:          r.period,
		OutboundCount:   r.outboundCount,
		ReturnCount:     r.returnCount,
		EmptyKmTotal:    r.emptyKmTotal,
		EmptyKmSaved:    r.emptyKmSaved,
		UpdatedAt:       r.updatedAt,
	}
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
