package utilization

import (
	"time"

	"freight-core/internal/domain/event"
	"freight-core/internal/domain/geo"
)

// CompletedTrip is the slice of a completed booking the tracker needs.
type CompletedTrip struct {
	OriginCity      string
	DestinationCity string
	TripKm          float64
	CompletedAt     time.Time
}

func (t CompletedTrip) IntraCity() bool {
	return geo.SameCity(t.OriginCity, t.DestinationCity)
}

// Track applies the reverse-pair rule. When a record for the reverse city
// pair already exists in the period, the trip counts as its return leg;
// otherwise it is an outbound leg of the forward record, which is created
// when forward is nil. A trip within one city is its own reverse pair and
// is always outbound. The touched record is returned for persistence.
func Track(trip CompletedTrip, forward, reverse *Route, now time.Time) (*Route, event.Event, error) {
	if trip.IntraCity() {
		if forward == nil {
			forward = reverse
		}
		reverse = nil
	}
	if reverse != nil {
		return reverse, reverse.RecordReturn(trip.TripKm, now), nil
	}
	if forward == nil {
		r, err := NewRoute(trip.OriginCity, trip.DestinationCity, MonthOf(trip.CompletedAt), now)
		if err != nil {
			return nil, event.Event{}, err
		}
		forward = r
	}
	return forward, forward.RecordOutbound(trip.TripKm, now), nil
}
