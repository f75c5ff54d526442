package backload

import (
	"math"
	"sort"
	"time"

	"freight-core/internal/domain/event"
	"freight-core/internal/domain/geo"
	"freight-core/internal/domain/utilization"

	"github.com/google/uuid"
)

const (
	DefaultRatePerKm = 1.2

	// proximity falls linearly to zero at this distance
	proximityHorizonKm = 200.0
	nearbyPickupKm     = 50.0

	weightProximity  = 0.40
	weightEarnings   = 0.35
	weightPopularity = 0.25

	highEarningsRatio = 0.8
	popularRouteRatio = 0.5
)

// UnknownDistance marks a recommendation whose pickup city is not in the
// city directory.
const UnknownDistance = -1.0

type ReasonCode string

const (
	ReasonPerfectRouteMatch ReasonCode = "PERFECT_ROUTE_MATCH"
	ReasonHighEarnings      ReasonCode = "HIGH_EARNINGS"
	ReasonNearbyPickup      ReasonCode = "NEARBY_PICKUP"
	ReasonPopularRoute      ReasonCode = "POPULAR_ROUTE"
	ReasonAvailable         ReasonCode = "AVAILABLE"
)

type RecommendationRequest struct {
	DriverID        uuid.UUID
	CurrentCity     string
	DestinationCity string
	CompletionTime  time.Time
}

type Recommendation struct {
	OpportunityID     uuid.UUID
	OriginCity        string
	DestinationCity   string
	DistanceKm        float64
	EstimatedEarnings float64
	MatchScore        float64
	Reason            ReasonCode
}

// Engine ranks open opportunities for a driver finishing a trip.
type Engine struct {
	cities    geo.CityDirectory
	ratePerKm float64
}

func NewEngine(cities geo.CityDirectory, ratePerKm float64) *Engine {
	if ratePerKm <= 0 {
		ratePerKm = DefaultRatePerKm
	}
	return &Engine{cities: cities, ratePerKm: ratePerKm}
}

type candidate struct {
	opp           *Opportunity
	distanceKm    float64
	distanceKnown bool
	earnings      float64
	popularity    float64
}

func (e *Engine) Recommend(req RecommendationRequest, opportunities []*Opportunity, history []*utilization.Route) []Recommendation {
	candidates := make([]candidate, 0, len(opportunities))
	maxEarnings := 0.0

	for _, o := range opportunities {
		if !o.IsAvailable() || o.DriverID() == req.DriverID || !o.Window().OpenAt(req.CompletionTime) {
			continue
		}
		c := candidate{opp: o, popularity: popularity(history, o.OriginCity(), o.DestinationCity())}
		c.distanceKm, c.distanceKnown = geo.CityDistanceKm(e.cities, req.CurrentCity, o.OriginCity())
		if tripKm, ok := geo.CityDistanceKm(e.cities, o.OriginCity(), o.DestinationCity()); ok {
			c.earnings = tripKm * e.ratePerKm * o.CapacityKg() / 1000
		}
		maxEarnings = math.Max(maxEarnings, c.earnings)
		candidates = append(candidates, c)
	}

	out := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		proximity := 0.0
		if c.distanceKnown {
			proximity = math.Max(0, 1-c.distanceKm/proximityHorizonKm)
		}
		earningsNorm := 0.0
		if maxEarnings > 0 {
			earningsNorm = c.earnings / maxEarnings
		}
		score := 100 * (weightProximity*proximity + weightEarnings*earningsNorm + weightPopularity*c.popularity)

		distance := UnknownDistance
		if c.distanceKnown {
			distance = round2(c.distanceKm)
		}
		out = append(out, Recommendation{
			OpportunityID:     c.opp.ID(),
			OriginCity:        c.opp.OriginCity(),
			DestinationCity:   c.opp.DestinationCity(),
			DistanceKm:        distance,
			EstimatedEarnings: round2(c.earnings),
			MatchScore:        round2(score),
			Reason:            reasonFor(req, c, earningsNorm),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchScore != out[j].MatchScore {
			return out[i].MatchScore > out[j].MatchScore
		}
		return distanceRank(out[i].DistanceKm) < distanceRank(out[j].DistanceKm)
	})
	return out
}

// GeneratedEvent wraps a ranked list; callers skip it for empty lists.
func GeneratedEvent(req RecommendationRequest, recs []Recommendation, now time.Time) event.Event {
	payload := event.LoadRecommendationGenerated{
		DriverID:        req.DriverID,
		CurrentLocation: req.CurrentCity,
		Recommendations: make([]event.Recommendation, len(recs)),
	}
	for i, r := range recs {
		id := r.OpportunityID
		payload.Recommendations[i] = event.Recommendation{
			OpportunityID:     &id,
			OriginCity:        r.OriginCity,
			DestinationCity:   r.DestinationCity,
			DistanceKm:        r.DistanceKm,
			EstimatedEarnings: r.EstimatedEarnings,
			MatchScore:        r.MatchScore,
			Reason:            string(r.Reason),
		}
	}
	return event.New(event.AggregateDriver, req.DriverID, now, payload)
}

func reasonFor(req RecommendationRequest, c candidate, earningsNorm float64) ReasonCode {
	switch {
	case geo.SameCity(c.opp.OriginCity(), req.CurrentCity) && geo.SameCity(c.opp.DestinationCity(), req.DestinationCity):
		return ReasonPerfectRouteMatch
	case earningsNorm >= highEarningsRatio && c.earnings > 0:
		return ReasonHighEarnings
	case c.distanceKnown && c.distanceKm <= nearbyPickupKm:
		return ReasonNearbyPickup
	case c.popularity >= popularRouteRatio:
		return ReasonPopularRoute
	default:
		return ReasonAvailable
	}
}

// popularity scores how under-served origin->destination is, from 0 to 1.
// A heavy flow destination->origin, or a return-heavy origin->destination
// record, means trucks are waiting for loads in this direction.
func popularity(history []*utilization.Route, origin, destination string) float64 {
	best := 0.0
	for _, r := range history {
		pct, ok := r.Imbalance()
		if !ok {
			continue
		}
		switch {
		case r.IsReverseOf(origin, destination) && r.FlowDirection() == utilization.FlowOutboundHeavy:
		case geo.SameCity(r.OriginCity(), origin) && geo.SameCity(r.DestinationCity(), destination) &&
			r.FlowDirection() == utilization.FlowReturnHeavy:
		default:
			continue
		}
		best = math.Max(best, math.Min(pct, 100)/100)
	}
	return best
}

func distanceRank(d float64) float64 {
	if d < 0 {
		return math.MaxFloat64
	}
	return d
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
