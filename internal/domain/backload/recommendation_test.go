//go:build unit

package backload_test

import (
	"testing"
	"time"

	"freight-core/internal/domain/backload"
	"freight-core/internal/domain/event"
	"freight-core/internal/domain/geo"
	"freight-core/internal/domain/utilization"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offer(t *testing.T, origin, destination string, capacityKg float64, mutate ...func(*backload.OfferParams)) *backload.Opportunity {
	t.Helper()
	p := offerParams(t)
	p.OriginCity = origin
	p.DestinationCity = destination
	p.CapacityKg = capacityKg
	for _, m := range mutate {
		m(&p)
	}
	o, _, err := backload.Offer(p, now)
	require.NoError(t, err)
	return o
}

func history(origin, destination string, outbound, returns int) *utilization.Route {
	return utilization.Reconstruct(utilization.Snapshot{
		ID:              uuid.New(),
		OriginCity:      origin,
		DestinationCity: destination,
		Period:          utilization.MonthOf(now),
		OutboundCount:   outbound,
		ReturnCount:     returns,
		UpdatedAt:       now,
	})
}

func TestEngineRecommend(t *testing.T) {
	engine := backload.NewEngine(geo.NewDefaultCityDirectory(), 0)
	driverID := uuid.New()
	req := backload.RecommendationRequest{
		DriverID:        driverID,
		CurrentCity:     "Jeddah",
		DestinationCity: "Riyadh",
		CompletionTime:  now.Add(2 * time.Hour),
	}

	t.Run("ranks and explains the candidates", func(t *testing.T) {
		perfect := offer(t, "Jeddah", "Riyadh", 5000)
		mecca := offer(t, "Mecca", "Riyadh", 5000)
		unknown := offer(t, "Atlantis", "Riyadh", 5000)

		recs := engine.Recommend(req, []*backload.Opportunity{unknown, mecca, perfect}, nil)
		require.Len(t, recs, 3)

		assert.Equal(t, perfect.ID(), recs[0].OpportunityID)
		assert.Equal(t, backload.ReasonPerfectRouteMatch, recs[0].Reason)
		assert.Zero(t, recs[0].DistanceKm)
		assert.InDelta(t, 845.1*backload.DefaultRatePerKm*5, recs[0].EstimatedEarnings, 1)
		assert.InDelta(t, 75.0, recs[0].MatchScore, 0.01)

		assert.Equal(t, mecca.ID(), recs[1].OpportunityID)
		assert.Equal(t, backload.ReasonHighEarnings, recs[1].Reason)
		assert.InDelta(t, 70, recs[1].DistanceKm, 2)
		assert.Less(t, recs[1].MatchScore, recs[0].MatchScore)

		assert.Equal(t, unknown.ID(), recs[2].OpportunityID)
		assert.Equal(t, backload.UnknownDistance, recs[2].DistanceKm)
		assert.Zero(t, recs[2].EstimatedEarnings)
		assert.Equal(t, backload.ReasonAvailable, recs[2].Reason)
	})

	t.Run("excludes what the driver cannot take", func(t *testing.T) {
		own := offer(t, "Jeddah", "Riyadh", 5000, func(p *backload.OfferParams) { p.DriverID = driverID })
		expired := offer(t, "Jeddah", "Riyadh", 5000, func(p *backload.OfferParams) {
			p.Window = window(t, -4*time.Hour, time.Hour)
		})
		withdrawn := offer(t, "Jeddah", "Riyadh", 5000)
		_, err := withdrawn.Withdraw(now)
		require.NoError(t, err)
		later := offer(t, "Jeddah", "Riyadh", 5000, func(p *backload.OfferParams) {
			p.Window = window(t, 6*time.Hour, 10*time.Hour)
		})

		recs := engine.Recommend(req, []*backload.Opportunity{own, expired, withdrawn, later}, nil)
		require.Len(t, recs, 1)
		assert.Equal(t, later.ID(), recs[0].OpportunityID)
	})

	t.Run("nearby pickup", func(t *testing.T) {
		nearby := offer(t, "Dammam", "Jubail", 1000)
		long := offer(t, "Riyadh", "Jeddah", 5000)
		khobar := req
		khobar.CurrentCity = "Khobar"

		recs := engine.Recommend(khobar, []*backload.Opportunity{nearby, long}, nil)
		require.Len(t, recs, 2)
		reasons := map[uuid.UUID]backload.ReasonCode{}
		for _, r := range recs {
			reasons[r.OpportunityID] = r.Reason
		}
		assert.Equal(t, backload.ReasonNearbyPickup, reasons[nearby.ID()])
		assert.Equal(t, backload.ReasonHighEarnings, reasons[long.ID()])
	})

	t.Run("popular route from an outbound-heavy reverse flow", func(t *testing.T) {
		popular := offer(t, "Riyadh", "Jeddah", 1000)
		lucrative := offer(t, "Dammam", "Tabuk", 10000)
		hail := backload.RecommendationRequest{DriverID: driverID, CurrentCity: "Hail", DestinationCity: "Abha", CompletionTime: now}

		plain := engine.Recommend(hail, []*backload.Opportunity{popular, lucrative}, nil)
		boosted := engine.Recommend(hail, []*backload.Opportunity{popular, lucrative}, []*utilization.Route{
			history("Jeddah", "Riyadh", 10, 2),
			history("Tabuk", "Dammam", 0, 0),
		})

		find := func(recs []backload.Recommendation, id uuid.UUID) backload.Recommendation {
			for _, r := range recs {
				if r.OpportunityID == id {
					return r
				}
			}
			t.Fatalf("recommendation %s not found", id)
			return backload.Recommendation{}
		}
		assert.Equal(t, backload.ReasonAvailable, find(plain, popular.ID()).Reason)
		assert.Equal(t, backload.ReasonPopularRoute, find(boosted, popular.ID()).Reason)
		assert.InDelta(t, 20.0, find(boosted, popular.ID()).MatchScore-find(plain, popular.ID()).MatchScore, 0.02)
	})

	t.Run("no opportunities", func(t *testing.T) {
		assert.Empty(t, engine.Recommend(req, nil, nil))
	})
}

func TestGeneratedEvent(t *testing.T) {
	driverID := uuid.New()
	recs := []backload.Recommendation{{
		OpportunityID:     uuid.New(),
		OriginCity:        "Jeddah",
		DestinationCity:   "Riyadh",
		EstimatedEarnings: 5070.6,
		MatchScore:        75,
		Reason:            backload.ReasonPerfectRouteMatch,
	}}

	e := backload.GeneratedEvent(backload.RecommendationRequest{DriverID: driverID, CurrentCity: "Jeddah"}, recs, now)

	assert.Equal(t, event.AggregateDriver, e.AggregateType)
	assert.Equal(t, driverID, e.AggregateID)
	payload := e.Payload.(event.LoadRecommendationGenerated)
	assert.Equal(t, "Jeddah", payload.CurrentLocation)
	require.Len(t, payload.Recommendations, 1)
	assert.Equal(t, recs[0].OpportunityID, *payload.Recommendations[0].OpportunityID)
	assert.Equal(t, "PERFECT_ROUTE_MATCH", payload.Recommendations[0].Reason)
}
