package pricing

import (
	"context"
	"math"

	"freight-core/internal/domain/geo"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
)

// DistanceQuoter prices a trip as base + perKm × great-circle distance.
type DistanceQuoter struct {
	base  float64
	perKm float64
}

func NewDistanceQuoter(base, perKm float64) *DistanceQuoter {
	return &DistanceQuoter{base: base, perKm: perKm}
}

func (q *DistanceQuoter) Quote(_ context.Context, origin, destination geo.Location, _ uuid.UUID) (shared.FareQuote, error) {
	km := geo.DistanceKm(origin.Coordinates(), destination.Coordinates())
	total := q.base + q.perKm*km
	return shared.FareQuote{
		Total:      math.Round(total*100) / 100,
		DistanceKm: math.Round(km*100) / 100,
	}, nil
}
