package response

import (
	"freight-core/internal/domain/backload"
	"freight-core/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ToggleAvailabilityResponse struct {
	Success       bool       `json:"success"`
	OpportunityID *uuid.UUID `json:"opportunity_id"`
}

func FromToggleAvailabilityResult(r *commands.ToggleAvailabilityResult) *ToggleAvailabilityResponse {
	return &ToggleAvailabilityResponse{
		Success:       r.Success,
		OpportunityID: r.OpportunityID,
	}
}

type RecommendationResponse struct {
	OpportunityID     uuid.UUID `json:"opportunity_id"`
	OriginCity        string    `json:"origin_city"`
	DestinationCity   string    `json:"destination_city"`
	DistanceKm        float64   `json:"distance_km"`
	EstimatedEarnings float64   `json:"estimated_earnings"`
	MatchScore        float64   `json:"match_score"`
	Reason            string    `json:"reason"`
}

func FromRecommendations(recs []backload.Recommendation) ([]*RecommendationResponse, error) {
	res := make([]*RecommendationResponse, 0, len(recs))
	if err := copier.Copy(&res, &recs); err != nil {
		return nil, err
	}
	return res, nil
}
