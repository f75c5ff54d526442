package response

import (
	"time"

	"freight-core/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type RouteUtilizationResponse struct {
	OriginCity         string    `json:"origin_city"`
	DestinationCity    string    `json:"destination_city"`
	PeriodStart        time.Time `json:"period_start"`
	PeriodEnd          time.Time `json:"period_end"`
	OutboundCount      int       `json:"outbound_count"`
	ReturnCount        int       `json:"return_count"`
	UtilizationPercent float64   `json:"utilization_percent"`
	EmptyKmTotal       float64   `json:"empty_km_total"`
	EmptyKmSaved       float64   `json:"empty_km_saved"`
}

// ImbalancedRouteResponse is flat; the embedded view fields are lifted by copier.
type ImbalancedRouteResponse struct {
	OriginCity         string    `json:"origin_city"`
	DestinationCity    string    `json:"destination_city"`
	PeriodStart        time.Time `json:"period_start"`
	PeriodEnd          time.Time `json:"period_end"`
	OutboundCount      int       `json:"outbound_count"`
	ReturnCount        int       `json:"return_count"`
	UtilizationPercent float64   `json:"utilization_percent"`
	EmptyKmTotal       float64   `json:"empty_km_total"`
	EmptyKmSaved       float64   `json:"empty_km_saved"`
	ImbalancePercent   float64   `json:"imbalance_percent"`
	FlowDirection      string    `json:"flow_direction"`
	RecommendedAction  string    `json:"recommended_action"`
}

func FromRouteViews(views []*queries.RouteUtilizationView) ([]*RouteUtilizationResponse, error) {
	res := make([]*RouteUtilizationResponse, 0, len(views))
	if err := copier.Copy(&res, &views); err != nil {
		return nil, err
	}
	return res, nil
}

func FromImbalancedViews(views []*queries.ImbalancedRouteView) ([]*ImbalancedRouteResponse, error) {
	res := make([]*ImbalancedRouteResponse, 0, len(views))
	if err := copier.Copy(&res, &views); err != nil {
		return nil, err
	}
	return res, nil
}
