package queries

import (
	"context"
	"sort"
	"time"

	"freight-core/internal/domain/utilization"
	"freight-core/internal/usecase/shared"
)

type RouteUtilizationView struct {
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

type ImbalancedRouteView struct {
	RouteUtilizationView
	ImbalancePercent  float64 `json:"imbalance_percent"`
	FlowDirection     string  `json:"flow_direction"`
	RecommendedAction string  `json:"recommended_action"`
}

type AnalyticsQueries interface {
	// GetRouteHeatmap lists every route of the month containing periodStart.
	GetRouteHeatmap(ctx context.Context, periodStart time.Time) ([]*RouteUtilizationView, error)
	// GetImbalancedRoutes lists routes whose imbalance exceeds thresholdPct;
	// thresholdPct <= 0 falls back to the configured default.
	GetImbalancedRoutes(ctx context.Context, thresholdPct float64, periodStart time.Time) ([]*ImbalancedRouteView, error)
}

type analyticsQueriesImpl struct {
	uow              shared.UnitOfWork
	defaultThreshold float64
}

func NewAnalyticsQueries(uow shared.UnitOfWork, defaultThreshold float64) AnalyticsQueries {
	if defaultThreshold <= 0 {
		defaultThreshold = utilization.DefaultImbalanceThresholdPct
	}
	return &analyticsQueriesImpl{uow: uow, defaultThreshold: defaultThreshold}
}

func (q *analyticsQueriesImpl) GetRouteHeatmap(ctx context.Context, periodStart time.Time) ([]*RouteUtilizationView, error) {
	routes, err := q.routes(ctx, periodStart)
	if err != nil {
		return nil, err
	}
	views := make([]*RouteUtilizationView, 0, len(routes))
	for _, r := range routes {
		v := toRouteView(r)
		views = append(views, &v)
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].OutboundCount+views[i].ReturnCount > views[j].OutboundCount+views[j].ReturnCount
	})
	return views, nil
}

func (q *analyticsQueriesImpl) GetImbalancedRoutes(ctx context.Context, thresholdPct float64, periodStart time.Time) ([]*ImbalancedRouteView, error) {
	if thresholdPct <= 0 {
		thresholdPct = q.defaultThreshold
	}
	routes, err := q.routes(ctx, periodStart)
	if err != nil {
		return nil, err
	}

	views := make([]*ImbalancedRouteView, 0)
	for _, r := range routes {
		if !r.IsImbalanced(thresholdPct) {
			continue
		}
		pct, _ := r.Imbalance()
		views = append(views, &ImbalancedRouteView{
			RouteUtilizationView: toRouteView(r),
			ImbalancePercent:     pct,
			FlowDirection:        string(r.FlowDirection()),
			RecommendedAction:    r.RecommendedAction(),
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].ImbalancePercent > views[j].ImbalancePercent
	})
	return views, nil
}

func (q *analyticsQueriesImpl) routes(ctx context.Context, periodStart time.Time) ([]*utilization.Route, error) {
	period := utilization.MonthOf(periodStart)
	var routes []*utilization.Route
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		routes, err = tx.Routes().ListByPeriod(ctx, period.Start)
		return err
	})
	return routes, err
}

func toRouteView(r *utilization.Route) RouteUtilizationView {
	return RouteUtilizationView{
		OriginCity:         r.OriginCity(),
		DestinationCity:    r.DestinationCity(),
		PeriodStart:        r.Period().Start,
		PeriodEnd:          r.Period().End,
		OutboundCount:      r.OutboundCount(),
		ReturnCount:        r.ReturnCount(),
		UtilizationPercent: r.UtilizationPercent(),
		EmptyKmTotal:       r.EmptyKmTotal(),
		EmptyKmSaved:       r.EmptyKmSaved(),
	}
}
