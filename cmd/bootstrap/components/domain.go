package components

import (
	"log/slog"

	"freight-core/internal/domain/backload"
	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/geo"
	"freight-core/internal/infra/compliance"
	"freight-core/internal/infra/pricing"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/pkg/config"
	"freight-core/internal/usecase/shared"

	"go.uber.org/fx"
)

var DomainModule = fx.Module("domain",
	fx.Provide(
		clock.NewRealClock,
		booking.NewDefaultNumberGenerator,
		fx.Annotate(
			geo.NewDefaultCityDirectory,
			fx.As(new(geo.CityDirectory)),
		),
		func(cfg config.Config) *geo.Geofence {
			return geo.NewGeofence(cfg.Booking.GeofenceRadiusKm)
		},
		func(cities geo.CityDirectory, cfg config.Config) *backload.Engine {
			return backload.NewEngine(cities, cfg.Booking.RatePerKm)
		},
		fx.Annotate(
			func(cfg config.Config) *pricing.DistanceQuoter {
				return pricing.NewDistanceQuoter(cfg.Booking.FareBase, cfg.Booking.FarePerKm)
			},
			fx.As(new(shared.FareQuoter)),
		),
		NewComplianceGate,
	),
)

func NewComplianceGate(cfg config.Config, logger *slog.Logger) shared.ComplianceGate {
	if cfg.Compliance.Mode == "static" {
		logger.Warn("compliance checks disabled; every driver is treated as compliant")
		return compliance.NewStaticGate()
	}
	return compliance.NewHTTPGate(cfg.Compliance.BaseURL, cfg.Compliance.Timeout, logger)
}
