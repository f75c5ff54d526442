package components

import (
	"log/slog"

	"freight-core/internal/domain/geo"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/pkg/config"
	"freight-core/internal/usecase"
	"freight-core/internal/usecase/commands"
	"freight-core/internal/usecase/queries"
	"freight-core/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		func(
			uow shared.UnitOfWork,
			gate shared.ComplianceGate,
			geofence *geo.Geofence,
			cfg config.Config,
			clk clock.Clock,
			logger *slog.Logger,
		) commands.AssignmentCommands {
			return commands.NewAssignmentUseCase(uow, gate, geofence, cfg.Compliance.Timeout, clk, logger)
		},
		commands.NewBackloadUseCase,
		commands.NewSharedLoadUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewPoolQueries,
		func(uow shared.UnitOfWork, cfg config.Config) queries.AnalyticsQueries {
			return queries.NewAnalyticsQueries(uow, cfg.Booking.ImbalanceThresholdPct)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
