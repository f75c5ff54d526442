package bootstrap

import (
	"freight-core/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.DomainModule,
	components.UseCaseModule,
	components.EventsModule,
	components.HandlerModule,
)
