package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"freight-core/internal/infra/db"
	"freight-core/internal/infra/memory"
	"freight-core/internal/infra/uow"
	"freight-core/internal/pkg/config"
	"freight-core/internal/usecase/shared"

	"go.uber.org/fx"
)

const startupTimeout = 30 * time.Second

var DBModule = fx.Module("db",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork connects and migrates Postgres, or hands out the in-memory
// store when STORAGE_DRIVER=memory.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	if cfg.DB.UseMemory() {
		logger.Warn("using in-memory storage; data is lost on restart")
		return memory.NewStore(logger), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, pool, logger); err != nil {
		cleanup()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return uow.NewPostgresUoW(pool, logger), nil
}
