package components

import (
	"freight-core/internal/handler"
	"freight-core/internal/handler/api"
	"freight-core/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewBackloadHandler,
		api.NewSharedLoadHandler,
		api.NewAnalyticsHandler,
		func(b *api.BookingHandler, bl *api.BackloadHandler, s *api.SharedLoadHandler, a *api.AnalyticsHandler) handler.Handlers {
			return handler.Handlers{Booking: b, Backload: bl, SharedLoad: s, Analytics: a}
		},
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
