package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"freight-core/internal/handler/api"
	"freight-core/internal/handler/middleware"
	"freight-core/internal/pkg/config"
	"freight-core/internal/pkg/jwt"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Booking    *api.BookingHandler
	Backload   *api.BackloadHandler
	SharedLoad *api.SharedLoadHandler
	Analytics  *api.AnalyticsHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	customer := authMiddleware.RequireRole(jwt.RoleCustomer, jwt.RoleOperator)
	driver := authMiddleware.RequireRole(jwt.RoleDriver, jwt.RoleOperator)
	operator := authMiddleware.RequireRole(jwt.RoleOperator)

	v1 := engine.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		bookings := v1.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Booking.Create, Mw: []gin.HandlerFunc{customer}},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
			{Method: http.MethodPost, Path: "/:id/assign", Handler: h.Booking.Assign, Mw: []gin.HandlerFunc{operator}},
			{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Booking.Accept, Mw: []gin.HandlerFunc{driver}},
			{Method: http.MethodPost, Path: "/:id/reached", Handler: h.Booking.Reached, Mw: []gin.HandlerFunc{driver}},
			{Method: http.MethodPost, Path: "/:id/loading", Handler: h.Booking.StartLoading, Mw: []gin.HandlerFunc{driver}},
			{Method: http.MethodPost, Path: "/:id/transit", Handler: h.Booking.StartTransit, Mw: []gin.HandlerFunc{driver}},
			{Method: http.MethodPost, Path: "/:id/delivered", Handler: h.Booking.Delivered, Mw: []gin.HandlerFunc{driver}},
			{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Booking.Complete, Mw: []gin.HandlerFunc{driver}},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel, Mw: []gin.HandlerFunc{customer}},
			{Method: http.MethodPost, Path: "/:id/discount", Handler: h.Booking.Discount, Mw: []gin.HandlerFunc{operator}},
		})

		backload := v1.Group("/backload")
		addRoutes(backload, []route{
			{Method: http.MethodPost, Path: "/availability", Handler: h.Backload.ToggleAvailability, Mw: []gin.HandlerFunc{driver}},
			{Method: http.MethodPost, Path: "/recommendations", Handler: h.Backload.Recommendations, Mw: []gin.HandlerFunc{driver}},
		})

		sharedLoads := v1.Group("/shared-loads")
		addRoutes(sharedLoads, []route{
			{Method: http.MethodPost, Path: "", Handler: h.SharedLoad.Create, Mw: []gin.HandlerFunc{customer}},
			{Method: http.MethodGet, Path: "/pools/:id", Handler: h.SharedLoad.GetPool},
			{Method: http.MethodPost, Path: "/pools/:id/close", Handler: h.SharedLoad.ClosePool, Mw: []gin.HandlerFunc{operator}},
		})

		analytics := v1.Group("/analytics")
		analytics.Use(operator)
		addRoutes(analytics, []route{
			{Method: http.MethodGet, Path: "/routes/heatmap", Handler: h.Analytics.Heatmap},
			{Method: http.MethodGet, Path: "/routes/imbalanced", Handler: h.Analytics.Imbalanced},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
