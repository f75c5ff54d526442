package middleware

import (
	"log/slog"
	"slices"

	"freight-core/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always exposes the request id so browser clients can
// quote it when reporting a failed booking action.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	expose := slices.Clone(cfg.ExposeHeaders)
	if !slices.Contains(expose, requestIDHeader) {
		expose = append(expose, requestIDHeader)
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     append(slices.Clone(cfg.AllowHeaders), requestIDHeader),
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins, "expose_headers", expose)
	return cors.New(corsCfg)
}
