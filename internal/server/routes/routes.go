package routes

import (
	"github.com/osa911/contactrelay/internal/api/handlers"
	apimiddleware "github.com/osa911/contactrelay/internal/api/middleware"
	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/middleware"
	"github.com/osa911/contactrelay/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all routes
func Setup(router *gin.Engine, cfg *config.Config, h *Handlers) {
	SetupHealthRoutes(router, h.Health)
	SetupContactRoutes(router, cfg.ContactPath, h.Contact)

	// Any only covers the standard methods; everything else lands here
	router.HandleMethodNotAllowed = true
	router.NoMethod(handlers.MethodNotAllowed)
	router.NoRoute(handlers.NotFound)

	logging.GetGlobalLogger().Info("Routes ready: GET /health, ANY %s", cfg.ContactPath)
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	if telemetry.Enabled(cfg.OTLPEndpoint) {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(apimiddleware.RequestLogger(logger))
	router.Use(apimiddleware.CORS(apimiddleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Production:     cfg.IsProduction(),
	}))
	router.Use(apimiddleware.SecurityHeaders())
	router.Use(apimiddleware.LimitRequestBody(cfg.MaxBodyBytes))
}

