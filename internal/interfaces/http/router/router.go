// Package router wires the HTTP surface of the catalog sync backend.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/viamoe/haady-business-sub003/internal/infrastructure/auth"
	"github.com/viamoe/haady-business-sub003/internal/infrastructure/logger"
	"github.com/viamoe/haady-business-sub003/internal/interfaces/http/handler"
	"github.com/viamoe/haady-business-sub003/internal/interfaces/http/middleware"
)

// Config holds the handlers and services the router depends on
type Config struct {
	Logger        *zap.Logger
	Verifier      *auth.JWTVerifier
	SyncHandler   *handler.SyncHandler
	SystemHandler *handler.SystemHandler
}

// New builds the gin engine with all routes and middleware attached
func New(cfg Config) *gin.Engine {
	engine := gin.New()
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))

	// Health check stays outside authentication
	engine.GET("/healthz", cfg.SystemHandler.Healthz)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.Verifier, cfg.Logger))

	integrations := api.Group("/integrations")
	{
		integrations.POST("/:platform/sync", cfg.SyncHandler.SyncCatalog)
		integrations.POST("/:platform/inventory/refresh", cfg.SyncHandler.RefreshInventory)
		integrations.GET("/runs", cfg.SyncHandler.ListRuns)
	}

	return engine
}
