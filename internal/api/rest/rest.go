package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/gotasapp/nft-sync-engine/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Unit and collection reads (public)
		v1.GET("/units/:id", handler.GetUnit)
		v1.GET("/collections/:id/units", handler.ListCollectionUnits)

		// Sync run (requires authentication)
		v1.POST("/sync", middleware.Auth(authCfg), handler.TriggerSync)

		// Reconciliation (requires authentication)
		v1.GET("/reconciliation/report", middleware.Auth(authCfg), handler.GetReconciliationReport)
		v1.POST("/reconciliation/apply", middleware.Auth(authCfg), handler.ApplyCorrections)
	}
}
