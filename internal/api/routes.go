package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handler.HealthCheck)
		v1.GET("/ready", handler.ReadinessCheck)

		search := v1.Group("/search")
		{
			search.GET("/carriers", handler.CarrierSearch)
			search.GET("/global", handler.GlobalSearch)
		}

		v1.POST("/sync", handler.TriggerSync)
		v1.POST("/webhooks/discourse", handler.DiscourseWebhook)
	}
}
