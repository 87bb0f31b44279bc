package api

import (
	"redalert-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	protected := delivery.AuthMiddleware(h.authUsecase)

	api := r.Group("/api/v1")
	{
		// Health check (no auth required)
		api.GET("/health", healthCheck)

		api.POST("/auth/login", h.authHandler.Login)

		categories := api.Group("/categories")
		{
			categories.GET("", h.categoryHandler.GetAll)
			categories.GET("/active", h.categoryHandler.GetActive)
			categories.GET("/:id", h.categoryHandler.GetByID)
			categories.POST("", protected, h.categoryHandler.Create)
			categories.PUT("/:id", protected, h.categoryHandler.Update)
			categories.PATCH("/:id/toggle", protected, h.categoryHandler.Toggle)
			categories.DELETE("/:id", protected, h.categoryHandler.Delete)
		}

		alerts := api.Group("/alerts")
		{
			alerts.GET("/history", h.alertHandler.GetHistory)
			alerts.GET("/urgent", h.alertHandler.GetUrgent)
			alerts.GET("/stats", h.alertHandler.GetStats)
			// SSE endpoint
			alerts.GET("/stream", h.sseManager.ServeHTTP)
			alerts.DELETE("/history", protected, h.alertHandler.ClearHistory)
			alerts.DELETE("/cleanup", protected, h.alertHandler.Cleanup)
			alerts.DELETE("/calendar", protected, h.alertHandler.ClearCalendar)
			alerts.POST("/simulate/test", protected, h.alertHandler.SimulateTest)
			alerts.POST("/simulate/:processedEmailId", protected, h.alertHandler.SimulateFromEmail)
		}

		processed := api.Group("/processed-emails")
		{
			processed.GET("", h.processedEmailHandler.List)
			processed.GET("/count", h.processedEmailHandler.Count)
			processed.GET("/category/:categoryId", h.processedEmailHandler.ListByCategory)
			processed.DELETE("/:id", protected, h.processedEmailHandler.Delete)
			processed.DELETE("", protected, h.processedEmailHandler.DeleteAll)
		}

		emails := api.Group("/emails")
		{
			emails.POST("/poll", protected, h.emailHandler.Poll)
			emails.GET("/search", h.emailHandler.Search)
		}

		devices := api.Group("/devices")
		devices.Use(protected)
		{
			devices.POST("", h.deviceHandler.RegisterDevice)
			devices.DELETE("/:token", h.deviceHandler.UnregisterDevice)
		}

		// Settings routes - Runtime configuration
		settings := api.Group("/settings")
		{
			settings.GET("/ollama", GetOllamaSettings)
			settings.PUT("/ollama", protected, UpdateOllamaSettings)
			settings.POST("/ollama/test", protected, TestOllamaConnection)
		}
	}
}
