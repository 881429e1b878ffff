package http

import (
	"github.com/gin-gonic/gin"
	"github.com/nutrimize/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		menu := v1.Group("/menu")
		{
			menu.POST("/generate", handler.GenerateMenu)
		}

		menus := v1.Group("/menus")
		{
			menus.POST("", handler.SaveMenu)
			menus.GET("", handler.ListMenus)
			menus.GET("/names", handler.ListMenuNames)
			menus.GET("/:name", handler.GetMenu)
			menus.DELETE("/:name", handler.DeleteMenu)
		}
	}

	return router
}
