package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"text-assistant/api/handlers"
	"text-assistant/api/middleware"
	"text-assistant/config"
	_ "text-assistant/docs"
	"text-assistant/services"
)

// New builds the HTTP engine with all routes attached.
func New(svc *services.TextService, checker handlers.AIHealthChecker) *gin.Engine {
	cfg := config.GetConfig()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.GET("/health", handlers.HealthHandler(checker))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		text := api.Group("/text")
		{
			text.POST("/modify", handlers.ModifyTextHandler(svc))
			text.POST("/analyze", handlers.AnalyzeTextHandler(svc))
			text.GET("/history/:user_id", handlers.HistoryHandler(svc))
			text.GET("/statistics/:user_id", handlers.StatisticsHandler(svc))
			text.GET("/operations", handlers.OperationsHandler())
		}
	}

	return r
}
