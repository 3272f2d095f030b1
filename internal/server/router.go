package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rythumitra/rythumitra-backend/internal/handlers"
	"github.com/rythumitra/rythumitra-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler        *handlers.AuthHandler
	AuthMiddleware     *middleware.AuthMiddleware
	CropHandler        *handlers.CropHandler
	PlanHandler        *handlers.PlanHandler
	CalendarHandler    *handlers.CalendarHandler
	AIHandler          *handlers.AIHandler
	MarketplaceHandler *handlers.MarketplaceHandler
	StrategyHandler    *handlers.StrategyHandler
	ProfileHandler     *handlers.ProfileHandler
	AdminHandler       *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// The app is consumed by a browser SPA served from anywhere, so
	// CORS stays wildcard.
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Requested-With"},
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/auth/otp/request", cfg.AuthHandler.RequestOTP)
	router.POST("/auth/otp/verify", cfg.AuthHandler.VerifyOTP)
	router.POST("/auth/refresh", cfg.AuthHandler.Refresh)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)
	// Crops
	protected.GET("/crops", cfg.CropHandler.ListCrops)
	protected.GET("/crops/:id", cfg.CropHandler.GetCrop)
	protected.GET("/crops/:id/price-history", cfg.CropHandler.GetPriceHistory)
	protected.POST("/crops/recommendations", cfg.CropHandler.Recommendations)
	// Plans
	protected.POST("/plans", cfg.PlanHandler.StartPlan)
	protected.GET("/plans", cfg.PlanHandler.GetPlans)
	protected.PATCH("/plans/:id", cfg.PlanHandler.CompletePlan)
	protected.GET("/plans/:id/roadmap", cfg.PlanHandler.GetRoadmap)
	protected.PATCH("/tasks/roadmap/:id/complete", cfg.PlanHandler.CompleteRoadmapTask)
	protected.PATCH("/tasks/daily/:id/complete", cfg.PlanHandler.CompleteDailyTask)
	// Calendar
	protected.GET("/calendar", cfg.CalendarHandler.GetCalendar)
	// AI proxies
	protected.POST("/ai/crop-recommendation", cfg.AIHandler.CropRecommendation)
	protected.POST("/ai/disease-forecast", cfg.AIHandler.DiseaseForecast)
	protected.POST("/ai/pest-detection", cfg.AIHandler.PestDetection)
	protected.POST("/ai/seed-research", cfg.AIHandler.SeedResearch)
	protected.POST("/ai/generate-tasks", cfg.AIHandler.GenerateTasks)
	protected.POST("/ai/voice-assistant", cfg.AIHandler.VoiceAssistant)
	protected.POST("/weather/forecast", cfg.AIHandler.WeatherForecast)
	// Marketplace
	protected.GET("/marketplace/prices", cfg.MarketplaceHandler.GetPrices)
	protected.PUT("/marketplace/prices", cfg.MarketplaceHandler.UpdatePrice)
	// Strategies
	protected.POST("/strategies", cfg.StrategyHandler.CreateStrategy)
	protected.GET("/strategies", cfg.StrategyHandler.GetStrategies)
	protected.GET("/strategies/:id", cfg.StrategyHandler.GetStrategy)
	// Profile
	protected.GET("/profile", cfg.ProfileHandler.GetProfile)
	protected.PUT("/profile", cfg.ProfileHandler.UpdateProfile)
	// Admin
	protected.POST("/admin/import-crops", cfg.AdminHandler.ImportCrops)
	protected.POST("/admin/seed-database", cfg.AdminHandler.SeedDatabase)

	return router
}
