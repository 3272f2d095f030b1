package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rythumitra/rythumitra-backend/internal/db"
	"github.com/rythumitra/rythumitra-backend/internal/handlers"
	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/middleware"
	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/server"
	"github.com/rythumitra/rythumitra-backend/internal/services"
	"github.com/rythumitra/rythumitra-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	otpTTL := utils.GetEnvAsInt("OTP_TTL", 300, log)
	port := utils.GetEnv("PORT", "8080", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Failed to init postgres", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Failed to migrate postgres tables", "error", err)
	}
	gormDB := postgresService.DB()

	// Redis
	redisService, err := db.NewRedisService(log)
	if err != nil {
		log.Fatal("Failed to init redis", "error", err)
	}

	// Repos
	farmerRepo := repos.NewFarmerRepo(gormDB, log)
	farmerTokenRepo := repos.NewFarmerTokenRepo(gormDB, log)
	profileRepo := repos.NewProfileRepo(gormDB, log)
	cropRepo := repos.NewCropRepo(gormDB, log)
	instructionRepo := repos.NewCultivationInstructionRepo(gormDB, log)
	planRepo := repos.NewCropPlanRepo(gormDB, log)
	roadmapRepo := repos.NewRoadmapTaskRepo(gormDB, log)
	dailyTaskRepo := repos.NewDailyTaskRepo(gormDB, log)
	seedRepo := repos.NewSeedRecommendationRepo(gormDB, log)
	diseaseRepo := repos.NewDiseaseForecastRepo(gormDB, log)
	weatherRepo := repos.NewWeatherForecastRepo(gormDB, log)
	strategyRepo := repos.NewMultiCropStrategyRepo(gormDB, log)
	marketplaceRepo := repos.NewMarketplacePriceRepo(gormDB, log)
	priceHistoryRepo := repos.NewPriceHistoryRepo(gormDB, log)

	// AI gateway client
	aiClient, err := services.NewAIClient(log)
	if err != nil {
		log.Fatal("Failed to init AI client", "error", err)
	}

	// Services
	otpStore := services.NewRedisOTPStore(redisService.Client(), log)
	otpSender := services.NewLogOTPSender(log)
	authService := services.NewAuthService(
		gormDB, log,
		farmerRepo, farmerTokenRepo, profileRepo,
		otpStore, otpSender,
		jwtSecretKey,
		time.Duration(otpTTL)*time.Second,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	cropService := services.NewCropService(gormDB, log, cropRepo, instructionRepo, seedRepo, priceHistoryRepo)
	suitabilityService := services.NewSuitabilityService(gormDB, log, cropRepo)
	planService := services.NewPlanService(gormDB, log, cropRepo, instructionRepo, planRepo, roadmapRepo, dailyTaskRepo)
	calendarService := services.NewCalendarService(gormDB, log, planRepo, roadmapRepo)
	recommendationService := services.NewCropRecommendationService(gormDB, log, aiClient, cropRepo, priceHistoryRepo)
	forecastService := services.NewDiseaseForecastService(gormDB, log, aiClient, diseaseRepo)
	pestService := services.NewPestDetectionService(log, aiClient)
	seedResearchService := services.NewSeedResearchService(log, aiClient)
	taskGenService := services.NewTaskGenerationService(gormDB, log, aiClient, dailyTaskRepo)
	weatherService := services.NewWeatherService(gormDB, log, aiClient, planRepo, weatherRepo)
	assistantService := services.NewAssistantService(log, aiClient)
	marketplaceService := services.NewMarketplaceService(gormDB, log, marketplaceRepo, cropRepo)
	strategyService := services.NewStrategyService(gormDB, log, strategyRepo)
	profileService := services.NewProfileService(gormDB, log, profileRepo)
	importService := services.NewImportService(gormDB, log, cropRepo, instructionRepo, seedRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	cropHandler := handlers.NewCropHandler(cropService, suitabilityService)
	planHandler := handlers.NewPlanHandler(planService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	aiHandler := handlers.NewAIHandler(
		recommendationService,
		forecastService,
		pestService,
		seedResearchService,
		taskGenService,
		weatherService,
		assistantService,
	)
	marketplaceHandler := handlers.NewMarketplaceHandler(marketplaceService)
	strategyHandler := handlers.NewStrategyHandler(strategyService)
	profileHandler := handlers.NewProfileHandler(profileService)
	adminHandler := handlers.NewAdminHandler(importService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:        authHandler,
		AuthMiddleware:     authMiddleware,
		CropHandler:        cropHandler,
		PlanHandler:        planHandler,
		CalendarHandler:    calendarHandler,
		AIHandler:          aiHandler,
		MarketplaceHandler: marketplaceHandler,
		StrategyHandler:    strategyHandler,
		ProfileHandler:     profileHandler,
		AdminHandler:       adminHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
