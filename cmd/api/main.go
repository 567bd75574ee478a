package main

import (
	"fmt"
	"net/http"
	"os"

	"amanah/internal/anomaly"
	"amanah/internal/config"
	"amanah/internal/database"
	"amanah/internal/handlers"
	"amanah/internal/logger"
	"amanah/internal/middleware"
	"amanah/internal/services"
	"amanah/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "amanah/internal/docs" // Import swagger docs
)

// @title           Amanah Detection API
// @version         1.0
// @description     Amanah's transaction anomaly detection service. Scores every submitted transaction for fraud risk and persists a reviewable anomaly flag.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	scorer := anomaly.NewScorer(appConfig.Detection)
	detectionService := services.NewDetectionService(db, scorer)
	reviewService := services.NewReviewService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	detectionHandler := handlers.NewDetectionHandler(detectionService, appConfig.RequestTimeout)
	flagHandler := handlers.NewFlagHandler(reviewService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Detection
	v1.POST("/detect", detectionHandler.DetectTransaction)

	// Review dashboard surface
	flags := v1.Group("/flags")
	flags.GET("", flagHandler.ListFlags)
	flags.GET("/:id", flagHandler.GetFlagByID)
	flags.PUT("/:id/review", flagHandler.ReviewFlag)

	transactions := v1.Group("/transactions")
	transactions.GET("/:id", flagHandler.GetTransaction)

	log.Infof("Starting Amanah detection server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
