package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gagyebu/internal/config"
	"gagyebu/internal/database"
	"gagyebu/internal/handlers"
	"gagyebu/internal/logger"
	"gagyebu/internal/middleware"
	"gagyebu/internal/services"
	"gagyebu/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gagyebu/internal/docs" // Import swagger docs
)

// @title           Gagyebu API
// @version         1.0
// @description     Gagyebu is a personal budgeting application with pay-cycle aware recurring transactions, installment tracking, and budget survival status.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey CronKeyAuth
// @in header
// @name X-Cron-Key
// @description Shared secret for the scheduled-generation trigger.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, categoryService)
	fixedService := services.NewFixedService(db, categoryService)
	settingsService := services.NewSettingsService(db)
	generationService := services.NewGenerationService(db, settingsService)
	goalService := services.NewGoalService(db, categoryService)
	survivalService := services.NewSurvivalService(db, settingsService)
	summaryService := services.NewSummaryService(db)

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	fixedHandler := handlers.NewFixedHandler(fixedService)
	goalHandler := handlers.NewGoalHandler(goalService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	dashboardHandler := handlers.NewDashboardHandler(settingsService, survivalService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	cronHandler := handlers.NewCronHandler(generationService)

	// Nightly in-process generation; the /cron/generate endpoint covers
	// deployments that prefer an external scheduler.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(appConfig.GenerationSchedule, func() {
		if _, err := generationService.GenerateDue(time.Now()); err != nil {
			log.Errorw("scheduled generation failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid generation schedule %q: %w", appConfig.GenerationSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Cron-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Category routes
	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Fixed transaction (recurring rule) routes
	fixed := v1.Group("/fixed")
	fixed.POST("", fixedHandler.CreateFixed)
	fixed.GET("", fixedHandler.GetFixed)
	fixed.POST("/installments", fixedHandler.CreateInstallment)
	fixed.POST("/installments/preview", fixedHandler.PreviewInstallment)
	fixed.GET("/:id", fixedHandler.GetFixedByID)
	fixed.GET("/:id/schedule", fixedHandler.GetSchedule)
	fixed.PUT("/:id", fixedHandler.UpdateFixed)
	fixed.DELETE("/:id", fixedHandler.DeleteFixed)

	// Budget goal routes
	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Settings routes
	settings := v1.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PUT("", settingsHandler.UpdateSettings)

	// Dashboard routes
	dashboard := v1.Group("/dashboard")
	dashboard.GET("/cycle", dashboardHandler.GetCycle)
	dashboard.GET("/survival", dashboardHandler.GetSurvival)

	// Summary routes
	summary := v1.Group("/summary")
	summary.GET("/monthly", summaryHandler.GetMonthlySummary)

	// External generation trigger, behind the shared cron secret
	cronGroup := v1.Group("/cron")
	cronGroup.Use(middleware.CronAuthMiddleware(appConfig.CronSecret))
	cronGroup.POST("/generate", cronHandler.Generate)

	log.Infof("Starting Gagyebu backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
