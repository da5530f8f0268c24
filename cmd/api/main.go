package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"finvue/internal/advisor"
	"finvue/internal/config"
	"finvue/internal/database"
	"finvue/internal/handlers"
	"finvue/internal/logger"
	"finvue/internal/middleware"
	"finvue/internal/models"
	"finvue/internal/services"
	"finvue/internal/validator"
)

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

	dbManager, err := database.NewManager(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	settingsService := services.NewSettingsService(db)
	transactionService := services.NewTransactionService(db, settingsService)
	syncService := services.NewSyncService(db)
	reportService := services.NewReportService(db, settingsService)

	// The advisor is optional; without an API key the insight endpoints
	// report the advisor as unavailable and everything else works.
	var aiAdvisor advisor.Advisor
	if appConfig.GeminiAPIKey != "" {
		gemini, err := advisor.NewGemini(context.Background(), appConfig.GeminiAPIKey, appConfig.GeminiModel)
		if err != nil {
			return fmt.Errorf("failed to create AI advisor: %w", err)
		}
		aiAdvisor = gemini
	} else {
		log.Warn("GEMINI_API_KEY not set, AI insights disabled")
	}
	insightService := services.NewInsightService(db, settingsService, aiAdvisor)

	if err := settingsService.EnsureDefaults(); err != nil {
		return fmt.Errorf("failed to seed defaults: %w", err)
	}

	// Catch up on pulses missed while the server was down.
	materialized, err := syncService.SynchronizePulses(models.DateOf(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to synchronize pulses at startup: %w", err)
	}
	if materialized > 0 {
		log.Infof("Materialized %d recurring transaction(s) at startup", materialized)
	}

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	pulseHandler := handlers.NewPulseHandler(settingsService, syncService)
	reportHandler := handlers.NewReportHandler(reportService)
	insightHandler := handlers.NewInsightHandler(insightService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/export", transactionHandler.ExportTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Configuration routes
	v1.GET("/config", settingsHandler.GetConfig)
	v1.PUT("/config/currency", settingsHandler.UpdateCurrency)

	categories := v1.Group("/categories")
	categories.POST("", settingsHandler.AddCategory)
	categories.DELETE("", settingsHandler.RemoveCategory)

	budgets := v1.Group("/budgets")
	budgets.PUT("", settingsHandler.SetBudget)
	budgets.DELETE("/:category", settingsHandler.DeleteBudget)

	// Recurring pulse routes
	pulses := v1.Group("/pulses")
	pulses.POST("", pulseHandler.CreatePulse)
	pulses.GET("", pulseHandler.GetPulses)
	pulses.PUT("/:id", pulseHandler.UpdatePulse)
	pulses.DELETE("/:id", pulseHandler.DeletePulse)
	pulses.POST("/sync", pulseHandler.SynchronizePulses)

	// Report and insight routes
	v1.GET("/reports/dashboard", reportHandler.GetDashboard)
	v1.POST("/insights", insightHandler.GetInsights)
	v1.POST("/insights/parse", insightHandler.ParseTransaction)

	log.Infof("Starting FinVue backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
