package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/catDforD/Trackit/internal/config"
	"github.com/catDforD/Trackit/internal/handlers"
	"github.com/catDforD/Trackit/internal/logger"
	"github.com/catDforD/Trackit/internal/middleware"
	"github.com/catDforD/Trackit/internal/repository"
	"github.com/catDforD/Trackit/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})
	logger.SetDefault(log)

	log.Info("starting Trackit API server",
		logger.String("env", cfg.Server.Env),
		logger.String("database", cfg.Database.Path))

	// Open the SQLite store
	db, err := repository.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	entryRepo := repository.NewEntryRepository(db)

	// Initialize services
	entryService := service.NewEntryService(entryRepo)
	analyticsService := service.NewAnalyticsService(entryRepo)
	patternService := service.NewPatternService(entryRepo)

	// Initialize handlers
	entryHandler := handlers.NewEntryHandler(entryService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	patternsHandler := handlers.NewPatternsHandler(patternService)

	// Set Gin mode based on environment
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CORS.Origins()))
	router.Use(middleware.SecurityHeaders(cfg.Server.IsProduction()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Entry routes
		v1.GET("/entries", entryHandler.ListEntries)
		v1.POST("/entries", entryHandler.CreateEntry)
		v1.GET("/entries/:id", entryHandler.GetEntry)
		v1.DELETE("/entries/:id", entryHandler.DeleteEntry)
		v1.GET("/categories", entryHandler.GetCategories)

		// Analytics routes
		v1.GET("/analytics/weekly", analyticsHandler.GetWeeklyStats)
		v1.GET("/analytics/trends", analyticsHandler.GetTrends)
		v1.GET("/analytics/compare", analyticsHandler.ComparePeriods)
		v1.GET("/analytics/daily", analyticsHandler.GetDailySummary)

		// Pattern routes
		v1.GET("/patterns/days", patternsHandler.GetDayOfWeekPatterns)
		v1.GET("/patterns/streaks", patternsHandler.GetStreaks)
		v1.GET("/patterns/correlations", patternsHandler.GetCorrelations)
		v1.GET("/insights", patternsHandler.GetInsights)
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
