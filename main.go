package main

import (
	"context"
	"log"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"github.com/fadhlanhapp/fleetpay-backend/authz"
	"github.com/fadhlanhapp/fleetpay-backend/config"
	"github.com/fadhlanhapp/fleetpay-backend/handlers"
	"github.com/fadhlanhapp/fleetpay-backend/logger"
	"github.com/fadhlanhapp/fleetpay-backend/repository"
	"github.com/fadhlanhapp/fleetpay-backend/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg.Log)
	defer appLogger.Sync()

	// Initialize New Relic
	var app *newrelic.Application
	if cfg.NewRelic.LicenseKey != "" {
		app, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			appLogger.Warn("Failed to initialize New Relic", zap.Error(err))
		}
	}

	// Initialize database
	if err := repository.InitDB(cfg.Database); err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer repository.CloseDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = repository.EnsureSchema(ctx, repository.GetDB())
	cancel()
	if err != nil {
		appLogger.Fatal("Failed to apply schema", zap.Error(err))
	}

	authorizer, err := authz.NewAuthorizer()
	if err != nil {
		appLogger.Fatal("Failed to initialize authorizer", zap.Error(err))
	}
	handlers.InitHandlers(handlers.NewHandlerServices(repository.GetDB(), authorizer, appLogger))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Set up Gin router
	router := gin.New()
	router.Use(logger.Recovery(appLogger))
	router.Use(logger.GinMiddleware(appLogger))

	// Add New Relic middleware
	if app != nil {
		router.Use(nrgin.Middleware(app))
	}

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			handlers.HeaderAccountID, handlers.HeaderWorkspaceID, handlers.HeaderRole, handlers.HeaderManagerID,
		},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: !slices.Contains(cfg.CORS.AllowOrigins, "*"),
		MaxAge:           12 * time.Hour,
	}))

	// Set up routes
	routes.SetupRoutes(router, cfg.App.AdminAPIKey)

	// Start server
	appLogger.Info("Server starting", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
