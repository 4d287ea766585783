package main

import (
	"github.com/M5Csoftware/m5c-portal-api/internal/auth"
	"github.com/M5Csoftware/m5c-portal-api/internal/handler"
	"github.com/M5Csoftware/m5c-portal-api/internal/mailer"
	"github.com/M5Csoftware/m5c-portal-api/internal/middleware"
	"github.com/M5Csoftware/m5c-portal-api/internal/store"
	"github.com/M5Csoftware/m5c-portal-api/pkg/config"
	"github.com/M5Csoftware/m5c-portal-api/pkg/database"
	"github.com/M5Csoftware/m5c-portal-api/pkg/logger"
	"github.com/M5Csoftware/m5c-portal-api/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting portal API...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Stores over the shared gorm handle
	users := store.NewUsers(database.GetDB(), log)
	customers := store.NewCustomers(database.GetDB())

	// Auth core: credential check, claim assembly, both token kinds. All
	// secrets come from the config object built above; nothing reads the
	// environment past this point.
	verifier := auth.NewCredentialVerifier(users, log)
	assembler := auth.NewClaimsAssembler(users, customers,
		cfg.JWT.SessionTTL(), cfg.JWT.ExtendedTTL(), log)
	sessions := auth.NewSessionManager(cfg.JWT.SessionSigningKey)
	tokens := auth.NewVerificationTokens(cfg.JWT.VerificationSigningKey, cfg.JWT.VerificationTTL())
	mail := mailer.New(cfg, log)

	authHandler := handler.NewAuthHandler(users, verifier, assembler, sessions, tokens, mail)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	authGroup := e.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/verify-email", authHandler.VerifyEmail)
	authGroup.POST("/resend-verification", authHandler.ResendVerification)

	// API routes - all require a valid session token
	api := e.Group("/api")
	api.Use(middleware.Auth(sessions))

	// Session facade and refresh
	api.GET("/session", authHandler.Session)
	api.POST("/session/refresh", authHandler.Refresh)

	// Account-scoped resources - require a billing account on the session
	shipments := api.Group("/shipments")
	shipments.Use(middleware.RequireAccount)
	shipments.POST("", handler.CreateShipment)
	shipments.GET("", handler.ListShipments)
	shipments.GET("/:id", handler.GetShipment)

	ledger := api.Group("/ledger")
	ledger.Use(middleware.RequireAccount)
	ledger.GET("", handler.ListLedger)

	reports := api.Group("/reports")
	reports.Use(middleware.RequireAccount)
	reports.GET("/shipments", handler.ShipmentSummary)

	notifications := api.Group("/notifications")
	notifications.Use(middleware.RequireAccount)
	notifications.GET("", handler.ListNotifications)
	notifications.POST("/:id/read", handler.MarkNotificationRead)

	// Settings - available before approval, no account code required
	settings := api.Group("/settings")
	settings.GET("/profile", handler.GetProfile)
	settings.PATCH("/profile", handler.UpdateProfile)
	settings.POST("/change-password", handler.ChangePassword)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
