package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"github.com/synvya/retail-backend/internal/application/onboarding"
	"github.com/synvya/retail-backend/internal/application/publishing"
	"github.com/synvya/retail-backend/internal/domain/merchant"
	"github.com/synvya/retail-backend/internal/infrastructure/auth"
	"github.com/synvya/retail-backend/internal/infrastructure/config"
	"github.com/synvya/retail-backend/internal/infrastructure/logger"
	"github.com/synvya/retail-backend/internal/infrastructure/nostrclient"
	"github.com/synvya/retail-backend/internal/infrastructure/persistence"
	"github.com/synvya/retail-backend/internal/infrastructure/square"
	"github.com/synvya/retail-backend/internal/interfaces/http/handler"
	"github.com/synvya/retail-backend/internal/interfaces/http/middleware"
	"github.com/synvya/retail-backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting retail backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("square_env", cfg.Square.Environment),
	)

	// Initialize database connection; SQL logging follows the app log level
	gormLogLevel := gormlogger.Silent
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabase(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	credentialRepo := persistence.NewGormCredentialRepository(db.DB)

	// Platform and network clients
	squareClient := square.NewAdapter(cfg.Square, log)
	nostrClient := nostrclient.NewClient(&cfg.Nostr, log)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	publisher := publishing.NewPublisher(nostrClient, log)
	publishingService := publishing.NewService(credentialRepo, squareClient, nostrClient, publisher, log)
	provisioner := onboarding.NewProvisioner(credentialRepo, nostrClient, log)
	onboardingService := onboarding.NewService(
		credentialRepo,
		squareClient,
		nostrClient,
		provisioner,
		publishingService,
		jwtService,
		squareClient,
		merchant.Environment(cfg.Square.Environment),
		log,
	)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		MaxAge:       12 * time.Hour,
	}))

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewHealthHandler(db.DB))
	r.Register(handler.NewOAuthHandler(onboardingService, cfg.Square.FrontendURL, log))
	r.Register(handler.NewSellerHandler(publishingService, jwtService, log))
	r.Register(handler.NewAuthHandler(jwtService, cfg.App.Env, log))
	r.Setup()

	// HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
