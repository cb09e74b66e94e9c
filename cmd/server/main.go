package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/MayankPandey2611/E-commerce-Application/config"
	"github.com/MayankPandey2611/E-commerce-Application/internal/delivery"
	"github.com/MayankPandey2611/E-commerce-Application/internal/middleware"
	"github.com/MayankPandey2611/E-commerce-Application/internal/repository"
	"github.com/MayankPandey2611/E-commerce-Application/internal/usecase"
	"github.com/MayankPandey2611/E-commerce-Application/pkg/db"
)

func main() {
	logger := setupLogger("info")

	cfg := config.LoadConfig(logger)

	if logLevel, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logger.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		logger.SetLevel(logLevel)
	}
	logger.Info("Starting storefront service...")

	if err := runDBMigration(cfg.MigrationsURL, cfg.DatabaseURL); err != nil {
		logger.Fatalf("Failed to apply database migrations: %v", err)
	}
	logger.Info("Database schema is up to date.")

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Errorf("Error closing database connection: %v", err)
		}
	}()
	logger.Info("Database connection established.")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		logger.Fatalf("Failed to connect to redis at %s: %v", cfg.RedisAddr, err)
	}
	pingCancel()
	defer redisClient.Close()
	logger.Info("Redis connection established.")

	// Repository layer
	categoryRepo := repository.NewPostgresCategoryRepository(database, logger)
	productRepo := repository.NewPostgresProductRepository(database, logger)
	orderRepo := repository.NewPostgresOrderRepository(database, logger)
	userRepo := repository.NewPostgresUserRepository(database, logger)
	sessionStore := repository.NewRedisSessionStore(redisClient, cfg.SessionTTL, logger)
	logger.Info("Repositories initialized.")

	// Use case layer
	catalogUseCase := usecase.NewCatalogUseCase(categoryRepo, productRepo, logger)
	cartUseCase := usecase.NewCartUseCase(sessionStore, productRepo, logger)
	checkoutUseCase := usecase.NewCheckoutUseCase(sessionStore, orderRepo, logger)
	authUseCase := usecase.NewAuthUseCase(userRepo, logger)
	adminUseCase := usecase.NewAdminUseCase(categoryRepo, productRepo, logger)
	logger.Info("Use cases initialized.")

	catalogHandler := delivery.NewCatalogHandler(catalogUseCase, logger)
	cartHandler := delivery.NewCartHandler(cartUseCase, logger)
	authHandler := delivery.NewAuthHandler(authUseCase, sessionStore, cfg.SessionTTL, logger)
	checkoutHandler := delivery.NewCheckoutHandler(checkoutUseCase, cartUseCase, authUseCase, logger)
	adminHandler := delivery.NewAdminHandler(adminUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Session(cfg.SessionTTL, logger))

	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router)

	authed := router.Group("")
	authed.Use(middleware.RequireAuth(sessionStore, logger))
	checkoutHandler.RegisterRoutes(authed)

	admin := router.Group("/admin")
	admin.Use(middleware.RequireAuth(sessionStore, logger), middleware.RequireAdmin(authUseCase, logger))
	adminHandler.RegisterRoutes(admin)
	logger.Info("Routes registered.")

	srv := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Warn("Shutdown signal received...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
	logger.Info("Service shut down gracefully.")
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// runDBMigration applies pending migrations; an already-current schema is
// not an error.
func runDBMigration(migrationsURL, databaseURL string) error {
	migration, err := migrate.New(migrationsURL, databaseURL)
	if err != nil {
		return err
	}
	if err := migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
