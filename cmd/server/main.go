package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/course-progress-service/internal/cache"
	"github.com/SAP-F-2025/course-progress-service/internal/config"
	"github.com/SAP-F-2025/course-progress-service/internal/handlers"
	"github.com/SAP-F-2025/course-progress-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/course-progress-service/internal/services"
	"github.com/SAP-F-2025/course-progress-service/internal/utils"
	"github.com/SAP-F-2025/course-progress-service/internal/validator"
	"github.com/SAP-F-2025/course-progress-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := logger.Slog()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		slogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := pkg.Migrate(db); err != nil {
		slogger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	// The course list cache is optional.
	var courseCache cache.CacheService
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		slogger.Warn("Redis unavailable, course cache disabled", "error", err)
	} else {
		defer redisClient.Close()
		courseCache = cache.NewRedisCache(redisClient, slogger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		slogger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	v := validator.New()
	serviceManager := services.NewServiceManager(services.ManagerConfig{
		Repo:           postgres.NewRepository(db),
		Cache:          courseCache,
		CourseCacheTTL: cfg.CourseCacheTTL,
		Publisher:      publisher,
		Validator:      v,
		Logger:         slogger,
	})

	tokenParser := handlers.NewTokenParser(cfg.Casdoor)
	if tokenParser == nil {
		slogger.Warn("Casdoor not configured, trusting identity headers")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))
	router.Use(handlers.CORSMiddleware(cfg.AllowedOrigins))

	handlers.NewHandlerManager(serviceManager, tokenParser, v, logger).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slogger.Info("Course progress service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slogger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slogger.Error("Graceful shutdown failed", "error", err)
	}
}
