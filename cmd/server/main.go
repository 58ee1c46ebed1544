// Package main is the entry point for the SmartDash API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartdash/internal/config"
	"smartdash/internal/logger"
	"smartdash/internal/middleware"
	"smartdash/internal/repositories"
	"smartdash/internal/repositories/cache"
	"smartdash/internal/routes"
	"smartdash/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := logger.Must(cfg.LogLevel, cfg.LogFormat, "smartdash-api")
	defer func() { _ = log.Sync() }()

	db, err := repositories.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	// Redis is optional: without it the dashboard and session lookups
	// always hit postgres.
	var cacheService *cache.CacheService
	redisClient := cache.NewRedisClient(cfg)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, caching disabled", zap.Error(err))
		_ = redisClient.Close()
	} else {
		cacheService = cache.NewCacheService(redisClient, cfg.DashboardCacheTTL)
		log.Info("redis connected", zap.String("host", cfg.RedisHost))
	}
	cancel()

	app := fiber.New(fiber.Config{
		AppName:      "SmartDash API",
		BodyLimit:    40 * 1024 * 1024,
		ErrorHandler: response.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.Metrics())

	routes.SetupRoutes(app, routes.Dependencies{
		Config: cfg,
		DB:     db,
		Cache:  cacheService,
		Logger: log,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	if cacheService != nil {
		if err := cacheService.Close(); err != nil {
			log.Warn("failed to close redis connection", zap.Error(err))
		}
	}
}
