// Package main runs the venues HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aura-events/venues/config"
	"github.com/aura-events/venues/internal/auth"
	"github.com/aura-events/venues/internal/locations"
	"github.com/aura-events/venues/internal/middleware"
	"github.com/aura-events/venues/internal/organizers"
	"github.com/aura-events/venues/internal/server"
	"github.com/aura-events/venues/pkg/database"
	"github.com/aura-events/venues/pkg/redis"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	var authLimiter middleware.Limiter
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("rate limiting disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			authLimiter = redis.NewWindowLimiter(rdb.Client, "ratelimit:auth:", cfg.RateLimit.AuthPerMinute, time.Minute)
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	organizerRepo := organizers.NewRepository(pool)
	organizerSvc := organizers.NewService(organizerRepo, jwtService, logger)

	locationRepo := locations.NewRepository(pool)
	locationSvc := locations.NewService(locationRepo, organizerRepo, logger)

	router := server.NewRouter(server.Deps{
		Logger:      logger,
		Tokens:      jwtService,
		Organizers:  organizerSvc,
		Locations:   locationSvc,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
		AuthLimiter: authLimiter,
		Ping:        pool.Ping,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if os.Getenv("LOG_LEVEL") == "debug" {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, _ := config.Build()
	return logger
}
