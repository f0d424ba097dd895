package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/careerpulse/backend/internal/router"
	"github.com/anonto42/careerpulse/backend/internal/services"
	"github.com/anonto42/careerpulse/backend/pkg/cache"
	"github.com/anonto42/careerpulse/backend/pkg/config"
	"github.com/anonto42/careerpulse/backend/pkg/firebase"
	"github.com/anonto42/careerpulse/backend/pkg/logger"
	"github.com/anonto42/careerpulse/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	db, err := config.InitDB(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	rc := cache.Connect(cfg.RedisURL, zlog)
	defer rc.Close()

	// Firebase is optional; without credentials only local auth is served
	var fb *firebase.App
	if cfg.FirebaseCredentialsPath != "" {
		fb, err = firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, zlog)
		if err != nil {
			zlog.Warn("Firebase disabled", zap.Error(err))
			fb = nil
		}
	}

	repos := router.MongoRepositories(db.Mongo, db.Database, cfg.MongoTransactions)
	svc := router.NewServices(cfg, repos, rc, fb, zlog, services.SystemClock())

	e := echo.New()
	e.HideBanner = true
	config.SetupMiddleware(e, cfg, zlog)
	router.SetupRoutes(e, cfg, svc, rc, fb != nil, zlog)

	if cfg.MetricsPort != "" {
		go metrics.Serve(ctx, cfg.MetricsPort, zlog)
	}

	go func() {
		zlog.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Graceful shutdown failed", zap.Error(err))
	}
}
