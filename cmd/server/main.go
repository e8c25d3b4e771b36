package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/config"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/delivery/http"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/repository/postgres"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/scoring"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/service"
)

func main() {
	// Load environment variables
	dotenv := config.LoadDotEnv()

	// Configuration
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zap.L().Sync() }()

	if !dotenv {
		zap.L().Info("no .env file found, using system environment")
	}

	scoringCfg, err := cfg.Scoring.ToScoring()
	if err != nil {
		zap.L().Fatal("invalid scoring configuration", zap.Error(err))
	}
	scorer, err := scoring.New(scoringCfg)
	if err != nil {
		zap.L().Fatal("create scorer", zap.Error(err))
	}

	// Database connection
	var repo service.SafetyRepository
	isMock := true
	if cfg.Database.URL != "" {
		pool, err := postgres.NewPool(context.Background(), cfg.Database.URL, postgres.PoolConfig{
			MaxConns:       cfg.Database.MaxConns,
			MinConns:       cfg.Database.MinConns,
			ConnectTimeout: time.Duration(cfg.Database.ConnectTimeoutS) * time.Second,
		})
		if err != nil {
			zap.L().Warn("could not connect to database, running with mock data only", zap.Error(err))
		} else {
			defer pool.Close()
			zap.L().Info("connected to PostgreSQL")
			repo = postgres.NewPostgresRepository(pool)
			isMock = false
		}
	}

	// Dependency Injection: Repositories
	if repo == nil {
		repo = postgres.NewMockRepository()
	}

	// Dependency Injection: Services
	riskSvc := service.NewRiskService(repo, scorer, isMock)

	// Fiber App
	app := http.NewApp(riskSvc, http.AppConfig{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
		AllowOrigins: cfg.Server.AllowOrigins,
	})

	// Graceful shutdown
	go func() {
		zap.L().Info("server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zap.L().Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down server")
	timeout := time.Duration(cfg.Server.ShutdownTimeoutSecs) * time.Second
	if err := app.ShutdownWithTimeout(timeout); err != nil {
		zap.L().Error("server forced to shutdown", zap.Error(err))
	}
	zap.L().Info("server exited gracefully")
}
