package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"packageTrackingManagement/internal/config"
	"packageTrackingManagement/internal/db"
	"packageTrackingManagement/internal/rpc"
	"packageTrackingManagement/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	cfg, err := config.LoadWithDefaults()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	logger.Info("configuration loaded", "config", cfg.String())

	d, err := db.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		logger.Error("open db", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Error("close db", "err", err)
		}
	}()

	srv := &rpc.TrackingServer{
		Users:    repository.NewUserRepository(d),
		Packages: repository.NewPackageRepository(d),
		Tracking: repository.NewTrackingRepository(d),
		Logger:   logger,
	}

	shutdown, err := rpc.StartTracking(cfg.GRPC.TrackingAddress, cfg.Auth.JWTSecret, srv)
	if err != nil {
		logger.Error("start tracking service", "err", err)
		os.Exit(1)
	}
	logger.Info("tracking service listening", "addr", cfg.GRPC.TrackingAddress)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
