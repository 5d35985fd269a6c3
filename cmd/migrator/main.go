package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"thirdcoast.systems/redline/internal/application"
	"thirdcoast.systems/redline/internal/config"
	"thirdcoast.systems/redline/internal/db"
)

func main() {
	slog.Info("Starting database migrator service")

	startupCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conf, err := config.LoadConfig(startupCtx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if conf.LabelStore != "postgres" {
		slog.Error("LABEL_STORE is not postgres, nothing to migrate")
		os.Exit(1)
	}

	pool, err := application.OpenDBPoolWithRetry(startupCtx, *conf)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	databaseConnection, err := db.NewDatabaseConnection(startupCtx, pool)
	if err != nil {
		slog.Error("failed to create database connection", "error", err)
		os.Exit(1)
	}
	defer databaseConnection.Close()
	slog.Info("Label store connection established")

	if err := databaseConnection.Migrate(startupCtx); err != nil {
		slog.Error("failed to run label store migrations", "error", err)
		os.Exit(1)
	}

	slog.Info("Label store migrations completed successfully")
}
