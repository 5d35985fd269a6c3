package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"thirdcoast.systems/redline/cmd/web/internal/web"
	"thirdcoast.systems/redline/internal/application"
	"thirdcoast.systems/redline/internal/config"
	"thirdcoast.systems/redline/internal/dataset"
	"thirdcoast.systems/redline/internal/metrics"
	"thirdcoast.systems/redline/internal/workspace"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting web service")

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if conf.DatabaseRetries <= 0 {
		conf.DatabaseRetries = 10
	}

	metrics.Init()

	st, closeStore, err := application.OpenStore(ctx, conf)
	if err != nil {
		slog.Error("failed to open label store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	loader := &dataset.Loader{Timeout: conf.FetchTimeout}
	ws := workspace.New(loader, st)

	if err := ws.LoadDatasets(ctx, conf.CommentsPath, conf.VideosPath); err != nil {
		slog.Error("failed to load datasets", "error", err)
		os.Exit(1)
	}

	e, err := web.NewWebserver(conf, ws)
	if err != nil {
		slog.Error("failed to create webserver", "error", err)
		os.Exit(1)
	}

	addr := ":" + strconv.Itoa(conf.WebServerPort)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		// Echo returns an error on Shutdown; treat it as normal if context is done.
		if ctx.Err() != nil {
			return
		}
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
