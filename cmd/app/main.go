package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restock/cmd"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	storage, closeStorage, err := app.OpenStorage(ctx)
	if err != nil {
		log.Fatalf("Error opening %s storage: %v", configs.DBDriver, err)
	}
	app.UseStorage(storage)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	startWebServer(ctx, app, configs.HTTPPort, logger)

	jobManager.StopAll()
	app.Close()
	if err = closeStorage(context.Background()); err != nil {
		logger.Error("Closing storage failed", "error", err)
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := app.CreateRouter()

	go func() {
		logger.Info("HTTP server listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
