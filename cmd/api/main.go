package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/srgjo27/studio_booking/internal/adapter/handler"
	"github.com/srgjo27/studio_booking/internal/app"
	"github.com/srgjo27/studio_booking/internal/platform/config"
	"github.com/srgjo27/studio_booking/internal/platform/logger"
	"github.com/srgjo27/studio_booking/internal/platform/tracing"
)

const serviceName = "studio-booking"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, serviceName, cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		log.Error("Failed to init tracing", "error", err)
		os.Exit(1)
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to start", "error", err)
		os.Exit(1)
	}

	h := handler.New(handler.Services{
		Booking: a.Booking,
		Catalog: a.Catalog,
		Ledger:  a.Ledger,
		History: a.History,
	}, log)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      h.Router(a.Registry, cfg.OperationTimeout*2),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server startup failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("Tracer shutdown failed", "error", err)
	}
	if err := a.Close(); err != nil {
		log.Warn("Failed to close resources", "error", err)
	}

	log.Info("Server exiting")
}
