// Package app wires configuration, storage and the booking core together
// for the API server and the admin CLI.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/studio_booking/internal/adapter/cache"
	"github.com/srgjo27/studio_booking/internal/adapter/messaging/rabbitmq"
	"github.com/srgjo27/studio_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/studio_booking/internal/core/services"
	"github.com/srgjo27/studio_booking/internal/platform/config"
	"github.com/srgjo27/studio_booking/internal/platform/database"
	"github.com/srgjo27/studio_booking/internal/platform/metrics"
)

type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *sql.DB
	Redis    *redis.Client
	Registry *prometheus.Registry

	Ledger  *services.LedgerService
	Catalog *services.CatalogService
	History *services.HistoryService
	Booking *services.BookingService

	closers []func() error
}

// New connects to Postgres and Redis, and to RabbitMQ when configured, and
// builds the services. Call Close when done.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger, Registry: prometheus.NewRegistry()}

	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	db, err := database.NewPostgresDB(ctx, cfg.Database())
	if err != nil {
		return nil, err
	}
	a.DB = db
	a.closers = append(a.closers, db.Close)

	logger.Info("Connecting to Redis", "addr", cfg.RedisAddr)
	a.Redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	a.closers = append(a.closers, a.Redis.Close)
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info("Redis connected successfully")

	m := metrics.New(a.Registry)
	opts := []services.Option{
		services.WithLogger(logger),
		services.WithMetrics(m),
		services.WithPolicy(cfg.Policy()),
		services.WithOperationTimeout(cfg.OperationTimeout),
		services.WithLockTTL(cfg.LessonLockTTL),
	}

	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, pub.Close)

		notifier := services.NewNotificationService(pub, cache.NewDeduplicator(a.Redis), cfg.NotifyDedupTTL, services.WithLogger(logger))
		opts = append(opts, services.WithNotifier(notifier))
		logger.Info("Booking events enabled", "exchange", cfg.BookingExchange)
	} else {
		logger.Warn("RABBIT_URL not set, booking events are disabled")
	}

	a.Ledger = services.NewLedgerService(postgres.NewAccountRepository(db), opts...)
	a.Catalog = services.NewCatalogService(postgres.NewLessonRepository(db), opts...)
	a.History = services.NewHistoryService(postgres.NewBookingRecordRepository(db), opts...)
	a.Booking = services.NewBookingService(a.Ledger, a.Catalog, a.History, cache.NewLessonLocker(a.Redis), opts...)

	return a, nil
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
