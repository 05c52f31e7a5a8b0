package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/srgjo27/studio_booking/internal/core/domain"
	"github.com/srgjo27/studio_booking/internal/platform/database"
)

type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"studio_booking"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	// Event publishing is skipped when RABBIT_URL is empty.
	RabbitURL       string `envconfig:"RABBIT_URL"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`

	// Tracing is disabled when OTEL_EXPORTER_OTLP_ENDPOINT is empty.
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Env          string `envconfig:"ENV" default:"development"`

	BookingCutoff    time.Duration `envconfig:"BOOKING_CUTOFF" default:"2h"`
	CancelCutoff     time.Duration `envconfig:"CANCEL_CUTOFF" default:"8h"`
	OperationTimeout time.Duration `envconfig:"OPERATION_TIMEOUT" default:"5s"`
	LessonLockTTL    time.Duration `envconfig:"LESSON_LOCK_TTL" default:"10s"`
	NotifyDedupTTL   time.Duration `envconfig:"NOTIFY_DEDUP_TTL" default:"24h"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on system environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.BookingCutoff < 0 || c.CancelCutoff < 0 {
		return fmt.Errorf("invalid config: cutoffs must not be negative")
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("invalid config: OPERATION_TIMEOUT must be positive")
	}
	if c.LessonLockTTL <= 0 {
		return fmt.Errorf("invalid config: LESSON_LOCK_TTL must be positive")
	}
	// The lock must outlive the operation it guards.
	if c.LessonLockTTL <= c.OperationTimeout {
		return fmt.Errorf("invalid config: LESSON_LOCK_TTL (%s) must be longer than OPERATION_TIMEOUT (%s)", c.LessonLockTTL, c.OperationTimeout)
	}
	return nil
}

func (c *Config) Policy() domain.BookingPolicy {
	return domain.BookingPolicy{
		BookingCutoff: c.BookingCutoff,
		CancelCutoff:  c.CancelCutoff,
	}
}

func (c *Config) Database() database.Config {
	return database.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
	}
}
