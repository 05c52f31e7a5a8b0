package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

const (
	maxRetries    = 10
	retryInterval = 2 * time.Second
)

// NewPostgresDB opens the pool and waits for the database to accept
// connections, retrying while it starts up.
func NewPostgresDB(ctx context.Context, cfg Config) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 1; i <= maxRetries; i++ {
		slog.Info("Connecting to database", "attempt", i, "max_attempts", maxRetries, "host", cfg.Host)
		db, err = sql.Open("postgres", cfg.DSN())
		if err == nil {
			err = db.PingContext(ctx)
		}

		if err == nil {
			slog.Info("Database connected successfully")
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(25)
			db.SetConnMaxLifetime(5 * time.Minute)
			return db, nil
		}

		if db != nil {
			_ = db.Close()
		}

		slog.Warn("Database not ready yet", "error", err, "retry_in", retryInterval)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect database: %w", ctx.Err())
		case <-time.After(retryInterval):
		}
	}

	return nil, fmt.Errorf("connect database after %d attempts: %w", maxRetries, err)
}
