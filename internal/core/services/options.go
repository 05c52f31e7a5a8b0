package services

import (
	"log/slog"
	"time"

	"github.com/srgjo27/studio_booking/internal/core/domain"
	"github.com/srgjo27/studio_booking/internal/platform/metrics"
)

const (
	defaultOperationTimeout = 5 * time.Second
	defaultLockTTL          = 10 * time.Second
	lockRetryInterval       = 25 * time.Millisecond
)

type options struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
	policy   domain.BookingPolicy
	timeout  time.Duration
	lockTTL  time.Duration
	notifier *NotificationService
}

// Option configures a service. Options a service does not use are ignored.
type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func WithPolicy(policy domain.BookingPolicy) Option {
	return func(o *options) { o.policy = policy }
}

func WithOperationTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func WithLockTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.lockTTL = d
		}
	}
}

func WithNotifier(n *NotificationService) Option {
	return func(o *options) { o.notifier = n }
}

func buildOptions(opts []Option) options {
	o := options{
		logger:  slog.Default(),
		now:     time.Now,
		policy:  domain.DefaultBookingPolicy(),
		timeout: defaultOperationTimeout,
		lockTTL: defaultLockTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
