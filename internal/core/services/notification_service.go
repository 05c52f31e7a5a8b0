package services

import (
	"context"
	"fmt"
	"time"

	"github.com/srgjo27/studio_booking/internal/core/domain"
	"github.com/srgjo27/studio_booking/internal/core/ports"
)

const defaultDedupTTL = 24 * time.Hour

// NotificationService publishes booking events for the push service. Each
// event is sent at most once per dedup TTL.
type NotificationService struct {
	publisher ports.EventPublisher
	dedup     ports.Deduplicator
	ttl       time.Duration
	opts      options
}

func NewNotificationService(publisher ports.EventPublisher, dedup ports.Deduplicator, ttl time.Duration, opts ...Option) *NotificationService {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}

	return &NotificationService{
		publisher: publisher,
		dedup:     dedup,
		ttl:       ttl,
		opts:      buildOptions(opts),
	}
}

// Notify publishes event unless it was already sent. A failed publish clears
// the dedup mark so the event can be retried.
func (s *NotificationService) Notify(ctx context.Context, event domain.BookingEvent) error {
	key := event.DedupKey()
	marked := false

	if s.dedup != nil {
		first, err := s.dedup.FirstSeen(ctx, key, s.ttl)
		switch {
		case err != nil:
			// Publish anyway: a duplicate push beats a lost one.
			s.opts.logger.Warn("Dedup store unavailable", "key", key, "error", err)
		case !first:
			s.opts.logger.Debug("Skipping duplicate notification", "key", key)
			return nil
		default:
			marked = true
		}
	}

	if err := s.publisher.PublishJSON(ctx, event.RoutingKey(), event); err != nil {
		if marked {
			s.forget(ctx, key)
		}
		return fmt.Errorf("publish %s: %w", event.RoutingKey(), err)
	}

	return nil
}

func (s *NotificationService) forget(ctx context.Context, key string) {
	fctx, cancel := detached(ctx, time.Second)
	defer cancel()

	if err := s.dedup.Forget(fctx, key); err != nil {
		s.opts.logger.Error("Failed to clear dedup mark, retries of this event will be skipped", "key", key, "error", err)
	}
}
