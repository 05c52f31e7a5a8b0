package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupPrefix = keyPrefix + "notified:"

// Deduplicator remembers which notification keys were already sent.
type Deduplicator struct {
	client redis.Cmdable
}

func NewDeduplicator(client redis.Cmdable) *Deduplicator {
	return &Deduplicator{client: client}
}

func (d *Deduplicator) FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	first, err := d.client.SetNX(ctx, dedupPrefix+key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup %s: %w", key, err)
	}

	return first, nil
}

func (d *Deduplicator) Forget(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, dedupPrefix+key).Err(); err != nil {
		return fmt.Errorf("forget %s: %w", key, err)
	}

	return nil
}
