package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/studio_booking/internal/core/domain"
)

const keyPrefix = "studio:"

// releaseScript deletes the lock only if it still holds our token, so a
// holder whose TTL expired cannot release someone else's lock.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

var errLockExpired = errors.New("lock expired before release")

// LessonLocker is a single-instance Redis mutex keyed per lesson.
type LessonLocker struct {
	client   redis.Cmdable
	newToken func() string
}

func NewLessonLocker(client redis.Cmdable) *LessonLocker {
	return &LessonLocker{client: client, newToken: uuid.NewString}
}

func (l *LessonLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := l.newToken()

	ok, err := l.client.SetNX(ctx, keyPrefix+key, token, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		return "", domain.ErrLockBusy
	}

	return token, nil
}

func (l *LessonLocker) Release(ctx context.Context, key, token string) error {
	n, err := l.client.Eval(ctx, releaseScript, []string{keyPrefix + key}, token).Int64()
	if err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("release %s: %w", key, errLockExpired)
	}

	return nil
}
