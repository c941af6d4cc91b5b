// cache содержит Redis-ограничитель частоты отправки контактной формы.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter — минимальный контракт ограничителя частоты.
type RateLimiter interface {
	// Allow учитывает одно событие для key и сообщает, укладывается ли оно в лимит.
	Allow(ctx context.Context, key string) (bool, error)
	// Ping проверяет доступность Redis (readiness).
	Ping(ctx context.Context) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewRedisLimiter создаёт ограничитель «фиксированное окно» из URL
// (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "showcase:contact:".
func NewRedisLimiter(redisURL, prefix string, limit int, window time.Duration) (RateLimiter, error) {
	const op = "cache.NewRedisLimiter"

	if prefix == "" {
		prefix = "showcase:contact:"
	}

	if limit <= 0 || window <= 0 {
		return nil, fmt.Errorf("%s: limit and window must be > 0", op)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &redisLimiter{rdb: rdb, prefix: prefix, limit: int64(limit), window: window}, nil
}

func (l *redisLimiter) key(k string) string { return l.prefix + k }

// Allow: INCR счётчика окна и EXPIRE NX, чтобы TTL ставился только первым событием.
func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, l.key(key))
	pipe.ExpireNX(ctx, l.key(key), l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= l.limit, nil
}

func (l *redisLimiter) Ping(ctx context.Context) error { return l.rdb.Ping(ctx).Err() }

func (l *redisLimiter) Close() error { return l.rdb.Close() }
