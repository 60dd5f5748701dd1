package repository

import (
	"context"
	"fmt"
	"time"

	"tripdesk/internal/config"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter counts requests per key in fixed one-second windows, so
// multiple processes share one budget.
type RedisRateLimiter struct {
	client *redis.Client
	cfg    config.RateLimitConfig
}

func NewRedisRateLimiter(client *redis.Client, cfg config.RateLimitConfig) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, cfg: cfg}
}

func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := time.Now().Unix()
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, window)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, 2*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}

	// Burst applies within the window; sustained RPS is approximated by the
	// per-second window count.
	limit := int64(r.cfg.RPS)
	if int64(r.cfg.Burst) > limit {
		limit = int64(r.cfg.Burst)
	}
	return incr.Val() <= limit, nil
}
