package repository

import (
	"context"
	"sync/atomic"
	"time"

	"tripdesk/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverRateLimiter prefers the primary (redis) tier and falls back to the
// in-memory tier when it errors, retrying the primary after a cooldown.
type FailoverRateLimiter struct {
	primary  domain.RateLimiter
	fallback domain.RateLimiter
	log      zerolog.Logger

	isDown    atomic.Bool
	downSince atomic.Int64
}

const recoveryCooldown = time.Minute

func NewFailoverRateLimiter(primary, fallback domain.RateLimiter, logger *zerolog.Logger) *FailoverRateLimiter {
	var log zerolog.Logger
	if logger != nil {
		log = logger.With().Str("component", "rate_limiter").Logger()
	}
	return &FailoverRateLimiter{primary: primary, fallback: fallback, log: log}
}

func (f *FailoverRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if f.primary != nil && f.shouldTryPrimary() {
		ok, err := f.primary.Allow(ctx, key)
		if err == nil {
			f.isDown.Store(false)
			return ok, nil
		}
		f.log.Error().Err(err).Msg("primary rate limiter failed, falling back to memory")
		f.isDown.Store(true)
		f.downSince.Store(time.Now().UnixNano())
	}

	return f.fallback.Allow(ctx, key)
}

func (f *FailoverRateLimiter) shouldTryPrimary() bool {
	if !f.isDown.Load() {
		return true
	}
	return time.Since(time.Unix(0, f.downSince.Load())) > recoveryCooldown
}
