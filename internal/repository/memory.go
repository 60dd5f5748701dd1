// Package repository holds the rate-limit state tiers: redis when configured,
// process memory as fallback.
package repository

import (
	"context"
	"sync"

	"tripdesk/internal/config"

	"golang.org/x/time/rate"
)

// MemoryRateLimiter keeps a token bucket per client key.
type MemoryRateLimiter struct {
	cfg      config.RateLimitConfig
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewMemoryRateLimiter(cfg config.RateLimitConfig) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		cfg:      cfg,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (m *MemoryRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	lim, ok := m.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(m.cfg.RPS), m.cfg.Burst)
		m.limiters[key] = lim
	}
	m.mu.Unlock()

	return lim.Allow(), nil
}
