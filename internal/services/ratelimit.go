package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client address. The map is reset
// wholesale when it grows too large; refilling a bucket is cheaper than
// tracking per-entry expiry.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	logger   *slog.Logger
}

func NewIPRateLimiter(limit rate.Limit, burst int, logger *slog.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
		logger:   logger,
	}
}

func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

func (l *IPRateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.mu.Lock()
				if len(l.limiters) > 10000 {
					l.logger.Info("Resetting rate limiter map", "count", len(l.limiters))
					l.limiters = make(map[string]*rate.Limiter)
				}
				l.mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()
}
