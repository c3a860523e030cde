package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter bounds login attempts per client with a fixed Redis window.
// A nil client or zero limit disables limiting entirely.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// New builds a limiter. Pass a nil client to disable.
func New(client *redis.Client, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	return &Limiter{client: client, limit: limit, window: window, logger: logger}
}

// Allow reports whether the key may attempt another login. Redis being
// unreachable fails open: login availability wins over throttling.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil || l.limit <= 0 {
		return true
	}

	pipe := l.client.Pipeline()
	count := pipe.Incr(ctx, "login_attempts:"+key)
	pipe.ExpireNX(ctx, "login_attempts:"+key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("rate limiter unavailable", zap.Error(err))
		return true
	}
	return count.Val() <= int64(l.limit)
}
