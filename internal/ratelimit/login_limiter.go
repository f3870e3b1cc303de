package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "login_attempts:"

// LoginLimiter bounds login attempts per client using a Redis counter.
// When Redis is unreachable the limiter fails open: availability of the
// login surface wins over throttling.
type LoginLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	logger *zap.Logger
}

// NewLoginLimiter constructs the limiter. A nil client disables limiting.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &LoginLimiter{client: client, max: maxAttempts, window: window, logger: logger}
}

// Allow reports whether another attempt is permitted for the key.
func (l *LoginLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil {
		return true
	}

	count, err := l.client.Incr(ctx, keyPrefix+key).Result()
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, keyPrefix+key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter expire failed", zap.Error(err))
		}
	}
	return count <= int64(l.max)
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) {
	if l == nil || l.client == nil {
		return
	}
	if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		l.logger.Warn("login limiter reset failed", zap.Error(err))
	}
}
