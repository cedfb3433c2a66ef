package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	failureWindow = 15 * time.Minute
	maxFailures   = 10
)

// LoginLimiter throttles repeated failed logins using a fixed-window counter
// per email. Key format: login_fail:<email>. Redis being unreachable fails
// open so an outage cannot lock users out.
type LoginLimiter struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client, log zerolog.Logger) *LoginLimiter {
	return &LoginLimiter{client: client, log: log}
}

// Allow reports whether a login attempt for email may proceed.
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err != nil && err != redis.Nil {
		l.log.Warn().Err(err).Msg("login limiter unavailable, failing open")
		return true
	}
	return n < maxFailures
}

// RecordFailure counts one failed attempt against email. The window starts
// at the first failure and expires after failureWindow.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) {
	key := l.key(email)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.log.Warn().Err(err).Msg("login limiter failed to record attempt")
		return
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, failureWindow).Err(); err != nil {
			l.log.Warn().Err(err).Msg("login limiter failed to set window expiry")
		}
	}
}

func (l *LoginLimiter) key(email string) string {
	return fmt.Sprintf("login_fail:%s", email)
}
