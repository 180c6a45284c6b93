// Package ratelimit provides Redis-backed fixed-window rate limiting using
// INCR + EXPIRE. Checks fail open: a Redis outage never blocks a request.
package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Rule defines a rate limiting policy: the Redis key prefix, maximum number of
// requests allowed in the window, and the window duration.
type Rule struct {
	Key    string        // Redis key prefix (e.g., "rl:msg:")
	Limit  int           // max count in the window
	Window time.Duration // time window
}

// Key prefixes of the rules built by the application
const (
	KeyMessage = "rl:msg:"
	KeyReport  = "rl:report:"
)

// NewRule builds a Rule, falling back to a one minute window
func NewRule(key string, limit int, window time.Duration) Rule {
	if window <= 0 {
		window = time.Minute
	}
	return Rule{Key: key, Limit: limit, Window: window}
}

// Limiter performs rate limiting checks against Redis. A Limiter without a
// client allows everything.
type Limiter struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewLimiter creates a Limiter backed by the given Redis client, which may be nil
func NewLimiter(client *redis.Client, logger zerolog.Logger) *Limiter {
	return &Limiter{client: client, logger: logger}
}

// Enabled reports whether the limiter talks to Redis
func (l *Limiter) Enabled() bool {
	return l != nil && l.client != nil
}

// Allow increments the counter of userID under rule and reports whether the
// request is within the limit. On Redis errors it returns true with the error.
func (l *Limiter) Allow(ctx context.Context, userID int64, rule Rule) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	key := rule.Key + strconv.FormatInt(userID, 10)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("Redis INCR failed, failing open")
		return true, err
	}

	// The first increment opens the window
	if count == 1 {
		if err := l.client.Expire(ctx, key, rule.Window).Err(); err != nil {
			l.logger.Warn().Err(err).Str("key", key).Msg("Redis EXPIRE failed, failing open")
			// Without a TTL the key would block the user forever
			l.client.Del(ctx, key)
			return true, err
		}
	}

	return int(count) <= rule.Limit, nil
}

// Remaining returns how many requests userID has left in the current window.
// A missing key or a Redis error yields the full limit.
func (l *Limiter) Remaining(ctx context.Context, userID int64, rule Rule) (int, error) {
	if !l.Enabled() {
		return rule.Limit, nil
	}
	key := rule.Key + strconv.FormatInt(userID, 10)

	count, err := l.client.Get(ctx, key).Int()
	if err == redis.Nil {
		return rule.Limit, nil
	}
	if err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("Redis GET failed, failing open")
		return rule.Limit, err
	}

	remaining := rule.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
