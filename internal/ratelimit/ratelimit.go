// Package ratelimit implements the per-client request throttle for the
// contact form: a short burst window plus an hourly cap, backed by Redis.
// With no Redis configured the limiter is a no-op.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result reports a limiter decision. RetryAfter is only meaningful when
// Allowed is false.
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Config mirrors the original deployment's two sliding windows.
type Config struct {
	Burst       int
	BurstWindow time.Duration
	Hourly      int
}

type redisLimiter struct {
	client *redis.Client
	cfg    Config
}

// NewRedisLimiter connects to Redis and returns a sliding-window limiter.
func NewRedisLimiter(redisURL string, cfg Config) (Limiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &redisLimiter{client: redis.NewClient(opts), cfg: cfg}, nil
}

// NewLimiterFromClient wraps an existing client. Used by tests.
func NewLimiterFromClient(client *redis.Client, cfg Config) Limiter {
	return &redisLimiter{client: client, cfg: cfg}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	res, err := l.window(ctx, "ratelimit:"+key, l.cfg.Burst, l.cfg.BurstWindow)
	if err != nil || !res.Allowed {
		return res, err
	}
	return l.window(ctx, "ratelimit:hourly:"+key, l.cfg.Hourly, time.Hour)
}

// window implements a sliding window over a sorted set of request
// timestamps, trimmed on every call.
func (l *redisLimiter) window(ctx context.Context, key string, limit int, span time.Duration) (Result, error) {
	now := time.Now()
	cutoff := now.Add(-span)

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", cutoff.UnixNano()))
	count := pipe.ZCard(ctx, key)
	oldest := pipe.ZRangeWithScores(ctx, key, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit check failed: %w", err)
	}

	if count.Val() >= int64(limit) {
		retry := span
		if entries := oldest.Val(); len(entries) > 0 {
			oldestAt := time.Unix(0, int64(entries[0].Score))
			retry = span - now.Sub(oldestAt)
			if retry < time.Second {
				retry = time.Second
			}
		}
		return Result{Allowed: false, RetryAfter: retry}, nil
	}

	pipe = l.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, span)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit record failed: %w", err)
	}

	return Result{Allowed: true}, nil
}

type noopLimiter struct{}

// NewNoopLimiter returns a limiter that allows everything. Used when the
// rate-limit backend is unconfigured; there is deliberately no local
// fallback limiter.
func NewNoopLimiter() Limiter {
	return noopLimiter{}
}

func (noopLimiter) Allow(context.Context, string) (Result, error) {
	return Result{Allowed: true}, nil
}
