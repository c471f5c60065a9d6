package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window request counter.
type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (LimitResult, error)
}

// LimitResult describes one rate limit decision.
type LimitResult struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimitService counts requests per key in Redis. The window starts at
// the first request and is not extended by later ones.
type RateLimitService struct {
	redis     redis.Cmdable
	keyPrefix string
}

func NewRateLimitService(rdb redis.Cmdable) *RateLimitService {
	return &RateLimitService{
		redis:     rdb,
		keyPrefix: "itinerary:rate_limit:",
	}
}

func (s *RateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (LimitResult, error) {
	rKey := s.keyPrefix + key

	pipe := s.redis.TxPipeline()
	incr := pipe.Incr(ctx, rKey)
	ttl := pipe.TTL(ctx, rKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return LimitResult{}, fmt.Errorf("rate limit pipeline: %w", err)
	}

	remaining := ttl.Val()
	// A negative TTL means the key was just created (or lost its expiry).
	if remaining < 0 {
		if err := s.redis.Expire(ctx, rKey, window).Err(); err != nil {
			return LimitResult{}, fmt.Errorf("rate limit expire: %w", err)
		}
		remaining = window
	}

	count := int(incr.Val())
	if count > limit {
		return LimitResult{Allowed: false, Remaining: 0, RetryAfter: remaining}, nil
	}
	return LimitResult{Allowed: true, Remaining: limit - count}, nil
}
