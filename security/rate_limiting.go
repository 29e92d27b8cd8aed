package security

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis     *redis.Client
	perMinute int
}

func NewRateLimiter(redisClient *redis.Client, perMinute int) *RateLimiter {
	return &RateLimiter{redis: redisClient, perMinute: perMinute}
}

// Middleware limits write traffic per authenticated user (or per IP for
// anonymous requests) using a fixed one-minute window in Redis.
func (r *RateLimiter) Middleware() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Read traffic is not limited.
		if e.Request.Method == http.MethodGet {
			return e.Next()
		}

		id := e.RealIP()
		if e.Auth != nil {
			id = "user:" + e.Auth.Id
		}

		if allowed, err := r.allow(e.Request.Context(), id); err == nil && !allowed {
			return apis.NewApiError(http.StatusTooManyRequests,
				"Rate limit exceeded. Please try again later.", nil)
		}

		return e.Next()
	}
}

// allow increments the caller's window counter and reports whether the
// request is within the limit. Redis errors fail open.
func (r *RateLimiter) allow(ctx context.Context, id string) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s", id)

	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		r.redis.Expire(ctx, key, time.Minute)
	}
	return count <= int64(r.perMinute), nil
}

// AntiBotMiddleware rejects requests from clients that identify as crawlers.
func (r *RateLimiter) AntiBotMiddleware() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if isSuspiciousUserAgent(e.Request.Header.Get("User-Agent")) {
			return apis.NewForbiddenError("Access denied", nil)
		}
		return e.Next()
	}
}

func isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
