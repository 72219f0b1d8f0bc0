package middleware

import (
	"net/http"
	"sync"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/apperror"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyedLimiter keeps one token bucket per key (client IP or user id).
// Buckets are created lazily and never evicted; the key space is bounded by
// the set of clients the service actually sees.
type keyedLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

func newKeyedLimiter(limit rate.Limit, burst int) *keyedLimiter {
	return &keyedLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   limit,
		burst:   burst,
	}
}

func (k *keyedLimiter) allow(key string) bool {
	k.mu.Lock()
	bucket, ok := k.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(k.limit, k.burst)
		k.buckets[key] = bucket
	}
	k.mu.Unlock()

	return bucket.Allow()
}

// RateLimitByIP throttles requests per client IP.
func RateLimitByIP(limit rate.Limit, burst int) gin.HandlerFunc {
	limiter := newKeyedLimiter(limit, burst)
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			response.Error(c, http.StatusTooManyRequests, apperror.CodeTooManyRequests, "too many requests from this address", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitByUser throttles per authenticated user. Unauthenticated requests
// pass through so the IP limiter can cover them instead.
func RateLimitByUser(limit rate.Limit, burst int) gin.HandlerFunc {
	limiter := newKeyedLimiter(limit, burst)
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.allow(userID) {
			response.Error(c, http.StatusTooManyRequests, apperror.CodeTooManyRequests, "too many requests for this account", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
