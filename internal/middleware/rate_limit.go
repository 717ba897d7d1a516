package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter implements a token bucket per client
type RateLimiter struct {
	requestsPerMinute int
	burstSize         int
	clients           map[string]*TokenBucket
	lastSweep         time.Time
	mu                sync.Mutex
	now               func() time.Time
}

// TokenBucket implements a token bucket for rate limiting
type TokenBucket struct {
	tokens       float64
	lastRefill   time.Time
	tokensPerSec float64
	maxTokens    float64
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(requestsPerMinute, burstSize int) *RateLimiter {
	return &RateLimiter{
		requestsPerMinute: requestsPerMinute,
		burstSize:         burstSize,
		clients:           make(map[string]*TokenBucket),
		now:               time.Now,
	}
}

// Allow checks if a request from client is allowed
func (r *RateLimiter) Allow(client string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	bucket, exists := r.clients[client]
	if !exists {
		bucket = &TokenBucket{
			tokens:       float64(r.burstSize),
			lastRefill:   now,
			tokensPerSec: float64(r.requestsPerMinute) / 60.0,
			maxTokens:    float64(r.burstSize),
		}
		r.clients[client] = bucket
	}

	elapsed := now.Sub(bucket.lastRefill).Seconds()
	bucket.lastRefill = now
	bucket.tokens += elapsed * bucket.tokensPerSec
	if bucket.tokens > bucket.maxTokens {
		bucket.tokens = bucket.maxTokens
	}

	if bucket.tokens >= 1.0 {
		bucket.tokens -= 1.0
		return true
	}

	return false
}

// refillWindow is how long an empty bucket takes to fill up again.
func (r *RateLimiter) refillWindow() time.Duration {
	if r.requestsPerMinute <= 0 {
		return time.Minute
	}
	window := time.Duration(float64(r.burstSize) / float64(r.requestsPerMinute) * float64(time.Minute))
	if window < time.Second {
		window = time.Second
	}
	return window
}

// sweep drops buckets idle for a full refill window. Such a bucket is full
// again, so recreating it on the next request changes nothing. Runs at most
// once per window. Callers hold r.mu.
func (r *RateLimiter) sweep(now time.Time) {
	window := r.refillWindow()
	if now.Sub(r.lastSweep) < window {
		return
	}
	r.lastSweep = now
	for client, bucket := range r.clients {
		if now.Sub(bucket.lastRefill) >= window {
			delete(r.clients, client)
		}
	}
}

// RateLimit limits requests per client. Authenticated requests are keyed by
// user, others by IP.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.GetString(ContextUserID)
		if client == "" {
			client = c.ClientIP()
		}

		if !limiter.Allow(client) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
