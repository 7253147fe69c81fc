package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a per-client-IP token bucket. Each bucket starts full with
// max tokens and refills max tokens every interval.
type RateLimiter struct {
	mu           sync.Mutex
	buckets      map[string]*bucket
	max          int
	interval     time.Duration
	cleanupAfter time.Duration
}

type bucket struct {
	tokens     int
	lastSeen   time.Time
	lastRefill time.Time
}

// NewRateLimiter allows max requests per interval for each client IP.
func NewRateLimiter(max int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:      make(map[string]*bucket),
		max:          max,
		interval:     interval,
		cleanupAfter: time.Hour,
	}

	go rl.cleanup()

	return rl
}

// Allow consumes one token for key, refilling first if an interval elapsed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, exists := rl.buckets[key]
	if !exists {
		rl.buckets[key] = &bucket{
			tokens:     rl.max - 1,
			lastSeen:   now,
			lastRefill: now,
		}
		return true
	}

	b.lastSeen = now

	if elapsed := now.Sub(b.lastRefill); elapsed >= rl.interval {
		b.tokens = rl.max
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// Middleware rejects over-limit requests with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			c.Abort()
			return
		}
		c.Next()
	}
}

// cleanup drops buckets idle for longer than cleanupAfter so the map does
// not grow with every IP ever seen.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, b := range rl.buckets {
			if now.Sub(b.lastSeen) > rl.cleanupAfter {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}
