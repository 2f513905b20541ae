package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wellcoach/patterns-api/internal/apierror"
	"github.com/wellcoach/patterns-api/internal/logger"
)

// RateLimiter provides fixed-window request rate limiting per IP address
type RateLimiter struct {
	requests map[string]*clientInfo
	mu       sync.Mutex
	rate     int           // requests per window
	window   time.Duration // time window
	name     string        // identifier for logging
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type clientInfo struct {
	count       int
	windowStart time.Time
}

// NewRateLimiter creates a new rate limiter and starts its cleanup loop.
// Call Stop to end the loop.
func NewRateLimiter(rate int, window time.Duration, name string) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string]*clientInfo),
		rate:     rate,
		window:   window,
		name:     name,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	go rl.cleanup()

	logger.Default().Debug("rate limiter initialized",
		logger.String("name", name),
		logger.Int("rate", rate),
		logger.Duration("window", window),
	)

	return rl
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// cleanup removes stale entries periodically
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
		}

		rl.mu.Lock()
		now := rl.now()
		cleaned := 0
		for ip, info := range rl.requests {
			if now.Sub(info.windowStart) > rl.window*2 {
				delete(rl.requests, ip)
				cleaned++
			}
		}
		remaining := len(rl.requests)
		rl.mu.Unlock()

		if cleaned > 0 {
			logger.Default().Debug("rate limiter cleanup completed",
				logger.String("name", rl.name),
				logger.Int("cleaned", cleaned),
				logger.Int("remaining", remaining),
			)
		}
	}
}

// isAllowed counts a request from ip and reports whether it fits in the
// current window, the count so far, and the time until the window resets.
func (rl *RateLimiter) isAllowed(ip string) (bool, int, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	info, exists := rl.requests[ip]

	if !exists || now.Sub(info.windowStart) >= rl.window {
		rl.requests[ip] = &clientInfo{count: 1, windowStart: now}
		return true, 1, rl.window
	}

	info.count++
	resetIn := rl.window - now.Sub(info.windowStart)

	return info.count <= rl.rate, info.count, resetIn
}

// Middleware returns a gin handler backed by this limiter
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return rateLimitMiddleware(rl)
}

// rateLimitMiddleware creates the actual middleware handler
func rateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Handles X-Forwarded-For for reverse proxies
		ip := c.ClientIP()

		allowed, count, resetIn := limiter.isAllowed(ip)

		remaining := limiter.rate - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			logger.Ctx(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("limiter", limiter.name),
				logger.String("client_ip", ip),
				logger.Int("request_count", count),
				logger.Int("limit", limiter.rate),
				logger.Duration("window", limiter.window),
			)

			retryAfter := int(math.Ceil(resetIn.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			apierror.AbortWithProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c), retryAfter))
			return
		}

		c.Next()
	}
}
