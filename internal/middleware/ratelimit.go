package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"freight-backoffice/internal/logger"
	"freight-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = 10 * time.Minute
	limiterSweepInterval = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than the TTL are swept until the context is cancelled or Stop is called.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewRateLimiter starts the sweeper. A non-positive rps disables limiting.
func NewRateLimiter(ctx context.Context, rps float64, burst int) *RateLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}

	rl := &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rate:    limit,
		burst:   burst,
		idleTTL: limiterIdleTTL,
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go rl.run(ctx, limiterSweepInterval)

	return rl
}

// Stop ends the sweeper and waits for it to exit. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
	<-rl.done
}

func (rl *RateLimiter) run(ctx context.Context, interval time.Duration) {
	defer close(rl.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	cutoff := rl.now().Add(-rl.idleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = rl.now()
	return c.limiter.Allow()
}

// Middleware rejects clients that exceed their bucket with 429 RATE_LIMITED.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if rl.allow(ip) {
			c.Next()
			return
		}

		logger.Warn("Rate limit exceeded",
			zap.String("request_id", GetRequestID(c)),
			zap.String("ip", ip),
			zap.String("route", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.String("event", "rate_limited"),
		)

		c.Header("Retry-After", "1")
		utils.DetailedErrorResponse(c, http.StatusTooManyRequests, utils.ErrorBody{
			Error:     "Rate limit exceeded, please try again later",
			Code:      "RATE_LIMITED",
			Retryable: true,
		})
		c.Abort()
	}
}
