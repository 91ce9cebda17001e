package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Entries untouched this long are dropped, unless refilling their burst
// takes longer.
const minLimiterIdle = 10 * time.Minute

// RateLimiter throttles anonymous booking-link traffic per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	perMinute := max(cfg.PublicPerMinute, 1)
	burst := max(cfg.PublicBurst, 1)
	// A dropped entry comes back with a full bucket, so keep it at least
	// until the bucket would have refilled anyway.
	refill := time.Duration(burst) * time.Minute / time.Duration(perMinute)
	return &RateLimiter{
		limiters:  make(map[string]*ipLimiter),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     burst,
		idleAfter: max(minLimiterIdle, refill),
		now:       time.Now,
	}
}

func (l *RateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep runs at most once per idle window; l.mu must be held.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleAfter {
		return
	}
	for ip, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idleAfter {
			delete(l.limiters, ip)
		}
	}
	l.lastSweep = now
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.limiterFor(ip).Allow() {
			slog.Warn("Rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)
			c.Header("Retry-After", "60")
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Rate limit exceeded. Try again later.", nil)
			return
		}
		c.Next()
	}
}
