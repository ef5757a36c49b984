package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	apierrors "github.com/knakagawa/agile-dashboard-api/internal/errors"
	"github.com/knakagawa/agile-dashboard-api/internal/metrics"
	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles login attempts per client IP. The limiter map
// is never evicted; the dashboard serves a bounded training cohort, so the
// entry count stays small. The metrics bundle may be nil.
func LoginRateLimiter(r rate.Limit, burst int, m *metrics.APIMetrics) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[ip]; ok {
			return l
		}
		l := rate.NewLimiter(r, burst)
		limiters[ip] = l
		return l
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			if m != nil {
				m.LoginThrottledTotal.Inc()
			}
			apierrors.TooManyRequests(c, "Too many login attempts, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
