package mw

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleTimeout is how long the limiter of a client that sends no requests is kept.
const limiterIdleTimeout = 10 * time.Minute

// clientLimiters holds a rate limiter for each client IP address. Limiters of idle clients are evicted.
type clientLimiters struct {
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
	lock     sync.Mutex
}

func newClientLimiters(limit rate.Limit, burst int, idleTimeout time.Duration) *clientLimiters {
	return &clientLimiters{
		limiters: cache.New(idleTimeout, idleTimeout),
		limit:    limit,
		burst:    burst,
	}
}

func (l *clientLimiters) get(ip string) *rate.Limiter {
	l.lock.Lock()
	defer l.lock.Unlock()
	var limiter *rate.Limiter
	if entry, ok := l.limiters.Get(ip); ok {
		limiter = entry.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(l.limit, l.burst)
	}
	l.limiters.SetDefault(ip, limiter)
	return limiter
}

// RateLimiter rejects requests from a client that exceeds the rate limit with 429 Too Many Requests.
func RateLimiter(limit rate.Limit, burst int) gin.HandlerFunc {
	limiters := newClientLimiters(limit, burst, limiterIdleTimeout)
	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
