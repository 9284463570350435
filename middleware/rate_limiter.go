package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"voyago/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// The query endpoint sees one request per keystroke, so the bucket allows a
// burst of typing on top of the steady per-minute rate.
const (
	requestsPerMinute = 300
	keystrokeBurst    = 40
)

type clientLimiters struct {
	mu   sync.Mutex
	byIP map[string]*rate.Limiter
}

var limiters = &clientLimiters{byIP: make(map[string]*rate.Limiter)}

func (s *clientLimiters) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.byIP[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(time.Minute/requestsPerMinute), keystrokeBurst)
		s.byIP[ip] = limiter
	}
	return limiter
}

// clientIP resolves the caller's address, preferring proxy headers.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		// First entry in the comma-separated list is the originating client.
		if first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0]); first != "" {
			return first
		}
	}
	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}

// RateLimitMiddleware limits requests per client IP.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := clientIP(c)
		if !limiters.get(ip).Allow() {
			utils.GetLogger().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests; slow down"})
			return
		}
		c.Next()
	}
}
