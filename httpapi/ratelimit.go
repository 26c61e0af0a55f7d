// Per-remote-address rate limiting on /v1/execute, since that endpoint
// runs untrusted scripts and must not let one client starve the rest
// (§2's domain-stack row for golang.org/x/time). Grounded on the
// teacher's services/llm/ollama_llm.go rate.Limiter usage, generalized
// from one limiter per process to one limiter per client address.
package httpapi

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterGroup hands out a *rate.Limiter per remote address, creating
// one on first sight. A zero rps disables limiting entirely: Allow
// always reports true without ever touching the map.
type limiterGroup struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newLimiterGroup(rps float64, burst int) *limiterGroup {
	return &limiterGroup{
		rps:      rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (g *limiterGroup) allow(key string) bool {
	if g.rps <= 0 {
		return true
	}
	g.mu.Lock()
	l, ok := g.limiters[key]
	if !ok {
		l = rate.NewLimiter(g.rps, g.burst)
		g.limiters[key] = l
	}
	g.mu.Unlock()
	return l.Allow()
}

// executeRateLimit is gin middleware rejecting requests once the
// calling remote address exceeds its token bucket.
func (s *Server) executeRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
