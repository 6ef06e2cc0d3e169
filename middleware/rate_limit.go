package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// staleAfter is how long an idle client keeps its limiter before pruning.
const staleAfter = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP with a token bucket.
type RateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	perMinute  int
	lastPruned time.Time
}

// NewRateLimiter allows perMinute requests per client IP, with bursts of the
// same size.
func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		clients:    make(map[string]*clientLimiter),
		perMinute:  perMinute,
		lastPruned: time.Now(),
	}
}

// Middleware rejects over-limit clients with 429 before the handler runs.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many attempts, try again later",
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastPruned) > staleAfter {
		rl.prune(now)
	}

	client, ok := rl.clients[ip]
	if !ok {
		client = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rl.perMinute)), rl.perMinute),
		}
		rl.clients[ip] = client
	}
	client.lastSeen = now

	return client.limiter.Allow()
}

func (rl *RateLimiter) prune(now time.Time) {
	for ip, client := range rl.clients {
		if now.Sub(client.lastSeen) > staleAfter {
			delete(rl.clients, ip)
		}
	}
	rl.lastPruned = now
}
