package middleware

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/Hrafn1377/prosjektravn/types"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore maps keys (authenticated user id, else client IP) to token
// buckets. A janitor goroutine evicts entries not seen for staleAfter so the
// map cannot grow without bound.
type limiterStore struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	staleAfter time.Duration
}

func newLimiterStore(staleAfter time.Duration) *limiterStore {
	s := &limiterStore{
		entries:    make(map[string]*limiterEntry),
		staleAfter: staleAfter,
	}
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			s.cleanup()
		}
	}()
	return s
}

func (s *limiterStore) getOrCreate(key string, r rate.Limit, burst int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		e.lastSeen = time.Now()
		return e.limiter
	}
	lim := rate.NewLimiter(r, burst)
	s.entries[key] = &limiterEntry{limiter: lim, lastSeen: time.Now()}
	return lim
}

func (s *limiterStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.staleAfter)
	for k, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

func envFloat(name string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(name), 64); err == nil && v > 0 {
		return v
	}
	return def
}

func envInt(name string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(name)); err == nil && v > 0 {
		return v
	}
	return def
}

func clientKey(c *gin.Context) string {
	if userID := c.GetInt("userId"); userID != 0 {
		return "u:" + strconv.Itoa(userID)
	}
	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		ip = c.ClientIP()
	}
	return "ip:" + ip
}

// RateLimit applies a general per-client token bucket to every route.
// Defaults: 20 req/s with a burst of 40, tunable via RATE_LIMIT_RPS and
// RATE_LIMIT_BURST.
func RateLimit() gin.HandlerFunc {
	store := newLimiterStore(10 * time.Minute)
	rps := rate.Limit(envFloat("RATE_LIMIT_RPS", 20))
	burst := envInt("RATE_LIMIT_BURST", 40)
	return func(c *gin.Context) {
		if !store.getOrCreate(clientKey(c), rps, burst).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				types.NewErrorResponse(types.ErrorCodeValidation, "Too many requests"))
			return
		}
		c.Next()
	}
}

// RateLimitAuth is the stricter bucket in front of register/login, keyed by
// IP only since the caller is not authenticated yet. Defaults to 1 req/s,
// burst 5.
func RateLimitAuth() gin.HandlerFunc {
	store := newLimiterStore(30 * time.Minute)
	rps := rate.Limit(envFloat("AUTH_RATE_LIMIT_RPS", 1))
	burst := envInt("AUTH_RATE_LIMIT_BURST", 5)
	return func(c *gin.Context) {
		ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			ip = c.ClientIP()
		}
		if !store.getOrCreate("ip:"+ip, rps, burst).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				types.NewErrorResponse(types.ErrorCodeValidation, "Too many requests"))
			return
		}
		c.Next()
	}
}
