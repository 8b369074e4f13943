package httpserver

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"hotel_app/internal/adapters/observability"
)

const limiterIdle = 10 * time.Minute

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor
	lastGC   time.Time
	now      func() time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = int(rps)
		if burst < 1 {
			burst = 1
		}
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: map[string]*visitor{},
		now:      time.Now,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastGC) > limiterIdle {
		for k, v := range rl.visitors {
			if now.Sub(v.seen) > limiterIdle {
				delete(rl.visitors, k)
			}
		}
		rl.lastGC = now
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[key] = v
	}
	v.seen = now
	return v.lim
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter(remoteIP(r)).Allow() {
			observability.ObserveRateLimited()
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(rl.rps)))
			writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(rps rate.Limit) int {
	if rps <= 0 {
		return 1
	}
	s := int(1/float64(rps) + 0.999)
	if s < 1 {
		s = 1
	}
	return s
}
