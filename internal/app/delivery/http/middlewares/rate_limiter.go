package middlewares

import (
	"meetocure-service/internal/pkg/exceptions"
	"meetocure-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter throttles per caller: the session user when the request is
// authenticated, the client IP otherwise. A caller that exhausts its bucket
// is blocked for blockTime. Callers idle for longer than idleTTL are evicted;
// by then their bucket has refilled and any block has lapsed.
type RateLimiter struct {
	log       *zap.Logger
	limiters  map[string]*callerLimiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	blockTime time.Duration
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type callerLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(logger *zap.Logger, limit rate.Limit, burst int, blockTime time.Duration) *RateLimiter {
	return &RateLimiter{
		log:       logger,
		limiters:  make(map[string]*callerLimiter),
		blocked:   make(map[string]time.Time),
		limit:     limit,
		burst:     burst,
		blockTime: blockTime,
		idleTTL:   idleTTL(limit, burst, blockTime),
		now:       time.Now,
	}
}

// idleTTL is the longer of blockTime and the time an empty bucket takes to
// refill, with a floor of one minute.
func idleTTL(limit rate.Limit, burst int, blockTime time.Duration) time.Duration {
	ttl := blockTime
	if limit > 0 && limit != rate.Inf {
		refill := time.Duration(float64(burst) / float64(limit) * float64(time.Second))
		ttl = max(ttl, refill)
	}
	return max(ttl, time.Minute)
}

// BookingRateLimiter builds the limiter guarding appointment creation from
// App.BookingRequestsPerMinute and App.BookingBurst.
func (m *Middlewares) BookingRateLimiter() func(next http.Handler) http.Handler {
	perMinute := m.InternalConfig.App.BookingRequestsPerMinute
	if perMinute <= 0 {
		perMinute = 1
	}
	burst := m.InternalConfig.App.BookingBurst
	if burst <= 0 {
		burst = 1
	}
	limiter := NewRateLimiter(m.Log, rate.Every(time.Minute/time.Duration(perMinute)), burst, time.Minute)
	return limiter.Limit
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		key := r.callerKey(req)
		now := r.now()

		r.mu.Lock()
		r.sweepLocked(now)

		if blockedUntil, found := r.blocked[key]; found {
			if now.Before(blockedUntil) {
				r.mu.Unlock()
				utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(nil, key))
				return
			}
			delete(r.blocked, key)
			delete(r.limiters, key)
		}

		entry, exists := r.limiters[key]
		if !exists {
			entry = &callerLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
			r.limiters[key] = entry
		}
		entry.lastSeen = now

		if !entry.limiter.AllowN(now, 1) {
			r.blocked[key] = now.Add(r.blockTime)
			r.mu.Unlock()

			utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(nil, key))
			return
		}

		r.mu.Unlock()
		next.ServeHTTP(w, req)
	})
}

// sweepLocked drops idle callers and lapsed blocks, at most once per idleTTL.
func (r *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < r.idleTTL {
		return
	}
	r.lastSweep = now

	for key, entry := range r.limiters {
		if now.Sub(entry.lastSeen) >= r.idleTTL {
			delete(r.limiters, key)
		}
	}
	for key, blockedUntil := range r.blocked {
		if !now.Before(blockedUntil) {
			delete(r.blocked, key)
		}
	}
}

func (r *RateLimiter) callerKey(req *http.Request) string {
	if session, ok := sessionFromContext(req.Context()); ok {
		return "user:" + session.UserID
	}
	return "ip:" + clientIP(req)
}
