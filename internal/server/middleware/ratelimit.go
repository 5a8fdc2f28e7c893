package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Sweep cadence for dropping buckets of addresses that went quiet.
const (
	sweepEvery = 5 * time.Minute
	staleAfter = 10 * time.Minute
)

// RateLimiter applies a per-IP token bucket. Each address gets limit
// requests per interval, then 429s until the window rolls over.
type RateLimiter struct {
	mu       sync.RWMutex
	buckets  map[string]*bucket
	limit    int
	interval time.Duration
	logger   *zerolog.Logger
	done     chan struct{}
	once     sync.Once
}

// bucket is the token state for one address.
type bucket struct {
	mu       sync.Mutex
	tokens   int
	refilled time.Time
}

// take consumes one token, refilling the bucket first when the window
// has rolled over.
func (b *bucket) take(limit int, window time.Duration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if time.Since(b.refilled) > window {
		b.tokens = limit
		b.refilled = time.Now()
	}
	if b.tokens == 0 {
		return false
	}
	b.tokens--
	return true
}

// idle reports whether the bucket has gone without a refill for the
// given duration.
func (b *bucket) idle(since time.Duration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return time.Since(b.refilled) > since
}

// NewRateLimiter creates a limiter allowing limit requests per minute
// per IP. Call Stop when the limiter is no longer needed.
func NewRateLimiter(limit int, logger *zerolog.Logger) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		limit:    limit,
		interval: time.Minute,
		logger:   logger,
		done:     make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Stop terminates the background sweep goroutine.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.done) })
}

// sweep periodically drops buckets for addresses that stopped sending.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				if b.idle(staleAfter) {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// bucketFor returns the bucket for ip, creating it on first sight.
func (rl *RateLimiter) bucketFor(ip string) *bucket {
	rl.mu.RLock()
	b := rl.buckets[ip]
	rl.mu.RUnlock()
	if b != nil {
		return b
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if b := rl.buckets[ip]; b != nil {
		return b
	}
	b = &bucket{tokens: rl.limit, refilled: time.Now()}
	rl.buckets[ip] = b
	return b
}

// allow reports whether a request from ip fits the budget.
func (rl *RateLimiter) allow(ip string) bool {
	return rl.bucketFor(ip).take(rl.limit, rl.interval)
}

// limitExceededBody mirrors the error envelope the response package
// writes.
const limitExceededBody = `{"data":null,"error":{"code":"RATE_LIMITED","message":"Rate limit exceeded","details":"Too many requests. Please try again later."}}`

// RateLimit middleware rejects requests over the per-IP budget.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if rl.allow(ip) {
				next.ServeHTTP(w, r)
				return
			}

			rl.logger.Warn().
				Str("ip", ip).
				Str("path", r.URL.Path).
				Msg("Rate limit exceeded")

			writeStatic(w, rl.logger, http.StatusTooManyRequests, limitExceededBody)
		})
	}
}

// clientIP extracts the originating address, honoring the first hop of
// X-Forwarded-For when a proxy sits in front.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i >= 0 {
			return strings.TrimSpace(forwarded[:i])
		}
		return strings.TrimSpace(forwarded)
	}
	return r.RemoteAddr
}
