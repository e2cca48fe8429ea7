package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bienestar-app/bienestar/internal/render"
)

// RateLimiter is a sliding-window request counter keyed by client IP.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

// NewRateLimiter starts a background sweep that drops idle clients.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := newRateLimiter(limit, window, time.Now)
	go rl.cleanupLoop()
	return rl
}

func newRateLimiter(limit int, window time.Duration, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      now,
	}
}

// Allow records a request from ip. When the limit is reached it returns
// false and how long until the oldest request leaves the window.
func (rl *RateLimiter) Allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	recent := rl.requests[ip][:0]
	for _, t := range rl.requests[ip] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= rl.limit {
		rl.requests[ip] = recent
		return false, recent[0].Add(rl.window).Sub(now)
	}

	rl.requests[ip] = append(recent, now)
	return true, 0
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.cleanup()
	}
}

// cleanup forgets clients whose newest request is older than two windows.
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-2 * rl.window)
	for ip, requests := range rl.requests {
		if len(requests) == 0 || !requests[len(requests)-1].After(cutoff) {
			delete(rl.requests, ip)
		}
	}
}

// Limit rejects requests over the limiter's budget with 429 and Retry-After.
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		ok, retryAfter := rl.Allow(ip)
		if !ok {
			slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			seconds := int(retryAfter.Round(time.Second).Seconds())
			w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
			render.Error(w, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}

		next(w, r)
	}
}

// RateLimitAuth limits auth endpoints to 5 requests per 15 minutes per IP.
func RateLimitAuth() func(http.HandlerFunc) http.HandlerFunc {
	return NewRateLimiter(5, 15*time.Minute).Limit
}

// clientIP prefers proxy headers, then the connection address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
