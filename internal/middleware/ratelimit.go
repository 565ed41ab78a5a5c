package middleware

import (
	"context"
	"log"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// WindowStore counts requests per key in fixed, non-overlapping windows.
// Hit must increment and read the counter atomically.
type WindowStore interface {
	Hit(ctx context.Context, key string) (count int, resetAt time.Time, err error)
}

type visitor struct {
	count       int
	windowStart time.Time
}

// MemoryWindowStore keeps counters in process memory.
type MemoryWindowStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	window   time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewMemoryWindowStore(window time.Duration) *MemoryWindowStore {
	s := &MemoryWindowStore{
		visitors: make(map[string]*visitor),
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	// Cleanup goroutine
	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.evictExpired()
			case <-s.stop:
				return
			}
		}
	}()

	return s
}

func (s *MemoryWindowStore) Hit(_ context.Context, key string) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	v, exists := s.visitors[key]
	if !exists || now.Sub(v.windowStart) >= s.window {
		v = &visitor{windowStart: now}
		s.visitors[key] = v
	}
	v.count++

	return v.count, v.windowStart.Add(s.window), nil
}

func (s *MemoryWindowStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, v := range s.visitors {
		if now.Sub(v.windowStart) >= s.window {
			delete(s.visitors, key)
		}
	}
}

// Close stops the cleanup goroutine.
func (s *MemoryWindowStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// RateLimiter rejects a client's requests once it exceeds limit in the
// current window. Rejected requests are never queued.
type RateLimiter struct {
	store WindowStore
	limit int
}

func NewRateLimiter(store WindowStore, limit int) *RateLimiter {
	return &RateLimiter{store: store, limit: limit}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count, resetAt, err := rl.store.Hit(r.Context(), clientIP(r))
		if err != nil {
			// fail open
			log.Printf("[%s] WARNING: rate limit store unavailable: %v", GetRequestID(r), err)
			next.ServeHTTP(w, r)
			return
		}

		resetIn := int(math.Ceil(time.Until(resetAt).Seconds()))
		if resetIn < 0 {
			resetIn = 0
		}
		remaining := rl.limit - count
		if remaining < 0 {
			remaining = 0
		}

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		h.Set("X-RateLimit-Reset", strconv.Itoa(resetIn))

		if count > rl.limit {
			h.Set("Retry-After", strconv.Itoa(resetIn))
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP identifies the caller by source address without the port.
// RemoteAddr is the socket address unless the router trusts a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
