package ratelimit

import (
	"net/http"
	"sync"
	"time"
)

// Config holds rate limiter configuration
type Config struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 120,
		CleanupInterval:   5 * time.Minute,
	}
}

// Limiter counts requests per client over fixed one-minute windows.
type Limiter struct {
	limit   int
	janitor time.Duration

	mu      sync.Mutex
	windows map[string]*window

	done     chan struct{}
	stopOnce sync.Once
}

type window struct {
	start time.Time
	count int
}

// NewLimiter starts a limiter and its background janitor.
func NewLimiter(cfg Config) *Limiter {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultConfig().RequestsPerMinute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultConfig().CleanupInterval
	}

	l := &Limiter{
		limit:   cfg.RequestsPerMinute,
		janitor: cfg.CleanupInterval,
		windows: make(map[string]*window),
		done:    make(chan struct{}),
	}
	go l.runJanitor()
	return l
}

// Allow reports whether another request from the client fits in the
// current window.
func (l *Limiter) Allow(client string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[client]
	if w == nil || now.Sub(w.start) > time.Minute {
		l.windows[client] = &window{start: now, count: 1}
		return true
	}

	w.count++
	return w.count <= l.limit
}

// ActiveClients returns the number of currently tracked clients
func (l *Limiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// Stop terminates the janitor goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *Limiter) runJanitor() {
	ticker := time.NewTicker(l.janitor)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.dropStale(time.Now().Add(-10 * time.Minute))
		}
	}
}

func (l *Limiter) dropStale(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for client, w := range l.windows {
		if w.start.Before(cutoff) {
			delete(l.windows, client)
		}
	}
}

// Middleware rejects over-limit requests via onLimit before they reach
// the next handler.
func (l *Limiter) Middleware(extractIP func(*http.Request) string, onLimit func(http.ResponseWriter, *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(extractIP(r)) {
				if onLimit != nil {
					onLimit(w, r)
					return
				}
				w.Header().Set("Retry-After", "60")
				http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
