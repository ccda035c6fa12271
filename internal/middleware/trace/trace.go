package trace

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type ctxKey struct{}

// Tracer assigns each request an id, logs its lifecycle and keeps
// rolling counters.
type Tracer struct {
	clientIP func(*http.Request) string

	requests atomic.Int64
	failures atomic.Int64
}

// NewMiddleware creates a tracer; clientIP may be nil.
func NewMiddleware(clientIP func(*http.Request) string) *Tracer {
	return &Tracer{clientIP: clientIP}
}

// Middleware wraps next with request tracing.
func (t *Tracer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := "req_" + uuid.NewString()
		ctx := context.WithValue(r.Context(), ctxKey{}, id)
		r = r.WithContext(ctx)

		ip := ""
		if t.clientIP != nil {
			ip = t.clientIP(r)
		}

		slog.InfoContext(ctx, "HTTP request started",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"client_ip", ip,
			"user_agent", r.Header.Get("User-Agent"))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		t.requests.Add(1)
		level := slog.LevelInfo
		switch {
		case rec.status >= 500:
			t.failures.Add(1)
			level = slog.LevelError
		case rec.status >= 400:
			level = slog.LevelWarn
		}

		slog.Log(ctx, level, "HTTP request completed",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", ip)
	})
}

// Stats returns the totals seen so far.
func (t *Tracer) Stats() (requests, failures int64) {
	return t.requests.Load(), t.failures.Load()
}

// RequestID returns the id assigned by the tracer, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
