package log

import (
	"context"
	"log/slog"
	"net/http"
)

type ctxKey struct{}

// Middleware stashes the logger in every request's context so handlers
// can pick it up with FromContext.
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, logger))
			next.ServeHTTP(w, r)
		})
	}
}

// FromContext returns the request's logger, falling back to the process
// default when none was attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{
		Logger:    slog.Default(),
		base:      slog.Default(),
		component: "unknown",
	}
}
