package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"tirelire/internal/core"
)

type contextKey string

const userIDKey contextKey = "user_id"

// HeaderName carries the caller's identity. Authentication itself happens
// upstream; this service trusts the gateway-injected header.
const HeaderName = "X-User-ID"

// UserChecker reports whether a user id is known.
type UserChecker interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
}

// Middleware resolves the caller from the identity header and rejects the
// request when it is missing, malformed or unknown. Every route behind it
// can assume FromContext succeeds.
func Middleware(users UserChecker, reject func(w http.ResponseWriter, status int, msg string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderName)
			if raw == "" {
				reject(w, http.StatusUnauthorized, "missing user identity")
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				reject(w, http.StatusUnauthorized, "invalid user identity")
				return
			}

			exists, err := users.UserExists(r.Context(), userID)
			if err != nil {
				slog.ErrorContext(r.Context(), "Failed to resolve user identity", "user_id", userID, "error", err)
				reject(w, http.StatusInternalServerError, "identity lookup failed")
				return
			}
			if !exists {
				reject(w, http.StatusUnauthorized, "unknown user")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the authenticated user id.
func FromContext(ctx context.Context) (int64, error) {
	if id, ok := ctx.Value(userIDKey).(int64); ok && id > 0 {
		return id, nil
	}
	return 0, core.ErrMissingUser
}

// WithUserID is a test hook for handlers that read FromContext.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
