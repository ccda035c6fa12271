package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tirelire/internal/core"
)

type fakeUsers struct {
	known map[int64]bool
	err   error
}

func (f fakeUsers) UserExists(_ context.Context, userID int64) (bool, error) {
	return f.known[userID], f.err
}

func reject(w http.ResponseWriter, status int, _ string) {
	w.WriteHeader(status)
}

func TestMiddleware(t *testing.T) {
	users := fakeUsers{known: map[int64]bool{7: true}}

	var gotUserID int64
	handler := Middleware(users, reject)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := FromContext(r.Context())
		if err != nil {
			t.Errorf("FromContext() error = %v", err)
		}
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not a number", "abc", http.StatusUnauthorized},
		{"negative", "-1", http.StatusUnauthorized},
		{"unknown user", "99", http.StatusUnauthorized},
		{"known user", "7", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
			if tt.header != "" {
				req.Header.Set(HeaderName, tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	if gotUserID != 7 {
		t.Errorf("resolved user id = %d, want 7", gotUserID)
	}
}

func TestFromContextMissing(t *testing.T) {
	_, err := FromContext(context.Background())
	if err != core.ErrMissingUser {
		t.Errorf("FromContext() error = %v, want %v", err, core.ErrMissingUser)
	}
}
