// Package middleware holds HTTP middleware shared by the console and the
// mock data server.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"mini-admin/internal/domain"
)

// RequestIDHeader is the header carrying the correlation ID.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 128

// RequestID returns an HTTP middleware that assigns a request ID to each
// request. A well-formed incoming X-Request-ID is reused; anything else is
// replaced by a new UUID. The ID is echoed on the response and stored in
// the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := domain.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext extracts the request ID from the context.
// Returns an empty string if no request ID is present.
func RequestIDFromContext(ctx context.Context) string {
	return domain.RequestIDFromContext(ctx)
}

// validRequestID accepts 1..128 characters from [A-Za-z0-9._-], which keeps
// client-supplied IDs from forging log lines.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
