package middleware

import (
	"context"
	"net/http"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

type contextKey string

const (
	// StaffContextKey is the context key for the authenticated staff username
	StaffContextKey contextKey = "staff"

	staffRealm = `Basic realm="cakekiosk staff", charset="UTF-8"`
)

// StaffVerifier checks staff credentials.
type StaffVerifier interface {
	Verify(username, password string) error
}

// RequireStaff protects staff endpoints with HTTP basic auth.
// Requests without valid credentials get 401 and a basic auth challenge.
func RequireStaff(verifier StaffVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", staffRealm)
				reject(w, r, domain.EUNAUTHORIZED, "Authentication required")
				return
			}

			if err := verifier.Verify(username, password); err != nil {
				GetLogger(r.Context()).Warn("staff authentication failed",
					"username", username,
					"remote_ip", GetClientIP(r),
					"error", err,
				)
				w.Header().Set("WWW-Authenticate", staffRealm)
				reject(w, r, domain.EUNAUTHORIZED, "Authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), StaffContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetStaffUser returns the authenticated staff username, or "" outside
// staff routes.
func GetStaffUser(ctx context.Context) string {
	if username, ok := ctx.Value(StaffContextKey).(string); ok {
		return username
	}
	return ""
}
