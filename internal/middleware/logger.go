package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// LoggerContextKey holds the request logger in the request context.
const LoggerContextKey contextKey = "logger"

// WithRequestLogger attaches a logger carrying the request's method, path,
// client IP and request id. On kiosk and staff routes it also carries the
// session or ticket id from the path, so every wizard step of one customer
// can be followed in the logs. Mount it after RequestID.
func WithRequestLogger(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_ip", GetClientIP(r)),
			}
			if requestID := GetRequestID(r.Context()); requestID != "" {
				attrs = append(attrs, slog.String("request_id", requestID))
			}
			if attr, ok := routeAttr(r); ok {
				attrs = append(attrs, attr)
			}

			ctx := context.WithValue(r.Context(), LoggerContextKey, baseLogger.With(attrs...))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// routeAttr names the {id} wildcard of the matched route. It is empty until
// the mux has routed the request.
func routeAttr(r *http.Request) (slog.Attr, bool) {
	id := r.PathValue("id")
	switch {
	case id == "":
		return slog.Attr{}, false
	case strings.HasPrefix(r.URL.Path, "/kiosk/sessions/"):
		return slog.String("session_id", id), true
	case strings.HasPrefix(r.URL.Path, "/staff/tickets/"):
		return slog.String("ticket_id", id), true
	default:
		return slog.Attr{}, false
	}
}

// GetLogger returns the request logger, else the first non-nil fallback,
// else slog.Default().
func GetLogger(ctx context.Context, fallback ...*slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*slog.Logger); ok {
		return logger
	}
	if len(fallback) > 0 && fallback[0] != nil {
		return fallback[0]
	}
	return slog.Default()
}
