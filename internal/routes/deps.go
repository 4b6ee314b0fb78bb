package routes

import (
	"net/http"

	"github.com/dukerupert/cakekiosk/internal/handler/kiosk"
	"github.com/dukerupert/cakekiosk/internal/middleware"
)

// KioskDeps contains dependencies for the customer-facing wizard routes
type KioskDeps struct {
	Handler *kiosk.Handler

	// Limiter throttles each client IP; nil disables rate limiting
	Limiter *middleware.RateLimiter
}

// StaffDeps contains dependencies for the staff ticket routes
type StaffDeps struct {
	Handler  *kiosk.StaffHandler
	Verifier middleware.StaffVerifier

	// Limiter slows down credential guessing; nil disables rate limiting
	Limiter *middleware.RateLimiter
}

// OpsDeps contains dependencies for health checks and metrics
type OpsDeps struct {
	Health  http.HandlerFunc
	Metrics http.Handler
}
