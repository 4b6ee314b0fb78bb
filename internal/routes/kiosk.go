package routes

import (
	"net/http"

	"github.com/dukerupert/cakekiosk/internal/middleware"
	"github.com/dukerupert/cakekiosk/internal/router"
)

// RegisterKioskRoutes registers the order wizard API.
//
// A session is created with POST /kiosk/sessions; every other route works on
// the order held by /kiosk/sessions/{id}.
func RegisterKioskRoutes(r *router.Router, deps KioskDeps) {
	h := deps.Handler

	var chain []router.Middleware
	if deps.Limiter != nil {
		chain = append(chain, deps.Limiter.Middleware)
	}

	sessions := r.Route("/kiosk/sessions", chain...)
	sessions.Post("", h.Create)

	s := sessions.Route("/{id}")
	s.Get("", h.Get)
	s.Delete("", h.Delete)
	s.Post("/reset", h.Reset)

	// Cake
	s.Get("/sizes", h.Sizes)
	s.Post("/size", h.SelectSize)
	s.Post("/size/next", h.NextSize)
	s.Post("/size/previous", h.PreviousSize)
	s.Get("/categories", h.Categories)
	s.Post("/category", h.SelectCategory)
	s.Get("/shapes", h.Shapes)
	s.Post("/shape", h.SelectShape)
	s.Get("/breads", h.Breads)
	s.Post("/bread", h.SelectBread)
	s.Get("/fillings", h.Fillings)
	s.Post("/filling", h.SelectFilling)
	s.Get("/coatings", h.Coatings)
	s.Post("/coating", h.SelectCoating)

	// Decoration
	s.Get("/decoration", h.Decoration)
	s.Post("/decoration", h.SetDecoration)
	s.Get("/colors", h.Colors)
	s.Get("/gallery", h.Gallery)

	// Extras, message and delivery
	s.Get("/extras", h.Extras)
	s.Post("/extra", h.SelectExtra)
	s.Post("/message", h.SetMessage)
	s.Get("/delivery/ranges", h.DeliveryRanges)
	s.Post("/delivery", h.SetDelivery)
	s.Post("/recipient", h.SetRecipient)

	// Checkout
	s.Get("/price", h.Price)
	s.Post("/finalize", h.Finalize)
}

// RegisterStaffRoutes registers the staff ticket routes behind basic auth.
// The rate limiter runs first so failed logins are throttled too.
func RegisterStaffRoutes(r *router.Router, deps StaffDeps) {
	var chain []router.Middleware
	if deps.Limiter != nil {
		chain = append(chain, deps.Limiter.Middleware)
	}
	chain = append(chain, middleware.RequireStaff(deps.Verifier))

	staff := r.Route("/staff/tickets/{id}", chain...)
	staff.Get("", deps.Handler.Ticket)
	staff.Post("/reprint", deps.Handler.Reprint)
	staff.Get("/receipt", deps.Handler.Receipt)
}

// RegisterOpsRoutes registers health and metrics endpoints.
func RegisterOpsRoutes(r *router.Router, deps OpsDeps) {
	r.Get("/health", deps.Health)
	if deps.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", deps.Metrics)
	}
}
