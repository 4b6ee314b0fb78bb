package kiosk

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dukerupert/cakekiosk/internal/domain"
	"github.com/dukerupert/cakekiosk/internal/handler"
	"github.com/dukerupert/cakekiosk/internal/middleware"
	"github.com/dukerupert/cakekiosk/internal/service"
	"github.com/dukerupert/cakekiosk/internal/telemetry"
)

// Handler serves the kiosk wizard API. Every route below
// /kiosk/sessions/{id} works on the order of that session.
type Handler struct {
	controller *service.OrderController
	tickets    *service.TicketService
	sessions   *Sessions
	metrics    *telemetry.KioskMetrics
	validate   *validator.Validate
	loc        *time.Location
	logger     *slog.Logger
}

// NewHandler creates a new kiosk handler. Delivery dates are interpreted in
// loc.
func NewHandler(
	controller *service.OrderController,
	tickets *service.TicketService,
	sessions *Sessions,
	metrics *telemetry.KioskMetrics,
	loc *time.Location,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		controller: controller,
		tickets:    tickets,
		sessions:   sessions,
		metrics:    metrics,
		validate:   newValidator(),
		loc:        loc,
		logger:     logger,
	}
}

// =============================================================================
// SESSIONS
// =============================================================================

// Create handles POST /kiosk/sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	order := h.controller.NewOrder()
	if err := h.controller.EnsureSize(r.Context(), order); err != nil {
		middleware.GetLogger(r.Context(), h.logger).Warn("new order started without a size", "error", err)
	}

	sess := h.sessions.Create(order)
	h.metrics.OrdersStarted.Inc()

	handler.WriteJSON(w, http.StatusCreated, sessionResponse{
		SessionID: sess.ID,
		Order:     h.view(order),
	})
}

// Get handles GET /kiosk/sessions/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, func(ctx context.Context, o *domain.Order) (any, error) {
		return h.view(o), nil
	})
}

// Delete handles DELETE /kiosk/sessions/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Delete(r.PathValue("id")) {
		handler.ErrorResponse(w, r, ErrSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset handles POST /kiosk/sessions/{id}/reset
//
// Reset is allowed after finalization; it is how the next customer starts.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	h.controller.Reset(sess.order)
	if err := h.controller.EnsureSize(r.Context(), sess.order); err != nil {
		middleware.GetLogger(r.Context(), h.logger).Warn("order reset without a size", "error", err)
	}
	h.metrics.OrdersReset.Inc()

	handler.WriteJSON(w, http.StatusOK, h.view(sess.order))
}

// =============================================================================
// SIZE / CATEGORY / SHAPE / BREAD
// =============================================================================

// Sizes handles GET /kiosk/sessions/{id}/sizes
func (h *Handler) Sizes(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, func(ctx context.Context, o *domain.Order) (any, error) {
		return list(newSizeOptions(h.controller.Sizes(ctx))), nil
	})
}

// SelectSize handles POST /kiosk/sessions/{id}/size
func (h *Handler) SelectSize(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	h.update(w, r, "size", &req, func(ctx context.Context, o *domain.Order) error {
		return h.controller.SelectSize(ctx, o, req.Name)
	})
}

// NextSize handles POST /kiosk/sessions/{id}/size/next
func (h *Handler) NextSize(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, "size", nil, h.controller.NextSize)
}

// PreviousSize handles POST /kiosk/sessions/{id}/size/previous
func (h *Handler) PreviousSize(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, "size", nil, h.controller.PreviousSize)
}

// Categories handles GET /kiosk/sessions/{id}/categories
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, func(ctx context.Context, o *domain.Order) (any, error) {
		return list(options(h.controller.Categories(ctx))), nil
	})
}

// SelectCategory handles POST /kiosk/sessions/{id}/category
func (h *Handler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	h.update(w, r, "category", &req, func(ctx context.Context, o *domain.Order) error {
		return h.controller.SelectCategory(ctx, o, req.ID)
	})
}

// Shapes handles GET /kiosk/sessions/{id}/shapes
func (h *Handler) Shapes(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, func(ctx context.Context, o *domain.Order) (any, error) {
		return list(options(h.controller.Shapes(ctx, o))), nil
	})
}

// SelectShape handles POST /kiosk/sessions/{id}/shape
func (h *Handler) SelectShape(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	h.update(w, r, "shape", &req, func(ctx context.Context, o *domain.Order) error {
		return h.controller.SelectShape(ctx, o, req.ID)
	})
}

// Breads handles GET /kiosk/sessions/{id}/breads
func (h *Handler) Breads(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, func(ctx context.Context, o *domain.Order) (any, error) {
		return list(options(h.controller.Breads(ctx, o))), nil
	})
}

// SelectBread handles POST /kiosk/sessions/{id}/bread
func (h *Handler) SelectBread(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	h.update(w, r, "bread", &req, func(ctx context.Context, o *domain.Order) error {
		return h.controller.SelectBread(ctx, o, req.ID)
	})
}

// =============================================================================
// FILLING / COATING / DECORATION
// =============================================================================

// Fillings handles GET /kiosk/sessions/{id}/fillings
func (h *Handler) Fillings(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, func(ctx context.Context, o *domain.Order) (any, error) {
		return list(options(h.controller.Fillings(ctx, o))), nil
	})
}

// SelectFilling handles POST /kiosk/sessions/{id}/filling
func (h *Handler) SelectFilling(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	h.update(w, r, "filling", &req, func(ctx context.Context, o *domain.Order) error {
		return h.controller.SelectFilling(ctx, o, req.Name)
	})
}

// Coatings handles GET /kiosk/sessions/{id}/coatings
func (h *Handler) Coatings(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, func(ctx context.Context, o *domain.Order) (any, error) {
		return list(options(h.controller.Coatings(ctx, o))), nil
	})
}

// SelectCoating handles POST /kiosk/sessions/{id}/coating
func (h *Handler) SelectCoating(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	h.update(w, r, "coating", &req, func(ctx context.Context, o *domain.Order) error {
		return h.controller.SelectCoating(ctx, o, req.Name)
	})
}

// Colors handles GET /kiosk/sessions/{id}/colors
func (h *Handler) Colors(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, func(ctx context.Context, o *domain.Order) (any, error) {
		return list(h.controller.Colors(ctx, o)), nil
	})
}

// Gallery handles GET /kiosk/sessions/{id}/gallery?q=
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")
	h.read(w, r, func(ctx context.Context, o *domain.Order) (any, error) {
		return list(newImageOptions(h.controller.GalleryImages(ctx, o, search))), nil
	})
}

// Decoration handles GET /kiosk/sessions/{id}/decoration
func (h *Handler) Decoration(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, func(ctx context.Context, o *domain.Order) (any, error) {
		types := make([]string, 0, len(domain.DecorationTypes))
		for _, t := range domain.DecorationTypes {
			types = append(types, t.String())
		}
		details := []string{}
		for _, d := range h.controller.DecorationOptions(o) {
			details = append(details, d.String())
		}
		return decorationOptions{
			Types:   types,
			Details: details,
			Ready:   h.controller.DecorationReady(o),
			Current: newDecorationView(o.Decoration),
		}, nil
	})
}

// SetDecoration handles POST /kiosk/sessions/{id}/decoration
func (h *Handler) SetDecoration(w http.ResponseWriter, r *http.Request) {
	var req decorationRequest
	h.update(w, r, "decoration", &req, func(ctx context.Context, o *domain.Order) error {
		if req.Type != nil {
			t, ok := domain.ParseDecorationType(*req.Type)
			if !ok {
				return domain.NewValidationError("kiosk.decoration", "type", "Unknown decoration type")
			}
			h.controller.SelectDecorationType(o, t)
		}

		switch {
		case req.Detail != nil:
			d, ok := domain.ParsePlainDetail(*req.Detail)
			if !ok {
				return domain.NewValidationError("kiosk.decoration", "detail", "Unknown decoration detail")
			}
			var theme string
			if req.Theme != nil {
				theme = *req.Theme
			}
			if err := h.controller.SelectPlainDetail(o, d, theme); err != nil {
				return err
			}
		case req.Theme != nil:
			h.controller.SetTheme(o, *req.Theme)
		}

		if req.ImageID != nil {
			if err := h.controller.SelectGalleryImage(ctx, o, *req.ImageID); err != nil {
				return err
			}
		}

		if req.PrimaryColor != nil || req.SecondaryColor != nil {
			primary, secondary := o.Decoration.PrimaryColor, o.Decoration.SecondaryColor
			if req.PrimaryColor != nil {
				primary = *req.PrimaryColor
			}
			if req.SecondaryColor != nil {
				secondary = *req.SecondaryColor
			}
			h.controller.SelectColors(o, primary, secondary)
		}
		return nil
	})
}

// =============================================================================
// EXTRAS / MESSAGE / DELIVERY / RECIPIENT
// =============================================================================

// Extras handles GET /kiosk/sessions/{id}/extras
func (h *Handler) Extras(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, func(ctx context.Context, o *domain.Order) (any, error) {
		return list(newExtraOptions(h.controller.Extras(ctx))), nil
	})
}

// SelectExtra handles POST /kiosk/sessions/{id}/extra
func (h *Handler) SelectExtra(w http.ResponseWriter, r *http.Request) {
	var req extraRequest
	h.update(w, r, "extra", &req, func(ctx context.Context, o *domain.Order) error {
		h.controller.SelectExtra(ctx, o, req.Name)
		if req.FlowerQuantity != nil {
			return h.controller.SetFlowerQuantity(ctx, o, *req.FlowerQuantity)
		}
		return nil
	})
}

// SetMessage handles POST /kiosk/sessions/{id}/message
func (h *Handler) SetMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	h.update(w, r, "message", &req, func(ctx context.Context, o *domain.Order) error {
		return h.controller.SetMessage(o, req.Message, req.Age)
	})
}

// DeliveryRanges handles GET /kiosk/sessions/{id}/delivery/ranges?date=YYYY-MM-DD
func (h *Handler) DeliveryRanges(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	h.read(w, r, func(ctx context.Context, o *domain.Order) (any, error) {
		date, err := h.parseDate("kiosk.delivery_ranges", raw)
		if err != nil {
			return nil, err
		}
		return rangesResponse{
			Date:   date.Format(dateLayout),
			Ranges: h.controller.DeliveryRanges(ctx, date),
		}, nil
	})
}

// SetDelivery handles POST /kiosk/sessions/{id}/delivery
func (h *Handler) SetDelivery(w http.ResponseWriter, r *http.Request) {
	var req deliveryRequest
	h.update(w, r, "delivery", &req, func(ctx context.Context, o *domain.Order) error {
		date, err := h.parseDate("kiosk.delivery", req.Date)
		if err != nil {
			return err
		}
		return h.controller.SetDelivery(ctx, o, date, req.Time)
	})
}

// SetRecipient handles POST /kiosk/sessions/{id}/recipient
func (h *Handler) SetRecipient(w http.ResponseWriter, r *http.Request) {
	var req recipientRequest
	h.update(w, r, "recipient", &req, func(ctx context.Context, o *domain.Order) error {
		h.controller.SetRecipient(o, req.recipient())
		return nil
	})
}

// =============================================================================
// PRICE / FINALIZE
// =============================================================================

// Price handles GET /kiosk/sessions/{id}/price
func (h *Handler) Price(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, func(ctx context.Context, o *domain.Order) (any, error) {
		q, ok := h.controller.Price(ctx, o)
		return priceResponse{Complete: ok, Pricing: newQuoteView(q)}, nil
	})
}

// Finalize handles POST /kiosk/sessions/{id}/finalize
//
// The response is the stored ticket. A second finalize of the same order is a
// 409; the session must be reset for a new order.
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	ticket, err := h.tickets.Finalize(r.Context(), sess.order)
	h.metrics.Step("finalize", err)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	middleware.GetLogger(r.Context(), h.logger).Info("kiosk order finalized",
		"session_id", sess.ID,
		"order_id", ticket.ID,
	)
	handler.WriteJSON(w, http.StatusCreated, ticket)
}

// =============================================================================
// HELPERS
// =============================================================================

// read runs fn against the session's order under its lock and writes the
// result as JSON.
func (h *Handler) read(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, o *domain.Order) (any, error)) {
	sess, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	resp, err := fn(r.Context(), sess.order)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, resp)
}

// update decodes req (when non-nil), applies fn to the session's order and
// responds with the updated order view. Changes are kept only when fn
// succeeds. Finalized orders are read-only.
func (h *Handler) update(w http.ResponseWriter, r *http.Request, step string, req any, fn func(ctx context.Context, o *domain.Order) error) {
	sess, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if req != nil {
		if err := h.decode(r, "kiosk."+step, req); err != nil {
			h.metrics.Step(step, err)
			handler.ErrorResponse(w, r, err)
			return
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.order.ID != 0 {
		handler.ErrorResponse(w, r, domain.ErrAlreadyFinalized)
		return
	}

	// fn works on a draft so a rejected request leaves the order as it was.
	draft := *sess.order
	err = fn(r.Context(), &draft)
	h.metrics.Step(step, err)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	*sess.order = draft

	handler.WriteJSON(w, http.StatusOK, h.view(sess.order))
}

func (h *Handler) view(o *domain.Order) orderView {
	return newOrderView(o, h.controller.DecorationReady(o))
}

func (h *Handler) parseDate(op, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.NewValidationError(op, "date", "This field is required")
	}
	date, err := time.ParseInLocation(dateLayout, raw, h.loc)
	if err != nil {
		return time.Time{}, domain.NewValidationError(op, "date", "Must be a date like "+dateLayout)
	}
	return date, nil
}
