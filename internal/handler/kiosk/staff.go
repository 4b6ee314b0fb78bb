package kiosk

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/cakekiosk/internal/domain"
	"github.com/dukerupert/cakekiosk/internal/handler"
	"github.com/dukerupert/cakekiosk/internal/middleware"
	"github.com/dukerupert/cakekiosk/internal/service"
	"github.com/dukerupert/cakekiosk/internal/storage"
)

// ReceiptSource returns the last printed receipt of an order.
type ReceiptSource interface {
	Receipt(ctx context.Context, id int64) ([]byte, error)
}

var errReceiptNotFound = domain.Errorf(domain.ENOTFOUND, "", "No receipt has been printed for this ticket")

// StaffHandler serves the staff ticket lookups. Routes are mounted behind
// basic auth.
type StaffHandler struct {
	tickets  *service.TicketService
	receipts ReceiptSource
	logger   *slog.Logger
}

// NewStaffHandler creates a new staff handler.
func NewStaffHandler(tickets *service.TicketService, receipts ReceiptSource, logger *slog.Logger) *StaffHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StaffHandler{
		tickets:  tickets,
		receipts: receipts,
		logger:   logger,
	}
}

// Ticket handles GET /staff/tickets/{id}
func (h *StaffHandler) Ticket(w http.ResponseWriter, r *http.Request) {
	id, err := ticketID(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	ticket, err := h.tickets.Ticket(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, ticket)
}

// Reprint handles POST /staff/tickets/{id}/reprint
func (h *StaffHandler) Reprint(w http.ResponseWriter, r *http.Request) {
	id, err := ticketID(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	ticket, err := h.tickets.Reprint(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	middleware.GetLogger(r.Context(), h.logger).Info("receipt reprinted",
		"order_id", ticket.ID,
		"staff", middleware.GetStaffUser(r.Context()),
	)
	handler.WriteJSON(w, http.StatusOK, ticket)
}

// Receipt handles GET /staff/tickets/{id}/receipt
func (h *StaffHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, err := ticketID(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	data, err := h.receipts.Receipt(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			err = errReceiptNotFound
		}
		handler.ErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func ticketID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrTicketNotFound
	}
	return id, nil
}
