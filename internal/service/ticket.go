package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukerupert/cakekiosk/internal/domain"
	"github.com/dukerupert/cakekiosk/internal/telemetry"
)

var errNoOrderID = errors.New("order store returned no id")

// TicketService finalizes orders into persisted tickets and hands them to the
// receipt printer and the remote mirror.
type TicketService struct {
	store   domain.OrderStore
	mirror  domain.Mirror
	printer domain.Printer
	pricing *PricingEngine
	metrics *telemetry.KioskMetrics
	logger  *slog.Logger
}

// NewTicketService creates a new TicketService.
func NewTicketService(
	store domain.OrderStore,
	mirror domain.Mirror,
	printer domain.Printer,
	pricing *PricingEngine,
	metrics *telemetry.KioskMetrics,
	logger *slog.Logger,
) *TicketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TicketService{
		store:   store,
		mirror:  mirror,
		printer: printer,
		pricing: pricing,
		metrics: metrics,
		logger:  logger,
	}
}

// Finalize freezes the order's price, persists it and returns the stored
// ticket.
//
// Flow:
// 1. Quote in final mode (artificial flowers charged per unit)
// 2. Save a copy carrying the final quote; no id means it was not saved
// 3. Read the ticket back by its new id
// 4. Mirror the ticket to the remote system (best-effort)
// 5. Print the receipt (best-effort)
//
// The local save is authoritative: mirror and printer failures are logged and
// counted but never fail the call.
func (s *TicketService) Finalize(ctx context.Context, o *domain.Order) (*domain.Ticket, error) {
	if o.ID != 0 {
		return nil, domain.ErrAlreadyFinalized
	}

	quote, ok := s.pricing.Quote(ctx, o, PricingFinal)
	if !ok {
		return nil, domain.ErrIncompleteOrder
	}

	// The order keeps its interim prices until it is saved, so a failed save
	// leaves it editable with the same figures the wizard showed.
	final := *o
	final.Pricing = quote.Pricing()

	id, err := s.store.Save(ctx, &final)
	if err == nil && id == 0 {
		err = errNoOrderID
	}
	if err != nil {
		s.metrics.FinalizeFailures.Inc()
		s.logger.Error("failed to save order", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrFinalizeFailed, err)
	}

	// The order exists from here on; a retry must not insert it twice.
	o.ID = id
	o.Pricing = final.Pricing

	ticket, err := s.store.Ticket(ctx, id)
	if err != nil {
		s.metrics.FinalizeFailures.Inc()
		s.logger.Error("failed to load ticket for saved order", "order_id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrFinalizeFailed, err)
	}
	o.CreatedAt = ticket.CreatedAt

	s.metrics.Finalized(ticket.Total, ticket.Deposit)
	s.logger.Info("order finalized",
		"order_id", ticket.ID,
		"total", ticket.Total.StringFixed(2),
		"deposit", ticket.Deposit.StringFixed(2),
	)

	s.mirrorTicket(ctx, *ticket)
	s.printTicket(ctx, *ticket)

	return ticket, nil
}

// Ticket loads a stored ticket by id.
func (s *TicketService) Ticket(ctx context.Context, id int64) (*domain.Ticket, error) {
	return s.store.Ticket(ctx, id)
}

// Reprint prints the receipt for a stored ticket again. Unlike finalization,
// printer errors are returned so staff can see them.
func (s *TicketService) Reprint(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.store.Ticket(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(ctx, *ticket); err != nil {
		s.metrics.PrintFailures.Inc()
		return nil, domain.Internal(err, "ticket.reprint", "failed to print receipt")
	}
	return ticket, nil
}

func (s *TicketService) mirrorTicket(ctx context.Context, t domain.Ticket) {
	if err := s.mirror.Publish(ctx, t); err != nil {
		s.metrics.MirrorFailures.Inc()
		s.logger.Warn("remote mirror failed, order kept locally", "order_id", t.ID, "error", err)
		telemetry.CaptureError(ctx, err, map[string]interface{}{"order_id": t.ID, "stage": "mirror"})
	}
}

func (s *TicketService) printTicket(ctx context.Context, t domain.Ticket) {
	if err := s.printer.Print(ctx, t); err != nil {
		s.metrics.PrintFailures.Inc()
		s.logger.Error("receipt printing failed", "order_id", t.ID, "error", err)
		telemetry.CaptureError(ctx, err, map[string]interface{}{"order_id": t.ID, "stage": "print"})
	}
}
