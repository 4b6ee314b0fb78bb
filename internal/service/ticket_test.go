package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/cakekiosk/internal/domain"
	"github.com/dukerupert/cakekiosk/internal/service/servicetest"
	"github.com/dukerupert/cakekiosk/internal/telemetry"
)

type ticketFixture struct {
	controller *OrderController
	tickets    *TicketService
	store      *servicetest.OrderStore
	mirror     *servicetest.Mirror
	printer    *servicetest.Printer
	metrics    *telemetry.KioskMetrics
}

func newTicketFixture() *ticketFixture {
	controller, catalog := newTestController()
	f := &ticketFixture{
		controller: controller,
		store:      servicetest.NewOrderStore(),
		mirror:     &servicetest.Mirror{},
		printer:    &servicetest.Printer{},
		metrics:    newTestMetrics(),
	}
	f.tickets = NewTicketService(f.store, f.mirror, f.printer, NewPricingEngine(catalog), f.metrics, slog.New(slog.DiscardHandler))
	return f
}

// flowerCake is the chocolate cake with four artificial flowers and delivery
// data filled in.
func (f *ticketFixture) flowerCake(t *testing.T) *domain.Order {
	t.Helper()
	ctx := context.Background()

	o := chocolateCake(t, f.controller)
	f.controller.SelectExtra(ctx, o, domain.ExtraArtificialFlower)
	require.NoError(t, f.controller.SetFlowerQuantity(ctx, o, 4))
	require.NoError(t, f.controller.SetDelivery(ctx, o, time.Date(2026, time.November, 3, 0, 0, 0, 0, time.UTC), "10:00 AM - 11:00 AM"))
	f.controller.SetRecipient(o, domain.Recipient{FullName: "Ana López", Phone: "5551234567"})
	return o
}

func TestTicketService_Finalize(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	o := f.flowerCake(t)

	ticket, err := f.tickets.Finalize(ctx, o)
	require.NoError(t, err)

	assert.Equal(t, int64(1), ticket.ID)
	assert.Equal(t, int64(1), o.ID)
	assert.Equal(t, ticket.CreatedAt, o.CreatedAt)
	assertMoney(t, "80", o.Pricing.ExtraCost)

	assertMoney(t, "350", ticket.CakePrice)
	assertMoney(t, "80", ticket.ExtraCost)
	assertMoney(t, "430", ticket.Total)
	assertMoney(t, "120", ticket.Deposit)
	assertMoney(t, "310", ticket.Balance())
	assert.Equal(t, 4, ticket.FlowerQuantity)

	saved := f.store.Saved()
	require.Len(t, saved, 1)
	assertMoney(t, "80", saved[0].Pricing.ExtraCost)

	assert.Len(t, f.mirror.Published(), 1)
	assert.Len(t, f.printer.Printed(), 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.OrdersFinalized))
}

func TestTicketService_FinalizeIncompleteOrder(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	o := f.controller.NewOrder()
	require.NoError(t, f.controller.SelectSize(ctx, o, "20"))

	_, err := f.tickets.Finalize(ctx, o)

	assert.ErrorIs(t, err, domain.ErrIncompleteOrder)
	assert.Empty(t, f.store.Saved())
	assert.Zero(t, o.ID)
}

func TestTicketService_FinalizeTwice(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	o := f.flowerCake(t)

	_, err := f.tickets.Finalize(ctx, o)
	require.NoError(t, err)

	_, err = f.tickets.Finalize(ctx, o)
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
	assert.Len(t, f.store.Saved(), 1, "a finalized order is never inserted twice")
}

func TestTicketService_FinalizeSaveFailure(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(s *servicetest.OrderStore)
	}{
		{"store error", func(s *servicetest.OrderStore) { s.SaveErr = errors.New("connection refused") }},
		{"no id returned", func(s *servicetest.OrderStore) { s.ZeroID = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTicketFixture()
			tt.setup(f.store)
			o := f.flowerCake(t)

			ticket, err := f.tickets.Finalize(ctx, o)

			assert.Nil(t, ticket)
			assert.ErrorIs(t, err, domain.ErrFinalizeFailed)
			assert.Equal(t, domain.EUNAVAILABLE, domain.ErrorCode(err))
			assert.Zero(t, o.ID, "the order stays open for a retry")
			assertMoney(t, "20", o.Pricing.ExtraCost)
			assertMoney(t, "370", o.Pricing.Total)
			assert.Empty(t, f.mirror.Published())
			assert.Empty(t, f.printer.Printed())
			assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.FinalizeFailures))
		})
	}
}

func TestTicketService_FinalizeReadBackFailure(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	f.store.TicketErr = errors.New("read timeout")
	o := f.flowerCake(t)

	_, err := f.tickets.Finalize(ctx, o)

	assert.ErrorIs(t, err, domain.ErrFinalizeFailed)
	assert.Equal(t, int64(1), o.ID, "the saved order is not finalized again")

	_, err = f.tickets.Finalize(ctx, o)
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
	assert.Len(t, f.store.Saved(), 1)
}

func TestTicketService_SideEffectFailuresDoNotFailFinalize(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	f.mirror.Err = errors.New("nats: no servers available")
	f.printer.Err = errors.New("spool directory read-only")
	o := f.flowerCake(t)

	ticket, err := f.tickets.Finalize(ctx, o)

	require.NoError(t, err)
	assert.Equal(t, int64(1), ticket.ID)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.MirrorFailures))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.PrintFailures))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.OrdersFinalized))
}

func TestTicketService_Ticket(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	o := f.flowerCake(t)
	_, err := f.tickets.Finalize(ctx, o)
	require.NoError(t, err)

	ticket, err := f.tickets.Ticket(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana López", ticket.Recipient.FullName)

	_, err = f.tickets.Ticket(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestTicketService_Reprint(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	o := f.flowerCake(t)
	_, err := f.tickets.Finalize(ctx, o)
	require.NoError(t, err)

	ticket, err := f.tickets.Reprint(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ticket.ID)
	assert.Len(t, f.printer.Printed(), 2)

	_, err = f.tickets.Reprint(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)

	f.printer.Err = errors.New("paper out")
	_, err = f.tickets.Reprint(ctx, 1)
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.PrintFailures))
}
