package receipt

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/dukerupert/cakekiosk/internal/domain"
	"github.com/dukerupert/cakekiosk/internal/storage"
)

// SpoolPrinter implements domain.Printer by writing rendered receipts to the
// spool directory watched by the print daemon.
type SpoolPrinter struct {
	renderer *Renderer
	spool    storage.Storage
}

// Compile-time check that SpoolPrinter implements domain.Printer.
var _ domain.Printer = (*SpoolPrinter)(nil)

// NewSpoolPrinter creates a new SpoolPrinter.
func NewSpoolPrinter(renderer *Renderer, spool storage.Storage) *SpoolPrinter {
	return &SpoolPrinter{renderer: renderer, spool: spool}
}

// Print renders the ticket and spools it. Printing the same ticket again
// replaces the spooled file, which the daemon prints as a new job.
func (p *SpoolPrinter) Print(ctx context.Context, t domain.Ticket) error {
	data, err := p.renderer.Render(t)
	if err != nil {
		return err
	}
	if err := p.spool.Put(ctx, Key(t.ID), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to spool receipt for order %d: %w", t.ID, err)
	}
	return nil
}

// Receipt returns the last spooled receipt for an order.
func (p *SpoolPrinter) Receipt(ctx context.Context, id int64) ([]byte, error) {
	rc, err := p.spool.Get(ctx, Key(id))
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// Key is the spool key of an order's receipt.
func Key(id int64) string {
	return "receipts/" + Folio(id) + ".txt"
}
