package receipt

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/cakekiosk/internal/domain"
	"github.com/dukerupert/cakekiosk/internal/storage"
)

func sampleTicket() domain.Ticket {
	return domain.Ticket{
		ID:              42,
		CreatedAt:       time.Date(2026, time.March, 14, 17, 5, 0, 0, time.UTC),
		DeliveryDate:    time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
		DeliveryTime:    "10:00 AM - 11:00 AM",
		Size:            "20",
		SizeDescription: "Serves 20 people",
		Category:        "Birthday",
		Bread:           "Chocolate",
		Shape:           "Round",
		Filling:         "Cajeta",
		Coating:         "Vanilla Buttercream",
		Decoration:      "Plain w/ Buttercream Shells",
		PlainDetail:     "Chantilly",
		PrimaryColor:    "Pink",
		SecondaryColor:  "White",
		Extra:           domain.ExtraArtificialFlower,
		FlowerQuantity:  4,
		Message:         "Happy birthday Ana",
		Age:             7,
		CakePrice:       decimal.NewFromInt(350),
		ExtraCost:       decimal.NewFromInt(80),
		Total:           decimal.NewFromInt(430),
		Deposit:         decimal.NewFromInt(120),
		Recipient: domain.TicketRecipient{
			FullName:       "Ana López",
			Phone:          "5551234567",
			Street:         "Av. Juárez",
			ExteriorNumber: "120",
			City:           "Puebla",
		},
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer("Pastelería Centro", 42, time.UTC)
	require.NoError(t, err)
	return r
}

func TestRenderer_Render(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Render(sampleTicket())
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, r.row("Folio", "000042"))
	assert.Contains(t, text, r.row("Ordered", "2026-03-14 17:05"))
	assert.Contains(t, text, r.row("Delivery", "Fri 20 Mar 2026"))
	assert.Contains(t, text, r.row("Colors", "Pink / White"))
	assert.Contains(t, text, r.row("Extra", "Artificial Flower x4"))
	assert.Contains(t, text, r.row("Age", "7"))
	assert.Contains(t, text, r.row("Address", "Av. Juárez 120, Puebla"))
	assert.Contains(t, text, r.row("TOTAL", "$430.00"))
	assert.Contains(t, text, r.row("Deposit", "$120.00"))
	assert.Contains(t, text, r.row("Balance due", "$310.00"))

	assert.NotContains(t, text, "Theme")
	assert.NotContains(t, text, "Image")
}

func TestRenderer_LinesFitWidth(t *testing.T) {
	r := newTestRenderer(t)

	ticket := sampleTicket()
	ticket.Message = "Congratulations on twenty wonderful years together, with all our love from the whole family"

	out, err := r.Render(ticket)
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), 42, "line too wide: %q", line)
	}
	assert.Contains(t, string(out), "Message:\n  Congratulations on twenty wonderful\n  years together")
}

func TestRenderer_OmitsEmptyOptionalLines(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Render(domain.Ticket{ID: 7, Size: "10", Category: "Kids", Shape: "Heart", Bread: "Vanilla"})
	require.NoError(t, err)
	text := string(out)

	assert.NotContains(t, text, "Decoration")
	assert.NotContains(t, text, "Age")
	assert.NotContains(t, text, "\n\n")
	assert.Contains(t, text, r.row("Balance due", "$0.00"))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, wrap("abcdefghij", 4))
	assert.Nil(t, wrap("   ", 10))
}

// fakeStorage is an in-memory storage.Storage.
type fakeStorage struct {
	files  map[string]string
	putErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: map[string]string{}}
}

func (f *fakeStorage) Put(ctx context.Context, key string, content io.Reader) error {
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	f.files[key] = string(data)
	return nil
}

func (f *fakeStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.files[key]
	if !ok {
		return nil, storage.ErrFileNotFound(key)
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(f.files, key)
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.files[key]
	return ok, nil
}

func TestSpoolPrinter_Print(t *testing.T) {
	ctx := context.Background()
	spool := newFakeStorage()
	p := NewSpoolPrinter(newTestRenderer(t), spool)

	require.NoError(t, p.Print(ctx, sampleTicket()))

	assert.Contains(t, spool.files, "receipts/000042.txt")

	data, err := p.Receipt(ctx, 42)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CAKE ORDER")
}

func TestSpoolPrinter_PrintError(t *testing.T) {
	spool := newFakeStorage()
	spool.putErr = errors.New("disk full")
	p := NewSpoolPrinter(newTestRenderer(t), spool)

	err := p.Print(context.Background(), sampleTicket())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestSpoolPrinter_ReceiptMissing(t *testing.T) {
	p := NewSpoolPrinter(newTestRenderer(t), newFakeStorage())

	_, err := p.Receipt(context.Background(), 9)

	var se *storage.StorageError
	assert.True(t, errors.As(err, &se))
}
