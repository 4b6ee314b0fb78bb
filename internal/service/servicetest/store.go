package servicetest

import (
	"context"
	"sync"
	"time"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

// OrderStore is an in-memory domain.OrderStore. Set SaveErr, TicketErr or
// ZeroID to simulate failures.
type OrderStore struct {
	SaveErr   error
	TicketErr error
	ZeroID    bool
	Now       time.Time

	mu      sync.Mutex
	nextID  int64
	saved   []domain.Order
	tickets map[int64]domain.Ticket
}

// Compile-time check that OrderStore implements domain.OrderStore.
var _ domain.OrderStore = (*OrderStore)(nil)

// NewOrderStore returns an empty store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		Now:     time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC),
		tickets: make(map[int64]domain.Ticket),
	}
}

func (s *OrderStore) Save(ctx context.Context, o *domain.Order) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return 0, s.SaveErr
	}
	s.saved = append(s.saved, *o)
	if s.ZeroID {
		return 0, nil
	}

	s.nextID++
	s.tickets[s.nextID] = TicketFromOrder(s.nextID, s.Now, o)
	return s.nextID, nil
}

func (s *OrderStore) Ticket(ctx context.Context, id int64) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.TicketErr != nil {
		return nil, s.TicketErr
	}
	t, ok := s.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	return &t, nil
}

// Saved returns every order passed to Save.
func (s *OrderStore) Saved() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.saved))
	copy(out, s.saved)
	return out
}

// TicketFromOrder builds the read-model a store would return for o.
func TicketFromOrder(id int64, createdAt time.Time, o *domain.Order) domain.Ticket {
	return domain.Ticket{
		ID:              id,
		CreatedAt:       createdAt,
		DeliveryDate:    o.DeliveryDate,
		DeliveryTime:    o.DeliveryTime,
		Size:            o.Size.Name,
		SizeDescription: o.Size.Description,
		Category:        o.Category.Name,
		Bread:           o.Bread.Name,
		Shape:           o.Shape.Name,
		Filling:         o.Filling,
		Coating:         o.Coating,
		Decoration:      o.Decoration.Type.String(),
		PlainDetail:     o.Decoration.Plain.String(),
		Theme:           o.Decoration.Theme,
		ImageName:       o.Decoration.ImageName,
		PrimaryColor:    o.Decoration.PrimaryColor,
		SecondaryColor:  o.Decoration.SecondaryColor,
		Extra:           o.Extra.Name,
		FlowerQuantity:  o.Extra.FlowerQuantity,
		Message:         o.Message,
		Age:             o.Age,
		CakePrice:       o.Pricing.CakePrice,
		ExtraCost:       o.Pricing.ExtraCost,
		Total:           o.Pricing.Total,
		Deposit:         o.Pricing.Deposit,
		Weight:          o.Pricing.Weight,
		Measure:         o.Pricing.Measure,
		Includes:        o.Pricing.Includes,
		Recipient: domain.TicketRecipient{
			FullName:       o.Recipient.FullName,
			Phone:          o.Recipient.Phone,
			Street:         o.Recipient.Street,
			ExteriorNumber: o.Recipient.ExteriorNumber,
			CrossStreets:   o.Recipient.CrossStreets,
			PostalCode:     o.Recipient.PostalCode,
			Neighborhood:   o.Recipient.Neighborhood,
			City:           o.Recipient.City,
			Municipality:   o.Recipient.Municipality,
			State:          o.Recipient.State,
			References:     o.Recipient.References,
		},
	}
}

// Mirror records published tickets. Err makes every publish fail.
type Mirror struct {
	Err error

	mu        sync.Mutex
	published []domain.Ticket
}

func (m *Mirror) Publish(ctx context.Context, t domain.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.published = append(m.published, t)
	return nil
}

// Published returns the tickets published so far.
func (m *Mirror) Published() []domain.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Ticket, len(m.published))
	copy(out, m.published)
	return out
}

// Printer records printed tickets. Err makes every print fail.
type Printer struct {
	Err error

	mu      sync.Mutex
	printed []domain.Ticket
}

func (p *Printer) Print(ctx context.Context, t domain.Ticket) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.printed = append(p.printed, t)
	return nil
}

// Printed returns the tickets printed so far.
func (p *Printer) Printed() []domain.Ticket {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Ticket, len(p.printed))
	copy(out, p.printed)
	return out
}
