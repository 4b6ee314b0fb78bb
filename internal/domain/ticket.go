package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Ticket-related domain errors.
var (
	ErrTicketNotFound   = &Error{Code: ENOTFOUND, Message: "Ticket not found"}
	ErrFinalizeFailed   = &Error{Code: EUNAVAILABLE, Message: "Could not finalize order"}
	ErrIncompleteOrder  = &Error{Code: EINVALID, Message: "Order is missing size, category, shape or bread"}
	ErrAlreadyFinalized = &Error{Code: ECONFLICT, Message: "Order already finalized"}
)

// Ticket is the read-model of a persisted order. It is produced by the order
// store after finalization and is never mutated afterwards.
type Ticket struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	DeliveryDate time.Time `json:"delivery_date"`
	DeliveryTime string    `json:"delivery_time"`

	Size            string `json:"size"`
	SizeDescription string `json:"size_description"`
	Category        string `json:"category"`
	Bread           string `json:"bread"`
	Shape           string `json:"shape"`
	Filling         string `json:"filling"`
	Coating         string `json:"coating"`

	Decoration     string `json:"decoration"`
	PlainDetail    string `json:"plain_detail"`
	Theme          string `json:"theme"`
	ImageName      string `json:"image_name"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`

	Extra          string `json:"extra"`
	FlowerQuantity int    `json:"flower_quantity"`

	Message string `json:"message"`
	Age     int    `json:"age"`

	CakePrice decimal.Decimal `json:"cake_price"`
	ExtraCost decimal.Decimal `json:"extra_cost"`
	Total     decimal.Decimal `json:"total"`
	Deposit   decimal.Decimal `json:"deposit"`
	Weight    string          `json:"weight"`
	Measure   string          `json:"measure"`
	Includes  string          `json:"includes"`

	Recipient TicketRecipient `json:"recipient"`
}

// Balance is the amount still owed after the deposit.
func (t Ticket) Balance() decimal.Decimal {
	return t.Total.Sub(t.Deposit)
}

// TicketRecipient is the delivery contact as printed on the ticket.
type TicketRecipient struct {
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	Street         string `json:"street"`
	ExteriorNumber string `json:"exterior_number"`
	CrossStreets   string `json:"cross_streets"`
	PostalCode     string `json:"postal_code"`
	Neighborhood   string `json:"neighborhood"`
	City           string `json:"city"`
	Municipality   string `json:"municipality"`
	State          string `json:"state"`
	References     string `json:"references"`
}

// OrderStore persists finalized orders.
type OrderStore interface {
	// Save inserts the order and returns its new identity.
	Save(ctx context.Context, o *Order) (int64, error)

	// Ticket loads the normalized read-model for a saved order.
	// Returns ErrTicketNotFound when no order has the given id.
	Ticket(ctx context.Context, id int64) (*Ticket, error)
}

// Mirror copies finalized tickets to a secondary system.
type Mirror interface {
	Publish(ctx context.Context, t Ticket) error
}

// Printer produces the customer receipt for a ticket.
type Printer interface {
	Print(ctx context.Context, t Ticket) error
}
