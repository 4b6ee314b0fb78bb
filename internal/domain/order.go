package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known extras. Any other catalog extra is priced through the general
// extras table by its description.
const (
	ExtraNone             = "None"
	ExtraArtificialFlower = "Artificial Flower"
	ExtraGoldenDrip       = "Golden Drip"
	ExtraSilverDrip       = "Silver Drip"
)

// ChocolateBreadID is the catalog id whose configurations may carry a
// chocolate-specific price.
const ChocolateBreadID int64 = 2

// Flower quantity bounds for the Artificial Flower extra.
const (
	MinFlowerQuantity = 1
	MaxFlowerQuantity = 10
)

// Order is the in-progress cake order for one kiosk session.
// The OrderController is its only mutator.
type Order struct {
	ID        int64     // 0 until persisted
	CreatedAt time.Time // set at persistence time

	DeliveryDate time.Time
	DeliveryTime string

	Size     Size
	Category Selection
	Bread    Selection
	Shape    Selection
	Filling  string
	Coating  string

	Decoration Decoration
	Extra      Extra

	Message string
	Age     int // 0 when no age number is requested

	Pricing   Pricing
	Recipient Recipient
}

// NewOrder returns an empty order.
func NewOrder() *Order {
	return &Order{}
}

// Selection is an id plus the display name captured when it was chosen.
type Selection struct {
	ID   int64
	Name string
}

// IsSet reports whether a catalog id has been chosen.
func (s Selection) IsSet() bool {
	return s.ID != 0
}

// Size is the selected cake size.
type Size struct {
	ID          int64
	Name        string
	Description string
}

// IsSet reports whether a size has been chosen.
func (s Size) IsSet() bool {
	return s.ID != 0
}

// Extra is the selected add-on. An empty Name means no extra.
type Extra struct {
	Name           string
	UnitPrice      decimal.NullDecimal
	FlowerQuantity int
}

// IsDrip reports whether the extra is priced from the drip tables.
func (e Extra) IsDrip() bool {
	return e.Name == ExtraGoldenDrip || e.Name == ExtraSilverDrip
}

// Pricing holds the derived price fields. Never set by the customer.
type Pricing struct {
	BasePrice      decimal.Decimal
	ChocolatePrice decimal.Decimal
	Deposit        decimal.Decimal
	ExtraCost      decimal.Decimal
	CakePrice      decimal.Decimal
	Total          decimal.Decimal
	Weight         string
	Measure        string
	Includes       string
}

// Recipient is the delivery contact captured at the delivery-data step.
type Recipient struct {
	FullName       string
	Phone          string
	Street         string
	ExteriorNumber string
	CrossStreets   string
	PostalCode     string
	Neighborhood   string
	City           string
	Municipality   string
	State          string
	References     string
}
