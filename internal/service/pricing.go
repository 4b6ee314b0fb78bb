package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

// PricingMode selects between the running preview and the checkout price.
type PricingMode int

const (
	// PricingInterim prices the extra at its unit price.
	PricingInterim PricingMode = iota
	// PricingFinal multiplies an artificial flower extra by its quantity.
	PricingFinal
)

var fondantMultiplier = decimal.NewFromInt(2)

// Quote is a computed set of price fields for an order.
type Quote struct {
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

// Pricing converts the quote into the order's derived fields.
func (q Quote) Pricing() domain.Pricing {
	return domain.Pricing{
		BasePrice:      q.BasePrice,
		ChocolatePrice: q.ChocolatePrice,
		Deposit:        q.Deposit,
		ExtraCost:      q.ExtraCost,
		CakePrice:      q.CakePrice,
		Total:          q.Total,
		Weight:         q.Weight,
		Measure:        q.Measure,
		Includes:       q.Includes,
	}
}

// PricingEngine computes cake prices from the catalog configuration table.
type PricingEngine struct {
	catalog domain.Catalog
}

// NewPricingEngine creates a new PricingEngine.
func NewPricingEngine(catalog domain.Catalog) *PricingEngine {
	return &PricingEngine{catalog: catalog}
}

// Quote prices the order without modifying it. ok is false while category,
// bread, shape or size is still missing.
//
// Every price shown or saved goes through Quote, so identical order state
// always yields identical fields.
func (e *PricingEngine) Quote(ctx context.Context, o *domain.Order, mode PricingMode) (Quote, bool) {
	if !o.Category.IsSet() || !o.Bread.IsSet() || !o.Shape.IsSet() || !o.Size.IsSet() {
		return Quote{}, false
	}

	var q Quote
	if cfg, found := e.catalog.PriceConfig(ctx, o.Category.ID, o.Bread.ID, o.Shape.ID, o.Size.ID); found {
		q.BasePrice = cfg.BasePrice
		q.ChocolatePrice = cfg.ChocolatePrice
		q.Deposit = cfg.Deposit
		q.Weight = cfg.Weight
		q.Measure = cfg.Measure
		q.Includes = cfg.Includes
	}

	if containsFold(o.Coating, "fondant") {
		q.BasePrice = q.BasePrice.Mul(fondantMultiplier)
		q.ChocolatePrice = q.ChocolatePrice.Mul(fondantMultiplier)
	}

	q.ExtraCost = extraCost(o.Extra, mode)

	q.CakePrice = q.BasePrice
	if o.Bread.ID == domain.ChocolateBreadID && q.ChocolatePrice.IsPositive() {
		q.CakePrice = q.ChocolatePrice
	}

	q.Total = q.CakePrice.Add(q.ExtraCost)

	return q, true
}

// Resolve writes a fresh quote into the order's pricing fields. Incomplete
// selections leave the fields untouched and return false.
func (e *PricingEngine) Resolve(ctx context.Context, o *domain.Order, mode PricingMode) bool {
	q, ok := e.Quote(ctx, o, mode)
	if !ok {
		return false
	}
	o.Pricing = q.Pricing()
	return true
}

func extraCost(x domain.Extra, mode PricingMode) decimal.Decimal {
	if !x.UnitPrice.Valid {
		return decimal.Zero
	}
	cost := x.UnitPrice.Decimal
	if mode == PricingFinal && x.Name == domain.ExtraArtificialFlower && x.FlowerQuantity > 0 {
		cost = cost.Mul(decimal.NewFromInt(int64(x.FlowerQuantity)))
	}
	return cost
}
