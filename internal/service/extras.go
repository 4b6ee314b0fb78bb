package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

// Extras returns the catalog extras with their flat unit prices.
func (c *OrderController) Extras(ctx context.Context) []domain.CatalogExtra {
	return c.catalog.Extras(ctx)
}

// SelectExtra selects the order's extra and resolves its unit price.
//
// Golden and silver drips are priced from the drip tables for the current
// shape; every other extra comes from the general extras table. An unknown
// extra clears the selection instead of failing. "None" or an empty name
// removes the extra.
func (c *OrderController) SelectExtra(ctx context.Context, o *domain.Order, name string) {
	name = strings.TrimSpace(name)

	switch {
	case name == "" || name == domain.ExtraNone:
		o.Extra = domain.Extra{}

	case name == domain.ExtraGoldenDrip || name == domain.ExtraSilverDrip:
		o.Extra = domain.Extra{
			Name:      name,
			UnitPrice: decimal.NewNullDecimal(c.dripPrice(ctx, o)),
		}

	default:
		x, ok := c.catalog.ExtraByDescription(ctx, name)
		if !ok {
			c.logger.Info("extra not in catalog, clearing selection", "extra", name)
			o.Extra = domain.Extra{}
			break
		}

		quantity := 0
		if x.Description == domain.ExtraArtificialFlower && o.Extra.Name == domain.ExtraArtificialFlower {
			quantity = o.Extra.FlowerQuantity
		}
		o.Extra = domain.Extra{
			Name:           x.Description,
			UnitPrice:      decimal.NewNullDecimal(x.Price),
			FlowerQuantity: quantity,
		}
	}

	c.reprice(ctx, o)
}

// SetFlowerQuantity sets how many artificial flowers go on the cake.
func (c *OrderController) SetFlowerQuantity(ctx context.Context, o *domain.Order, quantity int) error {
	if o.Extra.Name != domain.ExtraArtificialFlower {
		return ErrFlowerExtraRequired
	}
	if quantity < domain.MinFlowerQuantity || quantity > domain.MaxFlowerQuantity {
		return ErrFlowerQuantityRange
	}
	o.Extra.FlowerQuantity = quantity

	c.reprice(ctx, o)
	return nil
}

// dripPrice looks up the drip price for the order's shape. Round cakes are
// priced by measurement, rectangular cakes by weight; anything else, or a
// value missing from the table, costs nothing.
func (c *OrderController) dripPrice(ctx context.Context, o *domain.Order) decimal.Decimal {
	switch {
	case containsFold(o.Shape.Name, "round"):
		if price, ok := c.catalog.RoundDripPriceByMeasure(ctx, o.Pricing.Measure); ok {
			return price
		}
	case containsFold(o.Shape.Name, "rectangular"):
		if price, ok := c.catalog.RectDripPriceByWeight(ctx, o.Pricing.Weight); ok {
			return price
		}
	}
	return decimal.Zero
}
