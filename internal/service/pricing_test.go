package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/cakekiosk/internal/domain"
	"github.com/dukerupert/cakekiosk/internal/service/servicetest"
)

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestPricingEngine_ChocolatePrice(t *testing.T) {
	c, _ := newTestController()
	o := chocolateCake(t, c)

	assertMoney(t, "300", o.Pricing.BasePrice)
	assertMoney(t, "350", o.Pricing.ChocolatePrice)
	assertMoney(t, "350", o.Pricing.CakePrice)
	assertMoney(t, "0", o.Pricing.ExtraCost)
	assertMoney(t, "350", o.Pricing.Total)
	assertMoney(t, "120", o.Pricing.Deposit)
	assert.Equal(t, "1.5 kg", o.Pricing.Weight)
	assert.Equal(t, "24 cm", o.Pricing.Measure)
	assert.Equal(t, "Candles", o.Pricing.Includes)
}

func TestPricingEngine_NonChocolateBreadUsesBasePrice(t *testing.T) {
	ctx := context.Background()
	c, catalog := newTestController()
	catalog.Prices[servicetest.PriceKey{Category: 1, Bread: 1, Shape: 1, Size: 3}] = domain.PriceConfig{
		BasePrice:      decimal.NewFromInt(300),
		ChocolatePrice: decimal.NewFromInt(999),
		Deposit:        decimal.NewFromInt(120),
	}
	o := chocolateCake(t, c)

	require.NoError(t, c.SelectBread(ctx, o, breadVanilla))

	assertMoney(t, "300", o.Pricing.CakePrice)
}

func TestPricingEngine_ZeroChocolatePriceFallsBack(t *testing.T) {
	ctx := context.Background()
	c, catalog := newTestController()
	catalog.Prices[servicetest.PriceKey{Category: 1, Bread: 2, Shape: 1, Size: 3}] = domain.PriceConfig{
		BasePrice: decimal.NewFromInt(310),
	}
	o := c.NewOrder()
	require.NoError(t, c.SelectSize(ctx, o, "20"))
	require.NoError(t, c.SelectCategory(ctx, o, catBirthday))
	require.NoError(t, c.SelectShape(ctx, o, shapeRound))
	require.NoError(t, c.SelectBread(ctx, o, breadChocolate))

	assertMoney(t, "310", o.Pricing.CakePrice)
}

func TestPricingEngine_FondantDoublesCakeOnly(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController()
	o := chocolateCake(t, c)
	c.SelectExtra(ctx, o, "Edible Print")

	require.NoError(t, c.SelectCoating(ctx, o, "Fondant"))

	assertMoney(t, "600", o.Pricing.BasePrice)
	assertMoney(t, "700", o.Pricing.ChocolatePrice)
	assertMoney(t, "700", o.Pricing.CakePrice)
	assertMoney(t, "85", o.Pricing.ExtraCost)
	assertMoney(t, "785", o.Pricing.Total)
	assertMoney(t, "120", o.Pricing.Deposit)

	require.NoError(t, c.SelectCoating(ctx, o, "Vanilla Buttercream"))
	assertMoney(t, "350", o.Pricing.CakePrice)
}

func TestPricingEngine_IncompleteOrder(t *testing.T) {
	ctx := context.Background()
	catalog := servicetest.NewCatalog()
	engine := NewPricingEngine(catalog)

	o := domain.NewOrder()
	o.Size = domain.Size{ID: 3, Name: "20"}
	o.Category = domain.Selection{ID: 1, Name: "Birthday"}
	o.Shape = domain.Selection{ID: 1, Name: "Round"}

	q, ok := engine.Quote(ctx, o, PricingInterim)
	assert.False(t, ok)
	assert.Equal(t, Quote{}, q)
	assert.False(t, engine.Resolve(ctx, o, PricingInterim))
	assert.Equal(t, 0, catalog.Calls("PriceConfig"), "no lookup until the key is complete")
}

func TestPricingEngine_MissingConfigPricesZero(t *testing.T) {
	ctx := context.Background()
	engine := NewPricingEngine(servicetest.NewCatalog())

	o := domain.NewOrder()
	o.Size = domain.Size{ID: 6, Name: "150 a 180"}
	o.Category = domain.Selection{ID: 3, Name: "Kids"}
	o.Shape = domain.Selection{ID: 2, Name: "Rectangular"}
	o.Bread = domain.Selection{ID: 3, Name: "Marble"}
	o.Extra = domain.Extra{Name: "Edible Print", UnitPrice: decimal.NewNullDecimal(decimal.NewFromInt(85))}

	q, ok := engine.Quote(ctx, o, PricingInterim)
	require.True(t, ok)
	assertMoney(t, "0", q.CakePrice)
	assertMoney(t, "85", q.Total)
	assert.Empty(t, q.Weight)
}

func TestPricingEngine_FlowersChargedPerUnitOnlyWhenFinal(t *testing.T) {
	ctx := context.Background()
	c, catalog := newTestController()
	engine := NewPricingEngine(catalog)
	o := chocolateCake(t, c)

	c.SelectExtra(ctx, o, domain.ExtraArtificialFlower)
	require.NoError(t, c.SetFlowerQuantity(ctx, o, 4))

	assertMoney(t, "20", o.Pricing.ExtraCost)
	assertMoney(t, "370", o.Pricing.Total)

	final, ok := engine.Quote(ctx, o, PricingFinal)
	require.True(t, ok)
	assertMoney(t, "80", final.ExtraCost)
	assertMoney(t, "430", final.Total)
}

func TestPricingEngine_QuoteIsDeterministic(t *testing.T) {
	ctx := context.Background()
	c, catalog := newTestController()
	engine := NewPricingEngine(catalog)
	o := chocolateCake(t, c)
	require.NoError(t, c.SelectCoating(ctx, o, "Fondant"))

	first, ok := engine.Quote(ctx, o, PricingInterim)
	require.True(t, ok)
	second, _ := engine.Quote(ctx, o, PricingInterim)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Pricing(), o.Pricing, "stored pricing matches a fresh quote")
}
