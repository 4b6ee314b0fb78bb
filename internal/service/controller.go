package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

// OrderController drives the order wizard. It is the only code that mutates a
// domain.Order, and it keeps the order consistent as the customer moves back
// and forth between steps.
//
// The controller holds no order state of its own: every operation receives the
// session's order explicitly, so independent sessions never share anything.
type OrderController struct {
	catalog  domain.Catalog
	pricing  *PricingEngine
	delivery *DeliveryScheduler
	logger   *slog.Logger
}

// NewOrderController creates a new OrderController.
func NewOrderController(catalog domain.Catalog, pricing *PricingEngine, delivery *DeliveryScheduler, logger *slog.Logger) *OrderController {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderController{
		catalog:  catalog,
		pricing:  pricing,
		delivery: delivery,
		logger:   logger,
	}
}

// NewOrder starts an empty order.
func (c *OrderController) NewOrder() *domain.Order {
	return domain.NewOrder()
}

// Reset discards every selection on the order.
func (c *OrderController) Reset(o *domain.Order) {
	*o = domain.Order{}
}

// =============================================================================
// SIZE
// =============================================================================

// Sizes returns every catalog size in display order.
func (c *OrderController) Sizes(ctx context.Context) []domain.CatalogSize {
	return c.catalog.Sizes(ctx)
}

// EnsureSize selects the first catalog size when none is chosen yet.
func (c *OrderController) EnsureSize(ctx context.Context, o *domain.Order) error {
	if o.Size.IsSet() {
		return nil
	}
	sizes := c.catalog.Sizes(ctx)
	if len(sizes) == 0 {
		return ErrNoSizes
	}
	c.applySize(ctx, o, sizes[0])
	return nil
}

// SelectSize selects a size by its name.
func (c *OrderController) SelectSize(ctx context.Context, o *domain.Order, name string) error {
	sizes := c.catalog.Sizes(ctx)
	i := slices.IndexFunc(sizes, func(s domain.CatalogSize) bool { return s.Name == name })
	if i < 0 {
		return ErrSizeNotFound
	}
	c.applySize(ctx, o, sizes[i])
	return nil
}

// NextSize moves to the following size, wrapping after the last one.
func (c *OrderController) NextSize(ctx context.Context, o *domain.Order) error {
	return c.stepSize(ctx, o, 1)
}

// PreviousSize moves to the preceding size, wrapping before the first one.
func (c *OrderController) PreviousSize(ctx context.Context, o *domain.Order) error {
	return c.stepSize(ctx, o, -1)
}

func (c *OrderController) stepSize(ctx context.Context, o *domain.Order, step int) error {
	sizes := c.catalog.Sizes(ctx)
	if len(sizes) == 0 {
		return ErrNoSizes
	}

	i := slices.IndexFunc(sizes, func(s domain.CatalogSize) bool { return s.Name == o.Size.Name })
	if i < 0 {
		if o.Size.IsSet() {
			c.logger.Warn("selected size missing from catalog, restarting from first size",
				"size", o.Size.Name,
			)
		}
		i = 0
	}

	n := len(sizes)
	c.applySize(ctx, o, sizes[((i+step)%n+n)%n])
	return nil
}

func (c *OrderController) applySize(ctx context.Context, o *domain.Order, s domain.CatalogSize) {
	o.Size = domain.Size{ID: s.ID, Name: s.Name, Description: s.Description}

	if o.Shape.IsSet() {
		if capacity, ok := SizeCapacity(s.Name); ok && !shapeAllowed(o.Shape.Name, capacity) {
			c.logger.Debug("shape not offered for new size, clearing",
				"shape", o.Shape.Name,
				"size", s.Name,
			)
			o.Shape = domain.Selection{}
		}
	}

	c.reprice(ctx, o)
}

// =============================================================================
// CATEGORY / SHAPE / BREAD
// =============================================================================

// Categories returns every catalog category.
func (c *OrderController) Categories(ctx context.Context) []domain.Category {
	return c.catalog.Categories(ctx)
}

// SelectCategory selects a category. Moving to a different category clears
// bread, shape, filling and coating, which are all category-scoped.
func (c *OrderController) SelectCategory(ctx context.Context, o *domain.Order, id int64) error {
	categories := c.catalog.Categories(ctx)
	i := slices.IndexFunc(categories, func(cat domain.Category) bool { return cat.ID == id })
	if i < 0 {
		return ErrCategoryNotFound
	}

	if o.Category.ID != id {
		o.Bread = domain.Selection{}
		o.Shape = domain.Selection{}
		o.Filling = ""
		o.Coating = ""
	}
	o.Category = domain.Selection{ID: id, Name: categories[i].Name}

	c.reprice(ctx, o)
	return nil
}

// Shapes returns the category's shapes that are baked for the selected size.
func (c *OrderController) Shapes(ctx context.Context, o *domain.Order) []domain.Shape {
	if !o.Category.IsSet() {
		return []domain.Shape{}
	}
	return FilterShapesBySize(c.catalog.ShapesByCategory(ctx, o.Category.ID), o.Size.Name)
}

// SelectShape selects one of the shapes offered by Shapes.
func (c *OrderController) SelectShape(ctx context.Context, o *domain.Order, id int64) error {
	if !o.Category.IsSet() {
		return ErrCategoryRequired
	}

	shapes := c.Shapes(ctx, o)
	i := slices.IndexFunc(shapes, func(s domain.Shape) bool { return s.ID == id })
	if i < 0 {
		return ErrShapeNotFound
	}
	o.Shape = domain.Selection{ID: id, Name: shapes[i].Name}

	if o.Bread.IsSet() {
		allowed := FilterBreadsByShape([]domain.Bread{{ID: o.Bread.ID, Name: o.Bread.Name}}, o.Shape.Name)
		if len(allowed) == 0 {
			c.logger.Debug("bread not offered for new shape, clearing",
				"bread", o.Bread.Name,
				"shape", o.Shape.Name,
			)
			c.clearBread(o)
		}
	}

	c.reprice(ctx, o)
	return nil
}

// Breads returns the category's breads allowed for the selected shape.
func (c *OrderController) Breads(ctx context.Context, o *domain.Order) []domain.Bread {
	if !o.Category.IsSet() {
		return []domain.Bread{}
	}
	return FilterBreadsByShape(c.catalog.BreadsByCategory(ctx, o.Category.ID), o.Shape.Name)
}

// SelectBread selects one of the breads offered by Breads. Choosing a
// different bread clears filling and coating.
func (c *OrderController) SelectBread(ctx context.Context, o *domain.Order, id int64) error {
	if !o.Category.IsSet() {
		return ErrCategoryRequired
	}

	breads := c.Breads(ctx, o)
	i := slices.IndexFunc(breads, func(b domain.Bread) bool { return b.ID == id })
	if i < 0 {
		return ErrBreadNotFound
	}

	if o.Bread.ID != id {
		o.Filling = ""
		o.Coating = ""
	}
	o.Bread = domain.Selection{ID: id, Name: breads[i].Name}

	c.reprice(ctx, o)
	return nil
}

func (c *OrderController) clearBread(o *domain.Order) {
	o.Bread = domain.Selection{}
	o.Filling = ""
	o.Coating = ""
}

// =============================================================================
// FILLING / COATING / COLORS
// =============================================================================

// Fillings returns the fillings for the selected category and bread.
func (c *OrderController) Fillings(ctx context.Context, o *domain.Order) []domain.Filling {
	if !o.Category.IsSet() || !o.Bread.IsSet() {
		return []domain.Filling{}
	}
	return c.catalog.FillingsByCategoryAndBread(ctx, o.Category.ID, o.Bread.ID)
}

// SelectFilling selects one of the fillings offered by Fillings.
func (c *OrderController) SelectFilling(ctx context.Context, o *domain.Order, name string) error {
	fillings := c.Fillings(ctx, o)
	if !slices.ContainsFunc(fillings, func(f domain.Filling) bool { return f.Name == name }) {
		return domain.NotFound("order.filling", "filling", name)
	}
	o.Filling = name
	return nil
}

// Coatings returns the coatings for the selected category and bread.
func (c *OrderController) Coatings(ctx context.Context, o *domain.Order) []domain.Coating {
	if !o.Category.IsSet() || !o.Bread.IsSet() {
		return []domain.Coating{}
	}
	return c.catalog.CoatingsByCategoryAndBread(ctx, o.Category.ID, o.Bread.ID)
}

// SelectCoating selects one of the coatings offered by Coatings and
// recomputes the price, since fondant doubles it.
func (c *OrderController) SelectCoating(ctx context.Context, o *domain.Order, name string) error {
	coatings := c.Coatings(ctx, o)
	if !slices.ContainsFunc(coatings, func(ct domain.Coating) bool { return ct.Name == name }) {
		return domain.NotFound("order.coating", "coating", name)
	}
	o.Coating = name

	if d := o.Decoration.Plain; d != domain.PlainNone && !slices.Contains(c.DecorationOptions(o), d) {
		o.Decoration.Plain = domain.PlainNone
		o.Decoration.Theme = ""
		o.Decoration.PrimaryColor = ""
		o.Decoration.SecondaryColor = ""
	}

	c.reprice(ctx, o)
	return nil
}

// Colors returns the decoration colors offered for the category and coating.
func (c *OrderController) Colors(ctx context.Context, o *domain.Order) []string {
	if !o.Category.IsSet() || o.Coating == "" {
		return []string{}
	}
	return c.catalog.ColorsByCategoryAndCoating(ctx, o.Category.ID, o.Coating)
}

// =============================================================================
// MESSAGE / DELIVERY / RECIPIENT
// =============================================================================

// SetMessage stores the greeting and the optional age number (0 for none).
func (c *OrderController) SetMessage(o *domain.Order, message string, age int) error {
	if age < 0 {
		return ErrInvalidAge
	}
	o.Message = strings.TrimSpace(message)
	o.Age = age
	return nil
}

// DeliveryRanges lists the time ranges offered on the given date.
func (c *OrderController) DeliveryRanges(ctx context.Context, date time.Time) []string {
	return c.delivery.Ranges(ctx, date)
}

// SetDelivery stores the delivery date and one of its offered time ranges.
func (c *OrderController) SetDelivery(ctx context.Context, o *domain.Order, date time.Time, timeRange string) error {
	if date.IsZero() {
		return ErrDeliveryDateRequired
	}
	if timeRange == "" {
		return ErrDeliveryTimeRequired
	}
	if !slices.Contains(c.delivery.Ranges(ctx, date), timeRange) {
		return domain.Invalid("order.delivery", "Delivery time not available on that date")
	}
	o.DeliveryDate = date
	o.DeliveryTime = timeRange
	return nil
}

// SetRecipient stores the delivery contact.
func (c *OrderController) SetRecipient(o *domain.Order, r domain.Recipient) {
	o.Recipient = domain.Recipient{
		FullName:       strings.TrimSpace(r.FullName),
		Phone:          strings.TrimSpace(r.Phone),
		Street:         strings.TrimSpace(r.Street),
		ExteriorNumber: strings.TrimSpace(r.ExteriorNumber),
		CrossStreets:   strings.TrimSpace(r.CrossStreets),
		PostalCode:     strings.TrimSpace(r.PostalCode),
		Neighborhood:   strings.TrimSpace(r.Neighborhood),
		City:           strings.TrimSpace(r.City),
		Municipality:   strings.TrimSpace(r.Municipality),
		State:          strings.TrimSpace(r.State),
		References:     strings.TrimSpace(r.References),
	}
}

// =============================================================================
// PRICING
// =============================================================================

// Price returns the interim quote for the order's current state.
func (c *OrderController) Price(ctx context.Context, o *domain.Order) (Quote, bool) {
	return c.pricing.Quote(ctx, o, PricingInterim)
}

// reprice refreshes the derived price fields after a price-relevant change.
// While the configuration key is incomplete the fields are zeroed so a price
// from an earlier selection is never shown.
func (c *OrderController) reprice(ctx context.Context, o *domain.Order) {
	if !c.pricing.Resolve(ctx, o, PricingInterim) {
		o.Pricing = domain.Pricing{}
		return
	}

	// Drip prices follow the configuration's weight/measure, which may have
	// just changed.
	if o.Extra.IsDrip() {
		price := c.dripPrice(ctx, o)
		if !o.Extra.UnitPrice.Valid || !o.Extra.UnitPrice.Decimal.Equal(price) {
			o.Extra.UnitPrice.Decimal = price
			o.Extra.UnitPrice.Valid = true
			c.pricing.Resolve(ctx, o, PricingInterim)
		}
	}
}
