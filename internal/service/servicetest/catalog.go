// Package servicetest provides in-memory fakes of the kiosk's storage
// collaborators for tests.
package servicetest

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

// PriceKey identifies one price configuration row.
type PriceKey struct {
	Category, Bread, Shape, Size int64
}

// Catalog is an in-memory domain.Catalog. Every category offers every bread,
// shape, filling and coating, and every coating but drips offers every color.
type Catalog struct {
	CategoryList []domain.Category
	BreadList    []domain.Bread
	ShapeList    []domain.Shape
	FillingList  []domain.Filling
	CoatingList  []domain.Coating
	ColorList    []string
	SizeList     []domain.CatalogSize
	ExtraList    []domain.CatalogExtra
	Prices       map[PriceKey]domain.PriceConfig
	RoundDrip    map[string]decimal.Decimal
	RectDrip     map[string]decimal.Decimal
	Images       []domain.GalleryImage
	Hours        *domain.OperatingHours
	Holidays     []time.Time

	mu    sync.Mutex
	calls map[string]int
}

// Compile-time check that Catalog implements domain.Catalog.
var _ domain.Catalog = (*Catalog)(nil)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// NewCatalog returns a catalog holding the shop's sample data.
func NewCatalog() *Catalog {
	return &Catalog{
		CategoryList: []domain.Category{{ID: 1, Name: "Birthday"}, {ID: 2, Name: "Wedding"}, {ID: 3, Name: "Kids"}},
		BreadList:    []domain.Bread{{ID: 1, Name: "Vanilla"}, {ID: 2, Name: "Chocolate"}, {ID: 3, Name: "Marble"}},
		ShapeList: []domain.Shape{
			{ID: 1, Name: "Round"},
			{ID: 2, Name: "Rectangular"},
			{ID: 3, Name: "Heart"},
			{ID: 4, Name: "Tall (3-4 layers)"},
			{ID: 5, Name: "Tiered"},
		},
		FillingList: []domain.Filling{{ID: 1, Name: "Strawberry Jam"}, {ID: 2, Name: "Cajeta"}},
		CoatingList: []domain.Coating{
			{ID: 1, Name: "Vanilla Buttercream"},
			{ID: 2, Name: "Chantilly"},
			{ID: 3, Name: "Fondant"},
			{ID: 4, Name: "Chocolate Drip"},
		},
		ColorList: []string{"Blue", "Pink", "White"},
		SizeList: []domain.CatalogSize{
			{ID: 1, Name: "10", Description: "Serves 10 people"},
			{ID: 2, Name: "15", Description: "Serves 15 people"},
			{ID: 3, Name: "20", Description: "Serves 20 people"},
			{ID: 4, Name: "30", Description: "Serves 30 people"},
			{ID: 5, Name: "40", Description: "Serves 40 people"},
			{ID: 6, Name: "150 a 180", Description: "Serves 150 to 180 people"},
		},
		ExtraList: []domain.CatalogExtra{
			{ID: 1, Description: domain.ExtraArtificialFlower, Price: d("20")},
			{ID: 2, Description: domain.ExtraGoldenDrip, Price: d("0")},
			{ID: 3, Description: domain.ExtraSilverDrip, Price: d("0")},
			{ID: 4, Description: "Edible Print", Price: d("85")},
		},
		Prices: map[PriceKey]domain.PriceConfig{
			{1, 1, 1, 3}: {BasePrice: d("300"), Deposit: d("120"), Weight: "1.5 kg", Measure: "24 cm", Includes: "Candles"},
			{1, 2, 1, 3}: {BasePrice: d("300"), ChocolatePrice: d("350"), Deposit: d("120"), Weight: "1.5 kg", Measure: "24 cm", Includes: "Candles"},
			{1, 1, 2, 3}: {BasePrice: d("320"), Deposit: d("120"), Weight: "2 kg", Measure: "30x20 cm", Includes: "Candles"},
			{1, 1, 1, 1}: {BasePrice: d("280"), Deposit: d("100"), Weight: "1 kg", Measure: "20 cm", Includes: "Candles"},
			{2, 1, 5, 4}: {BasePrice: d("1200"), Deposit: d("500"), Weight: "4 kg", Measure: "3 tiers", Includes: "Cake stand"},
		},
		RoundDrip: map[string]decimal.Decimal{"20 cm": d("60"), "24 cm": d("75")},
		RectDrip:  map[string]decimal.Decimal{"2 kg": d("90")},
		Images: []domain.GalleryImage{
			{ID: 1, Name: "Unicorn", Category: "Kids", FileName: "unicorn.jpg"},
			{ID: 2, Name: "Dinosaurs", Category: "Kids", FileName: "dinosaurs.jpg"},
			{ID: 3, Name: "Soccer Field", Category: "Birthday", FileName: "soccer.jpg"},
		},
		Hours: &domain.OperatingHours{Start: 9 * time.Hour, End: 18 * time.Hour},
		Holidays: []time.Time{
			time.Date(2026, time.December, 24, 0, 0, 0, 0, time.UTC),
		},
	}
}

// Calls returns how many times the named method was invoked.
func (c *Catalog) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

func (c *Catalog) record(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	c.calls[method]++
}

func (c *Catalog) Categories(ctx context.Context) []domain.Category {
	c.record("Categories")
	return slices.Clone(c.CategoryList)
}

func (c *Catalog) BreadsByCategory(ctx context.Context, categoryID int64) []domain.Bread {
	c.record("BreadsByCategory")
	if !c.hasCategory(categoryID) {
		return []domain.Bread{}
	}
	return slices.Clone(c.BreadList)
}

func (c *Catalog) ShapesByCategory(ctx context.Context, categoryID int64) []domain.Shape {
	c.record("ShapesByCategory")
	if !c.hasCategory(categoryID) {
		return []domain.Shape{}
	}
	return slices.Clone(c.ShapeList)
}

func (c *Catalog) FillingsByCategoryAndBread(ctx context.Context, categoryID, breadID int64) []domain.Filling {
	c.record("FillingsByCategoryAndBread")
	if !c.hasCategory(categoryID) {
		return []domain.Filling{}
	}
	return slices.Clone(c.FillingList)
}

func (c *Catalog) CoatingsByCategoryAndBread(ctx context.Context, categoryID, breadID int64) []domain.Coating {
	c.record("CoatingsByCategoryAndBread")
	if !c.hasCategory(categoryID) {
		return []domain.Coating{}
	}
	return slices.Clone(c.CoatingList)
}

func (c *Catalog) ColorsByCategoryAndCoating(ctx context.Context, categoryID int64, coating string) []string {
	c.record("ColorsByCategoryAndCoating")
	if !c.hasCategory(categoryID) || strings.Contains(strings.ToLower(coating), "drip") {
		return []string{}
	}
	return slices.Clone(c.ColorList)
}

func (c *Catalog) Sizes(ctx context.Context) []domain.CatalogSize {
	c.record("Sizes")
	return slices.Clone(c.SizeList)
}

func (c *Catalog) Extras(ctx context.Context) []domain.CatalogExtra {
	c.record("Extras")
	return slices.Clone(c.ExtraList)
}

func (c *Catalog) ExtraByDescription(ctx context.Context, description string) (domain.CatalogExtra, bool) {
	c.record("ExtraByDescription")
	i := slices.IndexFunc(c.ExtraList, func(x domain.CatalogExtra) bool { return x.Description == description })
	if i < 0 {
		return domain.CatalogExtra{}, false
	}
	return c.ExtraList[i], true
}

func (c *Catalog) PriceConfig(ctx context.Context, categoryID, breadID, shapeID, sizeID int64) (domain.PriceConfig, bool) {
	c.record("PriceConfig")
	cfg, ok := c.Prices[PriceKey{categoryID, breadID, shapeID, sizeID}]
	return cfg, ok
}

func (c *Catalog) RoundDripPriceByMeasure(ctx context.Context, measure string) (decimal.Decimal, bool) {
	c.record("RoundDripPriceByMeasure")
	price, ok := c.RoundDrip[measure]
	return price, ok
}

func (c *Catalog) RectDripPriceByWeight(ctx context.Context, weight string) (decimal.Decimal, bool) {
	c.record("RectDripPriceByWeight")
	price, ok := c.RectDrip[weight]
	return price, ok
}

func (c *Catalog) GalleryImages(ctx context.Context, category, search string) []domain.GalleryImage {
	c.record("GalleryImages")
	out := []domain.GalleryImage{}
	for _, img := range c.Images {
		if category != "" && img.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(img.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, img)
	}
	return out
}

func (c *Catalog) GalleryImageByID(ctx context.Context, id int64) (domain.GalleryImage, bool) {
	c.record("GalleryImageByID")
	i := slices.IndexFunc(c.Images, func(img domain.GalleryImage) bool { return img.ID == id })
	if i < 0 {
		return domain.GalleryImage{}, false
	}
	return c.Images[i], true
}

func (c *Catalog) OperatingHours(ctx context.Context) (domain.OperatingHours, bool) {
	c.record("OperatingHours")
	if c.Hours == nil {
		return domain.OperatingHours{}, false
	}
	return *c.Hours, true
}

func (c *Catalog) IsHoliday(ctx context.Context, date time.Time) bool {
	c.record("IsHoliday")
	return slices.ContainsFunc(c.Holidays, func(h time.Time) bool {
		return h.Year() == date.Year() && h.Month() == date.Month() && h.Day() == date.Day()
	})
}

func (c *Catalog) hasCategory(id int64) bool {
	return slices.ContainsFunc(c.CategoryList, func(cat domain.Category) bool { return cat.ID == id })
}
