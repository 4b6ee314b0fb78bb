package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Category is a cake category (e.g. "Birthday", "Wedding").
type Category struct {
	ID   int64
	Name string
}

// Bread is a sponge flavor offered within a category.
type Bread struct {
	ID   int64
	Name string
}

// Shape is a cake shape offered within a category.
type Shape struct {
	ID   int64
	Name string
}

// Filling is a filling offered for a category and bread.
type Filling struct {
	ID   int64
	Name string
}

// Coating is an icing/finish offered for a category and bread.
type Coating struct {
	ID   int64
	Name string
}

// CatalogSize is a size row. Name encodes the number of people served.
type CatalogSize struct {
	ID          int64
	Name        string
	Description string
}

// CatalogExtra is an add-on with a flat unit price.
type CatalogExtra struct {
	ID          int64
	Description string
	Price       decimal.Decimal
}

// GalleryImage is a pre-designed decoration image.
type GalleryImage struct {
	ID       int64
	Name     string
	Category string
	FileName string
}

// PriceConfig is the configuration row keyed by (category, bread, shape, size).
type PriceConfig struct {
	BasePrice      decimal.Decimal
	ChocolatePrice decimal.Decimal
	Deposit        decimal.Decimal
	Weight         string
	Measure        string
	Includes       string
}

// OperatingHours is the delivery window as offsets from midnight.
type OperatingHours struct {
	Start time.Duration
	End   time.Duration
}

// Catalog is the read-only lookup the wizard draws its options from.
//
// Implementations absorb their own transport errors: list queries return an
// empty slice and point lookups return ok=false, so callers only ever see the
// lookup-miss contract.
type Catalog interface {
	Categories(ctx context.Context) []Category
	BreadsByCategory(ctx context.Context, categoryID int64) []Bread
	ShapesByCategory(ctx context.Context, categoryID int64) []Shape
	FillingsByCategoryAndBread(ctx context.Context, categoryID, breadID int64) []Filling
	CoatingsByCategoryAndBread(ctx context.Context, categoryID, breadID int64) []Coating
	ColorsByCategoryAndCoating(ctx context.Context, categoryID int64, coating string) []string
	Sizes(ctx context.Context) []CatalogSize
	Extras(ctx context.Context) []CatalogExtra
	ExtraByDescription(ctx context.Context, description string) (CatalogExtra, bool)
	PriceConfig(ctx context.Context, categoryID, breadID, shapeID, sizeID int64) (PriceConfig, bool)
	RoundDripPriceByMeasure(ctx context.Context, measure string) (decimal.Decimal, bool)
	RectDripPriceByWeight(ctx context.Context, weight string) (decimal.Decimal, bool)
	GalleryImages(ctx context.Context, category, search string) []GalleryImage
	GalleryImageByID(ctx context.Context, id int64) (GalleryImage, bool)
	OperatingHours(ctx context.Context) (OperatingHours, bool)
	IsHoliday(ctx context.Context, date time.Time) bool
}
