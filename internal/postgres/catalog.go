package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

// Catalog implements domain.Catalog using PostgreSQL.
//
// Query failures are logged and reported as lookup misses: list methods return
// an empty slice, point lookups return ok=false.
type Catalog struct {
	db     DBTX
	logger *slog.Logger
}

// Compile-time check that Catalog implements domain.Catalog.
var _ domain.Catalog = (*Catalog)(nil)

// NewCatalog creates a new PostgreSQL-backed catalog.
func NewCatalog(db DBTX, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{db: db, logger: logger}
}

// =============================================================================
// WIZARD OPTIONS
// =============================================================================

func (c *Catalog) Categories(ctx context.Context) []domain.Category {
	rows, err := c.db.Query(ctx, `
		SELECT id, name
		FROM categories
		ORDER BY sort_order, id`)
	return collect(c, "catalog.categories", rows, err, pgx.RowToStructByPos[domain.Category])
}

func (c *Catalog) BreadsByCategory(ctx context.Context, categoryID int64) []domain.Bread {
	rows, err := c.db.Query(ctx, `
		SELECT b.id, b.name
		FROM breads b
		JOIN category_breads cb ON cb.bread_id = b.id
		WHERE cb.category_id = $1
		ORDER BY b.sort_order, b.id`, categoryID)
	return collect(c, "catalog.breads", rows, err, pgx.RowToStructByPos[domain.Bread])
}

func (c *Catalog) ShapesByCategory(ctx context.Context, categoryID int64) []domain.Shape {
	rows, err := c.db.Query(ctx, `
		SELECT s.id, s.name
		FROM shapes s
		JOIN category_shapes cs ON cs.shape_id = s.id
		WHERE cs.category_id = $1
		ORDER BY s.sort_order, s.id`, categoryID)
	return collect(c, "catalog.shapes", rows, err, pgx.RowToStructByPos[domain.Shape])
}

func (c *Catalog) FillingsByCategoryAndBread(ctx context.Context, categoryID, breadID int64) []domain.Filling {
	rows, err := c.db.Query(ctx, `
		SELECT f.id, f.name
		FROM fillings f
		JOIN category_bread_fillings cbf ON cbf.filling_id = f.id
		WHERE cbf.category_id = $1 AND cbf.bread_id = $2
		ORDER BY f.name`, categoryID, breadID)
	return collect(c, "catalog.fillings", rows, err, pgx.RowToStructByPos[domain.Filling])
}

func (c *Catalog) CoatingsByCategoryAndBread(ctx context.Context, categoryID, breadID int64) []domain.Coating {
	rows, err := c.db.Query(ctx, `
		SELECT co.id, co.name
		FROM coatings co
		JOIN category_bread_coatings cbc ON cbc.coating_id = co.id
		WHERE cbc.category_id = $1 AND cbc.bread_id = $2
		ORDER BY co.name`, categoryID, breadID)
	return collect(c, "catalog.coatings", rows, err, pgx.RowToStructByPos[domain.Coating])
}

func (c *Catalog) ColorsByCategoryAndCoating(ctx context.Context, categoryID int64, coating string) []string {
	rows, err := c.db.Query(ctx, `
		SELECT cl.name
		FROM colors cl
		JOIN coating_colors cc ON cc.color_id = cl.id
		JOIN coatings co ON co.id = cc.coating_id
		WHERE cc.category_id = $1 AND co.name = $2
		ORDER BY cl.name`, categoryID, coating)
	return collect(c, "catalog.colors", rows, err, pgx.RowTo[string])
}

func (c *Catalog) Sizes(ctx context.Context) []domain.CatalogSize {
	rows, err := c.db.Query(ctx, `
		SELECT id, name, description
		FROM sizes
		ORDER BY sort_order, id`)
	return collect(c, "catalog.sizes", rows, err, pgx.RowToStructByPos[domain.CatalogSize])
}

// =============================================================================
// PRICING
// =============================================================================

func (c *Catalog) Extras(ctx context.Context) []domain.CatalogExtra {
	rows, err := c.db.Query(ctx, `
		SELECT id, description, price
		FROM extras
		ORDER BY description`)
	return collect(c, "catalog.extras", rows, err, scanExtra)
}

func (c *Catalog) ExtraByDescription(ctx context.Context, description string) (domain.CatalogExtra, bool) {
	rows, err := c.db.Query(ctx, `
		SELECT id, description, price
		FROM extras
		WHERE description = $1`, description)
	return first(c, "catalog.extra_by_description", rows, err, scanExtra)
}

func (c *Catalog) PriceConfig(ctx context.Context, categoryID, breadID, shapeID, sizeID int64) (domain.PriceConfig, bool) {
	var (
		cfg                      domain.PriceConfig
		base, chocolate, deposit pgtype.Numeric
	)
	err := c.db.QueryRow(ctx, `
		SELECT base_price, chocolate_price, deposit, weight, measure, includes
		FROM price_configs
		WHERE category_id = $1 AND bread_id = $2 AND shape_id = $3 AND size_id = $4`,
		categoryID, breadID, shapeID, sizeID,
	).Scan(&base, &chocolate, &deposit, &cfg.Weight, &cfg.Measure, &cfg.Includes)
	if err != nil {
		c.miss("catalog.price_config", err)
		return domain.PriceConfig{}, false
	}

	cfg.BasePrice = decimalFromNumeric(base)
	cfg.ChocolatePrice = decimalFromNumeric(chocolate)
	cfg.Deposit = decimalFromNumeric(deposit)
	return cfg, true
}

func (c *Catalog) RoundDripPriceByMeasure(ctx context.Context, measure string) (decimal.Decimal, bool) {
	return c.price(ctx, "catalog.round_drip_price", `
		SELECT price FROM round_drip_prices WHERE measure = $1`, measure)
}

func (c *Catalog) RectDripPriceByWeight(ctx context.Context, weight string) (decimal.Decimal, bool) {
	return c.price(ctx, "catalog.rect_drip_price", `
		SELECT price FROM rect_drip_prices WHERE weight = $1`, weight)
}

func (c *Catalog) price(ctx context.Context, op, query string, key string) (decimal.Decimal, bool) {
	var n pgtype.Numeric
	if err := c.db.QueryRow(ctx, query, key).Scan(&n); err != nil {
		c.miss(op, err)
		return decimal.Zero, false
	}
	return decimalFromNumeric(n), true
}

// =============================================================================
// GALLERY
// =============================================================================

// GalleryImages lists images of a category whose name or tags contain search.
// Empty filters match everything.
func (c *Catalog) GalleryImages(ctx context.Context, category, search string) []domain.GalleryImage {
	rows, err := c.db.Query(ctx, `
		SELECT id, name, category, file_name
		FROM gallery_images
		WHERE ($1::text = '' OR category = $1)
		  AND ($2::text = '' OR name ILIKE '%' || $2 || '%' OR tags ILIKE '%' || $2 || '%')
		ORDER BY name`, category, search)
	return collect(c, "catalog.gallery_images", rows, err, pgx.RowToStructByPos[domain.GalleryImage])
}

func (c *Catalog) GalleryImageByID(ctx context.Context, id int64) (domain.GalleryImage, bool) {
	rows, err := c.db.Query(ctx, `
		SELECT id, name, category, file_name
		FROM gallery_images
		WHERE id = $1`, id)
	return first(c, "catalog.gallery_image", rows, err, pgx.RowToStructByPos[domain.GalleryImage])
}

// =============================================================================
// SCHEDULE
// =============================================================================

func (c *Catalog) OperatingHours(ctx context.Context) (domain.OperatingHours, bool) {
	var start, end pgtype.Time
	err := c.db.QueryRow(ctx, `
		SELECT start_time, end_time
		FROM operating_hours
		ORDER BY id
		LIMIT 1`,
	).Scan(&start, &end)
	if err != nil {
		c.miss("catalog.operating_hours", err)
		return domain.OperatingHours{}, false
	}
	if !start.Valid || !end.Valid {
		return domain.OperatingHours{}, false
	}
	return domain.OperatingHours{
		Start: time.Duration(start.Microseconds) * time.Microsecond,
		End:   time.Duration(end.Microseconds) * time.Microsecond,
	}, true
}

func (c *Catalog) IsHoliday(ctx context.Context, date time.Time) bool {
	var holiday bool
	err := c.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM holidays WHERE day = $1)`, pgDate(date)).Scan(&holiday)
	if err != nil {
		c.miss("catalog.is_holiday", err)
		return false
	}
	return holiday
}

// =============================================================================
// HELPERS
// =============================================================================

// miss logs a failed lookup. Missing rows are expected and only logged at
// debug level.
func (c *Catalog) miss(op string, err error) {
	if errors.Is(err, pgx.ErrNoRows) {
		c.logger.Debug("catalog lookup miss", "op", op)
		return
	}
	c.logger.Error("catalog query failed", "op", op, "error", err)
}

func collect[T any](c *Catalog, op string, rows pgx.Rows, err error, fn pgx.RowToFunc[T]) []T {
	if err != nil {
		c.miss(op, err)
		return []T{}
	}
	items, err := pgx.CollectRows(rows, fn)
	if err != nil {
		c.miss(op, err)
		return []T{}
	}
	return items
}

func first[T any](c *Catalog, op string, rows pgx.Rows, err error, fn pgx.RowToFunc[T]) (T, bool) {
	var zero T
	if err != nil {
		c.miss(op, err)
		return zero, false
	}
	item, err := pgx.CollectOneRow(rows, fn)
	if err != nil {
		c.miss(op, err)
		return zero, false
	}
	return item, true
}

func scanExtra(row pgx.CollectableRow) (domain.CatalogExtra, error) {
	var (
		x     domain.CatalogExtra
		price pgtype.Numeric
	)
	if err := row.Scan(&x.ID, &x.Description, &price); err != nil {
		return domain.CatalogExtra{}, err
	}
	x.Price = decimalFromNumeric(price)
	return x, nil
}
