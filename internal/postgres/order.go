package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

// OrderStore implements domain.OrderStore using PostgreSQL.
type OrderStore struct {
	db      DBTX
	kioskID string
}

// Compile-time check that OrderStore implements domain.OrderStore.
var _ domain.OrderStore = (*OrderStore)(nil)

// NewOrderStore creates a new PostgreSQL-backed order store. Every saved
// order is stamped with kioskID.
func NewOrderStore(db DBTX, kioskID string) *OrderStore {
	return &OrderStore{db: db, kioskID: kioskID}
}

// Save inserts a finalized order and returns its id.
func (s *OrderStore) Save(ctx context.Context, o *domain.Order) (int64, error) {
	var imageID pgtype.Int8
	if o.Decoration.ImageID != 0 {
		imageID = pgtype.Int8{Int64: o.Decoration.ImageID, Valid: true}
	}

	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO orders (
			kiosk_id, delivery_date, delivery_time,
			size_id, size_name, size_description,
			category_id, category_name, bread_id, bread_name, shape_id, shape_name,
			filling, coating,
			decoration_type, plain_detail, theme, image_id, image_name,
			primary_color, secondary_color,
			extra, extra_unit_price, flower_quantity,
			message, age,
			base_price, chocolate_price, deposit, extra_cost, cake_price, total,
			weight, measure, includes,
			recipient_name, recipient_phone, recipient_street, recipient_exterior_number,
			recipient_cross_streets, recipient_postal_code, recipient_neighborhood,
			recipient_city, recipient_municipality, recipient_state, recipient_references
		) VALUES (
			$1, $2, $3,
			$4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14,
			$15, $16, $17, $18, $19,
			$20, $21,
			$22, $23, $24,
			$25, $26,
			$27, $28, $29, $30, $31, $32,
			$33, $34, $35,
			$36, $37, $38, $39,
			$40, $41, $42,
			$43, $44, $45, $46
		)
		RETURNING id`,
		s.kioskID, pgDate(o.DeliveryDate), o.DeliveryTime,
		o.Size.ID, o.Size.Name, o.Size.Description,
		o.Category.ID, o.Category.Name, o.Bread.ID, o.Bread.Name, o.Shape.ID, o.Shape.Name,
		o.Filling, o.Coating,
		o.Decoration.Type.String(), o.Decoration.Plain.String(), o.Decoration.Theme, imageID, o.Decoration.ImageName,
		o.Decoration.PrimaryColor, o.Decoration.SecondaryColor,
		o.Extra.Name, numericFromNullDecimal(o.Extra.UnitPrice), o.Extra.FlowerQuantity,
		o.Message, o.Age,
		numericFromDecimal(o.Pricing.BasePrice), numericFromDecimal(o.Pricing.ChocolatePrice),
		numericFromDecimal(o.Pricing.Deposit), numericFromDecimal(o.Pricing.ExtraCost),
		numericFromDecimal(o.Pricing.CakePrice), numericFromDecimal(o.Pricing.Total),
		o.Pricing.Weight, o.Pricing.Measure, o.Pricing.Includes,
		o.Recipient.FullName, o.Recipient.Phone, o.Recipient.Street, o.Recipient.ExteriorNumber,
		o.Recipient.CrossStreets, o.Recipient.PostalCode, o.Recipient.Neighborhood,
		o.Recipient.City, o.Recipient.Municipality, o.Recipient.State, o.Recipient.References,
	).Scan(&id)
	if err != nil {
		return 0, domain.Internal(err, "order.save", "failed to save order")
	}

	return id, nil
}

// Ticket loads the read-model of a saved order.
func (s *OrderStore) Ticket(ctx context.Context, id int64) (*domain.Ticket, error) {
	var (
		t                                    domain.Ticket
		deliveryDate                         pgtype.Date
		cakePrice, extraCost, total, deposit pgtype.Numeric
	)
	err := s.db.QueryRow(ctx, `
		SELECT
			id, created_at, delivery_date, delivery_time,
			size_name, size_description, category_name, bread_name, shape_name,
			filling, coating,
			decoration_type, plain_detail, theme, image_name, primary_color, secondary_color,
			extra, flower_quantity, message, age,
			cake_price, extra_cost, total, deposit,
			weight, measure, includes,
			recipient_name, recipient_phone, recipient_street, recipient_exterior_number,
			recipient_cross_streets, recipient_postal_code, recipient_neighborhood,
			recipient_city, recipient_municipality, recipient_state, recipient_references
		FROM orders
		WHERE id = $1`, id,
	).Scan(
		&t.ID, &t.CreatedAt, &deliveryDate, &t.DeliveryTime,
		&t.Size, &t.SizeDescription, &t.Category, &t.Bread, &t.Shape,
		&t.Filling, &t.Coating,
		&t.Decoration, &t.PlainDetail, &t.Theme, &t.ImageName, &t.PrimaryColor, &t.SecondaryColor,
		&t.Extra, &t.FlowerQuantity, &t.Message, &t.Age,
		&cakePrice, &extraCost, &total, &deposit,
		&t.Weight, &t.Measure, &t.Includes,
		&t.Recipient.FullName, &t.Recipient.Phone, &t.Recipient.Street, &t.Recipient.ExteriorNumber,
		&t.Recipient.CrossStreets, &t.Recipient.PostalCode, &t.Recipient.Neighborhood,
		&t.Recipient.City, &t.Recipient.Municipality, &t.Recipient.State, &t.Recipient.References,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, domain.Internal(err, "order.ticket", "failed to load ticket")
	}

	if deliveryDate.Valid {
		t.DeliveryDate = deliveryDate.Time
	}
	t.CakePrice = decimalFromNumeric(cakePrice)
	t.ExtraCost = decimalFromNumeric(extraCost)
	t.Total = decimalFromNumeric(total)
	t.Deposit = decimalFromNumeric(deposit)

	return &t, nil
}

// pgDate maps the zero time to NULL.
func pgDate(t time.Time) pgtype.Date {
	if t.IsZero() {
		return pgtype.Date{}
	}
	return pgtype.Date{
		Time:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		Valid: true,
	}
}
