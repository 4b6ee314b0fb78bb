package kiosk

import (
	"github.com/shopspring/decimal"

	"github.com/dukerupert/cakekiosk/internal/domain"
	"github.com/dukerupert/cakekiosk/internal/service"
)

const dateLayout = "2006-01-02"

// =============================================================================
// REQUESTS
// =============================================================================

type nameRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

type idRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// decorationRequest applies only the fields that are present, in the order
// type, detail, theme, image, colors.
type decorationRequest struct {
	Type           *string `json:"type" validate:"omitempty,max=60"`
	Detail         *string `json:"detail" validate:"omitempty,max=60"`
	Theme          *string `json:"theme" validate:"omitempty,max=200"`
	ImageID        *int64  `json:"image_id" validate:"omitempty,gt=0"`
	PrimaryColor   *string `json:"primary_color" validate:"omitempty,max=40"`
	SecondaryColor *string `json:"secondary_color" validate:"omitempty,max=40"`
}

type extraRequest struct {
	Name           string `json:"name" validate:"max=80"`
	FlowerQuantity *int   `json:"flower_quantity" validate:"omitempty,min=1,max=10"`
}

type messageRequest struct {
	Message string `json:"message" validate:"max=120"`
	Age     int    `json:"age" validate:"min=0,max=120"`
}

type deliveryRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,max=40"`
}

type recipientRequest struct {
	FullName       string `json:"full_name" validate:"required,max=120"`
	Phone          string `json:"phone" validate:"required,min=7,max=20,phone"`
	Street         string `json:"street" validate:"required,max=120"`
	ExteriorNumber string `json:"exterior_number" validate:"required,max=20"`
	CrossStreets   string `json:"cross_streets" validate:"max=200"`
	PostalCode     string `json:"postal_code" validate:"required,numeric,len=5"`
	Neighborhood   string `json:"neighborhood" validate:"required,max=120"`
	City           string `json:"city" validate:"required,max=120"`
	Municipality   string `json:"municipality" validate:"max=120"`
	State          string `json:"state" validate:"required,max=120"`
	References     string `json:"references" validate:"max=300"`
}

func (r recipientRequest) recipient() domain.Recipient {
	return domain.Recipient{
		FullName:       r.FullName,
		Phone:          r.Phone,
		Street:         r.Street,
		ExteriorNumber: r.ExteriorNumber,
		CrossStreets:   r.CrossStreets,
		PostalCode:     r.PostalCode,
		Neighborhood:   r.Neighborhood,
		City:           r.City,
		Municipality:   r.Municipality,
		State:          r.State,
		References:     r.References,
	}
}

// =============================================================================
// RESPONSES
// =============================================================================

type listResponse[T any] struct {
	Items []T `json:"items"`
}

func list[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items}
}

type sessionResponse struct {
	SessionID string    `json:"session_id"`
	Order     orderView `json:"order"`
}

type option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type sizeOption struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type extraOption struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type imageOption struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	FileName string `json:"file_name"`
}

type decorationOptions struct {
	Types   []string       `json:"types"`
	Details []string       `json:"details"`
	Ready   bool           `json:"ready"`
	Current decorationView `json:"current"`
}

type rangesResponse struct {
	Date   string   `json:"date"`
	Ranges []string `json:"ranges"`
}

type priceResponse struct {
	Complete bool        `json:"complete"`
	Pricing  pricingView `json:"pricing"`
}

type orderView struct {
	TicketID     int64           `json:"ticket_id,omitempty"`
	Size         sizeOption      `json:"size"`
	Category     option          `json:"category"`
	Bread        option          `json:"bread"`
	Shape        option          `json:"shape"`
	Filling      string          `json:"filling"`
	Coating      string          `json:"coating"`
	Decoration   decorationView  `json:"decoration"`
	Extra        extraView       `json:"extra"`
	Message      string          `json:"message"`
	Age          int             `json:"age"`
	DeliveryDate string          `json:"delivery_date"`
	DeliveryTime string          `json:"delivery_time"`
	Recipient    recipientView   `json:"recipient"`
	Pricing      pricingView     `json:"pricing"`
	Ready        map[string]bool `json:"ready"`
}

type decorationView struct {
	Type           string `json:"type"`
	Detail         string `json:"detail"`
	Theme          string `json:"theme"`
	ImageID        int64  `json:"image_id,omitempty"`
	ImageName      string `json:"image_name"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

type extraView struct {
	Name           string               `json:"name"`
	UnitPrice      *decimal.NullDecimal `json:"unit_price,omitempty"`
	FlowerQuantity int                  `json:"flower_quantity"`
}

type pricingView struct {
	BasePrice      decimal.Decimal `json:"base_price"`
	ChocolatePrice decimal.Decimal `json:"chocolate_price"`
	CakePrice      decimal.Decimal `json:"cake_price"`
	ExtraCost      decimal.Decimal `json:"extra_cost"`
	Total          decimal.Decimal `json:"total"`
	Deposit        decimal.Decimal `json:"deposit"`
	Weight         string          `json:"weight"`
	Measure        string          `json:"measure"`
	Includes       string          `json:"includes"`
}

type recipientView struct {
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

func newPricingView(p domain.Pricing) pricingView {
	return pricingView{
		BasePrice:      p.BasePrice,
		ChocolatePrice: p.ChocolatePrice,
		CakePrice:      p.CakePrice,
		ExtraCost:      p.ExtraCost,
		Total:          p.Total,
		Deposit:        p.Deposit,
		Weight:         p.Weight,
		Measure:        p.Measure,
		Includes:       p.Includes,
	}
}

func newQuoteView(q service.Quote) pricingView {
	return newPricingView(q.Pricing())
}

func newDecorationView(d domain.Decoration) decorationView {
	return decorationView{
		Type:           d.Type.String(),
		Detail:         d.Plain.String(),
		Theme:          d.Theme,
		ImageID:        d.ImageID,
		ImageName:      d.ImageName,
		PrimaryColor:   d.PrimaryColor,
		SecondaryColor: d.SecondaryColor,
	}
}

func newOrderView(o *domain.Order, decorationReady bool) orderView {
	v := orderView{
		TicketID:     o.ID,
		Size:         sizeOption{ID: o.Size.ID, Name: o.Size.Name, Description: o.Size.Description},
		Category:     option{ID: o.Category.ID, Name: o.Category.Name},
		Bread:        option{ID: o.Bread.ID, Name: o.Bread.Name},
		Shape:        option{ID: o.Shape.ID, Name: o.Shape.Name},
		Filling:      o.Filling,
		Coating:      o.Coating,
		Decoration:   newDecorationView(o.Decoration),
		Extra:        extraView{Name: o.Extra.Name, FlowerQuantity: o.Extra.FlowerQuantity},
		Message:      o.Message,
		Age:          o.Age,
		DeliveryTime: o.DeliveryTime,
		Recipient: recipientView{
			FullName:       o.Recipient.FullName,
			Phone:          o.Recipient.Phone,
			Street:         o.Recipient.Street,
			ExteriorNumber: o.Recipient.ExteriorNumber,
			CrossStreets:   o.Recipient.CrossStreets,
			PostalCode:     o.Recipient.PostalCode,
			Neighborhood:   o.Recipient.Neighborhood,
			City:           o.Recipient.City,
			Municipality:   o.Recipient.Municipality,
			State:          o.Recipient.State,
			References:     o.Recipient.References,
		},
		Pricing: newPricingView(o.Pricing),
		Ready: map[string]bool{
			"cake":       o.Size.IsSet() && o.Category.IsSet() && o.Shape.IsSet() && o.Bread.IsSet(),
			"decoration": decorationReady,
			"delivery":   !o.DeliveryDate.IsZero() && o.DeliveryTime != "",
			"recipient":  o.Recipient.FullName != "" && o.Recipient.Phone != "",
		},
	}
	if o.Extra.UnitPrice.Valid {
		price := o.Extra.UnitPrice
		v.Extra.UnitPrice = &price
	}
	if !o.DeliveryDate.IsZero() {
		v.DeliveryDate = o.DeliveryDate.Format(dateLayout)
	}
	return v
}

func newSizeOptions(sizes []domain.CatalogSize) []sizeOption {
	out := make([]sizeOption, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, sizeOption{ID: s.ID, Name: s.Name, Description: s.Description})
	}
	return out
}

// options converts any catalog list of id/name rows.
func options[T domain.Category | domain.Bread | domain.Shape | domain.Filling | domain.Coating](items []T) []option {
	out := make([]option, 0, len(items))
	for _, item := range items {
		o := option(item)
		out = append(out, o)
	}
	return out
}

func newExtraOptions(extras []domain.CatalogExtra) []extraOption {
	out := make([]extraOption, 0, len(extras))
	for _, x := range extras {
		out = append(out, extraOption{Name: x.Description, Price: x.Price})
	}
	return out
}

func newImageOptions(images []domain.GalleryImage) []imageOption {
	out := make([]imageOption, 0, len(images))
	for _, img := range images {
		out = append(out, imageOption(img))
	}
	return out
}
