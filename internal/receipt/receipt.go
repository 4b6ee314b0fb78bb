// Package receipt renders finalized tickets as fixed-width text receipts and
// spools them for the kiosk's thermal printer.
package receipt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

const receiptTemplate = `{{center .Shop}}
{{center "CAKE ORDER"}}
{{rule}}
{{row "Folio" (folio .ID)}}
{{row "Ordered" (stamp .CreatedAt)}}
{{row "Delivery" (day .DeliveryDate)}}
{{row "Time" .DeliveryTime}}
{{rule}}
{{row "Size" .Size}}
{{- if .SizeDescription}}
{{right .SizeDescription}}
{{- end}}
{{row "Category" .Category}}
{{row "Shape" .Shape}}
{{row "Bread" .Bread}}
{{- if .Filling}}
{{row "Filling" .Filling}}
{{- end}}
{{- if .Coating}}
{{row "Coating" .Coating}}
{{- end}}
{{- if .Decoration}}
{{row "Decoration" .Decoration}}
{{- end}}
{{- if .PlainDetail}}
{{row "Detail" .PlainDetail}}
{{- end}}
{{- if .Theme}}
{{row "Theme" .Theme}}
{{- end}}
{{- if .ImageName}}
{{row "Image" .ImageName}}
{{- end}}
{{- if .PrimaryColor}}
{{row "Colors" (colors .PrimaryColor .SecondaryColor)}}
{{- end}}
{{- if .Extra}}
{{row "Extra" (extra .Extra .FlowerQuantity)}}
{{- end}}
{{- if .Message}}
{{row "Message" .Message}}
{{- end}}
{{- if gt .Age 0}}
{{row "Age" (print .Age)}}
{{- end}}
{{- if .Weight}}
{{row "Weight" .Weight}}
{{- end}}
{{- if .Includes}}
{{row "Includes" .Includes}}
{{- end}}
{{rule}}
{{row "Deliver to" .Recipient.FullName}}
{{- if .Recipient.Phone}}
{{row "Phone" .Recipient.Phone}}
{{- end}}
{{- with address .Recipient}}
{{row "Address" .}}
{{- end}}
{{- if .Recipient.References}}
{{row "References" .Recipient.References}}
{{- end}}
{{rule}}
{{row "Cake" (money .CakePrice)}}
{{row "Extra" (money .ExtraCost)}}
{{row "TOTAL" (money .Total)}}
{{row "Deposit" (money .Deposit)}}
{{row "Balance due" (money .Balance)}}
{{rule}}
{{center "Pay the deposit at the counter"}}
`

// view is the data the receipt template renders.
type view struct {
	domain.Ticket
	Shop string
}

// Renderer renders tickets as plain text receipts of a fixed width.
type Renderer struct {
	tmpl  *template.Template
	shop  string
	width int
	loc   *time.Location
}

// NewRenderer creates a renderer for receipts width characters wide.
// Order timestamps are printed in loc.
func NewRenderer(shop string, width int, loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.Local
	}
	r := &Renderer{shop: shop, width: width, loc: loc}

	tmpl, err := template.New("receipt").Funcs(template.FuncMap{
		"center":  r.center,
		"right":   r.right,
		"row":     r.row,
		"rule":    r.rule,
		"folio":   Folio,
		"stamp":   r.stamp,
		"day":     day,
		"money":   money,
		"colors":  colors,
		"extra":   extra,
		"address": address,
	}).Parse(receiptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse receipt template: %w", err)
	}
	r.tmpl = tmpl

	return r, nil
}

// Render returns the receipt text for t.
func (r *Renderer) Render(t domain.Ticket) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view{Ticket: t, Shop: r.shop}); err != nil {
		return nil, fmt.Errorf("failed to render receipt for order %d: %w", t.ID, err)
	}
	return buf.Bytes(), nil
}

// Folio formats an order id the way it is printed and announced at the
// counter.
func Folio(id int64) string {
	return fmt.Sprintf("%06d", id)
}

func (r *Renderer) rule() string {
	return strings.Repeat("-", r.width)
}

func (r *Renderer) center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= r.width {
		return s
	}
	return strings.Repeat(" ", (r.width-n)/2) + s
}

func (r *Renderer) right(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= r.width {
		return s
	}
	return strings.Repeat(" ", r.width-n) + s
}

// row prints label and value on one line, the value flush right. Values that
// do not fit go on the following lines, wrapped at word boundaries.
func (r *Renderer) row(label, value string) string {
	gap := r.width - utf8.RuneCountInString(label) - utf8.RuneCountInString(value)
	if gap >= 1 {
		return label + strings.Repeat(" ", gap) + value
	}

	lines := append([]string{label + ":"}, wrap(value, r.width-2)...)
	return strings.Join(lines, "\n  ")
}

func (r *Renderer) stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(r.loc).Format("2006-01-02 15:04")
}

// day formats a calendar date. Delivery dates carry no meaningful zone.
func day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Mon 02 Jan 2006")
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func colors(primary, secondary string) string {
	if secondary == "" {
		return primary
	}
	return primary + " / " + secondary
}

func extra(name string, flowers int) string {
	if name == domain.ExtraArtificialFlower && flowers > 0 {
		return fmt.Sprintf("%s x%d", name, flowers)
	}
	return name
}

func address(r domain.TicketRecipient) string {
	var parts []string
	street := strings.TrimSpace(r.Street + " " + r.ExteriorNumber)
	for _, p := range []string{street, r.Neighborhood, r.PostalCode, r.City, r.Municipality, r.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	s := strings.Join(parts, ", ")
	if r.CrossStreets != "" {
		s += " (between " + r.CrossStreets + ")"
	}
	return s
}

// wrap splits s into lines of at most width runes, breaking at spaces.
// Words longer than width are split.
func wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}

	var (
		lines []string
		line  string
	)
	for _, word := range strings.Fields(s) {
		for utf8.RuneCountInString(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			runes := []rune(word)
			lines = append(lines, string(runes[:width]))
			word = string(runes[width:])
		}
		switch {
		case line == "":
			line = word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
