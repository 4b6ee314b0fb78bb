package service

import (
	"context"
	"slices"
	"strings"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

// DecorationOptions returns the plain-decoration details that make sense for
// the chosen coating. Drip coatings take no detail at all, and a chantilly
// coating already is the chantilly detail.
func (c *OrderController) DecorationOptions(o *domain.Order) []domain.PlainDetail {
	if containsFold(o.Coating, "drip") || containsFold(o.Coating, "chorreado") {
		return []domain.PlainDetail{}
	}

	opts := slices.Clone(domain.PlainDetails)
	if containsFold(o.Coating, "chantilly") {
		opts = slices.DeleteFunc(opts, func(d domain.PlainDetail) bool { return d == domain.PlainChantilly })
	}
	return opts
}

// SelectDecorationType changes the decoration type. Switching to another
// type drops every sub-detail of the previous one.
func (c *OrderController) SelectDecorationType(o *domain.Order, t domain.DecorationType) {
	if o.Decoration.Type == t {
		return
	}
	o.Decoration = domain.Decoration{Type: t}
}

// SelectPlainDetail picks the plain-decoration detail. A different detail
// resets both colors; only Design/Theme keeps the theme text.
func (c *OrderController) SelectPlainDetail(o *domain.Order, d domain.PlainDetail, theme string) error {
	if o.Decoration.Type != domain.DecorationPlain {
		return ErrNotPlainDecoration
	}
	if d != domain.PlainNone && !slices.Contains(c.DecorationOptions(o), d) {
		return ErrDetailNotOffered
	}

	if d != o.Decoration.Plain {
		o.Decoration.PrimaryColor = ""
		o.Decoration.SecondaryColor = ""
	}
	o.Decoration.Plain = d

	if d == domain.PlainDesign {
		o.Decoration.Theme = strings.TrimSpace(theme)
	} else {
		o.Decoration.Theme = ""
	}
	return nil
}

// SetTheme stores the free-text theme/character description.
func (c *OrderController) SetTheme(o *domain.Order, theme string) {
	o.Decoration.Theme = strings.TrimSpace(theme)
}

// SelectColors stores the decoration colors. The secondary color is optional.
func (c *OrderController) SelectColors(o *domain.Order, primary, secondary string) {
	o.Decoration.PrimaryColor = strings.TrimSpace(primary)
	o.Decoration.SecondaryColor = strings.TrimSpace(secondary)
}

// GalleryImages lists pre-designed images for the order's category,
// optionally narrowed by a search term.
func (c *OrderController) GalleryImages(ctx context.Context, o *domain.Order, search string) []domain.GalleryImage {
	return c.catalog.GalleryImages(ctx, o.Category.Name, strings.TrimSpace(search))
}

// SelectGalleryImage stores a pre-designed image and its name.
func (c *OrderController) SelectGalleryImage(ctx context.Context, o *domain.Order, id int64) error {
	if o.Decoration.Type != domain.DecorationImage {
		return ErrNotImageDecoration
	}
	img, ok := c.catalog.GalleryImageByID(ctx, id)
	if !ok {
		return ErrImageNotFound
	}
	o.Decoration.ImageID = img.ID
	o.Decoration.ImageName = img.Name
	return nil
}

// DecorationReady reports whether the decoration step has everything it needs
// for the wizard to move on.
func (c *OrderController) DecorationReady(o *domain.Order) bool {
	d := o.Decoration
	switch d.Type {
	case domain.DecorationNone:
		return false
	case domain.DecorationPlain:
		return d.Plain != domain.PlainNone && d.PrimaryColor != ""
	case domain.DecorationTheme:
		return strings.TrimSpace(d.Theme) != ""
	case domain.DecorationImage:
		return d.ImageID != 0
	default:
		return false
	}
}
