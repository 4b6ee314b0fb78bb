package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

func TestOrderController_DecorationOptions(t *testing.T) {
	c, _ := newTestController()

	tests := []struct {
		coating string
		want    []domain.PlainDetail
	}{
		{"", []domain.PlainDetail{domain.PlainChantilly, domain.PlainDrip, domain.PlainDesign}},
		{"Fondant", []domain.PlainDetail{domain.PlainChantilly, domain.PlainDrip, domain.PlainDesign}},
		{"Chantilly", []domain.PlainDetail{domain.PlainDrip, domain.PlainDesign}},
		{"Chocolate Drip", []domain.PlainDetail{}},
		{"Chorreado de chocolate", []domain.PlainDetail{}},
	}

	for _, tt := range tests {
		t.Run(tt.coating, func(t *testing.T) {
			o := c.NewOrder()
			o.Coating = tt.coating
			assert.Equal(t, tt.want, c.DecorationOptions(o))
		})
	}
}

func TestOrderController_SelectDecorationType(t *testing.T) {
	c, _ := newTestController()
	o := c.NewOrder()

	c.SelectDecorationType(o, domain.DecorationPlain)
	require.NoError(t, c.SelectPlainDetail(o, domain.PlainDrip, ""))
	c.SelectColors(o, "Pink", "White")

	c.SelectDecorationType(o, domain.DecorationPlain)
	assert.Equal(t, domain.PlainDrip, o.Decoration.Plain, "same type keeps details")

	c.SelectDecorationType(o, domain.DecorationTheme)
	assert.Equal(t, domain.Decoration{Type: domain.DecorationTheme}, o.Decoration)
}

func TestOrderController_SelectPlainDetail(t *testing.T) {
	c, _ := newTestController()

	t.Run("requires plain decoration", func(t *testing.T) {
		o := c.NewOrder()
		c.SelectDecorationType(o, domain.DecorationTheme)

		assert.ErrorIs(t, c.SelectPlainDetail(o, domain.PlainDrip, ""), ErrNotPlainDecoration)
	})

	t.Run("detail not offered for coating", func(t *testing.T) {
		o := c.NewOrder()
		o.Coating = "Chantilly"
		c.SelectDecorationType(o, domain.DecorationPlain)

		assert.ErrorIs(t, c.SelectPlainDetail(o, domain.PlainChantilly, ""), ErrDetailNotOffered)
	})

	t.Run("changing detail resets colors", func(t *testing.T) {
		o := c.NewOrder()
		c.SelectDecorationType(o, domain.DecorationPlain)
		require.NoError(t, c.SelectPlainDetail(o, domain.PlainChantilly, ""))
		c.SelectColors(o, "Blue", "")

		require.NoError(t, c.SelectPlainDetail(o, domain.PlainChantilly, ""))
		assert.Equal(t, "Blue", o.Decoration.PrimaryColor, "same detail keeps colors")

		require.NoError(t, c.SelectPlainDetail(o, domain.PlainDrip, ""))
		assert.Empty(t, o.Decoration.PrimaryColor)
	})

	t.Run("only design keeps a theme", func(t *testing.T) {
		o := c.NewOrder()
		c.SelectDecorationType(o, domain.DecorationPlain)

		require.NoError(t, c.SelectPlainDetail(o, domain.PlainDesign, "  Frozen  "))
		assert.Equal(t, "Frozen", o.Decoration.Theme)

		require.NoError(t, c.SelectPlainDetail(o, domain.PlainDrip, "Frozen"))
		assert.Empty(t, o.Decoration.Theme)
	})
}

func TestOrderController_CoatingChangeDropsUnofferedDetail(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController()
	o := chocolateCake(t, c)
	c.SelectDecorationType(o, domain.DecorationPlain)
	require.NoError(t, c.SelectPlainDetail(o, domain.PlainChantilly, ""))
	c.SelectColors(o, "Pink", "")

	require.NoError(t, c.SelectCoating(ctx, o, "Chantilly"))

	assert.Equal(t, domain.DecorationPlain, o.Decoration.Type)
	assert.Equal(t, domain.PlainNone, o.Decoration.Plain)
	assert.Empty(t, o.Decoration.PrimaryColor)
}

func TestOrderController_GalleryImages(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController()
	o := c.NewOrder()
	require.NoError(t, c.SelectCategory(ctx, o, 3))

	images := c.GalleryImages(ctx, o, "")
	assert.Len(t, images, 2)

	images = c.GalleryImages(ctx, o, " uni ")
	require.Len(t, images, 1)
	assert.Equal(t, "Unicorn", images[0].Name)
}

func TestOrderController_SelectGalleryImage(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController()
	o := c.NewOrder()

	assert.ErrorIs(t, c.SelectGalleryImage(ctx, o, 1), ErrNotImageDecoration)

	c.SelectDecorationType(o, domain.DecorationImage)
	assert.ErrorIs(t, c.SelectGalleryImage(ctx, o, 99), ErrImageNotFound)

	require.NoError(t, c.SelectGalleryImage(ctx, o, 2))
	assert.Equal(t, int64(2), o.Decoration.ImageID)
	assert.Equal(t, "Dinosaurs", o.Decoration.ImageName)
}

func TestOrderController_DecorationReady(t *testing.T) {
	c, _ := newTestController()

	tests := []struct {
		name       string
		decoration domain.Decoration
		want       bool
	}{
		{"nothing chosen", domain.Decoration{}, false},
		{"plain without detail", domain.Decoration{Type: domain.DecorationPlain}, false},
		{"plain without color", domain.Decoration{Type: domain.DecorationPlain, Plain: domain.PlainDrip}, false},
		{"plain complete", domain.Decoration{Type: domain.DecorationPlain, Plain: domain.PlainDrip, PrimaryColor: "Pink"}, true},
		{"theme blank", domain.Decoration{Type: domain.DecorationTheme, Theme: "   "}, false},
		{"theme complete", domain.Decoration{Type: domain.DecorationTheme, Theme: "Spiderman"}, true},
		{"image missing", domain.Decoration{Type: domain.DecorationImage}, false},
		{"image chosen", domain.Decoration{Type: domain.DecorationImage, ImageID: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := c.NewOrder()
			o.Decoration = tt.decoration
			assert.Equal(t, tt.want, c.DecorationReady(o))
		})
	}
}
