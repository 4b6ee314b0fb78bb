package service

import (
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dukerupert/cakekiosk/internal/domain"
	"github.com/dukerupert/cakekiosk/internal/service/servicetest"
)

func shapeNames(shapes []domain.Shape) []string {
	names := make([]string, 0, len(shapes))
	for _, s := range shapes {
		names = append(names, s.Name)
	}
	return names
}

func TestSizeCapacity(t *testing.T) {
	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"20", 20, true},
		{" 15 ", 15, true},
		{"150 a 180", 180, true},
		{"family", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SizeCapacity(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterShapesBySize(t *testing.T) {
	all := servicetest.NewCatalog().ShapeList

	tests := []struct {
		size string
		want []string
	}{
		{"10", []string{"Round", "Heart"}},
		{"15", []string{"Round", "Tall (3-4 layers)"}},
		{"20", []string{"Round", "Rectangular"}},
		{"30", []string{"Tall (3-4 layers)", "Tiered"}},
		{"40", []string{"Rectangular", "Tall (3-4 layers)", "Tiered"}},
		{"150 a 180", []string{"Rectangular"}},
		{"unknown", []string{"Round", "Rectangular", "Heart", "Tall (3-4 layers)", "Tiered"}},
	}

	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			assert.Equal(t, tt.want, shapeNames(FilterShapesBySize(all, tt.size)))
		})
	}
}

func TestFilterShapesBySize_KeepsUnrestrictedShapes(t *testing.T) {
	shapes := []domain.Shape{{ID: 9, Name: "Square"}, {ID: 3, Name: "Heart"}}

	assert.Equal(t, []string{"Square"}, shapeNames(FilterShapesBySize(shapes, "40")))
}

func TestFilterShapesBySize_NeverReturnsDisallowedShape(t *testing.T) {
	all := servicetest.NewCatalog().ShapeList
	allowed := map[string][]int{
		"Round":             {5, 10, 15, 18, 20},
		"Rectangular":       {20, 40, 60, 80, 120, 150, 180},
		"Tall (3-4 layers)": {15, 30, 35, 40},
		"Tiered":            {25, 30, 35, 40, 60, 70, 80, 100, 150, 160, 200, 250},
	}

	for capacity := 1; capacity <= 260; capacity++ {
		for _, shape := range FilterShapesBySize(all, strconv.Itoa(capacity)) {
			if shape.Name == "Heart" {
				assert.LessOrEqual(t, capacity, 10, "heart at capacity %d", capacity)
				continue
			}
			assert.Truef(t, slices.Contains(allowed[shape.Name], capacity), "%s at capacity %d", shape.Name, capacity)
		}
	}
}

func TestFilterBreadsByShape(t *testing.T) {
	breads := servicetest.NewCatalog().BreadList

	t.Run("tiered hides chocolate", func(t *testing.T) {
		got := FilterBreadsByShape(breads, "Tiered")
		assert.Equal(t, []domain.Bread{{ID: 1, Name: "Vanilla"}, {ID: 3, Name: "Marble"}}, got)
	})

	t.Run("other shapes keep every bread", func(t *testing.T) {
		assert.Equal(t, breads, FilterBreadsByShape(breads, "Round"))
	})

	t.Run("no shape keeps every bread", func(t *testing.T) {
		assert.Equal(t, breads, FilterBreadsByShape(breads, ""))
	})
}
