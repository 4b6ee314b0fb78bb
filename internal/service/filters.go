package service

import (
	"slices"
	"strconv"
	"strings"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

// The widest size is stored as a range; it serves up to 180 people.
const rangeSizeName = "150 a 180"

// Capacities (people served) allowed for each capacity-restricted shape family.
var (
	roundCapacities       = []int{5, 10, 15, 18, 20}
	rectangularCapacities = []int{20, 40, 60, 80, 120, 150, 180}
	tallCapacities        = []int{15, 30, 35, 40}
	tieredCapacities      = []int{25, 30, 35, 40, 60, 70, 80, 100, 150, 160, 200, 250}
)

// maxHeartCapacity is the largest size a heart-shaped cake is baked in.
const maxHeartCapacity = 10

// SizeCapacity returns the number of people a size serves, parsed from its name.
func SizeCapacity(sizeName string) (int, bool) {
	name := strings.TrimSpace(sizeName)
	if name == rangeSizeName {
		name = "180"
	}
	n, err := strconv.Atoi(name)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FilterShapesBySize drops shapes that are not baked for the size's capacity.
// When the size name carries no parseable capacity the list is returned as is.
func FilterShapesBySize(shapes []domain.Shape, sizeName string) []domain.Shape {
	capacity, ok := SizeCapacity(sizeName)
	if !ok {
		return shapes
	}

	out := make([]domain.Shape, 0, len(shapes))
	for _, s := range shapes {
		if shapeAllowed(s.Name, capacity) {
			out = append(out, s)
		}
	}
	return out
}

func shapeAllowed(shapeName string, capacity int) bool {
	name := strings.ToLower(shapeName)
	switch {
	case strings.Contains(name, "heart") && capacity > maxHeartCapacity:
		return false
	case strings.Contains(name, "round") && !slices.Contains(roundCapacities, capacity):
		return false
	case strings.Contains(name, "rectangular") && !slices.Contains(rectangularCapacities, capacity):
		return false
	case strings.Contains(name, "tall") && !slices.Contains(tallCapacities, capacity):
		return false
	case strings.Contains(name, "tiered") && !slices.Contains(tieredCapacities, capacity):
		return false
	}
	return true
}

// FilterBreadsByShape hides chocolate breads for tiered shapes.
func FilterBreadsByShape(breads []domain.Bread, shapeName string) []domain.Bread {
	if !containsFold(shapeName, "tiered") {
		return breads
	}

	out := make([]domain.Bread, 0, len(breads))
	for _, b := range breads {
		if !containsFold(b.Name, "chocolate") {
			out = append(out, b)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
