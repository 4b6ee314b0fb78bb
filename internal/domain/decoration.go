package domain

import "strings"

// DecorationType is the top-level decoration choice.
type DecorationType int

const (
	DecorationNone DecorationType = iota
	DecorationPlain
	DecorationTheme
	DecorationImage
)

// DecorationTypes lists the selectable decoration types in display order.
var DecorationTypes = []DecorationType{DecorationPlain, DecorationTheme, DecorationImage}

// String returns the label shown on the kiosk and stored on tickets.
func (t DecorationType) String() string {
	switch t {
	case DecorationPlain:
		return "Plain w/ Buttercream Shells"
	case DecorationTheme:
		return "Theme/Character"
	case DecorationImage:
		return "Pre-designed Images"
	default:
		return ""
	}
}

// ParseDecorationType maps a label back to its type. Empty input is DecorationNone.
func ParseDecorationType(label string) (DecorationType, bool) {
	label = strings.TrimSpace(label)
	if label == "" || label == ExtraNone {
		return DecorationNone, true
	}
	for _, t := range DecorationTypes {
		if strings.EqualFold(t.String(), label) {
			return t, true
		}
	}
	return DecorationNone, false
}

// PlainDetail refines a plain buttercream decoration.
type PlainDetail int

const (
	PlainNone PlainDetail = iota
	PlainChantilly
	PlainDrip
	PlainDesign
)

// PlainDetails lists every plain detail option in display order.
var PlainDetails = []PlainDetail{PlainChantilly, PlainDrip, PlainDesign}

func (d PlainDetail) String() string {
	switch d {
	case PlainChantilly:
		return "Chantilly"
	case PlainDrip:
		return "Drip"
	case PlainDesign:
		return "Design/Theme"
	default:
		return ""
	}
}

// ParsePlainDetail maps a label back to its detail. Empty input is PlainNone.
func ParsePlainDetail(label string) (PlainDetail, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return PlainNone, true
	}
	for _, d := range PlainDetails {
		if strings.EqualFold(d.String(), label) {
			return d, true
		}
	}
	return PlainNone, false
}

// Decoration holds the decoration type and its sub-details.
type Decoration struct {
	Type           DecorationType
	Plain          PlainDetail
	Theme          string
	ImageID        int64
	ImageName      string
	PrimaryColor   string
	SecondaryColor string
}
