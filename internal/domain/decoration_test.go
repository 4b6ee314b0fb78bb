package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseDecorationType(t *testing.T) {
	tests := []struct {
		label  string
		want   DecorationType
		wantOK bool
	}{
		{"", DecorationNone, true},
		{ExtraNone, DecorationNone, true},
		{"Plain w/ Buttercream Shells", DecorationPlain, true},
		{"  theme/character ", DecorationTheme, true},
		{"PRE-DESIGNED IMAGES", DecorationImage, true},
		{"Fondant figures", DecorationNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseDecorationType(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePlainDetail(t *testing.T) {
	for _, d := range PlainDetails {
		got, ok := ParsePlainDetail(d.String())
		assert.True(t, ok, d.String())
		assert.Equal(t, d, got)
	}

	got, ok := ParsePlainDetail("   ")
	assert.True(t, ok)
	assert.Equal(t, PlainNone, got)

	_, ok = ParsePlainDetail("Sprinkles")
	assert.False(t, ok)
}

func TestDecorationLabels(t *testing.T) {
	assert.Empty(t, DecorationNone.String())
	assert.Empty(t, PlainNone.String())
	assert.Equal(t, "Design/Theme", PlainDesign.String())
}

func TestExtra_IsDrip(t *testing.T) {
	assert.True(t, Extra{Name: ExtraGoldenDrip}.IsDrip())
	assert.True(t, Extra{Name: ExtraSilverDrip}.IsDrip())
	assert.False(t, Extra{Name: ExtraArtificialFlower}.IsDrip())
	assert.False(t, Extra{}.IsDrip())
}

func TestTicket_Balance(t *testing.T) {
	ticket := Ticket{
		Total:   decimal.NewFromInt(780),
		Deposit: decimal.NewFromInt(120),
	}
	assert.True(t, decimal.NewFromInt(660).Equal(ticket.Balance()))
}
