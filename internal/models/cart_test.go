package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartItemSubtotal(t *testing.T) {
	cases := []struct {
		grams int
		price string
		want  string
	}{
		{100, "250.00", "250.00"},
		{500, "250.00", "1250.00"},
		{300, "99.99", "299.97"},
		{200, "0.01", "0.02"},
	}

	for _, tc := range cases {
		item := &CartItem{
			Grams:             tc.grams,
			PricePer100gAtAdd: decimal.RequireFromString(tc.price),
		}
		assert.True(t, item.Subtotal().Equal(decimal.RequireFromString(tc.want)),
			"%dg at %s per 100g: got %s", tc.grams, tc.price, item.Subtotal())
	}
}
