package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KAVIN131005/Florist-Backend/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeSplitSingleFlorist(t *testing.T) {
	florist := uuid.New()
	items := []models.OrderItem{
		{FloristID: florist, Subtotal: dec("150.00")},
	}

	split := ComputeSplit(items, dec("150.00"), dec("0.80"))

	assert.True(t, split.PerFlorist[florist].Equal(dec("120.00")),
		"florist share = %s", split.PerFlorist[florist])
	assert.True(t, split.FloristTotal.Equal(dec("120.00")))
	assert.True(t, split.AdminShare.Equal(dec("30.00")))
}

func TestComputeSplitAggregatesPerFlorist(t *testing.T) {
	roses := uuid.New()
	lilies := uuid.New()
	items := []models.OrderItem{
		{FloristID: roses, Subtotal: dec("100.00")},
		{FloristID: lilies, Subtotal: dec("50.00")},
		{FloristID: roses, Subtotal: dec("25.00")},
	}
	total := dec("175.00")

	split := ComputeSplit(items, total, dec("0.80"))

	require.Len(t, split.PerFlorist, 2)
	assert.True(t, split.PerFlorist[roses].Equal(dec("100.00")))
	assert.True(t, split.PerFlorist[lilies].Equal(dec("40.00")))
	assert.True(t, split.AdminShare.Equal(dec("35.00")))
}

func TestComputeSplitRoundingRemainderGoesToPlatform(t *testing.T) {
	florist := uuid.New()
	// 33.35 x 0.85 = 28.3475, banker's rounding to 28.35 at two decimals.
	items := []models.OrderItem{
		{FloristID: florist, Subtotal: dec("33.35")},
	}
	total := dec("33.35")

	split := ComputeSplit(items, total, dec("0.85"))

	assert.True(t, split.PerFlorist[florist].Equal(dec("28.35")))
	assert.True(t, split.AdminShare.Equal(dec("5.00")))
}

func TestComputeSplitSharesAlwaysSumToTotal(t *testing.T) {
	florists := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	subtotals := []string{"19.99", "0.01", "7.77", "123.45", "33.33", "0.99"}

	var items []models.OrderItem
	total := decimal.Zero
	for i, s := range subtotals {
		sub := dec(s)
		items = append(items, models.OrderItem{
			FloristID: florists[i%len(florists)],
			Subtotal:  sub,
		})
		total = total.Add(sub)
	}

	for _, ratio := range []string{"0.50", "0.80", "0.85", "0.999", "1.00"} {
		split := ComputeSplit(items, total, dec(ratio))
		assert.True(t, split.FloristTotal.Add(split.AdminShare).Equal(total),
			"ratio %s: %s + %s != %s", ratio, split.FloristTotal, split.AdminShare, total)
	}
}

func TestComputeSplitNoItems(t *testing.T) {
	split := ComputeSplit(nil, dec("10.00"), dec("0.80"))

	assert.Empty(t, split.PerFlorist)
	assert.True(t, split.FloristTotal.IsZero())
	assert.True(t, split.AdminShare.Equal(dec("10.00")))
}
