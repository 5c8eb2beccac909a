package services

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/KAVIN131005/Florist-Backend/internal/models"
)

// Split is the outcome of dividing an order's proceeds between the selling
// florists and the platform.
type Split struct {
	// PerFlorist maps each selling florist to their summed share across the
	// order's items.
	PerFlorist map[uuid.UUID]decimal.Decimal
	// FloristTotal is the sum of all florist shares.
	FloristTotal decimal.Decimal
	// AdminShare is the remainder credited to the platform admin. Because it
	// is computed as total minus florist shares, rounding remainders always
	// land on the platform side and FloristTotal + AdminShare == total holds
	// exactly.
	AdminShare decimal.Decimal
}

// ComputeSplit divides an order total between florists and the platform.
// Each item contributes subtotal x ratio (banker's rounding to two decimals)
// to its florist; the admin keeps the rest.
func ComputeSplit(items []models.OrderItem, total, ratio decimal.Decimal) Split {
	split := Split{
		PerFlorist:   make(map[uuid.UUID]decimal.Decimal, len(items)),
		FloristTotal: decimal.Zero,
	}

	for _, item := range items {
		share := item.Subtotal.Mul(ratio).RoundBank(2)
		current, ok := split.PerFlorist[item.FloristID]
		if !ok {
			current = decimal.Zero
		}
		split.PerFlorist[item.FloristID] = current.Add(share)
		split.FloristTotal = split.FloristTotal.Add(share)
	}

	split.AdminShare = total.Sub(split.FloristTotal)
	return split
}
