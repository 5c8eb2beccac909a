package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart holds a user's pending items prior to checkout. One cart per user,
// created lazily and emptied when an order is placed.
type Cart struct {
	BaseModel
	UserID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `json:"items"`
}

// CartItem records the weight wanted and the price per 100g at the moment the
// item was added. The snapshot, not the product's current price, is what the
// order is billed at.
type CartItem struct {
	BaseModel
	CartID    uuid.UUID `gorm:"type:uuid;index;not null" json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`

	Grams             int             `json:"grams"`
	PricePer100gAtAdd decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_per_100g_at_add"`
}

// Subtotal prices the item from its snapshot: grams/100 x price per 100g.
func (ci *CartItem) Subtotal() decimal.Decimal {
	return ci.PricePer100gAtAdd.
		Mul(decimal.NewFromInt(int64(ci.Grams))).
		Div(decimal.NewFromInt(100)).
		Round(2)
}
