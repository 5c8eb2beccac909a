package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/KAVIN131005/Florist-Backend/internal/apperr"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions is the only legal transition graph: the linear happy path
// plus cancellation before shipment.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// ValidOrderStatus reports whether s names a defined status.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is the immutable record of a checkout: what was bought, at which
// snapshot prices, for how much in total. Only Status and settlement fields
// change after creation.
type Order struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User   *User     `json:"user,omitempty"`

	Status          OrderStatus     `gorm:"type:varchar(16);index" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_amount"`
	DeliveryAddress string          `json:"delivery_address"`
	PlacedAt        time.Time       `json:"placed_at"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem carries the purchase snapshot: product name, selling florist and
// per-100g price are copied at order creation and never re-resolved.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID *uuid.UUID `gorm:"type:uuid" json:"product_id"`

	ProductName  string          `json:"product_name"`
	FloristID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"florist_id"`
	Grams        int             `json:"grams"`
	PricePer100g decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_per_100g"`
	Subtotal     decimal.Decimal `gorm:"type:numeric(12,2)" json:"subtotal"`
}

// TransitionTo applies a status change, rejecting anything outside the
// transition table.
func (o *Order) TransitionTo(next OrderStatus) error {
	if !ValidOrderStatus(next) {
		return apperr.NewValidation("unknown order status %q", next)
	}
	if !CanTransition(o.Status, next) {
		return apperr.NewValidation("cannot transition order from %s to %s", o.Status, next)
	}
	o.Status = next
	return nil
}

// SumSubtotals recomputes the sum of item subtotals. At creation time it must
// equal TotalAmount; afterwards it is only used to assert that invariant.
func (o *Order) SumSubtotals() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	return total
}
