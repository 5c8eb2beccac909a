package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the reconciliation state against the external gateway.
type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "CREATED"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment links an order to its external gateway transaction. At most one
// payment exists per order; the row moves to SUCCESS exactly once, carrying
// the computed revenue split.
type Payment struct {
	BaseModel
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	Order   *Order    `json:"order,omitempty"`

	GatewayOrderID   string `gorm:"index" json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	GatewaySignature string `json:"-"`

	Amount       decimal.Decimal `gorm:"type:numeric(12,2)" json:"amount"`
	FloristShare decimal.Decimal `gorm:"type:numeric(12,2)" json:"florist_share"`
	AdminShare   decimal.Decimal `gorm:"type:numeric(12,2)" json:"admin_share"`

	Status PaymentStatus `gorm:"type:varchar(16);index" json:"status"`
	PaidAt *time.Time    `json:"paid_at"`
}
