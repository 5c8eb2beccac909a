package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet accumulates a user's settled proceeds. Credit-only: no debit path
// exists, so the balance is monotonically non-decreasing.
type Wallet struct {
	BaseModel
	OwnerID uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"owner_id"`
	Owner   *User           `json:"owner,omitempty"`
	Balance decimal.Decimal `gorm:"type:numeric(14,2)" json:"balance"`
}
