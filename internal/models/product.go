package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an item offered by a florist. Produce is sold by weight, priced
// per 100 grams.
type Product struct {
	BaseModel
	Name        string `gorm:"index" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `json:"image_url"`

	PricePer100g decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_per_100g"`
	StockGrams   int             `json:"stock_grams"`

	CategoryID uuid.UUID `gorm:"type:uuid;index;not null" json:"category_id"`
	Category   *Category `json:"category,omitempty"`

	FloristID uuid.UUID `gorm:"type:uuid;index;not null" json:"florist_id"`
	Florist   *User     `json:"florist,omitempty"`

	Active   bool `gorm:"index" json:"active"`
	Featured bool `gorm:"index" json:"featured"`
}

// Category groups products. Names are unique; categories are created lazily
// when a florist names a new one.
type Category struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}
