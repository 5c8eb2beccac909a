package models

import "github.com/google/uuid"

// Review is a buyer's rating of a product. One review per user per product.
type Review struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_review_user_product;not null" json:"user_id"`
	User      *User     `json:"user,omitempty"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_review_user_product;index;not null" json:"product_id"`

	Rating int    `json:"rating"`
	Text   string `gorm:"type:text" json:"text"`
}
