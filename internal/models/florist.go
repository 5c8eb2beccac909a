package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the review state of a florist application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// FloristApplication is a user's request to sell on the platform. Approval
// grants the FLORIST role and provisions a wallet.
type FloristApplication struct {
	BaseModel
	ApplicantID uuid.UUID `gorm:"type:uuid;index;not null" json:"applicant_id"`
	Applicant   *User     `json:"applicant,omitempty"`

	ShopName    string            `json:"shop_name"`
	Description string            `json:"description"`
	GSTNumber   string            `json:"gst_number"`
	Status      ApplicationStatus `gorm:"type:varchar(16);index" json:"status"`
	DecidedAt   *time.Time        `json:"decided_at"`
}
