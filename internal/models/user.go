package models

import (
	"slices"

	"github.com/lib/pq"
)

// Role names granted to users. FLORIST is earned through an approved seller
// application; ADMIN is held by exactly one platform account.
const (
	RoleUser    = "USER"
	RoleFlorist = "FLORIST"
	RoleAdmin   = "ADMIN"
)

// User represents a buyer, florist or the platform admin.
type User struct {
	BaseModel
	Name         string         `json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `json:"-"`
	Roles        pq.StringArray `gorm:"type:text[]" json:"roles"`

	// Optional florist profile fields.
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// HasRole evaluates the user's capability set without mutating it.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// GrantRole returns the role set extended with the given role. The receiver is
// not modified; callers persist the returned set explicitly.
func (u *User) GrantRole(role string) pq.StringArray {
	if u.HasRole(role) {
		return u.Roles
	}
	granted := make(pq.StringArray, 0, len(u.Roles)+1)
	granted = append(granted, u.Roles...)
	granted = append(granted, role)
	return granted
}
