package models

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestHasRole(t *testing.T) {
	user := &User{Roles: pq.StringArray{RoleUser, RoleFlorist}}

	assert.True(t, user.HasRole(RoleUser))
	assert.True(t, user.HasRole(RoleFlorist))
	assert.False(t, user.HasRole(RoleAdmin))
	assert.False(t, user.HasRole("user"), "role names are case sensitive")
}

func TestGrantRole(t *testing.T) {
	user := &User{Roles: pq.StringArray{RoleUser}}

	granted := user.GrantRole(RoleFlorist)

	assert.Equal(t, pq.StringArray{RoleUser, RoleFlorist}, granted)
	assert.Equal(t, pq.StringArray{RoleUser}, user.Roles, "receiver must stay unchanged")
}

func TestGrantRoleAlreadyHeld(t *testing.T) {
	user := &User{Roles: pq.StringArray{RoleUser, RoleFlorist}}

	granted := user.GrantRole(RoleFlorist)

	assert.Equal(t, pq.StringArray{RoleUser, RoleFlorist}, granted)
}
