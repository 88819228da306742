package model

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHumanID(t *testing.T) {
	pattern := regexp.MustCompile(`^TCH-[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for range 100 {
		id := NewHumanID("TCH")
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "human ids must not repeat: %s", id)
		seen[id] = true
	}
}

func TestUserRoleValid(t *testing.T) {
	for _, role := range []UserRole{RoleTeacher, RoleGuardian, RoleFreelancer, RoleClient} {
		assert.True(t, role.Valid())
	}
	assert.False(t, UserRole("admin").Valid())
	assert.False(t, UserRole("").Valid())
}

func TestPostStatusValid(t *testing.T) {
	for _, status := range []PostStatus{PostStatusOpen, PostStatusMatched, PostStatusClosed, PostStatusHold} {
		assert.True(t, status.Valid())
	}
	assert.False(t, PostStatus("archived").Valid())
}

func TestAdminHasPermission(t *testing.T) {
	admin := &Admin{Permissions: []string{"ads", "settings"}}
	assert.True(t, admin.HasPermission("ads"))
	assert.False(t, admin.HasPermission("invoices"))

	super := &Admin{Permissions: []string{"*"}}
	assert.True(t, super.HasPermission("anything"))

	none := &Admin{}
	assert.False(t, none.HasPermission("ads"))
}
