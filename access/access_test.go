package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/inkwell-app/backend/models"
)

func user(role string) *models.User {
	return &models.User{ID: uuid.New(), Role: role}
}

func TestOwner(t *testing.T) {
	owner := user(models.RoleUser)
	other := user(models.RoleUser)

	assert.True(t, Owner(owner, owner.ID).Allowed)

	decision := Owner(other, owner.ID)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonNotOwner, decision.Reason)

	decision = Owner(nil, owner.ID)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonNotAuthenticated, decision.Reason)
}

func TestAdmin(t *testing.T) {
	assert.True(t, Admin(user(models.RoleAdmin)).Allowed)

	decision := Admin(user(models.RoleUser))
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonNotAdmin, decision.Reason)

	assert.False(t, Admin(nil).Allowed)
}

// The full caller matrix for resource mutations: owners and admins pass,
// everyone else is denied.
func TestOwnerOrAdmin(t *testing.T) {
	owner := user(models.RoleUser)
	admin := user(models.RoleAdmin)
	stranger := user(models.RoleUser)

	cases := []struct {
		name    string
		caller  *models.User
		allowed bool
		reason  string
	}{
		{"owner", owner, true, ""},
		{"admin on foreign resource", admin, true, ""},
		{"non-owner non-admin", stranger, false, ReasonNotOwner},
		{"anonymous", nil, false, ReasonNotAuthenticated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := OwnerOrAdmin(tc.caller, owner.ID)
			assert.Equal(t, tc.allowed, decision.Allowed)
			assert.Equal(t, tc.reason, decision.Reason)
		})
	}
}

// An admin acting on their own resource passes both branches.
func TestOwnerOrAdminSelfAdmin(t *testing.T) {
	admin := user(models.RoleAdmin)
	assert.True(t, OwnerOrAdmin(admin, admin.ID).Allowed)
}
