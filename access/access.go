// Package access holds the authorization predicates applied after identity
// resolution. Decisions are plain values so they can be tested without any
// HTTP plumbing; handlers are responsible for confirming resource existence
// first (404 before 403) and then mapping a denial to a 403 response.
package access

import (
	"github.com/google/uuid"

	"github.com/inkwell-app/backend/models"
)

// Deny reasons.
const (
	ReasonNotAuthenticated = "not authenticated"
	ReasonNotOwner         = "not the resource owner"
	ReasonNotAdmin         = "admin role required"
)

// Decision is a tagged authorization outcome.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Owner succeeds iff the caller owns the resource. Callers must pass the owner
// id of a freshly fetched resource, not a cached copy.
func Owner(caller *models.User, ownerID uuid.UUID) Decision {
	if caller == nil {
		return Deny(ReasonNotAuthenticated)
	}
	if caller.ID != ownerID {
		return Deny(ReasonNotOwner)
	}
	return Allow()
}

// Admin succeeds iff the caller holds the admin role.
func Admin(caller *models.User) Decision {
	if caller == nil {
		return Deny(ReasonNotAuthenticated)
	}
	if !caller.IsAdmin() {
		return Deny(ReasonNotAdmin)
	}
	return Allow()
}

// OwnerOrAdmin composes the two checks: owners may act on their own
// resources, admins on any resource.
func OwnerOrAdmin(caller *models.User, ownerID uuid.UUID) Decision {
	if caller == nil {
		return Deny(ReasonNotAuthenticated)
	}
	if caller.ID == ownerID || caller.IsAdmin() {
		return Allow()
	}
	return Deny(ReasonNotOwner)
}
