// Package auth holds the authorization guard used before mutations and the
// session token digest helpers.
package auth

import (
	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
)

// Owned is any resource with a single owning identity.
type Owned interface {
	OwnerUsername() string
}

// RequireOwner fails with common.ErrForbidden unless identity owns resource.
func RequireOwner(identity *models.User, resource Owned) error {
	if identity == nil || resource == nil || resource.OwnerUsername() != identity.UserName {
		return common.Errorf(common.ErrForbidden, "you do not own this resource")
	}
	return nil
}

// RequireNotSelf rejects operations that target the caller itself.
// verb is used in the message, e.g. "follow".
func RequireNotSelf(identity *models.User, target, verb string) error {
	if identity != nil && identity.UserName == target {
		return common.Errorf(common.ErrValidation, "cannot %s self", verb)
	}
	return nil
}
