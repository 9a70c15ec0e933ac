package auth

import (
	"context"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/models"
)

// AuthorizeSelf reports whether identity owns the resource belonging to resourceEmail
func AuthorizeSelf(identity *Identity, resourceEmail string) bool {
	return identity != nil && identity.Email != "" && identity.Email == resourceEmail
}

// UserLookup is the slice of the user store needed for role checks
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AdminAuthorizer checks the stored role of an identity. The role claim inside the token is
// never trusted.
type AdminAuthorizer struct {
	users UserLookup
}

func NewAdminAuthorizer(users UserLookup) *AdminAuthorizer {
	return &AdminAuthorizer{users: users}
}

// AuthorizeAdmin is true iff the stored user has the admin role. A missing user is not an
// admin; any other lookup failure is returned.
func (a *AdminAuthorizer) AuthorizeAdmin(ctx context.Context, identity *Identity) (bool, error) {
	if identity == nil || identity.Email == "" {
		return false, nil
	}
	user, err := a.users.GetUserByEmail(ctx, identity.Email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}
