package auth

import (
	"errors"

	"clinic-booking/internal/model"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")
)

// Identity is the authenticated principal attached to a request,
// established at login and carried by the session token.
type Identity struct {
	UserID   int
	Username string
	Role     model.Role
}

// RequireAuthenticated rejects requests with no session identity.
func RequireAuthenticated(id *Identity) error {
	if id == nil {
		return ErrNotAuthenticated
	}
	return nil
}

// RequireRole rejects requests whose identity does not carry exactly
// the given role. There is no hierarchy: an admin does not pass a
// patient-only check.
func RequireRole(id *Identity, role model.Role) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if id.Role != role {
		return ErrForbidden
	}
	return nil
}
