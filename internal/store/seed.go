package store

import (
	"errors"

	"clinic-booking/internal/model"
)

// EnsureAdmin guarantees exactly one bootstrap admin account exists.
// Called once at startup; passwordHash is only used when the account is
// missing. Returns true when a new admin was created.
func (s *Store) EnsureAdmin(passwordHash string) (bool, error) {
	if _, ok := s.GetUserByUsername("admin"); ok {
		return false, nil
	}
	_, err := s.CreateUser("admin", "admin@healthcare.local", passwordHash, model.RoleAdmin)
	if errors.Is(err, ErrDuplicateUsername) {
		// lost a startup race with another creator, admin exists now
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
