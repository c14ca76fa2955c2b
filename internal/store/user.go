package store

import (
	"sort"
	"time"

	"clinic-booking/internal/model"
)

// CreateUser inserts a new user and returns its id. The uniqueness
// checks run under the same lock as the insert, so two concurrent calls
// with the same username (or email) cannot both succeed.
func (s *Store) CreateUser(username, email, passwordHash string, role model.Role) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return 0, ErrDuplicateUsername
		}
	}
	for _, u := range s.users {
		if u.Email == email {
			return 0, ErrDuplicateEmail
		}
	}

	id := s.nextUserID
	s.users[id] = model.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	s.nextUserID++
	return id, nil
}

func (s *Store) GetUserByID(id int) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) GetUserByUsername(username string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *Store) GetUserByEmail(email string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return model.User{}, false
}

// ListDoctors returns every user with the doctor role, ordered by id.
func (s *Store) ListDoctors() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.User
	for _, u := range s.users {
		if u.Role == model.RoleDoctor {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ListAllUsers() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
