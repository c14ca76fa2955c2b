package store

import (
	"errors"
	"sync"

	"clinic-booking/internal/model"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrUnknownPatient    = errors.New("patient not found")
	ErrUnknownDoctor     = errors.New("doctor not found")
)

// Store is the single source of truth for users and appointments. All
// state lives in process memory and is lost on restart; one mutex
// serializes every operation so read-modify-write sequences (uniqueness
// check + insert, status update) are atomic.
type Store struct {
	mu sync.Mutex

	users        map[int]model.User
	appointments map[int]model.Appointment

	nextUserID        int
	nextAppointmentID int
}

func New() *Store {
	return &Store{
		users:             make(map[int]model.User),
		appointments:      make(map[int]model.Appointment),
		nextUserID:        1,
		nextAppointmentID: 1,
	}
}
