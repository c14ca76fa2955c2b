package model

import "time"

// Role gates what a logged-in user may do. Matching is exact — admin is
// not implicitly a patient or doctor.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor || r == RoleAdmin
}

// Status is an appointment's lifecycle state. Transitions are
// unconstrained: any status may move to any other.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Appointment struct {
	ID        int `json:"id"`
	PatientID int `json:"patient_id"`
	DoctorID  int `json:"doctor_id"`

	// username snapshots taken at booking time; usernames are
	// immutable so these never go stale
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`

	Date   string `json:"appointment_date"` // 2006-01-02
	Time   string `json:"appointment_time"` // 15:04
	Reason string `json:"reason,omitempty"`

	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
