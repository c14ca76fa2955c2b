package store

import (
	"sort"
	"time"

	"clinic-booking/internal/model"
)

// CreateAppointment books an appointment for patientID with doctorID.
// Both ids must reference existing users; their usernames are snapshot
// into the record. The new appointment starts pending.
//
// The doctor id is only checked for existence, not for role — matching
// the original booking behavior.
func (s *Store) CreateAppointment(patientID, doctorID int, date, timeOfDay, reason string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patient, ok := s.users[patientID]
	if !ok {
		return 0, ErrUnknownPatient
	}
	doctor, ok := s.users[doctorID]
	if !ok {
		return 0, ErrUnknownDoctor
	}

	id := s.nextAppointmentID
	s.appointments[id] = model.Appointment{
		ID:          id,
		PatientID:   patientID,
		DoctorID:    doctorID,
		PatientName: patient.Username,
		DoctorName:  doctor.Username,
		Date:        date,
		Time:        timeOfDay,
		Reason:      reason,
		Status:      model.StatusPending,
		CreatedAt:   time.Now(),
	}
	s.nextAppointmentID++
	return id, nil
}

func (s *Store) GetAppointmentByID(id int) (model.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	return a, ok
}

func (s *Store) ListAppointmentsByPatient(patientID int) []model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Appointment
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ListAppointmentsByDoctor(doctorID int) []model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Appointment
	for _, a := range s.appointments {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ListAllAppointments() []model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateAppointmentStatus sets the status and updated_at of an
// appointment. Returns false when the id is unknown. Any status may
// move to any other; there is deliberately no transition table.
func (s *Store) UpdateAppointmentStatus(id int, status model.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.appointments[id]
	if !ok {
		return false
	}
	now := time.Now()
	a.Status = status
	a.UpdatedAt = &now
	s.appointments[id] = a
	return true
}
