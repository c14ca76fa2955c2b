package store_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"clinic-booking/internal/model"
	"clinic-booking/internal/store"
)

func newPatientAndDoctor(t *testing.T, s *store.Store) (patientID, doctorID int) {
	t.Helper()
	patientID, err := s.CreateUser("alice", "alice@test.com", "digest", model.RolePatient)
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	doctorID, err = s.CreateUser("bob", "bob@test.com", "digest", model.RoleDoctor)
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	return patientID, doctorID
}

func TestCreateUserAssignsSequentialIDs(t *testing.T) {
	s := store.New()
	for i := 1; i <= 3; i++ {
		id, err := s.CreateUser(fmt.Sprintf("user%d", i), fmt.Sprintf("u%d@test.com", i), "digest", model.RolePatient)
		if err != nil {
			t.Fatalf("create user %d: %v", i, err)
		}
		if id != i {
			t.Errorf("expected id %d, got %d", i, id)
		}
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := store.New()
	if _, err := s.CreateUser("alice", "a@test.com", "digest", model.RolePatient); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := s.CreateUser("alice", "b@test.com", "digest", model.RolePatient)
	if !errors.Is(err, store.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}
	_, err = s.CreateUser("other", "a@test.com", "digest", model.RolePatient)
	if !errors.Is(err, store.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

// Many goroutines race to register the same username; exactly one may
// win, the rest must see the duplicate error.
func TestCreateUserConcurrentSameUsername(t *testing.T) {
	s := store.New()

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.CreateUser("alice", fmt.Sprintf("alice%d@test.com", i), "digest", model.RolePatient)
		}(i)
	}
	wg.Wait()

	wins := 0
	for i, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, store.ErrDuplicateUsername):
		default:
			t.Errorf("goroutine %d: unexpected error %v", i, err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly 1 successful create, got %d", wins)
	}
	if got := len(s.ListAllUsers()); got != 1 {
		t.Fatalf("expected 1 stored user, got %d", got)
	}
}

func TestUserLookups(t *testing.T) {
	s := store.New()
	id, _ := s.CreateUser("alice", "alice@test.com", "digest", model.RolePatient)

	if u, ok := s.GetUserByID(id); !ok || u.Username != "alice" {
		t.Errorf("GetUserByID: got %+v ok=%v", u, ok)
	}
	if u, ok := s.GetUserByUsername("alice"); !ok || u.ID != id {
		t.Errorf("GetUserByUsername: got %+v ok=%v", u, ok)
	}
	if u, ok := s.GetUserByEmail("alice@test.com"); !ok || u.ID != id {
		t.Errorf("GetUserByEmail: got %+v ok=%v", u, ok)
	}
	if _, ok := s.GetUserByUsername("nobody"); ok {
		t.Error("expected miss for unknown username")
	}
}

func TestListDoctors(t *testing.T) {
	s := store.New()
	newPatientAndDoctor(t, s)
	s.CreateUser("carol", "carol@test.com", "digest", model.RoleDoctor)

	docs := s.ListDoctors()
	if len(docs) != 2 {
		t.Fatalf("expected 2 doctors, got %d", len(docs))
	}
	for _, d := range docs {
		if d.Role != model.RoleDoctor {
			t.Errorf("non-doctor in ListDoctors: %+v", d)
		}
	}
}

func TestCreateAppointmentSnapshotsNames(t *testing.T) {
	s := store.New()
	patientID, doctorID := newPatientAndDoctor(t, s)

	id, err := s.CreateAppointment(patientID, doctorID, "2024-05-01", "10:00", "checkup")
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	a, ok := s.GetAppointmentByID(id)
	if !ok {
		t.Fatal("appointment not found after create")
	}
	if a.Status != model.StatusPending {
		t.Errorf("expected pending, got %s", a.Status)
	}
	if a.PatientName != "alice" || a.DoctorName != "bob" {
		t.Errorf("bad name snapshot: %q / %q", a.PatientName, a.DoctorName)
	}
	if a.UpdatedAt != nil {
		t.Error("updated_at must be unset on a fresh appointment")
	}
	if a.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestCreateAppointmentUnknownUsers(t *testing.T) {
	s := store.New()
	patientID, doctorID := newPatientAndDoctor(t, s)

	if _, err := s.CreateAppointment(999, doctorID, "2024-05-01", "10:00", ""); !errors.Is(err, store.ErrUnknownPatient) {
		t.Errorf("expected ErrUnknownPatient, got %v", err)
	}
	if _, err := s.CreateAppointment(patientID, 999, "2024-05-01", "10:00", ""); !errors.Is(err, store.ErrUnknownDoctor) {
		t.Errorf("expected ErrUnknownDoctor, got %v", err)
	}
	if got := len(s.ListAllAppointments()); got != 0 {
		t.Errorf("failed creates must not insert, got %d appointments", got)
	}
}

// Booking against any existing user id is allowed; the doctor id is not
// checked for the doctor role.
func TestCreateAppointmentDoctorRoleUnchecked(t *testing.T) {
	s := store.New()
	patientID, _ := newPatientAndDoctor(t, s)
	otherPatient, _ := s.CreateUser("dave", "dave@test.com", "digest", model.RolePatient)

	if _, err := s.CreateAppointment(patientID, otherPatient, "2024-05-01", "10:00", ""); err != nil {
		t.Errorf("booking against a non-doctor user id should succeed, got %v", err)
	}
}

func TestUpdateAppointmentStatusUnknown(t *testing.T) {
	s := store.New()
	if s.UpdateAppointmentStatus(42, model.StatusApproved) {
		t.Error("expected false for unknown appointment id")
	}
	if got := len(s.ListAllAppointments()); got != 0 {
		t.Errorf("unknown-id update must not mutate, got %d appointments", got)
	}
}

func TestUpdateAppointmentStatusAnyTransition(t *testing.T) {
	s := store.New()
	patientID, doctorID := newPatientAndDoctor(t, s)
	id, _ := s.CreateAppointment(patientID, doctorID, "2024-05-01", "10:00", "")

	// deliberately includes "backwards" moves; there is no transition table
	sequence := []model.Status{
		model.StatusApproved,
		model.StatusCancelled,
		model.StatusPending,
		model.StatusCompleted,
		model.StatusRejected,
	}
	for _, st := range sequence {
		if !s.UpdateAppointmentStatus(id, st) {
			t.Fatalf("update to %s returned false", st)
		}
		a, _ := s.GetAppointmentByID(id)
		if a.Status != st {
			t.Errorf("expected status %s, got %s", st, a.Status)
		}
		if a.UpdatedAt == nil {
			t.Fatalf("updated_at not set after update to %s", st)
		}
		if a.UpdatedAt.Before(a.CreatedAt) {
			t.Errorf("updated_at %v before created_at %v", a.UpdatedAt, a.CreatedAt)
		}
	}
}

func TestListAppointmentsByPatient(t *testing.T) {
	s := store.New()
	patientID, doctorID := newPatientAndDoctor(t, s)
	otherID, _ := s.CreateUser("dave", "dave@test.com", "digest", model.RolePatient)

	want := map[int]bool{}
	for i := 0; i < 3; i++ {
		id, _ := s.CreateAppointment(patientID, doctorID, "2024-05-01", "10:00", "")
		want[id] = true
	}
	s.CreateAppointment(otherID, doctorID, "2024-05-02", "11:00", "")

	got := s.ListAppointmentsByPatient(patientID)
	if len(got) != len(want) {
		t.Fatalf("expected %d appointments, got %d", len(want), len(got))
	}
	seen := map[int]bool{}
	for _, a := range got {
		if a.PatientID != patientID {
			t.Errorf("foreign appointment %d in listing", a.ID)
		}
		if seen[a.ID] {
			t.Errorf("duplicate appointment %d in listing", a.ID)
		}
		seen[a.ID] = true
		if !want[a.ID] {
			t.Errorf("unexpected appointment %d", a.ID)
		}
	}
}

func TestListAppointmentsByDoctor(t *testing.T) {
	s := store.New()
	patientID, doctorID := newPatientAndDoctor(t, s)
	otherDoc, _ := s.CreateUser("carol", "carol@test.com", "digest", model.RoleDoctor)

	s.CreateAppointment(patientID, doctorID, "2024-05-01", "10:00", "")
	s.CreateAppointment(patientID, otherDoc, "2024-05-01", "11:00", "")

	got := s.ListAppointmentsByDoctor(doctorID)
	if len(got) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(got))
	}
	if got[0].DoctorID != doctorID {
		t.Errorf("wrong doctor on appointment: %d", got[0].DoctorID)
	}
}

// Full lifecycle: alice books with bob, bob approves, admin cancels.
// The cancel succeeds even though no approved→cancelled rule exists.
func TestBookingLifecycle(t *testing.T) {
	s := store.New()
	patientID, doctorID := newPatientAndDoctor(t, s)

	id, err := s.CreateAppointment(patientID, doctorID, "2024-05-01", "10:00", "checkup")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if id != 1 {
		t.Errorf("expected first appointment id 1, got %d", id)
	}

	if !s.UpdateAppointmentStatus(id, model.StatusApproved) {
		t.Fatal("approve failed")
	}
	a, _ := s.GetAppointmentByID(id)
	if a.Status != model.StatusApproved || a.UpdatedAt == nil {
		t.Fatalf("after approve: status=%s updated_at=%v", a.Status, a.UpdatedAt)
	}

	if !s.UpdateAppointmentStatus(id, model.StatusCancelled) {
		t.Fatal("cancel failed")
	}
	a, _ = s.GetAppointmentByID(id)
	if a.Status != model.StatusCancelled {
		t.Errorf("after cancel: status=%s", a.Status)
	}
}

func TestEnsureAdmin(t *testing.T) {
	s := store.New()

	created, err := s.EnsureAdmin("digest")
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if !created {
		t.Error("expected admin to be created on empty store")
	}

	admin, ok := s.GetUserByUsername("admin")
	if !ok || admin.Role != model.RoleAdmin {
		t.Fatalf("admin user missing or wrong role: %+v ok=%v", admin, ok)
	}

	created, err = s.EnsureAdmin("other-digest")
	if err != nil {
		t.Fatalf("second ensure admin: %v", err)
	}
	if created {
		t.Error("second EnsureAdmin must be a no-op")
	}
	if got := len(s.ListAllUsers()); got != 1 {
		t.Errorf("expected 1 user, got %d", got)
	}
}
