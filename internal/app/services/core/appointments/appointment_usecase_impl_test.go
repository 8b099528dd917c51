package appointments

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/dto/requests"
	"meetocure-service/internal/pkg/dto/responses"
	"meetocure-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryAppointmentRepository mirrors the atomic behaviour of the mongo
// repository: a unique slot key on insert and a conditional status update.
type memoryAppointmentRepository struct {
	mu       sync.Mutex
	byID     map[string]*models.Appointment
	slotKeys map[string]string
}

func newMemoryAppointmentRepository() *memoryAppointmentRepository {
	return &memoryAppointmentRepository{
		byID:     make(map[string]*models.Appointment),
		slotKeys: make(map[string]string),
	}
}

func (r *memoryAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := models.BuildSlotKey(appointment.DoctorID, appointment.Date, appointment.Time)
	if _, taken := r.slotKeys[key]; taken {
		return exceptions.ErrSlotConflict(nil, appointment.DoctorID, appointment.Date, appointment.Time)
	}
	appointment.SlotKey = key
	stored := *appointment
	r.byID[appointment.ID] = &stored
	r.slotKeys[key] = appointment.ID
	return nil
}

func (r *memoryAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[appointmentID]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (r *memoryAppointmentRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []models.Appointment{}
	for _, stored := range r.byID {
		if stored.PatientID == patientID {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *memoryAppointmentRepository) FindByDoctorIDAndDates(ctx context.Context, doctorID string, dates []string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]bool, len(dates))
	for _, date := range dates {
		wanted[date] = true
	}
	result := []models.Appointment{}
	for _, stored := range r.byID {
		if stored.DoctorID == doctorID && wanted[stored.Date] {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *memoryAppointmentRepository) CompareAndSetStatus(ctx context.Context, appointmentID string, from, to models.AppointmentStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[appointmentID]
	if !ok || stored.Status != from {
		return false, nil
	}
	stored.Status = to
	if to == models.AppointmentStatusCancelled {
		delete(r.slotKeys, stored.SlotKey)
		stored.SlotKey = ""
	}
	return true, nil
}

func (r *memoryAppointmentRepository) status(appointmentID string) models.AppointmentStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[appointmentID].Status
}

type stubDoctorRepository struct{}

func (stubDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	if doctorID == "unknown" {
		return nil, nil
	}
	return &models.Doctor{ID: doctorID, Name: "Dr. " + doctorID}, nil
}

func (stubDoctorRepository) UpdateRegistrationStatus(ctx context.Context, doctorID string, status models.RegistrationStatus) error {
	return nil
}

type stubPatientRepository struct{}

func (stubPatientRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	if patientID == "unknown" {
		return nil, nil
	}
	return &models.Patient{ID: patientID}, nil
}

type stubSlotUsecase struct {
	slots map[string][]string
}

func (s *stubSlotUsecase) GetSlotsForDate(ctx context.Context, doctorID, date string) ([]string, error) {
	if slots, ok := s.slots[doctorID+"|"+date]; ok {
		return slots, nil
	}
	return []string{}, nil
}

func (s *stubSlotUsecase) GetAvailability(ctx context.Context, doctorID string) (*responses.Availability, error) {
	return nil, nil
}

func (s *stubSlotUsecase) SearchSlots(ctx context.Context, doctorID string, request *requests.SearchSlots) (*responses.SearchSlots, error) {
	return nil, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*models.LifecycleEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event *models.LifecycleEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) toStatuses() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	statuses := make([]string, 0, len(p.events))
	for _, event := range p.events {
		statuses = append(statuses, event.ToStatus)
	}
	return statuses
}

type testHarness struct {
	usecase   *appointmentUsecase
	repo      *memoryAppointmentRepository
	publisher *recordingPublisher
}

func newHarness() *testHarness {
	repo := newMemoryAppointmentRepository()
	publisher := &recordingPublisher{}
	usecase := &appointmentUsecase{
		AppointmentRepository: repo,
		DoctorRepository:      stubDoctorRepository{},
		PatientRepository:     stubPatientRepository{},
		SlotUsecase: &stubSlotUsecase{slots: map[string][]string{
			"D1|2025-03-10": {"9:00 AM", "10:30 AM"},
			"D1|2025-03-11": {"10:30 AM"},
		}},
		EventPublisher: publisher,
		Log:            zap.NewNop(),
		now:            func() time.Time { return time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC) },
		location:       time.UTC,
	}
	return &testHarness{usecase: usecase, repo: repo, publisher: publisher}
}

func patientSession(id string) *models.Session {
	return &models.Session{UserID: id, Role: constvars.RolePatient}
}

func doctorSession(id string) *models.Session {
	return &models.Session{UserID: id, Role: constvars.RoleDoctor}
}

func bookingRequest(patientID, doctorID, date, slotTime string) *requests.BookAppointment {
	return &requests.BookAppointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      slotTime,
		Reason:    "fever",
		PatientInfo: requests.PatientInfo{
			Name:      "Asha",
			Phone:     "9876543210",
			Age:       34,
			Gender:    "female",
			Allergies: []string{"penicillin"},
		},
	}
}

func TestAppointmentLifecycleScenario(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	booked, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "10:30 AM"))
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusPending, booked.Status)

	_, err = h.usecase.Book(ctx, patientSession("P2"), bookingRequest("P2", "D1", "2025-03-10", "10:30 AM"))
	assert.True(t, exceptions.IsKind(err, exceptions.KindSlotConflict), "second booking of the same triple should conflict")

	accepted, err := h.usecase.Accept(ctx, doctorSession("D1"), booked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusAccepted, accepted.Status)

	completed, err := h.usecase.Complete(ctx, doctorSession("D1"), booked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCompleted, completed.Status)

	_, err = h.usecase.Cancel(ctx, doctorSession("D1"), booked.ID)
	assert.True(t, exceptions.IsKind(err, exceptions.KindIllegalTransition))
	assert.Equal(t, models.AppointmentStatusCompleted, h.repo.status(booked.ID))

	assert.Equal(t, []string{"pending", "accepted", "completed"}, h.publisher.toStatuses(), "one event per committed change")
}

func TestBookingConcurrentSameSlot(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	const attempts = 25
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			patientID := fmt.Sprintf("P%d", i)
			_, err := h.usecase.Book(ctx, patientSession(patientID), bookingRequest(patientID, "D1", "2025-03-10", "10:30 AM"))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded, conflicted := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case exceptions.IsKind(err, exceptions.KindSlotConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)
}

func TestBookingAfterCancellation(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	first, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "10:30 AM"))
	require.NoError(t, err)

	cancelled, err := h.usecase.Cancel(ctx, patientSession("P1"), first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCancelled, cancelled.Status)

	second, err := h.usecase.Book(ctx, patientSession("P2"), bookingRequest("P2", "D1", "2025-03-10", "10:30 AM"))
	require.NoError(t, err, "a cancelled appointment no longer holds its slot")
	assert.Equal(t, models.AppointmentStatusPending, second.Status)

	_, err = h.usecase.Accept(ctx, doctorSession("D1"), first.ID)
	assert.True(t, exceptions.IsKind(err, exceptions.KindIllegalTransition), "cancelled is terminal")
}

func TestBookingRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("Age outside range", func(t *testing.T) {
		h := newHarness()
		request := bookingRequest("P1", "D1", "2025-03-10", "10:30 AM")
		request.PatientInfo.Age = 0
		_, err := h.usecase.Book(ctx, patientSession("P1"), request)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})

	t.Run("Phone not ten digits", func(t *testing.T) {
		h := newHarness()
		request := bookingRequest("P1", "D1", "2025-03-10", "10:30 AM")
		request.PatientInfo.Phone = "98765"
		_, err := h.usecase.Book(ctx, patientSession("P1"), request)
		require.True(t, exceptions.IsKind(err, exceptions.KindValidation))
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, "phone must be exactly 10 digits", customErr.ClientMessage)
	})

	t.Run("Date before today", func(t *testing.T) {
		h := newHarness()
		_, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-08", "10:30 AM"))
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})

	t.Run("Same day is allowed", func(t *testing.T) {
		h := newHarness()
		h.usecase.now = func() time.Time { return time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC) }
		_, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "9:00 AM"))
		assert.NoError(t, err)
	})

	t.Run("Slot not offered", func(t *testing.T) {
		h := newHarness()
		_, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "4:00 PM"))
		assert.True(t, exceptions.IsKind(err, exceptions.KindSlotUnavailable))
	})

	t.Run("Loose time input matches the offered slot", func(t *testing.T) {
		h := newHarness()
		booked, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "10:30am"))
		require.NoError(t, err)
		assert.Equal(t, "10:30 AM", booked.Time)
	})

	t.Run("Unknown doctor", func(t *testing.T) {
		h := newHarness()
		_, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "unknown", "2025-03-10", "10:30 AM"))
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("Unknown patient", func(t *testing.T) {
		h := newHarness()
		_, err := h.usecase.Book(ctx, &models.Session{UserID: "H1", Role: constvars.RoleHospital}, bookingRequest("unknown", "D1", "2025-03-10", "10:30 AM"))
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("Patient booking for someone else", func(t *testing.T) {
		h := newHarness()
		_, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P2", "D1", "2025-03-10", "10:30 AM"))
		assert.True(t, exceptions.IsKind(err, exceptions.KindAuthorization))
	})

	t.Run("No event for a rejected booking", func(t *testing.T) {
		h := newHarness()
		_, _ = h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "4:00 PM"))
		assert.Empty(t, h.publisher.toStatuses())
	})
}

func TestTransitionAuthorization(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	booked, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "10:30 AM"))
	require.NoError(t, err)

	cases := []struct {
		name    string
		session *models.Session
		action  func(context.Context, *models.Session, string) (*models.Appointment, error)
	}{
		{"Patient cannot accept", patientSession("P1"), h.usecase.Accept},
		{"Other doctor cannot accept", doctorSession("D2"), h.usecase.Accept},
		{"Patient cannot complete", patientSession("P1"), h.usecase.Complete},
		{"Other patient cannot cancel", patientSession("P2"), h.usecase.Cancel},
		{"Other doctor cannot cancel", doctorSession("D2"), h.usecase.Cancel},
		{"Hospital cannot cancel", &models.Session{UserID: "H1", Role: constvars.RoleHospital}, h.usecase.Cancel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.action(ctx, tc.session, booked.ID)
			assert.True(t, exceptions.IsKind(err, exceptions.KindAuthorization))
			assert.Equal(t, models.AppointmentStatusPending, h.repo.status(booked.ID))
		})
	}
	assert.Equal(t, []string{"pending"}, h.publisher.toStatuses())
}

func TestTransitionGraph(t *testing.T) {
	ctx := context.Background()

	t.Run("Accept twice", func(t *testing.T) {
		h := newHarness()
		booked, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "10:30 AM"))
		require.NoError(t, err)

		_, err = h.usecase.Accept(ctx, doctorSession("D1"), booked.ID)
		require.NoError(t, err)
		_, err = h.usecase.Accept(ctx, doctorSession("D1"), booked.ID)

		require.True(t, exceptions.IsKind(err, exceptions.KindIllegalTransition))
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, "appointment is not in pending state", customErr.ClientMessage)
		assert.Equal(t, models.AppointmentStatusAccepted, h.repo.status(booked.ID))
	})

	t.Run("Concurrent accepts commit once", func(t *testing.T) {
		h := newHarness()
		booked, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "10:30 AM"))
		require.NoError(t, err)

		const attempts = 10
		var wg sync.WaitGroup
		errs := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := h.usecase.Accept(ctx, doctorSession("D1"), booked.ID)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		succeeded := 0
		for err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.True(t, exceptions.IsKind(err, exceptions.KindIllegalTransition))
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, []string{"pending", "accepted"}, h.publisher.toStatuses())
	})

	t.Run("Complete requires accepted", func(t *testing.T) {
		h := newHarness()
		booked, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "10:30 AM"))
		require.NoError(t, err)

		_, err = h.usecase.Complete(ctx, doctorSession("D1"), booked.ID)
		assert.True(t, exceptions.IsKind(err, exceptions.KindIllegalTransition))
		assert.Equal(t, models.AppointmentStatusPending, h.repo.status(booked.ID))
	})

	t.Run("Completed cannot be accepted again", func(t *testing.T) {
		h := newHarness()
		booked, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "10:30 AM"))
		require.NoError(t, err)
		_, err = h.usecase.Accept(ctx, doctorSession("D1"), booked.ID)
		require.NoError(t, err)
		_, err = h.usecase.Complete(ctx, doctorSession("D1"), booked.ID)
		require.NoError(t, err)

		_, err = h.usecase.Accept(ctx, doctorSession("D1"), booked.ID)
		assert.True(t, exceptions.IsKind(err, exceptions.KindIllegalTransition))
	})

	t.Run("Accepted appointment can be cancelled by the patient", func(t *testing.T) {
		h := newHarness()
		booked, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "10:30 AM"))
		require.NoError(t, err)
		_, err = h.usecase.Accept(ctx, doctorSession("D1"), booked.ID)
		require.NoError(t, err)

		cancelled, err := h.usecase.Cancel(ctx, patientSession("P1"), booked.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusCancelled, cancelled.Status)

		h.publisher.mu.Lock()
		last := h.publisher.events[len(h.publisher.events)-1]
		h.publisher.mu.Unlock()
		assert.Equal(t, "accepted", last.FromStatus)
		assert.Equal(t, "P1", last.ActorID)
	})

	t.Run("Unknown appointment", func(t *testing.T) {
		h := newHarness()
		_, err := h.usecase.Accept(ctx, doctorSession("D1"), "missing")
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})
}

func TestListForDoctor(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	_, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "10:30 AM"))
	require.NoError(t, err)
	_, err = h.usecase.Book(ctx, patientSession("P2"), bookingRequest("P2", "D1", "2025-03-10", "9:00 AM"))
	require.NoError(t, err)
	_, err = h.usecase.Book(ctx, patientSession("P3"), bookingRequest("P3", "D1", "2025-03-11", "10:30 AM"))
	require.NoError(t, err)

	t.Run("Single date ordered by slot time", func(t *testing.T) {
		list, err := h.usecase.ListForDoctor(ctx, doctorSession("D1"), &requests.DoctorAppointmentsQuery{Date: "2025-03-10"})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "9:00 AM", list[0].Time)
		assert.Equal(t, "10:30 AM", list[1].Time)
	})

	t.Run("Default window starts today", func(t *testing.T) {
		h.usecase.InternalConfig = nil
		h.usecase.now = func() time.Time { return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) }
		list, err := h.usecase.ListForDoctor(ctx, doctorSession("D1"), &requests.DoctorAppointmentsQuery{})
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("Patients cannot use the doctor view", func(t *testing.T) {
		_, err := h.usecase.ListForDoctor(ctx, patientSession("P1"), &requests.DoctorAppointmentsQuery{})
		assert.True(t, exceptions.IsKind(err, exceptions.KindAuthorization))
	})
}

func TestFindByID(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	booked, err := h.usecase.Book(ctx, patientSession("P1"), bookingRequest("P1", "D1", "2025-03-10", "10:30 AM"))
	require.NoError(t, err)

	found, err := h.usecase.FindByID(ctx, doctorSession("D1"), booked.ID)
	require.NoError(t, err)
	assert.Equal(t, booked.ID, found.ID)

	_, err = h.usecase.FindByID(ctx, patientSession("P9"), booked.ID)
	assert.True(t, exceptions.IsKind(err, exceptions.KindAuthorization))
}
