package contracts

import (
	"context"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/dto/requests"
)

type AppointmentRepository interface {
	// Insert fails with a SlotConflictError when another non-cancelled
	// appointment already holds the same doctor, date and time.
	Insert(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByPatientID(ctx context.Context, patientID string) ([]models.Appointment, error)
	FindByDoctorIDAndDates(ctx context.Context, doctorID string, dates []string) ([]models.Appointment, error)
	// CompareAndSetStatus writes the new status only while the stored status
	// still equals from. It reports whether the write happened.
	CompareAndSetStatus(ctx context.Context, appointmentID string, from, to models.AppointmentStatus) (bool, error)
}

type AppointmentUsecase interface {
	Book(ctx context.Context, session *models.Session, request *requests.BookAppointment) (*models.Appointment, error)
	Accept(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error)
	Complete(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error)
	Cancel(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error)
	FindByID(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error)
	ListForPatient(ctx context.Context, session *models.Session) ([]models.Appointment, error)
	ListForDoctor(ctx context.Context, session *models.Session, request *requests.DoctorAppointmentsQuery) ([]models.Appointment, error)
}
