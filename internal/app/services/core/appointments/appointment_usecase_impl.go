package appointments

import (
	"context"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/dto/requests"
	"meetocure-service/internal/pkg/exceptions"
	"meetocure-service/internal/pkg/utils"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	PatientRepository     contracts.PatientRepository
	SlotUsecase           contracts.SlotUsecase
	EventPublisher        contracts.LifecycleEventPublisher
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
	location              *time.Location
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	patientRepository contracts.PatientRepository,
	slotUsecase contracts.SlotUsecase,
	eventPublisher contracts.LifecycleEventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			DoctorRepository:      doctorRepository,
			PatientRepository:     patientRepository,
			SlotUsecase:           slotUsecase,
			EventPublisher:        eventPublisher,
			InternalConfig:        internalConfig,
			Log:                   logger,
			now:                   time.Now,
			location:              internalConfig.Location(),
		}
	})
	return appointmentUsecaseInstance
}

// Book creates a pending appointment for an offered slot. The slot check is
// advisory; the repository insert is what guarantees one active appointment
// per doctor, date and time.
func (uc *appointmentUsecase) Book(ctx context.Context, session *models.Session, request *requests.BookAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	utils.SanitizeBookAppointmentRequest(request)

	switch session.Role {
	case constvars.RolePatient:
		if request.PatientID != session.UserID {
			return nil, exceptions.ErrBookForOtherPatient(nil, session.UserID)
		}
	case constvars.RoleHospital, constvars.RoleAdmin:
	default:
		return nil, exceptions.ErrRoleNotAllowed(nil, session.Role)
	}

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	inPast, err := utils.IsDateBeforeToday(request.Date, uc.now(), uc.location)
	if err != nil {
		return nil, exceptions.ErrDateInPast(err, request.Date)
	}
	if inPast {
		return nil, exceptions.ErrDateInPast(nil, request.Date)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil, request.DoctorID)
	}
	patient, err := uc.PatientRepository.FindByID(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil, request.PatientID)
	}

	slots, err := uc.SlotUsecase.GetSlotsForDate(ctx, request.DoctorID, request.Date)
	if err != nil {
		return nil, err
	}
	if !containsSlot(slots, request.Time) {
		return nil, exceptions.ErrSlotUnavailable(nil, request.DoctorID, request.Date, request.Time)
	}

	now := uc.now()
	appointment := &models.Appointment{
		ID:              utils.GenerateDocumentID(),
		PatientID:       request.PatientID,
		DoctorID:        request.DoctorID,
		Date:            request.Date,
		Time:            request.Time,
		Reason:          request.Reason,
		PatientInfo:     toPatientInfo(request.PatientInfo),
		AttachedRecords: toAttachedRecords(request.AttachedRecords),
		Status:          models.AppointmentStatusPending,
	}
	appointment.SetCreatedAtUpdatedAt(now)

	err = uc.AppointmentRepository.Insert(ctx, appointment)
	if err != nil {
		uc.Log.Info("appointmentUsecase.Book insert rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
			zap.String(constvars.LoggingDateKey, request.Date),
			zap.String(constvars.LoggingTimeKey, request.Time),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publish(ctx, uc.buildEvent(appointment, "", session, now))
	return appointment, nil
}

func (uc *appointmentUsecase) Accept(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	return uc.transition(ctx, session, appointmentID, models.AppointmentActionAccept)
}

func (uc *appointmentUsecase) Complete(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	return uc.transition(ctx, session, appointmentID, models.AppointmentActionComplete)
}

func (uc *appointmentUsecase) Cancel(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	return uc.transition(ctx, session, appointmentID, models.AppointmentActionCancel)
}

// transition checks the actor, then legality, and only then writes with a
// compare-and-swap on the status it read. Losing the race to a concurrent
// writer is reported as an illegal transition from whatever status won.
func (uc *appointmentUsecase) transition(ctx context.Context, session *models.Session, appointmentID string, action models.AppointmentAction) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.transition called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingToStatusKey, string(action)),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}

	edge := models.AppointmentTransitions[action]
	if !edge.AllowsActor(appointment, session) {
		return nil, exceptions.ErrActorNotAuthorized(nil, session.UserID, string(action))
	}

	from := appointment.Status
	if !edge.AllowsFrom(from) {
		return nil, exceptions.ErrIllegalTransition(nil, edge.RejectMessage, string(from), string(edge.To))
	}

	swapped, err := uc.AppointmentRepository.CompareAndSetStatus(ctx, appointmentID, from, edge.To)
	if err != nil {
		uc.Log.Error("appointmentUsecase.transition error updating status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !swapped {
		current := from
		latest, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
		if err == nil && latest != nil {
			current = latest.Status
		}
		uc.Log.Info("appointmentUsecase.transition lost status race",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.String(constvars.LoggingFromStatusKey, string(current)),
		)
		return nil, exceptions.ErrIllegalTransition(nil, edge.RejectMessage, string(current), string(edge.To))
	}

	now := uc.now()
	appointment.Status = edge.To
	if !appointment.HoldsSlot() {
		appointment.SlotKey = ""
	}
	appointment.SetUpdatedAt(now)

	uc.publish(ctx, uc.buildEvent(appointment, from, session, now))
	return appointment, nil
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}
	if !appointment.IsOwnedBy(session.UserID) && !session.HasRole(constvars.RoleHospital, constvars.RoleAdmin) {
		return nil, exceptions.ErrActorNotAuthorized(nil, session.UserID, "read")
	}
	return appointment, nil
}

func (uc *appointmentUsecase) ListForPatient(ctx context.Context, session *models.Session) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListForPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	if !session.HasRole(constvars.RolePatient) {
		return nil, exceptions.ErrRoleNotAllowed(nil, session.Role)
	}
	return uc.AppointmentRepository.FindByPatientID(ctx, session.UserID)
}

// ListForDoctor returns the doctor's appointments for one date, or for the
// configured number of days starting today, ordered by date and slot time.
func (uc *appointmentUsecase) ListForDoctor(ctx context.Context, session *models.Session, request *requests.DoctorAppointmentsQuery) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	if !session.HasRole(constvars.RoleDoctor) {
		return nil, exceptions.ErrRoleNotAllowed(nil, session.Role)
	}
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	dates := []string{request.Date}
	if request.Date == "" {
		days := 2
		if uc.InternalConfig != nil && uc.InternalConfig.App.DoctorScheduleDays > 0 {
			days = uc.InternalConfig.App.DoctorScheduleDays
		}
		dates = utils.CalendarDaysFrom(uc.now(), uc.location, days)
	}

	appointments, err := uc.AppointmentRepository.FindByDoctorIDAndDates(ctx, session.UserID, dates)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date < appointments[j].Date
		}
		return slotMinutes(appointments[i].Time) < slotMinutes(appointments[j].Time)
	})
	return appointments, nil
}

func (uc *appointmentUsecase) buildEvent(appointment *models.Appointment, from models.AppointmentStatus, session *models.Session, now time.Time) *models.LifecycleEvent {
	return &models.LifecycleEvent{
		EventID:       utils.GenerateDeterministicID(string(models.LifecycleEventAppointment), appointment.ID, string(appointment.Status)),
		Kind:          models.LifecycleEventAppointment,
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		PatientName:   appointment.PatientInfo.Name,
		Date:          appointment.Date,
		Time:          appointment.Time,
		FromStatus:    string(from),
		ToStatus:      string(appointment.Status),
		ActorID:       session.UserID,
		ActorRole:     session.Role,
		OccurredAt:    now,
	}
}

// publish hands the event on after the write committed. A failure here
// cannot undo the transition, so it is logged rather than returned.
func (uc *appointmentUsecase) publish(ctx context.Context, event *models.LifecycleEvent) {
	if uc.EventPublisher == nil {
		return
	}
	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("appointmentUsecase.publish lifecycle event lost",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventIDKey, event.EventID),
			zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
			zap.String(constvars.LoggingToStatusKey, event.ToStatus),
			zap.Error(err),
		)
	}
}
