package notifications

import (
	"fmt"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/utils"
)

// buildNotification decides who hears about a lifecycle event and what they
// are told. It returns nil for events that notify nobody.
func buildNotification(event *models.LifecycleEvent) *models.Notification {
	var notification *models.Notification
	switch event.Kind {
	case models.LifecycleEventAppointment:
		notification = appointmentNotification(event)
	case models.LifecycleEventOnboarding:
		notification = onboardingNotification(event)
	}
	if notification == nil || notification.RecipientUserID == "" {
		return nil
	}

	notification.ID = utils.GenerateDeterministicID(event.EventID, notification.RecipientUserID)
	notification.Metadata[constvars.NotificationMetadataEventID] = event.EventID
	return notification
}

func appointmentNotification(event *models.LifecycleEvent) *models.Notification {
	switch models.AppointmentStatus(event.ToStatus) {
	case models.AppointmentStatusPending:
		return &models.Notification{
			RecipientUserID: event.DoctorID,
			Title:           constvars.NotificationTitleNewAppointment,
			Message:         fmt.Sprintf(constvars.NotificationMessageNewAppointment, event.PatientName, event.Date, event.Time),
			Type:            constvars.NotificationTypeInfo,
			TargetPath:      constvars.TargetPathDoctorAppointments,
			Metadata:        appointmentMetadata(event, constvars.RoleDoctor),
		}
	case models.AppointmentStatusAccepted:
		return &models.Notification{
			RecipientUserID: event.PatientID,
			Title:           constvars.NotificationTitleAppointmentAccepted,
			Message:         fmt.Sprintf(constvars.NotificationMessageAppointmentAccepted, event.Date, event.Time),
			Type:            constvars.NotificationTypeSuccess,
			TargetPath:      constvars.TargetPathPatientCalendar,
			Metadata:        appointmentMetadata(event, constvars.RolePatient),
		}
	case models.AppointmentStatusCompleted:
		return &models.Notification{
			RecipientUserID: event.PatientID,
			Title:           constvars.NotificationTitleAppointmentCompleted,
			Message:         fmt.Sprintf(constvars.NotificationMessageAppointmentCompleted, event.Date, event.Time),
			Type:            constvars.NotificationTypeSuccess,
			TargetPath:      constvars.TargetPathPatientCalendar,
			Metadata:        appointmentMetadata(event, constvars.RolePatient),
		}
	case models.AppointmentStatusCancelled:
		recipient := event.Counterparty()
		role, target := constvars.RoleDoctor, constvars.TargetPathDoctorAppointments
		if recipient == event.PatientID {
			role, target = constvars.RolePatient, constvars.TargetPathPatientCalendar
		}
		return &models.Notification{
			RecipientUserID: recipient,
			Title:           constvars.NotificationTitleAppointmentCancelled,
			Message:         fmt.Sprintf(constvars.NotificationMessageAppointmentCancelled, event.Date, event.Time, event.ActorRole),
			Type:            constvars.NotificationTypeWarning,
			TargetPath:      target,
			Metadata:        appointmentMetadata(event, role),
		}
	}
	return nil
}

func onboardingNotification(event *models.LifecycleEvent) *models.Notification {
	metadata := map[string]string{constvars.NotificationMetadataRole: constvars.RoleDoctor}
	switch models.RegistrationStatus(event.ToStatus) {
	case models.RegistrationStatusUnderReview:
		title, message := constvars.NotificationTitleDoctorRegistration, constvars.NotificationMessageDoctorRegistration
		if models.RegistrationStatus(event.FromStatus) == models.RegistrationStatusRejected {
			title, message = constvars.NotificationTitleDoctorResubmission, constvars.NotificationMessageDoctorResubmission
		}
		return &models.Notification{
			RecipientUserID: constvars.ReviewerRoom,
			Title:           title,
			Message:         fmt.Sprintf(message, event.DoctorID),
			Type:            constvars.NotificationTypeInfo,
			TargetPath:      constvars.TargetPathHospitalVerifications,
			Metadata: map[string]string{
				constvars.NotificationMetadataRole:   constvars.RoleHospital,
				constvars.NotificationMetadataDoctor: event.DoctorID,
			},
		}
	case models.RegistrationStatusVerified:
		return &models.Notification{
			RecipientUserID: event.DoctorID,
			Title:           constvars.NotificationTitleVerificationApproved,
			Message:         constvars.NotificationMessageVerificationApproved,
			Type:            constvars.NotificationTypeSuccess,
			TargetPath:      constvars.TargetPathDoctorVerification,
			Metadata:        metadata,
		}
	case models.RegistrationStatusRejected:
		return &models.Notification{
			RecipientUserID: event.DoctorID,
			Title:           constvars.NotificationTitleVerificationRejected,
			Message:         fmt.Sprintf(constvars.NotificationMessageVerificationRejected, event.ReviewMessage),
			Type:            constvars.NotificationTypeError,
			TargetPath:      constvars.TargetPathDoctorVerification,
			Metadata:        metadata,
		}
	}
	return nil
}

func appointmentMetadata(event *models.LifecycleEvent, role string) map[string]string {
	return map[string]string{
		constvars.NotificationMetadataAppointment: event.AppointmentID,
		constvars.NotificationMetadataRole:        role,
	}
}
